// Package mood tallies the tone of guild messages per calendar day.
package mood

import "strings"

type Mood string

const (
	MoodPositive Mood = "positive"
	MoodNeutral  Mood = "neutral"
	MoodNegative Mood = "negative"
	MoodToxic    Mood = "toxic"
)

// Moods lists every mood in tie-break order.
var Moods = []Mood{MoodPositive, MoodNeutral, MoodNegative, MoodToxic}

// Score is the outcome of classifying one message. A message that matches no
// keyword counts as a single neutral hit.
type Score struct {
	Positive int
	Neutral  int
	Negative int
	Toxic    int
}

func (s Score) Count(m Mood) int {
	switch m {
	case MoodPositive:
		return s.Positive
	case MoodNeutral:
		return s.Neutral
	case MoodNegative:
		return s.Negative
	case MoodToxic:
		return s.Toxic
	default:
		return 0
	}
}

// Dominant returns the mood with the highest count. Ties go to the mood
// listed first in Moods.
func (s Score) Dominant() Mood {
	best := MoodPositive
	for _, m := range Moods[1:] {
		if s.Count(m) > s.Count(best) {
			best = m
		}
	}
	return best
}

func (s Score) add(o Score) Score {
	return Score{
		Positive: s.Positive + o.Positive,
		Neutral:  s.Neutral + o.Neutral,
		Negative: s.Negative + o.Negative,
		Toxic:    s.Toxic + o.Toxic,
	}
}

type Classifier interface {
	Classify(text string) Score
}

// KeywordClassifier counts substring hits against fixed word lists.
type KeywordClassifier struct {
	Positive []string
	Negative []string
	Toxic    []string
}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		Positive: []string{
			"mantap", "bagus", "keren", "thanks", "thank you", "makasih", "wkwk",
			"haha", "lucu", "senang", "happy", "gas", "nice", "good", "great",
		},
		Negative: []string{
			"sedih", "cape", "capek", "bad", "jelek", "kesal", "marah",
			"kecewa", "susah", "anjir", "aduh",
		},
		Toxic: []string{
			"tolol", "goblok", "anjing", "bangsat", "kontol", "memek",
		},
	}
}

func (k *KeywordClassifier) Classify(text string) Score {
	low := strings.ToLower(text)
	s := Score{
		Positive: countHits(low, k.Positive),
		Negative: countHits(low, k.Negative),
		Toxic:    countHits(low, k.Toxic),
	}
	if s.Positive == 0 && s.Negative == 0 && s.Toxic == 0 {
		s.Neutral = 1
	}
	return s
}

func countHits(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}
