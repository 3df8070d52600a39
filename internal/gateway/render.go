package gateway

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/foxseedlab/wasit/internal/debate"
	"github.com/foxseedlab/wasit/internal/mood"
)

const (
	maxMessageLength = 2000
	maxListedPoints  = 15
)

func mention(userID string) string {
	return "<@" + userID + ">"
}

func mentionList(userIDs []string) string {
	if len(userIDs) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		parts = append(parts, mention(id))
	}
	return strings.Join(parts, ", ")
}

func renderSummary(s debate.Summary, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("📌 **Ringkasan Debat**\n")
	fmt.Fprintf(&b, "Topik: **%s**\n", s.Topic)
	fmt.Fprintf(&b, "Status: %s\n", statusLine(s))
	if !s.StartedAt.IsZero() {
		fmt.Fprintf(&b, "Dimulai: %s\n", s.StartedAt.In(loc).Format("2006-01-02 15:04 MST"))
	}
	for _, side := range debate.Sides {
		fmt.Fprintf(&b, "Peserta %s: %s\n", side.Label(), mentionList(s.Members(side)))
	}
	fmt.Fprintf(&b, "Jumlah Poin: PRO **%d** | KONTRA **%d**", s.Totals[debate.SidePro], s.Totals[debate.SideKontra])

	if len(s.Points) > 0 {
		b.WriteString("\n\n**Poin:**")
		points := s.Points
		if len(points) > maxListedPoints {
			fmt.Fprintf(&b, "\n_... %d poin sebelumnya tidak ditampilkan_", len(points)-maxListedPoints)
			points = points[len(points)-maxListedPoints:]
		}
		for _, p := range points {
			fmt.Fprintf(&b, "\n#%d [%s] %s (R%d): %s", p.Seq, p.Side.Label(), mention(p.UserID), p.Round, p.Text)
		}
	}
	return truncateMessage(b.String())
}

func statusLine(s debate.Summary) string {
	switch s.Phase {
	case debate.PhaseSetup:
		return "Menunggu peserta"
	case debate.PhaseActive:
		line := fmt.Sprintf("Berjalan • ronde %d/%d", s.CurrentRound, s.RoundCount)
		if !s.RoundEndsAt.IsZero() {
			line += fmt.Sprintf(" • berakhir <t:%d:R>", s.RoundEndsAt.Unix())
		}
		return line
	case debate.PhaseEnded:
		return fmt.Sprintf("Selesai (%s) • %d/%d ronde", endReasonLabel(s.EndReason), s.CurrentRound, s.RoundCount)
	default:
		return string(s.Phase)
	}
}

func renderRoundStarted(s debate.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, messageRoundStartedFormat, s.Topic, formatSeconds(s.RoundDuration), s.RoundCount)
	for _, side := range debate.Sides {
		fmt.Fprintf(&b, "\n%s: %s", side.Label(), mentionList(s.Members(side)))
	}
	b.WriteString("\n")
	b.WriteString(renderRoundProgress(s))
	return truncateMessage(b.String())
}

func renderRoundProgress(s debate.Summary) string {
	return fmt.Sprintf(messageRoundProgressFormat, s.CurrentRound, s.RoundCount, s.RoundEndsAt.Unix())
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%ds", int(d.Seconds()))
}

var moodLabels = map[mood.Mood]string{
	mood.MoodPositive: "POSITIF",
	mood.MoodNeutral:  "NETRAL",
	mood.MoodNegative: "NEGATIF",
	mood.MoodToxic:    "TOXIC",
}

var moodLines = []struct {
	mood  mood.Mood
	label string
}{
	{mood.MoodPositive, "🙂 Positif"},
	{mood.MoodNeutral, "😐 Netral"},
	{mood.MoodNegative, "🙁 Negatif"},
	{mood.MoodToxic, "☣ Toxic"},
}

func renderMood(t mood.Tally) string {
	var b strings.Builder
	b.WriteString("📈 **Mood Server Detector**\n")
	fmt.Fprintf(&b, "Rekap %d hari terakhir • %d pesan terpantau\n", t.Days, t.Messages)
	for _, line := range moodLines {
		fmt.Fprintf(&b, "%s: %d (%.1f%%)\n", line.label, t.Count(line.mood), t.Percent(line.mood))
	}
	fmt.Fprintf(&b, "Mood dominan: **%s**", moodLabels[t.Dominant()])
	return b.String()
}

func truncateMessage(s string) string {
	if utf8.RuneCountInString(s) <= maxMessageLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxMessageLength-1]) + "…"
}
