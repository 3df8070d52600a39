package debate

import "time"

type Point struct {
	Seq        int
	Side       Side
	UserID     string
	Text       string
	Round      int
	RecordedAt time.Time
}

// ledger is append-only; Seq starts at 1 and has no gaps.
type ledger struct {
	points []Point
}

func (l *ledger) append(side Side, userID, text string, round int, at time.Time) Point {
	p := Point{
		Seq:        len(l.points) + 1,
		Side:       side,
		UserID:     userID,
		Text:       text,
		Round:      round,
		RecordedAt: at,
	}
	l.points = append(l.points, p)
	return p
}

func (l *ledger) snapshot() []Point {
	out := make([]Point, len(l.points))
	copy(out, l.points)
	return out
}

func (l *ledger) totals() map[Side]int {
	out := make(map[Side]int, len(Sides))
	for _, side := range Sides {
		out[side] = 0
	}
	for _, p := range l.points {
		out[p.Side]++
	}
	return out
}
