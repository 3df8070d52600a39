package debate

// roster is the participant registry of one session. Each user belongs to at
// most one side; members keep join order per side.
type roster struct {
	sides   map[string]Side
	members map[Side][]string
}

func newRoster() *roster {
	return &roster{
		sides:   make(map[string]Side),
		members: make(map[Side][]string, len(Sides)),
	}
}

// assign puts userID on side, moving it off the other side when needed.
// previous is empty when the user had not joined before.
func (r *roster) assign(userID string, side Side) (previous Side) {
	previous = r.sides[userID]
	if previous == side {
		return previous
	}
	if previous != "" {
		r.members[previous] = removeUser(r.members[previous], userID)
	}
	r.sides[userID] = side
	r.members[side] = append(r.members[side], userID)
	return previous
}

func (r *roster) sideOf(userID string) (Side, bool) {
	side, ok := r.sides[userID]
	return side, ok
}

func (r *roster) count(side Side) int {
	return len(r.members[side])
}

func (r *roster) list(side Side) []string {
	out := make([]string, len(r.members[side]))
	copy(out, r.members[side])
	return out
}

func removeUser(list []string, userID string) []string {
	out := list[:0]
	for _, id := range list {
		if id != userID {
			out = append(out, id)
		}
	}
	return out
}
