package debate

import (
	"fmt"
	"strings"
)

type Side string

const (
	SidePro    Side = "pro"
	SideKontra Side = "kontra"
)

// Sides lists both sides in announcement order.
var Sides = []Side{SidePro, SideKontra}

func ParseSide(raw string) (Side, error) {
	side := Side(strings.ToLower(strings.TrimSpace(raw)))
	if !side.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSide, raw)
	}
	return side, nil
}

func (s Side) Valid() bool {
	return s == SidePro || s == SideKontra
}

func (s Side) Label() string {
	return strings.ToUpper(string(s))
}
