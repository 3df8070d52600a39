package debate

import (
	"fmt"
	"testing"
)

func TestRoster_DistinctJoinsAreDisjoint(t *testing.T) {
	r := newRoster()
	for i := 0; i < 20; i++ {
		side := SidePro
		if i%3 == 0 {
			side = SideKontra
		}
		r.assign(fmt.Sprintf("user-%d", i), side)
	}

	seen := make(map[string]Side)
	for _, side := range Sides {
		for _, id := range r.list(side) {
			if prev, ok := seen[id]; ok {
				t.Fatalf("%s appears on both %s and %s", id, prev, side)
			}
			seen[id] = side
		}
	}
	if len(seen) != 20 {
		t.Fatalf("expected 20 participants, got %d", len(seen))
	}
}

func TestRoster_SwitchMovesUserToEndOfNewSide(t *testing.T) {
	r := newRoster()
	r.assign("a", SidePro)
	r.assign("b", SideKontra)
	r.assign("c", SideKontra)

	prev := r.assign("b", SidePro)
	if prev != SideKontra {
		t.Fatalf("expected previous side kontra, got %q", prev)
	}
	pro := r.list(SidePro)
	if len(pro) != 2 || pro[0] != "a" || pro[1] != "b" {
		t.Fatalf("unexpected pro roster: %v", pro)
	}
	kontra := r.list(SideKontra)
	if len(kontra) != 1 || kontra[0] != "c" {
		t.Fatalf("unexpected kontra roster: %v", kontra)
	}
}

func TestRoster_ListReturnsCopy(t *testing.T) {
	r := newRoster()
	r.assign("a", SidePro)
	list := r.list(SidePro)
	list[0] = "mutated"
	if r.list(SidePro)[0] != "a" {
		t.Fatal("roster must not be mutated through list result")
	}
}
