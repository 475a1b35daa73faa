package nav

import (
	"testing"

	"github.com/jmelosegui/mosaico/internal/geom"
)

func TestFindNeighbor_Scenario(t *testing.T) {
	positions := []Positioned{
		{Handle: 1, Rect: geom.Rect{X: 0, Y: 0, W: 100, H: 100}},   // A
		{Handle: 2, Rect: geom.Rect{X: 100, Y: 0, W: 100, H: 100}}, // B
		{Handle: 3, Rect: geom.Rect{X: 100, Y: 100, W: 100, H: 100}}, // C
	}

	got, ok := FindNeighbor(positions, 1, Right)
	if !ok || got != 2 {
		t.Fatalf("A->Right: expected B(2), got %v ok=%v", got, ok)
	}

	got, ok = FindNeighbor(positions, 2, Down)
	if !ok || got != 3 {
		t.Fatalf("B->Down: expected C(3), got %v ok=%v", got, ok)
	}

	_, ok = FindNeighbor(positions, 1, Down)
	if ok {
		t.Fatalf("A->Down: expected no neighbor (no vertical overlap with C)")
	}
}

func TestFindEntry_TopmostThenEdgeDirection(t *testing.T) {
	positions := []Positioned{
		{Handle: 1, Rect: geom.Rect{X: 50, Y: 0, W: 100, H: 100}},
		{Handle: 2, Rect: geom.Rect{X: 0, Y: 0, W: 100, H: 100}},
	}
	got, ok := FindEntry(positions, Left)
	if !ok || got != 2 {
		t.Fatalf("entering from left should prefer leftmost topmost, got %v", got)
	}
	got, ok = FindEntry(positions, Right)
	if !ok || got != 1 {
		t.Fatalf("entering from right should prefer rightmost topmost, got %v", got)
	}
}
