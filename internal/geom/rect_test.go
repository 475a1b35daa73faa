package geom

import "testing"

func TestVerticalOverlap(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 100, H: 100}
	b := Rect{X: 100, Y: 50, W: 100, H: 100}
	if got := a.VerticalOverlap(b); got != 50 {
		t.Fatalf("expected overlap 50, got %d", got)
	}
	c := Rect{X: 0, Y: 200, W: 100, H: 100}
	if got := a.VerticalOverlap(c); got != 0 {
		t.Fatalf("expected no overlap, got %d", got)
	}
}

func TestHorizontalOverlap(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 100, H: 100}
	b := Rect{X: 50, Y: 100, W: 100, H: 100}
	if got := a.HorizontalOverlap(b); got != 50 {
		t.Fatalf("expected overlap 50, got %d", got)
	}
}

func TestInsetClampsToOne(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 4, H: 4}
	out := r.Inset(10)
	if out.W != 1 || out.H != 1 {
		t.Fatalf("expected clamped 1x1, got %dx%d", out.W, out.H)
	}
}

func TestCenter(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 200, H: 100}
	if r.CenterX() != 110 || r.CenterY() != 70 {
		t.Fatalf("unexpected center: %d,%d", r.CenterX(), r.CenterY())
	}
}
