package layout

import (
	"testing"

	"github.com/jmelosegui/mosaico/internal/geom"
)

func TestComputeBSP_ThreeWindowsNoGap(t *testing.T) {
	handles := []Handle{1, 2, 3}
	work := geom.Rect{X: 0, Y: 0, W: 1920, H: 1080}
	got := Compute(BSP, handles, work, Params{Gap: 0, Ratio: 0.5})

	want := []geom.Rect{
		{X: 0, Y: 0, W: 960, H: 1080},
		{X: 960, Y: 0, W: 960, H: 540},
		{X: 960, Y: 540, W: 960, H: 540},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d placements, got %d", len(want), len(got))
	}
	for i, p := range got {
		if p.Rect != want[i] {
			t.Errorf("placement %d: got %+v, want %+v", i, p.Rect, want[i])
		}
		if p.Handle != handles[i] {
			t.Errorf("placement %d: handle order not preserved", i)
		}
	}
}

func TestComputeBSP_ThreeWindowsWithGap(t *testing.T) {
	handles := []Handle{1, 2, 3}
	work := geom.Rect{X: 0, Y: 0, W: 1920, H: 1080}
	got := Compute(BSP, handles, work, Params{Gap: 8, Ratio: 0.5})

	want := []geom.Rect{
		{X: 8, Y: 8, W: 948, H: 1064},
		{X: 960, Y: 8, W: 952, H: 528},
		{X: 960, Y: 540, W: 952, H: 532},
	}
	for i, p := range got {
		if p.Rect != want[i] {
			t.Errorf("placement %d: got %+v, want %+v", i, p.Rect, want[i])
		}
	}
}

func TestComputeBSP_SingleHandleFillsInsetArea(t *testing.T) {
	work := geom.Rect{X: 0, Y: 0, W: 1920, H: 1080}
	got := Compute(BSP, []Handle{1}, work, Params{Gap: 8, Ratio: 0.5})
	if len(got) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(got))
	}
	want := work.Inset(8)
	if got[0].Rect != want {
		t.Fatalf("got %+v, want %+v", got[0].Rect, want)
	}
}

func TestComputeBSP_Disjoint(t *testing.T) {
	handles := []Handle{1, 2, 3, 4, 5}
	work := geom.Rect{X: 0, Y: 0, W: 1600, H: 900}
	placements := Compute(BSP, handles, work, Params{Gap: 6, Ratio: 0.6})

	for i := range placements {
		for j := range placements {
			if i == j {
				continue
			}
			if placements[i].Rect.Overlaps(placements[j].Rect) {
				t.Fatalf("placements %d and %d overlap: %+v / %+v", i, j, placements[i].Rect, placements[j].Rect)
			}
		}
		if !work.Contains(placements[i].Rect) {
			t.Fatalf("placement %d not contained in work area: %+v", i, placements[i].Rect)
		}
	}
}

func TestKindNextCyclesThroughFour(t *testing.T) {
	k := BSP
	seen := map[Kind]bool{}
	for i := 0; i < 4; i++ {
		seen[k] = true
		k = k.Next()
	}
	if k != BSP {
		t.Fatalf("expected cycle back to BSP, got %v", k)
	}
	if len(seen) != 4 {
		t.Fatalf("expected 4 distinct kinds, got %d", len(seen))
	}
}

func TestComputeColumnsEvenSplit(t *testing.T) {
	work := geom.Rect{X: 0, Y: 0, W: 300, H: 100}
	got := Compute(Columns, []Handle{1, 2, 3}, work, Params{Gap: 0})
	for _, p := range got {
		if p.Rect.W != 100 {
			t.Fatalf("expected column width 100, got %d", p.Rect.W)
		}
	}
}
