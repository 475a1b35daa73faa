package workspace

import "testing"

func TestAddIgnoresDuplicates(t *testing.T) {
	w := New()
	w.Add(1)
	w.Add(1)
	if w.Len() != 1 {
		t.Fatalf("expected 1 handle, got %d", w.Len())
	}
}

func TestInsertClampsPosition(t *testing.T) {
	w := New()
	w.Add(1)
	w.Add(2)
	w.Insert(99, 3)
	handles := w.Handles()
	if handles[len(handles)-1] != 3 {
		t.Fatalf("expected 3 appended at end, got %v", handles)
	}
}

func TestRemovePrunesOutOfRangeRatios(t *testing.T) {
	w := New()
	w.Add(1)
	w.Add(2)
	w.Add(3)
	w.AdjustSplitRatio(2, 0.1, 0.5)
	w.Remove(3)
	w.Remove(2)
	// after removals only handle 1 remains; any leftover override whose
	// End exceeds 1 must be pruned.
	for r := range w.splitRatios {
		if r.End > w.Len() {
			t.Fatalf("expected stale ratio range %+v to be pruned", r)
		}
	}
}

func TestAdjustSplitRatioClamps(t *testing.T) {
	w := New()
	w.Add(1)
	w.Add(2)
	w.AdjustSplitRatio(1, -5, 0.5)
	_, ratio := w.rangeContaining(0, 0.5)
	if ratio != 0.1 {
		t.Fatalf("expected clamp to 0.1, got %v", ratio)
	}
}
