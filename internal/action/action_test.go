package action

import (
	"testing"

	"github.com/jmelosegui/mosaico/internal/nav"
)

func TestRoundTrip(t *testing.T) {
	cases := []Action{
		{Kind: Focus, Dir: nav.Left},
		{Kind: Move, Dir: nav.Right},
		{Kind: Resize, Dir: nav.Up},
		{Kind: Retile},
		{Kind: ToggleMonocle},
		{Kind: CloseFocused},
		{Kind: GoToWorkspace, Workspace: 3},
		{Kind: SendToWorkspace, Workspace: 8},
		{Kind: ToggleFloat},
		{Kind: CycleLayout},
		{Kind: TogglePause},
	}
	for _, a := range cases {
		s := Render(a)
		got, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if got != a {
			t.Errorf("round-trip mismatch for %q: got %+v, want %+v", s, got, a)
		}
	}
}

func TestParseRejectsOutOfRangeWorkspace(t *testing.T) {
	if _, err := Parse("goto-workspace-9"); err == nil {
		t.Fatal("expected error for workspace 9")
	}
	if _, err := Parse("goto-workspace-0"); err == nil {
		t.Fatal("expected error for workspace 0")
	}
}

func TestParseUnknownAction(t *testing.T) {
	if _, err := Parse("not-a-real-action"); err == nil {
		t.Fatal("expected error for unknown action")
	}
}
