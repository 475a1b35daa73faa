package rule

import "testing"

func strp(s string) *string { return &s }

func TestShouldManage_FirstMatchWins(t *testing.T) {
	rules := []Rule{
		{MatchClass: strp("Explorer"), Manage: false},
		{MatchTitle: strp("settings"), Manage: false},
		{Manage: true},
	}
	if ShouldManage("Explorer", "File Explorer", rules) != false {
		t.Fatalf("expected class rule to match and deny management")
	}
	if ShouldManage("Other", "Open Settings", rules) != false {
		t.Fatalf("expected title substring rule to match")
	}
	if ShouldManage("Other", "Notepad", rules) != true {
		t.Fatalf("expected catch-all rule to allow management")
	}
}

func TestShouldManage_NoMatchDefaultsTrue(t *testing.T) {
	rules := []Rule{{MatchClass: strp("Explorer"), Manage: false}}
	if !ShouldManage("Chrome", "anything", rules) {
		t.Fatalf("expected default manage=true when nothing matches")
	}
}

func TestMergeOrdersUserBeforeCommunity(t *testing.T) {
	user := []Rule{{MatchClass: strp("A"), Manage: false}}
	community := []Rule{{MatchClass: strp("A"), Manage: true}}
	merged := Merge(user, community)
	if !merged[0].Matches("A", "") || merged[0].Manage != false {
		t.Fatalf("expected user rule first, got %+v", merged[0])
	}
}

func TestTitleMatchIsCaseInsensitiveSubstring(t *testing.T) {
	r := Rule{MatchTitle: strp("SETTINGS"), Manage: false}
	if !r.Matches("anything", "Open settings now") {
		t.Fatalf("expected case-insensitive substring match")
	}
}
