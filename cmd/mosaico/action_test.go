package main

import "testing"

// These cases all return before runAction ever reaches the control
// channel, so they're safe to exercise without a running daemon.
func TestRunAction_UsageAndValidationExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no args prints usage and fails", nil, 2},
		{"help flag succeeds", []string{"help"}, 0},
		{"unknown action fails", []string{"teleport"}, 2},
		{"focus missing direction fails", []string{"focus"}, 2},
		{"focus extra args fails", []string{"focus", "left", "extra"}, 2},
		{"retile takes no arguments", []string{"retile", "now"}, 2},
		{"goto-workspace missing number fails", []string{"goto-workspace"}, 2},
		{"invalid direction fails parse", []string{"focus", "sideways"}, 2},
		{"invalid workspace number fails parse", []string{"goto-workspace", "99"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runAction(tt.args); got != tt.want {
				t.Errorf("runAction(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}
