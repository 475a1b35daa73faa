package main

import (
	"testing"

	"github.com/jmelosegui/mosaico/internal/winapi"
)

func TestEventKindName(t *testing.T) {
	tests := []struct {
		kind winapi.WindowEventKind
		want string
	}{
		{winapi.EvCreated, "created"},
		{winapi.EvDestroyed, "destroyed"},
		{winapi.EvFocused, "focused"},
		{winapi.EvMoved, "moved"},
		{winapi.EvMinimized, "minimized"},
		{winapi.EvRestored, "restored"},
		{winapi.EvTitleChanged, "title-changed"},
		{winapi.WindowEventKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := eventKindName(tt.kind); got != tt.want {
			t.Errorf("eventKindName(%v) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
