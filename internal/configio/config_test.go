package configio

import "testing"

func TestDefaultConfigIsAlreadyValid(t *testing.T) {
	cfg := Default()
	before := *cfg
	cfg.Validate()
	if *cfg != before {
		t.Fatalf("expected defaults to already satisfy Validate, got changes: %+v vs %+v", cfg, before)
	}
}

func TestValidateClampsOutOfRangeGap(t *testing.T) {
	cfg := Default()
	cfg.Layout.Gap = 9999
	cfg.Validate()
	if cfg.Layout.Gap != 200 {
		t.Fatalf("expected gap clamped to 200, got %d", cfg.Layout.Gap)
	}
}

func TestValidateClampsRatio(t *testing.T) {
	cfg := Default()
	cfg.Layout.Ratio = 0.99
	cfg.Validate()
	if cfg.Layout.Ratio != 0.9 {
		t.Fatalf("expected ratio clamped to 0.9, got %v", cfg.Layout.Ratio)
	}
}

func TestValidateRejectsUnknownHidingStrategy(t *testing.T) {
	cfg := Default()
	cfg.Layout.Hiding = "explode"
	cfg.Validate()
	if cfg.Layout.Hiding != HideCloak {
		t.Fatalf("expected fallback to cloak, got %v", cfg.Layout.Hiding)
	}
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Layout.Gap != Default().Layout.Gap {
		t.Fatalf("expected default gap for missing file")
	}
}
