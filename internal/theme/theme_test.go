package theme

import "testing"

func TestResolveEmptyUsesFallback(t *testing.T) {
	fallback := RGBA{R: 1, G: 2, B: 3, A: 255}
	got, err := Resolve(Mocha, "", fallback)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != fallback {
		t.Fatalf("expected fallback, got %+v", got)
	}
}

func TestResolveHex(t *testing.T) {
	got, err := Resolve(Mocha, "#ff0080", RGBA{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := RGBA{R: 0xff, G: 0x00, B: 0x80, A: 255}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestResolveNamedColor(t *testing.T) {
	if _, err := Resolve(Mocha, "peach", RGBA{}); err != nil {
		t.Fatalf("unexpected error resolving named color: %v", err)
	}
}

func TestResolveUnknownNameErrors(t *testing.T) {
	if _, err := Resolve(Mocha, "not-a-color", RGBA{}); err == nil {
		t.Fatal("expected error for unknown color name")
	}
}
