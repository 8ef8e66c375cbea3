package theme

import "testing"

func TestLoadAllAvailable(t *testing.T) {
	for _, name := range Available() {
		th, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q) failed: %v", name, err)
		}
		if th.Name != name {
			t.Errorf("theme name = %q, want %q", th.Name, name)
		}
		if th.Bg == "" || th.Fg == "" || th.Accent == "" {
			t.Errorf("theme %q is missing base colors", name)
		}
	}
}

func TestLoadUnknownFallsBack(t *testing.T) {
	th, err := Load("does-not-exist")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if th.Name != "mocha" {
		t.Errorf("fallback theme = %q, want mocha", th.Name)
	}
}

func TestLoadEmptyDefaults(t *testing.T) {
	th, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if th.Name != "mocha" {
		t.Errorf("default theme = %q, want mocha", th.Name)
	}
}

func TestIsAvailable(t *testing.T) {
	if !IsAvailable("Latte") {
		t.Error("theme lookup should be case-insensitive")
	}
	if IsAvailable("solarized") {
		t.Error("unknown theme reported available")
	}
}
