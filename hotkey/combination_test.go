package hotkey

import "testing"

func TestParseCanonicalOrder(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ctrl+.", "ctrl+."},
		{"shift+ctrl+a", "ctrl+shift+a"},
		{"a+shift+ctrl", "ctrl+shift+a"},
		{"win+alt+shift+ctrl+f5", "ctrl+alt+shift+win+f5"},
		{"CTRL+Space", "ctrl+space"},
		{"windows+d", "win+d"},
		{"decimal", "decimal"},
	}

	for _, tt := range tests {
		c, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.input, err)
			continue
		}
		if got := c.String(); got != tt.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseEmptyIsDisabled(t *testing.T) {
	c, err := Parse("")
	if err != nil {
		t.Fatalf("Parse(\"\") error: %v", err)
	}
	if !c.IsZero() {
		t.Error("empty string should parse to the zero combination")
	}
	if c.String() != "" {
		t.Errorf("zero combination serializes to %q, want \"\"", c.String())
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"ctrl+", "+a", "ctrl+a+b", "ctrl+shift"} {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) expected error", input)
		}
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ctrl+shift+a", "Ctrl + Shift + A"},
		{"ctrl+.", "Ctrl + ."},
		{"ctrl+decimal", "Ctrl + Decimal"},
		{"alt+f4", "Alt + F4"},
		{"ctrl+space", "Ctrl + Space"},
		{"", "None"},
	}

	for _, tt := range tests {
		c, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.input, err)
			continue
		}
		if got := c.Display(); got != tt.want {
			t.Errorf("Parse(%q).Display() = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{"ctrl+.", "ctrl+alt+shift+x", "f12", "ctrl+num5"} {
		c, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		again, err := Parse(c.String())
		if err != nil {
			t.Fatalf("re-Parse(%q): %v", c.String(), err)
		}
		if again.String() != c.String() {
			t.Errorf("round trip changed %q to %q", c.String(), again.String())
		}
	}
}
