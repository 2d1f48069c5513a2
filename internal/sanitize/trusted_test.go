package sanitize

import "testing"

func TestMarkPassesThrough(t *testing.T) {
	inputs := []string{
		"",
		"hello",
		"multi\nline",
		"control \x07 chars",
		"unicode é世界",
	}
	for _, in := range inputs {
		if got := Mark(in).Inner(); got != in {
			t.Errorf("Mark(%q).Inner() = %q, want unchanged", in, got)
		}
	}
}

func TestCheckTextNilRuleAcceptsEverything(t *testing.T) {
	res := CheckText("\x00\x01\x02", nil)
	if !res.Accepted() {
		t.Error("nil rule must accept all input")
	}
	if res.Text != "\x00\x01\x02" {
		t.Errorf("Text = %q, want input preserved", res.Text)
	}
}

func TestCheckTextReportsPositions(t *testing.T) {
	// é is two bytes, so the bell after it sits at byte offset 3.
	res := CheckText("\x07é\x07x", RejectControl)
	if res.Accepted() {
		t.Fatal("control characters must be rejected")
	}
	want := []Violation{
		{Pos: 0, Rune: 0x07},
		{Pos: 3, Rune: 0x07},
	}
	if len(res.Violations) != len(want) {
		t.Fatalf("got %d violations, want %d", len(res.Violations), len(want))
	}
	for i, v := range want {
		if res.Violations[i] != v {
			t.Errorf("violation %d = %+v, want %+v", i, res.Violations[i], v)
		}
	}
}

func TestRejectControl(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{'a', false},
		{' ', false},
		{'\t', false},
		{'\n', false},
		{'\r', true},
		{0x00, true},
		{0x1b, true}, // ESC
		{0x7f, true}, // DEL
		{0x9b, true}, // CSI
		{'é', false},
	}
	for _, tt := range tests {
		if got := RejectControl(tt.r); got != tt.want {
			t.Errorf("RejectControl(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestCheckTextAcceptsCleanText(t *testing.T) {
	res := CheckText("Download complete\nfile.tar.gz", RejectControl)
	if !res.Accepted() {
		t.Errorf("clean text rejected: %+v", res.Violations)
	}
}
