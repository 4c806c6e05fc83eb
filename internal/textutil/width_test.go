package textutil

import (
	"reflect"
	"testing"
)

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"ascii", "vows", 4},
		{"wide cjk", "結婚式", 6},
		{"mixed", "a結b", 4},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayWidth(tt.text); got != tt.want {
				t.Fatalf("DisplayWidth(%q)=%d want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"bouquet", 10, "bouquet"},
		{"bouquet", 7, "bouquet"},
		{"bouquet", 5, "bouq…"},
		{"bouquet", 1, "…"},
		{"bouquet", 0, ""},
		{"結婚式", 4, "結…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.text, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestWrap(t *testing.T) {
	got := Wrap("the first look by the lake", 10, 0)
	want := []string{"the first", "look by", "the lake"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Wrap = %q, want %q", got, want)
	}

	got = Wrap("abcdefghijkl xy", 5, 0)
	want = []string{"abcde", "fghij", "kl xy"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Wrap long word = %q, want %q", got, want)
	}

	got = Wrap("the first look by the lake", 10, 2)
	want = []string{"the first", "look by…"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Wrap limited = %q, want %q", got, want)
	}

	if lines := Wrap("anything", 0, 0); lines != nil {
		t.Fatalf("expected nil for zero width, got %q", lines)
	}
}
