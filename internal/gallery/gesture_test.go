package gallery

import "testing"

func TestClassifySwipe(t *testing.T) {
	g := GestureConfig{Threshold: 50}

	tests := []struct {
		name   string
		dx, dy float64
		want   Intent
	}{
		{"leftward swipe is next", -80, 5, Next{}},
		{"rightward swipe is previous", 80, -5, Previous{}},
		{"downward swipe closes", 10, 70, Close{}},
		{"exact threshold counts", -50, 0, Next{}},
		{"short swipe ignored", 30, 10, nil},
		{"upward swipe ignored", 5, -90, nil},
		{"diagonal down with wide travel ignored", 60, 70, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.Classify(tt.dx, tt.dy)
			if tt.want == nil {
				if ok {
					t.Fatalf("Classify(%v,%v)=%T, want none", tt.dx, tt.dy, got)
				}
				return
			}
			if !ok || got != tt.want {
				t.Fatalf("Classify(%v,%v)=%T,%v want %T", tt.dx, tt.dy, got, ok, tt.want)
			}
		})
	}
}

func TestClassifyHonoursTunedThreshold(t *testing.T) {
	if _, ok := (GestureConfig{Threshold: 100}).Classify(-80, 0); ok {
		t.Fatalf("80 units should not pass a 100 unit threshold")
	}
	if in, ok := (GestureConfig{}).Classify(-60, 0); !ok || in != (Next{}) {
		t.Fatalf("zero threshold should fall back to the default")
	}
}
