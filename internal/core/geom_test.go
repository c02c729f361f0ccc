package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 5, 5)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{10, 10, true},  // Top-left corner
		{14, 14, true},  // Bottom-right inside
		{15, 15, false}, // Just outside
		{12, 12, true},  // Center
		{9, 12, false},  // Left of rect
		{12, 9, false},  // Above rect
	}

	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tt.x, tt.y, got, tt.expected)
		}
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 20, 30, 40)

	if r.Right() != 40 {
		t.Errorf("Right() = %d, expected 40", r.Right())
	}
	if r.Bottom() != 60 {
		t.Errorf("Bottom() = %d, expected 60", r.Bottom())
	}
	cx, cy := r.Center()
	if cx != 25 || cy != 40 {
		t.Errorf("Center() = (%d, %d), expected (25, 40)", cx, cy)
	}
}

func TestCenteredRect(t *testing.T) {
	tests := []struct {
		name           string
		outerW, outerH int
		w, h           int
		wantX, wantY   int
	}{
		{"fits", 80, 24, 21, 9, 29, 7},
		{"exact", 10, 10, 10, 10, 0, 0},
		{"too big", 10, 10, 14, 12, -2, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CenteredRect(tt.outerW, tt.outerH, tt.w, tt.h)
			if r.X != tt.wantX || r.Y != tt.wantY || r.W != tt.w || r.H != tt.h {
				t.Errorf("CenteredRect = %+v, want origin (%d,%d)", r, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tt := range tests {
		if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tt.val, tt.lo, tt.hi, got, tt.expected)
		}
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, expected float64
	}{
		{0, 10, 0, 0},
		{0, 10, 0.5, 5},
		{0, 10, 1, 10},
		{4, 0, 0.25, 3},
		{0, 10, 2, 10}, // Clamped
		{0, 10, -1, 0}, // Clamped
	}

	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); got != tt.expected {
			t.Errorf("Lerp(%v, %v, %v) = %v, expected %v", tt.a, tt.b, tt.t, got, tt.expected)
		}
	}
}
