package geom

import (
	"errors"
	"math"
	"testing"
)

func TestVec2_Norm(t *testing.T) {
	tests := []struct {
		v        Vec2
		expected float64
	}{
		{Vec2{3, 4}, 5.0},
		{Vec2{1, 0}, 1.0},
		{Vec2{0, 0}, 0.0},
		{Vec2{-6, 8}, 10.0},
	}

	for _, tt := range tests {
		if got := tt.v.Norm(); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Norm(%v) = %v, want %v", tt.v, got, tt.expected)
		}
	}
}

func TestVec2_Arithmetic(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{4, 6}

	if sum := a.Add(b); sum != (Vec2{5, 8}) {
		t.Errorf("Add failed: got %v", sum)
	}
	if diff := b.Sub(a); diff != (Vec2{3, 4}) {
		t.Errorf("Sub failed: got %v", diff)
	}
	if scaled := a.Scale(-2); scaled != (Vec2{-2, -4}) {
		t.Errorf("Scale failed: got %v", scaled)
	}
	if dot := a.Dot(b); dot != 16 {
		t.Errorf("Dot failed: got %v", dot)
	}
	if a != (Vec2{1, 2}) {
		t.Errorf("receiver mutated: %v", a)
	}
}

func TestVec2_Cross(t *testing.T) {
	tests := []struct {
		a, b     Vec2
		expected float64
	}{
		{Vec2{1, 0}, Vec2{0, 1}, 1},
		{Vec2{0, 1}, Vec2{1, 0}, -1},
		{Vec2{2, 3}, Vec2{4, 6}, 0},
		{Vec2{-20, 20}, Vec2{7, 5}, -240},
	}

	for _, tt := range tests {
		if got := tt.a.Cross(tt.b); got != tt.expected {
			t.Errorf("Cross(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestVec2_Normalized(t *testing.T) {
	n, err := Vec2{3, 4}.Normalized()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(n.X-0.6) > 1e-12 || math.Abs(n.Y-0.8) > 1e-12 {
		t.Errorf("expected (0.6, 0.8), got %v", n)
	}
	if math.Abs(n.Norm()-1) > 1e-12 {
		t.Errorf("expected unit length, got %v", n.Norm())
	}
}

func TestVec2_NormalizedZero(t *testing.T) {
	n, err := Vec2{}.Normalized()
	if !errors.Is(err, ErrDegenerateVector) {
		t.Fatalf("expected ErrDegenerateVector, got %v", err)
	}
	if !n.IsFinite() {
		t.Errorf("degenerate result must not carry NaN, got %v", n)
	}
}

func TestVec2_IsFinite(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec2
		valid bool
	}{
		{"zero", Vec2{}, true},
		{"normal", Vec2{1, -2}, true},
		{"NaN x", Vec2{math.NaN(), 0}, false},
		{"+Inf y", Vec2{0, math.Inf(1)}, false},
		{"-Inf x", Vec2{math.Inf(-1), 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.valid {
				t.Errorf("IsFinite() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestVec2_Clamp(t *testing.T) {
	got := Vec2{150, -250}.Clamp(100)
	if got != (Vec2{100, -100}) {
		t.Errorf("expected (100, -100), got %v", got)
	}
	got = Vec2{12, -5}.Clamp(100)
	if got != (Vec2{12, -5}) {
		t.Errorf("expected unchanged vector, got %v", got)
	}
}
