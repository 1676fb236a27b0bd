package geom

import (
	"math/rand"
	"testing"
)

func TestBorderClamp(t *testing.T) {
	b := NewBorder(100, 100)
	tests := []struct {
		pos    Vector2
		radius float64
		want   Vector2
	}{
		{New(-5, 50), 5, New(5, 50)},
		{New(105, 50), 5, New(95, 50)},
		{New(50, -5), 5, New(50, 5)},
		{New(50, 50), 5, New(50, 50)},
	}
	for _, tt := range tests {
		if got := b.Clamp(tt.pos, tt.radius); !vectorEqual(got, tt.want) {
			t.Errorf("Clamp(%v, %f) = %v, want %v", tt.pos, tt.radius, got, tt.want)
		}
	}
}

func TestBorderContains(t *testing.T) {
	b := NewBorder(100, 100)
	if !b.Contains(New(50, 50), 10) {
		t.Error("center disc should be contained")
	}
	if b.Contains(New(5, 50), 10) {
		t.Error("disc crossing the left edge should not be contained")
	}
}

func TestBorderSample(t *testing.T) {
	b := NewBorder(100, 100)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		p := b.Sample(rng)
		if p.X < 0 || p.X > 100 || p.Y < 0 || p.Y > 100 {
			t.Fatalf("Sample() produced out-of-bounds point %v", p)
		}
	}
}

func TestBorderSampleInset(t *testing.T) {
	b := NewBorder(100, 100)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		p := b.SampleInset(rng, 10)
		if p.X < 10 || p.X > 90 || p.Y < 10 || p.Y > 90 {
			t.Fatalf("SampleInset() produced point inside margin: %v", p)
		}
	}
}
