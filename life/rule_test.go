package life

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func TestParseRule(t *testing.T) {
	tests := []struct {
		in      string
		want    Rule
		wantErr bool
	}{
		{"B3/S23", Life, false},
		{"B3S23", Life, false},
		{"b36/s23", HighLife, false},
		{" B3 / S23 ", Life, false},
		{"B/S23", Rule{Survival: NewCountSet(2, 3)}, false},
		{"B3/S", Rule{Birth: NewCountSet(3)}, false},
		{"B39/S2", Rule{Birth: NewCountSet(3), Survival: NewCountSet(2)}, false},
		{"23/3", Rule{}, true},
		{"", Rule{}, true},
	}
	for _, tt := range tests {
		got, err := ParseRule(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRule(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRule(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRuleString(t *testing.T) {
	if got := Life.String(); got != "B3/S23" {
		t.Errorf("Life.String() = %q", got)
	}
	if got := (Rule{}).String(); got != "B/S" {
		t.Errorf("empty rule String() = %q", got)
	}
	for _, r := range []Rule{Life, HighLife, {}, {Birth: NewCountSet(0, 8)}} {
		back, err := ParseRule(r.String())
		if err != nil || back != r {
			t.Errorf("ParseRule(%q) = %v, %v; want %v", r.String(), back, err, r)
		}
	}
}

func TestCountSet(t *testing.T) {
	s := NewCountSet(8, 0, 3, 3, 9, -1)
	if !slices.Equal(s.Counts(), []int{0, 3, 8}) {
		t.Errorf("Counts() = %v, want [0 3 8]", s.Counts())
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if s.Has(9) || s.Has(-1) {
		t.Error("out-of-range counts must not be members")
	}
}

func TestSeedRule(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	born := Range{Min: 1, Max: 8}
	surv := Range{Min: 2, Max: 4}
	for range 200 {
		r := SeedRule(rng, born, Range{Min: 1, Max: 3}, surv, Range{Min: 2, Max: 10})
		if n := r.Birth.Len(); n < 1 || n > 3 {
			t.Fatalf("birth set size %d outside [1,3]", n)
		}
		// Cardinality above the span is clamped to the span.
		if n := r.Survival.Len(); n < 2 || n > 3 {
			t.Fatalf("survival set size %d outside [2,3]", n)
		}
		for _, n := range r.Birth.Counts() {
			if n < born.Min || n > born.Max {
				t.Fatalf("birth count %d outside %v", n, born)
			}
		}
		for _, n := range r.Survival.Counts() {
			if n < surv.Min || n > surv.Max {
				t.Fatalf("survival count %d outside %v", n, surv)
			}
		}
	}
}

func TestSeedConfiguration(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	const size = 6
	for range 100 {
		c := SeedConfiguration(rng, size, 0.2, 0.5, 3)
		if c.Len() > size*size/2 {
			t.Fatalf("seeded %d cells, want at most %d", c.Len(), size*size/2)
		}
		lo, hi, ok := c.Bounds()
		if !ok {
			continue
		}
		// All cells share one displaced window.
		if lo.X/size != hi.X/size || lo.Y/size != hi.Y/size {
			t.Fatalf("cells span windows: %v..%v", lo, hi)
		}
		if lo.X < 0 || lo.Y < 0 || hi.X >= 4*size || hi.Y >= 4*size {
			t.Fatalf("cells outside displacement range: %v..%v", lo, hi)
		}
	}
}

func TestSeedConfigurationReproducible(t *testing.T) {
	a := SeedConfiguration(rand.New(rand.NewPCG(3, 4)), 8, 0.3, 0.6, 2)
	b := SeedConfiguration(rand.New(rand.NewPCG(3, 4)), 8, 0.3, 0.6, 2)
	if !a.Equal(b) {
		t.Error("same seed produced different configurations")
	}
}
