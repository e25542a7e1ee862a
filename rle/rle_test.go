package rle

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/pthm-cable/lifesoup/life"
)

func cells(cs ...life.Cell) life.Configuration {
	return life.NewConfiguration(cs...)
}

func TestParseWithHeader(t *testing.T) {
	c, rule := Parse("x=3, y=1, rule=B3/S23\n3o!")
	want := cells(life.Cell{X: 0, Y: 0}, life.Cell{X: 1, Y: 0}, life.Cell{X: 2, Y: 0})
	if !c.Equal(want) {
		t.Errorf("cells = %v, want %v", c.Cells(), want.Cells())
	}
	if rule != life.Life {
		t.Errorf("rule = %v, want %v", rule, life.Life)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want life.Configuration
		rule life.Rule
	}{
		{
			name: "no header uses default rule",
			in:   "bo$2bo$3o!",
			want: cells(life.Cell{X: 1, Y: 0}, life.Cell{X: 2, Y: 1}, life.Cell{X: 0, Y: 2}, life.Cell{X: 1, Y: 2}, life.Cell{X: 2, Y: 2}),
			rule: life.Life,
		},
		{
			name: "terminator stops parsing",
			in:   "o!3o",
			want: cells(life.Cell{X: 0, Y: 0}),
			rule: life.Life,
		},
		{
			name: "missing terminator",
			in:   "2o$2o",
			want: cells(life.Cell{X: 0, Y: 0}, life.Cell{X: 1, Y: 0}, life.Cell{X: 0, Y: 1}, life.Cell{X: 1, Y: 1}),
			rule: life.Life,
		},
		{
			name: "row skip count",
			in:   "o3$o!",
			want: cells(life.Cell{X: 0, Y: 0}, life.Cell{X: 0, Y: 3}),
			rule: life.Life,
		},
		{
			name: "highlife header with spaces",
			in:   "x = 1, y = 1, rule = B36/S23\no!",
			want: cells(life.Cell{X: 0, Y: 0}),
			rule: life.HighLife,
		},
		{
			name: "empty birth set",
			in:   "x=1, y=1, rule=B/S012\no!",
			want: cells(life.Cell{X: 0, Y: 0}),
			rule: life.Rule{Survival: life.NewCountSet(0, 1, 2)},
		},
		{
			name: "comments and line breaks",
			in:   "#N blinker\n#C a comment with o and b\nx=3, y=1\n2o\no!",
			want: cells(life.Cell{X: 0, Y: 0}, life.Cell{X: 1, Y: 0}, life.Cell{X: 2, Y: 0}),
			rule: life.Life,
		},
		{
			name: "position comment",
			in:   "#CXRLE Pos=-4,7\nx=2, y=1, rule=B3/S23\nbo!",
			want: cells(life.Cell{X: -3, Y: 7}),
			rule: life.Life,
		},
		{
			name: "rule line without size fields",
			in:   "rule = B36/S23\n3o!",
			want: cells(life.Cell{X: 0, Y: 0}, life.Cell{X: 1, Y: 0}, life.Cell{X: 2, Y: 0}),
			rule: life.HighLife,
		},
		{
			name: "spaced rule separator",
			in:   "x = 1, y = 1, rule = B36 / S23\no!",
			want: cells(life.Cell{X: 0, Y: 0}),
			rule: life.HighLife,
		},
		{
			name: "count does not carry across lines",
			in:   "size 2\n3o!",
			want: cells(life.Cell{X: 0, Y: 0}, life.Cell{X: 1, Y: 0}, life.Cell{X: 2, Y: 0}),
			rule: life.Life,
		},
		{
			name: "run split over lines",
			in:   "2o\n$2o!",
			want: cells(life.Cell{X: 0, Y: 0}, life.Cell{X: 1, Y: 0}, life.Cell{X: 0, Y: 1}, life.Cell{X: 1, Y: 1}),
			rule: life.Life,
		},
		{
			name: "empty input",
			in:   "",
			want: cells(),
			rule: life.Life,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rule := Parse(tt.in)
			if !c.Equal(tt.want) {
				t.Errorf("cells = %v, want %v", c.Cells(), tt.want.Cells())
			}
			if rule != tt.rule {
				t.Errorf("rule = %v, want %v", rule, tt.rule)
			}
		})
	}
}

func TestSerializeEmpty(t *testing.T) {
	if got := Serialize(cells()); got != "" {
		t.Errorf("Serialize(empty) = %q, want empty", got)
	}
	if got := SerializeRule(cells(), life.HighLife); got != "" {
		t.Errorf("SerializeRule(empty) = %q, want empty", got)
	}
}

func TestSerializeHeader(t *testing.T) {
	glider := cells(life.Cell{X: 1, Y: 0}, life.Cell{X: 2, Y: 1}, life.Cell{X: 0, Y: 2}, life.Cell{X: 1, Y: 2}, life.Cell{X: 2, Y: 2})
	got := SerializeRule(glider, life.Life)
	if !strings.HasPrefix(got, "x=3, y=3, rule=B3/S23\n") {
		t.Errorf("header missing or wrong: %q", got)
	}
	if !strings.HasSuffix(got, "!") {
		t.Errorf("body not terminated: %q", got)
	}
	if body := Serialize(glider); body != "bo$2bo$3o!" {
		t.Errorf("body = %q, want %q", body, "bo$2bo$3o!")
	}

	got = SerializeRule(cells(life.Cell{X: 0, Y: 0}), life.Rule{Survival: life.NewCountSet(2)})
	if !strings.Contains(got, "rule=B/S2") {
		t.Errorf("empty birth set should keep the B marker: %q", got)
	}
}

func TestSerializeGaps(t *testing.T) {
	tests := []struct {
		c    life.Configuration
		want string
	}{
		{cells(life.Cell{X: 0, Y: 0}, life.Cell{X: 2, Y: 0}), "obo!"},
		{cells(life.Cell{X: 0, Y: 0}, life.Cell{X: 5, Y: 0}), "o4bo!"},
		{cells(life.Cell{X: 0, Y: 0}, life.Cell{X: 0, Y: 3}), "o3$o!"},
		{cells(life.Cell{X: 0, Y: 0}, life.Cell{X: 1, Y: 0}, life.Cell{X: 2, Y: 1}), "2o$2bo!"},
	}
	for _, tt := range tests {
		if got := Serialize(tt.c); got != tt.want {
			t.Errorf("Serialize(%v) = %q, want %q", tt.c.Cells(), got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	rules := []life.Rule{
		life.Life,
		life.HighLife,
		{},
		{Birth: life.NewCountSet(0, 8)},
		{Survival: life.NewCountSet(1, 2, 3, 4, 5, 6, 7, 8)},
	}
	shapes := []life.Configuration{
		cells(life.Cell{X: 0, Y: 0}),
		cells(life.Cell{X: 1, Y: 0}, life.Cell{X: 2, Y: 1}, life.Cell{X: 0, Y: 2}, life.Cell{X: 1, Y: 2}, life.Cell{X: 2, Y: 2}),
		cells(life.Cell{X: -5, Y: -5}, life.Cell{X: 10, Y: 3}, life.Cell{X: 11, Y: 3}, life.Cell{X: -5, Y: 3}),
		cells(life.Cell{X: 100, Y: 200}, life.Cell{X: 103, Y: 200}, life.Cell{X: 100, Y: 204}),
	}

	rng := rand.New(rand.NewPCG(11, 13))
	for range 50 {
		shapes = append(shapes, life.SeedConfiguration(rng, 10, 0.1, 0.7, 3).Translate(life.Cell{X: rng.IntN(41) - 20, Y: rng.IntN(41) - 20}))
	}

	for i, c := range shapes {
		for _, r := range rules {
			if c.Len() == 0 {
				continue
			}
			text := SerializeRule(c, r)
			gotCells, gotRule := Parse(text)
			if !gotCells.Equal(c) {
				t.Fatalf("shape %d rule %v: round trip lost cells\ntext: %q\ngot:  %v\nwant: %v", i, r, text, gotCells.Cells(), c.Cells())
			}
			if gotRule != r {
				t.Fatalf("shape %d: round trip rule = %v, want %v (text %q)", i, gotRule, r, text)
			}
		}
		if c.Len() > 0 {
			if back, _ := Parse(Serialize(c)); !back.Equal(c) {
				t.Fatalf("shape %d: headerless round trip lost cells", i)
			}
		}
	}
}

func TestHasRule(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"x = 3, y = 1, rule = B36/S23\n3o!", true},
		{"x = 3, y = 1\n3o!", false},
		{"#C rule=B3/S23\n3o!", false},
		{"3o!", false},
		{"rule = B36/S23\n3o!", true},
		{"3o!\nrule = B36/S23", false},
	}
	for _, tt := range tests {
		if got := HasRule(tt.text); got != tt.want {
			t.Errorf("HasRule(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
