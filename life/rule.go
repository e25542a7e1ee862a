package life

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxNeighbors is the largest neighbor count a cell can have.
const MaxNeighbors = 8

// CountSet is a set of neighbor counts in [0, MaxNeighbors].
type CountSet uint16

// NewCountSet builds a set from counts. Values outside [0, 8] are ignored.
func NewCountSet(counts ...int) CountSet {
	var s CountSet
	for _, n := range counts {
		s = s.With(n)
	}
	return s
}

// With returns the set with n added.
func (s CountSet) With(n int) CountSet {
	if n < 0 || n > MaxNeighbors {
		return s
	}
	return s | 1<<uint(n)
}

// Has reports whether n is in the set.
func (s CountSet) Has(n int) bool {
	if n < 0 || n > MaxNeighbors {
		return false
	}
	return s&(1<<uint(n)) != 0
}

// Counts returns the members in ascending order.
func (s CountSet) Counts() []int {
	var out []int
	for n := 0; n <= MaxNeighbors; n++ {
		if s.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// Len returns the number of members.
func (s CountSet) Len() int {
	n := 0
	for i := 0; i <= MaxNeighbors; i++ {
		if s.Has(i) {
			n++
		}
	}
	return n
}

// String renders the members as ascending digits, e.g. "23".
func (s CountSet) String() string {
	var b strings.Builder
	for _, n := range s.Counts() {
		b.WriteByte(byte('0' + n))
	}
	return b.String()
}

// Rule decides birth of dead cells and survival of live cells by neighbor count.
type Rule struct {
	Birth    CountSet
	Survival CountSet
}

// Standard rules.
var (
	Life     = Rule{Birth: NewCountSet(3), Survival: NewCountSet(2, 3)}
	HighLife = Rule{Birth: NewCountSet(3, 6), Survival: NewCountSet(2, 3)}
)

// String renders the rule in B/S notation, e.g. "B3/S23".
func (r Rule) String() string {
	return "B" + r.Birth.String() + "/S" + r.Survival.String()
}

var ruleRegex = regexp.MustCompile(`^[Bb]\s*(\d*)\s*/?\s*[Ss]\s*(\d*)$`)

// ParseRule parses B/S notation ("B3/S23" or "B3S23").
func ParseRule(s string) (Rule, error) {
	m := ruleRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Rule{}, fmt.Errorf("invalid rule %q: want B<digits>/S<digits>", s)
	}
	return Rule{Birth: DigitSet(m[1]), Survival: DigitSet(m[2])}, nil
}

// DigitSet collects every digit character of s into a set. Digits above 8
// and non-digit characters are ignored.
func DigitSet(s string) CountSet {
	var set CountSet
	for _, r := range s {
		if r >= '0' && r <= '9' {
			set = set.With(int(r - '0'))
		}
	}
	return set
}
