// Package rle reads and writes patterns in run-length encoded notation.
//
// A pattern is an optional header line carrying the bounding box and the rule
// ("x=3, y=1, rule=B3/S23"), followed by runs of dead (b) and live (o) cells,
// row ends ($) and a terminator (!). Each tag may carry a repeat count.
//
// The body is relative to the top-left corner of the bounding box. When that
// corner is not the origin, Serialize adds a "#CXRLE Pos=x,y" comment line so
// Parse can restore absolute coordinates.
package rle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pthm-cable/lifesoup/life"
)

var (
	tokenRegex    = regexp.MustCompile(`(\d*)([bo$!])`)
	ruleRegex     = regexp.MustCompile(`(?i)\brule\s*=\s*B\s*(\d*)[^sS\n]*S\s*(\d*)`)
	positionRegex = regexp.MustCompile(`(?i)Pos\s*=\s*(-?\d+)\s*,\s*(-?\d+)`)
)

// Parse decodes a pattern. A missing rule header yields life.Life. Parsing is
// best effort: unknown characters are skipped and decoding stops at the first
// '!' or at the end of input. Lines are tokenized separately, so a count
// never continues onto the next line.
func Parse(text string) (life.Configuration, life.Rule) {
	rule := life.Life
	var origin life.Cell
	var body []string

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			if m := positionRegex.FindStringSubmatch(trimmed); m != nil {
				origin.X, _ = strconv.Atoi(m[1])
				origin.Y, _ = strconv.Atoi(m[2])
			}
			continue
		}
		if r, ok := headerRule(trimmed); ok {
			rule = r
			continue
		}
		if isHeader(trimmed) {
			continue
		}
		body = append(body, trimmed)
		if strings.Contains(trimmed, "!") {
			break
		}
	}

	c := make(life.Configuration)
	cursor := origin
	for _, line := range body {
		if !decodeLine(c, line, origin, &cursor) {
			break
		}
	}
	return c, rule
}

// decodeLine adds the live cells of one body line to c, moving cursor along.
// It returns false once the terminator is reached.
func decodeLine(c life.Configuration, line string, origin life.Cell, cursor *life.Cell) bool {
	for _, tok := range tokenRegex.FindAllStringSubmatch(line, -1) {
		if tok[2] == "!" {
			return false
		}
		count := 1
		if tok[1] != "" {
			n, err := strconv.Atoi(tok[1])
			if err != nil {
				return false
			}
			count = n
		}
		switch tok[2] {
		case "$":
			*cursor = life.Cell{X: origin.X, Y: cursor.Y + count}
		case "o":
			for i := range count {
				c.Add(life.Cell{X: cursor.X + i, Y: cursor.Y})
			}
			cursor.X += count
		case "b":
			cursor.X += count
		}
	}
	return true
}

// headerRule returns the rule carried by a "rule = B.../S..." header line.
// The line need not start with the "x = " size fields.
func headerRule(line string) (life.Rule, bool) {
	m := ruleRegex.FindStringSubmatch(line)
	if m == nil {
		return life.Rule{}, false
	}
	return life.Rule{Birth: life.DigitSet(m[1]), Survival: life.DigitSet(m[2])}, true
}

// HasRule reports whether text carries a header line with a rule.
func HasRule(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		if _, ok := headerRule(trimmed); ok {
			return true
		}
		if strings.Contains(trimmed, "!") {
			return false
		}
	}
	return false
}

// isHeader reports whether line is an "x = ..." header line.
func isHeader(line string) bool {
	if !strings.HasPrefix(line, "x") && !strings.HasPrefix(line, "X") {
		return false
	}
	rest := strings.TrimSpace(line[1:])
	return strings.HasPrefix(rest, "=")
}

// Serialize encodes c without a header. An empty configuration encodes as "".
func Serialize(c life.Configuration) string {
	return encode(c, nil)
}

// SerializeRule encodes c with a header carrying its size and rule. An empty
// configuration encodes as "" regardless of the rule.
func SerializeRule(c life.Configuration, rule life.Rule) string {
	return encode(c, &rule)
}

func encode(c life.Configuration, rule *life.Rule) string {
	lo, hi, ok := c.Bounds()
	if !ok {
		return ""
	}

	var b strings.Builder
	if lo != (life.Cell{}) {
		fmt.Fprintf(&b, "#CXRLE Pos=%d,%d\n", lo.X, lo.Y)
	}
	if rule != nil {
		fmt.Fprintf(&b, "x=%d, y=%d, rule=%s\n", hi.X-lo.X+1, hi.Y-lo.Y+1, rule.String())
	}

	cells := c.Cells()
	row, next := lo.Y, lo.X
	for i := 0; i < len(cells); {
		start := cells[i]
		n := 1
		for i+n < len(cells) && cells[i+n].Y == start.Y && cells[i+n].X == start.X+n {
			n++
		}
		i += n

		if start.Y > row {
			writeRun(&b, start.Y-row, '$')
			row, next = start.Y, lo.X
		}
		if gap := start.X - next; gap > 0 {
			writeRun(&b, gap, 'b')
		}
		writeRun(&b, n, 'o')
		next = start.X + n
	}
	b.WriteByte('!')
	return b.String()
}

// writeRun writes a tag with its count, leaving out a count of 1.
func writeRun(b *strings.Builder, count int, tag byte) {
	if count > 1 {
		b.WriteString(strconv.Itoa(count))
	}
	b.WriteByte(tag)
}
