// Package item turns copied tooltip text into modifier lines.
//
// Tooltips are blocks of lines separated by a row of eight dashes. Which
// block holds the modifiers depends on the item kind, so each kind has its
// own entry point. None of them fail: text that does not have the expected
// shape yields an empty result, which callers treat as "no data yet".
package item

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ConserveLee/craftbot/internal/constants"
)

// ModLine is one explicit modifier with the descriptor line above it
type ModLine struct {
	Tier string // e.g. `{ Prefix Modifier "Hale" (Tier: 3) }`
	Text string
}

// Parsed is the per-capture view of an item
type Parsed struct {
	Mods      []string
	Implicits []string
}

var tierRe = regexp.MustCompile(`Tier: (\d+)`)

// Normalize converts Windows line endings so splitting is platform independent
func Normalize(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// Segments splits tooltip text on the dash delimiter
func Segments(text string) []string {
	return strings.Split(Normalize(text), constants.TooltipDelimiter)
}

// Mods returns the modifier lines of a generic item: the second-to-last
// block, minus reminder lines starting with "(" and blank lines.
func Mods(text string) []string {
	segs := Segments(text)
	if len(segs) < 2 {
		return nil
	}
	return modLines(segs[len(segs)-2])
}

// Pairs zips modifier lines into (tier, text) pairs. A trailing line without
// a partner is dropped.
func Pairs(mods []string) []ModLine {
	pairs := make([]ModLine, 0, len(mods)/2)
	for i := 0; i+1 < len(mods); i += 2 {
		pairs = append(pairs, ModLine{Tier: mods[i], Text: mods[i+1]})
	}
	return pairs
}

// TierNumber extracts N from "Tier: N"
func TierNumber(tierLine string) (int, bool) {
	m := tierRe.FindStringSubmatch(tierLine)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseMap reads a map tooltip: modifiers sit in the third-to-last block and
// implicits (quantity, rarity, pack size...) in the second block.
func ParseMap(text string) (Parsed, bool) {
	segs := Segments(text)
	if len(segs) < 3 {
		return Parsed{}, false
	}
	return Parsed{
		Mods:      modLines(segs[len(segs)-3]),
		Implicits: lines(segs[1]),
	}, true
}

func modLines(block string) []string {
	var out []string
	for _, l := range lines(block) {
		if strings.HasPrefix(l, "(") {
			continue
		}
		out = append(out, l)
	}
	return out
}

func lines(block string) []string {
	var out []string
	for _, l := range strings.Split(strings.TrimSpace(block), "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}
