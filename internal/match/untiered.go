package match

import (
	"fmt"
	"regexp"
	"strconv"
)

// CountMatches counts every (mod, pattern) hit. Patterns are case-sensitive.
func CountMatches(mods []string, patterns []*regexp.Regexp) int {
	matched := 0
	for _, mod := range mods {
		for _, re := range patterns {
			if re.MatchString(mod) {
				matched++
			}
		}
	}
	return matched
}

// AllPatterns is the cluster jewel rule: the hit count equals the pattern count
func AllPatterns(mods []string, patterns []*regexp.Regexp) bool {
	return CountMatches(mods, patterns) == len(patterns)
}

// MapImplicits are the map implicit lines a map craft can require
var MapImplicits = []string{
	"Item Quantity",
	"Item Rarity",
	"Monster Pack Size",
	"More Maps",
	"More Scarabs",
	"More Currency",
}

var implicitRes = func() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(MapImplicits))
	for _, name := range MapImplicits {
		out[name] = regexp.MustCompile(regexp.QuoteMeta(name) + `: \+(\d+)%`)
	}
	return out
}()

// ParseImplicits reads "<name>: +N%" values from implicit lines
func ParseImplicits(lines []string) map[string]int {
	found := map[string]int{}
	for _, name := range MapImplicits {
		re := implicitRes[name]
		for _, l := range lines {
			if m := re.FindStringSubmatch(l); m != nil {
				n, _ := strconv.Atoi(m[1])
				found[name] = n
			}
		}
	}
	return found
}

// Implicits checks that every positive expectation is met or exceeded
func Implicits(lines []string, expected map[string]int) bool {
	found := ParseImplicits(lines)
	for name, want := range expected {
		if want <= 0 {
			continue
		}
		if found[name] < want {
			return false
		}
	}
	return true
}

// MapRule is the map craft predicate: a mod hit count and implicit floors
type MapRule struct {
	Patterns  []*regexp.Regexp
	Count     int
	Implicits map[string]int
}

// NewMapRule compiles the patterns and validates the implicit names
func NewMapRule(patterns []string, count int, implicits map[string]int) (MapRule, error) {
	res, err := CompileAll(patterns)
	if err != nil {
		return MapRule{}, err
	}
	for name := range implicits {
		if _, ok := implicitRes[name]; !ok {
			return MapRule{}, fmt.Errorf("unknown map implicit %q", name)
		}
	}
	return MapRule{Patterns: res, Count: count, Implicits: implicits}, nil
}

// Done reports whether the map is finished
func (r MapRule) Done(mods, implicits []string) bool {
	return CountMatches(mods, r.Patterns) == r.Count && Implicits(implicits, r.Implicits)
}
