// Package match decides when a crafted item is good enough.
//
// Two policies live here. The tiered policy reads (tier, text) pairs and
// counts pattern hits that also satisfy a tier constraint. The untiered
// policy counts raw pattern hits over flat modifier lines and is used for
// cluster jewels and maps.
package match

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ConserveLee/craftbot/internal/item"
)

// Mode selects how spec hits combine into a verdict
type Mode int

const (
	ModeAll Mode = iota // hit count must equal the number of specs
	ModeAny             // a single hit is enough
)

func (m Mode) String() string {
	if m == ModeAny {
		return "any"
	}
	return "all"
}

// Tier constrains the tier number of a matching modifier. Lower is better.
type Tier struct {
	Threshold int
	AtLeast   bool // "[3+]": tier 3 or better
}

// Accepts reports whether tier n satisfies the constraint
func (t Tier) Accepts(n int) bool {
	if t.AtLeast {
		return n <= t.Threshold
	}
	return n == t.Threshold
}

func (t Tier) String() string {
	if t.AtLeast {
		return fmt.Sprintf("[%d+]", t.Threshold)
	}
	return fmt.Sprintf("[%d]", t.Threshold)
}

// Spec is one user pattern with its tier constraint
type Spec struct {
	Raw     string
	Pattern *regexp.Regexp
	Tier    Tier
}

// DefaultTier applies to patterns without a bracket suffix
var DefaultTier = Tier{Threshold: 1}

var tierSuffixRe = regexp.MustCompile(`^(.*)\[(\d+)(\+?)\]$`)

var cache, _ = lru.New[string, *regexp.Regexp](256)

// Compile returns a cached compiled pattern
func Compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := cache.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	cache.Add(pattern, re)
	return re, nil
}

// CompileFold compiles a case-insensitive pattern
func CompileFold(pattern string) (*regexp.Regexp, error) {
	return Compile("(?i)" + pattern)
}

// ParseSpec splits "fire resist[2+]" into a pattern and a tier constraint
func ParseSpec(raw string) (Spec, error) {
	pattern, tier := raw, DefaultTier
	if m := tierSuffixRe.FindStringSubmatch(raw); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return Spec{}, fmt.Errorf("invalid tier in %q: %w", raw, err)
		}
		pattern = m[1]
		tier = Tier{Threshold: n, AtLeast: m[3] == "+"}
	}

	re, err := Compile(pattern)
	if err != nil {
		return Spec{}, err
	}
	return Spec{Raw: raw, Pattern: re, Tier: tier}, nil
}

// CompileAll compiles untiered patterns
func CompileAll(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := Compile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

// Query is the tiered predicate built once per crafting run
type Query struct {
	Specs []Spec
	Mode  Mode
}

// NewQuery parses every raw pattern
func NewQuery(raw []string, mode Mode) (Query, error) {
	q := Query{Mode: mode}
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		s, err := ParseSpec(r)
		if err != nil {
			return Query{}, err
		}
		q.Specs = append(q.Specs, s)
	}
	return q, nil
}

// Count returns the number of (pair, spec) hits. Patterns run against the
// lower-cased modifier text; a hit only counts when the pair's tier line
// carries a tier number the spec accepts.
func (q Query) Count(pairs []item.ModLine) int {
	matched := 0
	for _, p := range pairs {
		text := strings.ToLower(p.Text)
		for _, s := range q.Specs {
			if !s.Pattern.MatchString(text) {
				continue
			}
			n, ok := item.TierNumber(p.Tier)
			if ok && s.Tier.Accepts(n) {
				matched++
			}
		}
	}
	return matched
}

// Done is the verdict. In ModeAll it compares the hit count with the number
// of specs, so one spec hitting twice can stand in for another spec that
// never hit.
func (q Query) Done(pairs []item.ModLine) bool {
	return q.verdict(q.Count(pairs))
}

func (q Query) verdict(matched int) bool {
	return (q.Mode == ModeAny && matched > 0) || matched == len(q.Specs)
}
