package blueprint

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// MapSettings is the saved map crafting form
type MapSettings struct {
	Quant        int      `json:"quant" validate:"gte=0"`
	Rarity       int      `json:"rarity" validate:"gte=0"`
	PackSize     int      `json:"packsize" validate:"gte=0"`
	MoreMaps     int      `json:"moreMaps" validate:"gte=0"`
	MoreScarabs  int      `json:"moreScarabs" validate:"gte=0"`
	MoreCurrency int      `json:"moreCurrency" validate:"gte=0"`
	RegexCount   int      `json:"regexCount,omitempty" validate:"gte=0"`
	Regexes      []string `json:"regexes" validate:"dive,regex"`
}

// Implicits returns the thresholds keyed by implicit name
func (s MapSettings) Implicits() map[string]int {
	return map[string]int{
		"Item Quantity":     s.Quant,
		"Item Rarity":       s.Rarity,
		"Monster Pack Size": s.PackSize,
		"More Maps":         s.MoreMaps,
		"More Scarabs":      s.MoreScarabs,
		"More Currency":     s.MoreCurrency,
	}
}

// Count is the required hit count, all regexes when unset
func (s MapSettings) Count() int {
	if s.RegexCount > 0 {
		return s.RegexCount
	}
	return len(s.Regexes)
}

// LoadMapSettings reads a map settings file. Missing fields are zero.
func LoadMapSettings(path string) (*MapSettings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map settings: %w", err)
	}
	var s MapSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalid, path, err)
	}
	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, describe(err))
	}
	return &s, nil
}

// SaveMapSettings writes s as indented JSON
func SaveMapSettings(path string, s *MapSettings) error {
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode map settings: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write map settings: %w", err)
	}
	return nil
}

// LoadPatterns reads one pattern per line. Blank lines and lines starting
// with '#' are skipped.
func LoadPatterns(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open patterns: %w", err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read patterns: %w", err)
	}
	return out, nil
}
