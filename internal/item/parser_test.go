package item

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ringTooltip = `Item Class: Rings
Rarity: Magic
Hale Ruby Ring of the Kiln
--------
Requirements:
Level: 30
--------
Item Level: 84
--------
+26% to Fire Resistance (implicit)
--------
{ Prefix Modifier "Hale" (Tier: 3) }
+25(20-29) to maximum Life
{ Suffix Modifier "of the Kiln" (Tier: 2) — Elemental, Fire, Resistance }
+40(36-41)% to Fire Resistance
(Resistances are capped at 75%)
--------
Note: ~price 1 chaos`

const mapTooltip = `Item Class: Maps
Rarity: Rare
Dread Rift
Strand Map
--------
Map Tier: 16
Item Quantity: +80% (augmented)
Item Rarity: +40% (augmented)
Monster Pack Size: +25% (augmented)
--------
Item Level: 83
--------
{ Prefix Modifier "Ceremonial" (Tier: 1) }
Area contains many Totems
{ Suffix Modifier "of Frenzy" (Tier: 1) }
Monsters have 25% increased Attack Speed
--------
The sands shift beneath your feet.
--------
Travel to this Map by using it in a personal Map Device.`

func TestMods_Generic(t *testing.T) {
	mods := Mods(ringTooltip)

	assert.Equal(t, []string{
		`{ Prefix Modifier "Hale" (Tier: 3) }`,
		"+25(20-29) to maximum Life",
		`{ Suffix Modifier "of the Kiln" (Tier: 2) — Elemental, Fire, Resistance }`,
		"+40(36-41)% to Fire Resistance",
	}, mods, "reminder lines starting with ( are dropped")
}

func TestMods_WindowsLineEndings(t *testing.T) {
	mods := Mods(strings.ReplaceAll(ringTooltip, "\n", "\r\n"))
	require.Len(t, mods, 4)
	assert.Equal(t, "+25(20-29) to maximum Life", mods[1])
}

func TestMods_TooFewSegments(t *testing.T) {
	for _, text := range []string{"", "Rarity: Magic\nNo delimiters here", "-------"} {
		assert.Empty(t, Mods(text), "text %q", text)
	}
}

func TestMods_EmptyBlock(t *testing.T) {
	assert.Empty(t, Mods("header\n--------\n\n--------\nfooter"))
}

func TestPairs(t *testing.T) {
	pairs := Pairs(Mods(ringTooltip))
	require.Len(t, pairs, 2)
	assert.Equal(t, "+25(20-29) to maximum Life", pairs[0].Text)
	assert.Contains(t, pairs[1].Tier, "Tier: 2")

	assert.Len(t, Pairs([]string{"a", "b", "orphan"}), 1)
	assert.Empty(t, Pairs(nil))
}

func TestTierNumber(t *testing.T) {
	n, ok := TierNumber(`{ Prefix Modifier "Hale" (Tier: 3) }`)
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	n, ok = TierNumber("Tier: 12")
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = TierNumber("{ Unique Modifier }")
	assert.False(t, ok)
}

func TestParseMap(t *testing.T) {
	p, ok := ParseMap(mapTooltip)
	require.True(t, ok)

	assert.Equal(t, []string{
		`{ Prefix Modifier "Ceremonial" (Tier: 1) }`,
		"Area contains many Totems",
		`{ Suffix Modifier "of Frenzy" (Tier: 1) }`,
		"Monsters have 25% increased Attack Speed",
	}, p.Mods)
	assert.Equal(t, []string{
		"Map Tier: 16",
		"Item Quantity: +80% (augmented)",
		"Item Rarity: +40% (augmented)",
		"Monster Pack Size: +25% (augmented)",
	}, p.Implicits)

	_, ok = ParseMap("a\n--------\nb")
	assert.False(t, ok)
}
