package craft

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ConserveLee/craftbot/internal/calibration"
	"github.com/ConserveLee/craftbot/internal/match"
)

func TestItemCrafter_RollsUntilMatch(t *testing.T) {
	weak := tooltip(`{ Prefix Modifier "Hale" (Tier: 5) }`, "+30 to maximum Life")
	strong := tooltip(`{ Prefix Modifier "Prime" (Tier: 1) }`, "+90 to maximum Life")
	capture := &scriptedCapture{texts: []string{weak, weak, weak, strong}}
	input := &recordingInput{}

	q, err := match.NewQuery([]string{"maximum life"}, match.ModeAll)
	require.NoError(t, err)
	out := (&ItemCrafter{Query: q}).Run(context.Background(), newRuntime(capture, input, &fakeSwitch{}))

	assert.Equal(t, StateFinished, out.State)
	assert.Equal(t, 3, out.Actions)
	assert.Equal(t, []string{"move 50,60", "right", "move 300,400", "left"}, input.log[:4])
	for _, pos := range capture.at {
		assert.Equal(t, calibration.Position{X: 300, Y: 400}, pos)
	}
}

func TestItemCrafter_AnyMode(t *testing.T) {
	text := tooltip(`{ Suffix Modifier "of the Volcano" (Tier: 2) }`, "+40% to Fire Resistance")
	q, err := match.NewQuery([]string{"maximum life", "fire resist[2+]"}, match.ModeAny)
	require.NoError(t, err)

	out := (&ItemCrafter{Query: q}).Run(context.Background(),
		newRuntime(&scriptedCapture{texts: []string{text}}, &recordingInput{}, &fakeSwitch{}))

	assert.Equal(t, StateFinished, out.State)
	assert.Zero(t, out.Actions)
}

func TestItemCrafter_Killswitch(t *testing.T) {
	ks := &fakeSwitch{}
	input := &recordingInput{onRightClick: func(n int) {
		if n == 1 {
			ks.on.Store(true)
		}
	}}
	q, err := match.NewQuery([]string{"maximum life"}, match.ModeAll)
	require.NoError(t, err)

	out := (&ItemCrafter{Query: q}).Run(context.Background(),
		newRuntime(&scriptedCapture{texts: []string{noMatch}}, input, ks))

	assert.ErrorIs(t, out.Err, ErrKillswitch)
	assert.Equal(t, 1, out.Actions)
	assert.Len(t, input.log, 4)
}

func TestItemCrafter_MissingMethod(t *testing.T) {
	rt := newRuntime(&scriptedCapture{texts: []string{noMatch}}, &recordingInput{}, &fakeSwitch{})
	positions := calibrated()
	delete(positions, "targets/craft-method")
	rt.Positions = positions

	out := (&ItemCrafter{}).Run(context.Background(), rt)
	assert.ErrorIs(t, out.Err, ErrMissingCalibration)
}

func TestItemCrafter_NoData(t *testing.T) {
	out := (&ItemCrafter{}).Run(context.Background(),
		newRuntime(&scriptedCapture{texts: []string{"garbage without delimiters"}}, &recordingInput{}, &fakeSwitch{}))
	assert.ErrorIs(t, out.Err, ErrNoItemData)
}

func clusterText(mods ...string) string {
	return strings.Join([]string{
		"Item Class: Jewels\nRarity: Magic\nLarge Cluster Jewel",
		"Item Level: 84",
		"Adds 8 Passive Skills (enchant)\nAdded Small Passive Skills grant: 12% increased Fire Damage (enchant)",
		strings.Join(mods, "\n"),
		"Place into an allocated Large Jewel Socket on the Passive Skill Tree.",
	}, "\n--------\n")
}

func TestClusterCrafter(t *testing.T) {
	miss := clusterText("1 Added Passive Skill is Burning Bright", "1 Added Passive Skill is Cremator")
	hit := clusterText("1 Added Passive Skill is Burning Bright", "1 Added Passive Skill is Prismatic Heart")
	capture := &scriptedCapture{texts: []string{miss, miss, hit}}
	input := &recordingInput{}

	patterns, err := match.CompileAll([]string{"Burning Bright", "Prismatic Heart"})
	require.NoError(t, err)

	var attempts []int
	c := &ClusterCrafter{Patterns: patterns, OnAttempt: func(n int) { attempts = append(attempts, n) }}
	out := c.Run(context.Background(), newRuntime(capture, input, &fakeSwitch{}))

	require.Equal(t, StateFinished, out.State, out.String())
	assert.Equal(t, 2, out.Actions)
	assert.Equal(t, []int{1, 2}, attempts)
	assert.Equal(t, []string{"move 500,600", "left", "move 500,600", "left"}, input.log)
	require.NotNil(t, out.Cluster)
	assert.Equal(t, 84, out.Cluster.ItemLevel)
	assert.Equal(t, calibration.Position{X: 500, Y: 520}, capture.at[0], "jewel sits above the button")
}

func TestClusterCrafter_RetriesCaptureFiveTimes(t *testing.T) {
	capture := &scriptedCapture{}
	out := (&ClusterCrafter{}).Run(context.Background(), newRuntime(capture, &recordingInput{}, &fakeSwitch{}))

	assert.ErrorIs(t, out.Err, ErrNoItemData)
	assert.Equal(t, 6, capture.calls)
}

func mapText(quantity string, mods ...string) string {
	return strings.Join([]string{
		"Item Class: Maps\nRarity: Rare\nDread Wastes\nCemetery Map",
		"Map Tier: 16\nItem Quantity: " + quantity + " (augmented)\nItem Rarity: +35% (augmented)",
		"Item Level: 83",
		strings.Join(mods, "\n"),
		"Travel to this Map by using it in a personal Map Device.",
		"Note: ~price 1 chaos",
	}, "\n--------\n")
}

func TestMapCrafter(t *testing.T) {
	capture := &scriptedCapture{texts: []string{
		mapText("+60%", "Area contains many Totems", "Monsters have 25% increased Attack Speed"),
		mapText("+90%", "Area contains many Totems"),
		mapText("+90%", "Area contains many Totems", "Monsters have 25% increased Attack Speed"),
	}}
	input := &recordingInput{}

	rule, err := match.NewMapRule([]string{"Totems", "Attack Speed"}, 2, map[string]int{"Item Quantity": 80})
	require.NoError(t, err)
	out := (&MapCrafter{Rule: rule}).Run(context.Background(), newRuntime(capture, input, &fakeSwitch{}))

	require.Equal(t, StateFinished, out.State, out.String())
	assert.Equal(t, 2, out.Actions)
	assert.Equal(t, []string{"move 70,80", "right", "move 310,410", "left"}, input.log[:4])
}

func TestMapCrafter_UnparseableAborts(t *testing.T) {
	capture := &scriptedCapture{texts: []string{"Cemetery Map"}}
	out := (&MapCrafter{}).Run(context.Background(), newRuntime(capture, &recordingInput{}, &fakeSwitch{}))

	assert.ErrorIs(t, out.Err, ErrNoItemData)
	assert.Equal(t, 4, capture.calls)
}

func TestMapCrafter_MissingChaos(t *testing.T) {
	rt := newRuntime(&scriptedCapture{}, &recordingInput{}, &fakeSwitch{})
	positions := calibrated()
	delete(positions, "currency/chaos")
	rt.Positions = positions

	out := (&MapCrafter{}).Run(context.Background(), rt)
	assert.ErrorIs(t, out.Err, ErrMissingCalibration)
}
