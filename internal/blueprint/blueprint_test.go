package blueprint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ConserveLee/craftbot/internal/craft"
)

const altRegalJSON = `{
  "name": "alt-regal",
  "steps": [
    {"condition_regex": "quality: \\+20%", "currency": "alt", "on_failure": 0, "on_success": 1, "max_attempts": 5, "logic": "regex"},
    {"condition_regex": "", "currency": "regal", "auto_success": true, "on_success": 2, "logic": "auto", "checkboxes": {"regal": true}}
  ]
}`

const altRegalYAML = `name: alt-regal
steps:
  - condition_regex: 'quality: \+20%'
    currency: alt
    on_failure: 0
    max_attempts: 5
  - currency: regal
    auto_success: true
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_JSON(t *testing.T) {
	bp, err := Load(writeFile(t, "bp.json", altRegalJSON))
	require.NoError(t, err)

	assert.Equal(t, "alt-regal", bp.Name)
	require.Len(t, bp.Steps, 2)
	assert.Equal(t, "quality: \\+20%", bp.Steps[0].ConditionRegex)
	assert.Equal(t, map[string]bool{"regal": true}, bp.Steps[1].Checkboxes)
	assert.Equal(t, []string{"alt", "regal"}, bp.Currencies())

	steps, err := bp.Chain()
	require.NoError(t, err)
	assert.Equal(t, craft.Continue(0), steps[0].OnFailure)
	assert.Equal(t, craft.Continue(1), steps[0].OnSuccess)
	assert.Equal(t, 5, steps[0].MaxAttempts)
	assert.True(t, steps[1].AutoSuccess)
	assert.Equal(t, craft.Continue(2), steps[1].OnSuccess)
}

func TestLoad_YAMLDefaults(t *testing.T) {
	bp, err := Load(writeFile(t, "bp.yaml", altRegalYAML))
	require.NoError(t, err)

	steps, err := bp.Chain()
	require.NoError(t, err)
	require.Len(t, steps, 2)

	assert.Equal(t, craft.Continue(1), steps[0].OnSuccess, "next record")
	assert.Equal(t, craft.Terminate(), steps[1].OnFailure, "stop")
	assert.Equal(t, craft.Continue(2), steps[1].OnSuccess)
	assert.Equal(t, 10, steps[1].MaxAttempts)
	assert.True(t, steps[0].Satisfied([]string{"Quality: +20% (augmented)"}))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no steps", `{"steps": []}`, "steps: min"},
		{"missing currency", `{"steps": [{"condition_regex": "x"}]}`, "steps[0].currency: required"},
		{"bad regex", `{"steps": [{"condition_regex": "(", "currency": "alt"}]}`, "steps[0].conditionregex: regex"},
		{"bad logic", `{"steps": [{"currency": "alt", "logic": "fossil"}]}`, "steps[0].logic: oneof"},
		{"negative attempts", `{"steps": [{"currency": "alt", "max_attempts": -1}]}`, "steps[0].maxattempts: gte"},
		{"not json", `steps: [`, "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "bp.json", tt.content))
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSave_RoundTrip(t *testing.T) {
	bp := &Blueprint{
		Name: "scour-alt",
		Steps: []StepRecord{
			{Currency: "scouring", AutoSuccess: true, Logic: LogicAuto},
			{ConditionRegex: "of the Lightning", Currency: "alteration", OnFailure: Index(1), MaxAttempts: 50, Logic: LogicRegex},
		},
	}

	for _, name := range []string{"bp.json", "bp.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(path, bp))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, CurrentVersion, loaded.Version)
			assert.Equal(t, bp.Steps, loaded.Steps)
		})
	}
}

func TestSave_RejectsInvalid(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "bp.json"), &Blueprint{})
	assert.ErrorIs(t, err, ErrInvalid)
}
