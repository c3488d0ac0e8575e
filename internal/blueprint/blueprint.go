// Package blueprint loads and saves crafting step chains.
//
// A blueprint is the authoring form of a sequence: besides the fields the
// sequencer needs, each record keeps the logic mode and checkbox states the
// editor showed. Files are JSON, or YAML when the extension says so.
package blueprint

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ConserveLee/craftbot/internal/constants"
	"github.com/ConserveLee/craftbot/internal/craft"
)

// ErrInvalid wraps every load and validation failure
var ErrInvalid = errors.New("invalid blueprint")

// Logic modes shown by the editor
const (
	LogicRegex = "regex"
	LogicAuto  = "auto"
)

// CurrentVersion is written by Save when the blueprint has no version
const CurrentVersion = "1"

// Blueprint is an ordered step chain
type Blueprint struct {
	Name    string       `json:"name,omitempty" yaml:"name,omitempty" validate:"max=64"`
	Version string       `json:"version,omitempty" yaml:"version,omitempty"`
	Steps   []StepRecord `json:"steps" yaml:"steps" validate:"required,min=1,dive"`
}

// StepRecord is one persisted step. Nil transitions take their defaults:
// on_failure stops the run, on_success moves to the next record.
type StepRecord struct {
	ConditionRegex string          `json:"condition_regex" yaml:"condition_regex" validate:"regex"`
	Currency       string          `json:"currency" yaml:"currency" validate:"required"`
	OnFailure      *int            `json:"on_failure,omitempty" yaml:"on_failure,omitempty"`
	OnSuccess      *int            `json:"on_success,omitempty" yaml:"on_success,omitempty"`
	AutoSuccess    bool            `json:"auto_success" yaml:"auto_success"`
	MaxAttempts    int             `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty" validate:"gte=0"`
	Logic          string          `json:"logic,omitempty" yaml:"logic,omitempty" validate:"omitempty,oneof=regex auto"`
	Checkboxes     map[string]bool `json:"checkboxes,omitempty" yaml:"checkboxes,omitempty"`
}

var validate = func() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("regex", validateRegex)
	return v
}()

func validateRegex(fl validator.FieldLevel) bool {
	_, err := regexp.Compile(fl.Field().String())
	return err == nil
}

// Validate checks the blueprint against its struct tags
func (b *Blueprint) Validate() error {
	if err := validate.Struct(b); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, describe(err))
	}
	return nil
}

// describe flattens validator errors into "steps[0].currency: required" form
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.TrimPrefix(e.Namespace(), "Blueprint.")
		msgs = append(msgs, fmt.Sprintf("%s: %s", strings.ToLower(field), e.Tag()))
	}
	return strings.Join(msgs, "; ")
}

// Chain projects the records onto sequencer steps
func (b *Blueprint) Chain() ([]craft.Step, error) {
	steps := make([]craft.Step, 0, len(b.Steps))
	for i, rec := range b.Steps {
		onFailure := craft.Terminate()
		if rec.OnFailure != nil {
			onFailure = craft.FromIndex(*rec.OnFailure)
		}
		onSuccess := craft.Continue(i + 1)
		if rec.OnSuccess != nil {
			onSuccess = craft.FromIndex(*rec.OnSuccess)
		}
		attempts := rec.MaxAttempts
		if attempts == 0 {
			attempts = constants.DefaultMaxAttempts
		}

		st, err := craft.NewStep(rec.ConditionRegex, rec.Currency, onFailure, onSuccess, rec.AutoSuccess, attempts)
		if err != nil {
			return nil, fmt.Errorf("%w: step %d: %v", ErrInvalid, i, err)
		}
		steps = append(steps, st)
	}
	return steps, nil
}

// Currencies lists the distinct currencies the blueprint uses, in order
func (b *Blueprint) Currencies() []string {
	seen := map[string]bool{}
	var out []string
	for _, rec := range b.Steps {
		if !seen[rec.Currency] {
			seen[rec.Currency] = true
			out = append(out, rec.Currency)
		}
	}
	return out
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads and validates a blueprint file
func Load(path string) (*Blueprint, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blueprint: %w", err)
	}

	var bp Blueprint
	if isYAML(path) {
		err = yaml.Unmarshal(raw, &bp)
	} else {
		err = json.Unmarshal(raw, &bp)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalid, path, err)
	}

	if err := bp.Validate(); err != nil {
		return nil, err
	}
	return &bp, nil
}

// Save validates bp and writes it to path
func Save(path string, bp *Blueprint) error {
	if err := bp.Validate(); err != nil {
		return err
	}
	if bp.Version == "" {
		bp.Version = CurrentVersion
	}

	var (
		raw []byte
		err error
	)
	if isYAML(path) {
		raw, err = yaml.Marshal(bp)
	} else {
		raw, err = json.MarshalIndent(bp, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode blueprint: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write blueprint: %w", err)
	}
	return nil
}

// Index returns a pointer for the optional transition fields
func Index(i int) *int {
	return &i
}
