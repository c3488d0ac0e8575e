package craft

import (
	"fmt"
	"regexp"

	"github.com/ConserveLee/craftbot/internal/constants"
	"github.com/ConserveLee/craftbot/internal/match"
)

// Transition is where a step goes next: another step, or the end of the run
type Transition struct {
	index int
	next  bool
}

// Continue moves to step i. An index outside the step list ends the run.
func Continue(i int) Transition {
	return Transition{index: i, next: true}
}

// Terminate ends the run
func Terminate() Transition {
	return Transition{}
}

// FromIndex maps the stored "-1 means stop" convention to a Transition
func FromIndex(i int) Transition {
	if i < 0 {
		return Terminate()
	}
	return Continue(i)
}

// Next returns the target step, or false when the run ends here
func (t Transition) Next() (int, bool) {
	return t.index, t.next
}

func (t Transition) String() string {
	if !t.next {
		return "terminate"
	}
	return fmt.Sprintf("step %d", t.index)
}

// Step is one node of a crafting sequence
type Step struct {
	Condition   *regexp.Regexp
	Method      string // currency name under the currency calibration section
	OnFailure   Transition
	OnSuccess   Transition
	AutoSuccess bool
	MaxAttempts int
}

// NewStep compiles the condition case-insensitively. A non-positive
// maxAttempts falls back to the default.
func NewStep(condition, method string, onFailure, onSuccess Transition, autoSuccess bool, maxAttempts int) (Step, error) {
	re, err := match.CompileFold(condition)
	if err != nil {
		return Step{}, err
	}
	if maxAttempts <= 0 {
		maxAttempts = constants.DefaultMaxAttempts
	}
	return Step{
		Condition:   re,
		Method:      method,
		OnFailure:   onFailure,
		OnSuccess:   onSuccess,
		AutoSuccess: autoSuccess,
		MaxAttempts: maxAttempts,
	}, nil
}

// Satisfied reports whether the condition matches any modifier line
func (s Step) Satisfied(mods []string) bool {
	for _, m := range mods {
		if s.Condition.MatchString(m) {
			return true
		}
	}
	return false
}
