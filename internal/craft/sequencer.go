package craft

import (
	"context"

	"github.com/ConserveLee/craftbot/internal/calibration"
	"github.com/ConserveLee/craftbot/internal/item"
)

// Sequencer runs a step chain against one item. Each step checks its own
// single condition, so this mode differs from ItemCrafter's pattern list.
type Sequencer struct {
	Steps []Step
}

// NewSequencer wraps steps
func NewSequencer(steps []Step) *Sequencer {
	return &Sequencer{Steps: steps}
}

// Run executes the chain from step 0 until a transition leaves the list, the
// killswitch fires, ctx is cancelled or the item cannot be read.
func (s *Sequencer) Run(ctx context.Context, rt Runtime) Outcome {
	rt = rt.WithDefaults()
	var out Outcome

	target, err := rt.lookup(calibration.SectionTargets, calibration.KeyCraftItem)
	if err != nil {
		return out.abort(err)
	}
	methods := make([]calibration.Position, len(s.Steps))
	for i, st := range s.Steps {
		if methods[i], err = rt.lookup(calibration.SectionCurrency, st.Method); err != nil {
			return out.abort(err)
		}
	}

	rt.Log.Info("Crafting sequence started (%d steps).", len(s.Steps))

	i := 0
	for i >= 0 && i < len(s.Steps) {
		if err := rt.halted(ctx); err != nil {
			return s.stopped(rt, out, err)
		}

		st := s.Steps[i]
		trace := StepTrace{Index: i}

		mods := item.Mods(rt.captureText(ctx, target, rt.CaptureRetries))
		if len(mods) == 0 {
			return out.abort(rt.noData("craft item"))
		}

		var next Transition
		if st.AutoSuccess {
			rt.applyCurrency(methods[i], target)
			out.Actions++
			trace.Attempts = 1
			trace.Satisfied = true
			rt.wait(ctx)
			next = st.OnSuccess
			rt.Log.Info("Step %d: applied %s.", i, st.Method)
		} else {
			satisfied := st.Satisfied(mods)
			for !satisfied && trace.Attempts < st.MaxAttempts {
				if err := rt.halted(ctx); err != nil {
					out.Steps = append(out.Steps, trace)
					return s.stopped(rt, out, err)
				}
				rt.applyCurrency(methods[i], target)
				out.Actions++
				trace.Attempts++
				rt.wait(ctx)
				if err := rt.halted(ctx); err != nil {
					out.Steps = append(out.Steps, trace)
					return s.stopped(rt, out, err)
				}

				mods = item.Mods(rt.captureText(ctx, target, rt.CaptureRetries))
				if len(mods) == 0 {
					out.Steps = append(out.Steps, trace)
					return out.abort(rt.noData("craft item"))
				}
				rt.Log.Debug("step %d attempt %d: %v", i, trace.Attempts, mods)
				satisfied = st.Satisfied(mods)
			}

			trace.Satisfied = satisfied
			if satisfied {
				next = st.OnSuccess
				rt.Log.Info("Step %d satisfied after %d attempts.", i, trace.Attempts)
			} else {
				next = st.OnFailure
				rt.Log.Info("Step %d failed after %d attempts, going to %s.", i, trace.Attempts, st.OnFailure)
			}
		}
		out.Steps = append(out.Steps, trace)

		n, ok := next.Next()
		if !ok {
			break
		}
		i = n
	}

	out.State = StateFinished
	rt.Log.Info("Crafting sequence finished after %d actions.", out.Actions)
	return out
}

func (s *Sequencer) stopped(rt Runtime, out Outcome, err error) Outcome {
	rt.Log.Info("Crafting sequence stopped: %v", err)
	return out.abort(err)
}
