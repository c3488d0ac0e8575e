package craft

import (
	"context"
	"regexp"

	"github.com/ConserveLee/craftbot/internal/calibration"
	"github.com/ConserveLee/craftbot/internal/constants"
	"github.com/ConserveLee/craftbot/internal/item"
	"github.com/ConserveLee/craftbot/internal/match"
)

// ItemCrafter applies one currency until the tiered pattern list is satisfied
type ItemCrafter struct {
	Query match.Query
}

// Run repeats until the query is done, the item cannot be read, or the run is
// stopped.
func (c *ItemCrafter) Run(ctx context.Context, rt Runtime) Outcome {
	rt = rt.WithDefaults()
	var out Outcome

	target, err := rt.lookup(calibration.SectionTargets, calibration.KeyCraftItem)
	if err != nil {
		return out.abort(err)
	}
	method, err := rt.lookup(calibration.SectionTargets, calibration.KeyCraftMethod)
	if err != nil {
		return out.abort(err)
	}

	rt.Log.Info("Item craft started: %d patterns, mode %s.", len(c.Query.Specs), c.Query.Mode)
	for {
		if err := rt.halted(ctx); err != nil {
			rt.Log.Info("Item craft stopped: %v", err)
			return out.abort(err)
		}

		mods := item.Mods(rt.captureText(ctx, target, rt.CaptureRetries))
		if len(mods) == 0 {
			return out.abort(rt.noData("craft item"))
		}
		rt.Log.Debug("mods: %v", mods)

		if c.Query.Done(item.Pairs(mods)) {
			out.State = StateFinished
			rt.Log.Info("Item matched after %d actions.", out.Actions)
			return out
		}

		rt.applyCurrency(method, target)
		out.Actions++
		rt.wait(ctx)
	}
}

// ClusterCrafter presses the calibrated cluster craft button until every
// pattern hits. The jewel sits a fixed distance above the button.
type ClusterCrafter struct {
	Patterns  []*regexp.Regexp
	OnAttempt func(n int) // optional, called after each button press
}

// Run crafts until the jewel matches. The finished jewel is in Outcome.Cluster.
func (c *ClusterCrafter) Run(ctx context.Context, rt Runtime) Outcome {
	rt = rt.WithDefaults()
	var out Outcome

	button, err := rt.lookup(calibration.SectionCluster, calibration.KeyClusterButton)
	if err != nil {
		return out.abort(err)
	}
	jewel := calibration.Position{X: button.X, Y: button.Y - constants.ClusterItemOffsetY}

	rt.Log.Info("Cluster craft started: %d patterns.", len(c.Patterns))
	for {
		if err := rt.halted(ctx); err != nil {
			rt.Log.Info("Cluster craft stopped: %v", err)
			return out.abort(err)
		}

		cluster, ok := item.ParseCluster(rt.captureText(ctx, jewel, constants.ClusterCaptureRetries))
		if !ok {
			return out.abort(rt.noData("cluster jewel"))
		}
		rt.Log.Debug("cluster: %s", cluster)

		if match.AllPatterns(cluster.Mods, c.Patterns) {
			out.State = StateFinished
			out.Cluster = cluster
			rt.Log.Info("Cluster matched after %d attempts: %s", out.Actions, cluster)
			return out
		}

		rt.Input.MoveTo(button.X, button.Y)
		rt.Input.LeftClick()
		out.Actions++
		if c.OnAttempt != nil {
			c.OnAttempt(out.Actions)
		}
		rt.wait(ctx)
	}
}

// MapCrafter rerolls a map with chaos orbs until the mod count and the
// implicit floors are met
type MapCrafter struct {
	Rule match.MapRule
}

// MapCurrency is the currency a map is rerolled with
const MapCurrency = "chaos"

// Run crafts the calibrated map. A capture that does not parse as a map is
// retried like an empty one and then aborts the run.
func (c *MapCrafter) Run(ctx context.Context, rt Runtime) Outcome {
	rt = rt.WithDefaults()
	var out Outcome

	method, err := rt.lookup(calibration.SectionCurrency, MapCurrency)
	if err != nil {
		return out.abort(err)
	}
	target, err := rt.lookup(calibration.SectionTargets, calibration.KeyMapItem)
	if err != nil {
		return out.abort(err)
	}

	rt.Log.Info("Map craft started: %d of %d patterns wanted.", c.Rule.Count, len(c.Rule.Patterns))
	for {
		if err := rt.halted(ctx); err != nil {
			rt.Log.Info("Map craft stopped: %v", err)
			return out.abort(err)
		}

		parsed, ok := c.capture(ctx, rt, target)
		if !ok || len(parsed.Mods) == 0 {
			return out.abort(rt.noData("map"))
		}
		rt.Log.Debug("map mods: %v implicits: %v", parsed.Mods, parsed.Implicits)

		if c.Rule.Done(parsed.Mods, parsed.Implicits) {
			out.State = StateFinished
			rt.Log.Info("Map matched after %d actions.", out.Actions)
			return out
		}

		rt.applyCurrency(method, target)
		out.Actions++
		rt.wait(ctx)
	}
}

// capture reads the map tooltip, counting unparseable text as empty
func (c *MapCrafter) capture(ctx context.Context, rt Runtime, target calibration.Position) (item.Parsed, bool) {
	for attempt := 0; attempt <= rt.CaptureRetries; attempt++ {
		text := rt.captureText(ctx, target, 0)
		if parsed, ok := item.ParseMap(text); ok {
			return parsed, true
		}
		if ctx.Err() != nil {
			break
		}
	}
	return item.Parsed{}, false
}
