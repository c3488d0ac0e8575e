// debug_match replays saved tooltips through the parsers and matchers
// without touching the game.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ConserveLee/craftbot/internal/item"
	"github.com/ConserveLee/craftbot/internal/match"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type options struct {
	kind     string
	patterns []string
	matchAny bool
	count    int
	quant    int
}

func newCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "debug_match <tooltip.txt>...",
		Short: "Parse saved tooltips and show what the crafters would decide",
		Example: `  debug_match -p "maximum life[2+]" tooltips/1.txt
  debug_match --kind cluster -p "Burning Bright" tooltips/*.txt`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				raw, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "=== %s ===\n", path)
				if err := report(cmd.OutOrStdout(), string(raw), opts); err != nil {
					return err
				}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.kind, "kind", "item", "tooltip kind: item, cluster or map")
	f.StringArrayVarP(&opts.patterns, "pattern", "p", nil, "pattern, repeatable")
	f.BoolVar(&opts.matchAny, "any", false, "item: any pattern is enough")
	f.IntVar(&opts.count, "count", 0, "map: required hits (default: number of patterns)")
	f.IntVar(&opts.quant, "quant", 0, "map: minimum item quantity")
	return cmd
}

func report(w io.Writer, text string, opts options) error {
	switch opts.kind {
	case "item":
		mods := item.Mods(text)
		fmt.Fprintf(w, "Mods: %d lines\n", len(mods))
		for _, p := range item.Pairs(mods) {
			tier, ok := item.TierNumber(p.Tier)
			if !ok {
				tier = -1
			}
			fmt.Fprintf(w, "  [T%d] %s\n", tier, p.Text)
		}
		if len(opts.patterns) == 0 {
			return nil
		}
		mode := match.ModeAll
		if opts.matchAny {
			mode = match.ModeAny
		}
		q, err := match.NewQuery(opts.patterns, mode)
		if err != nil {
			return err
		}
		pairs := item.Pairs(mods)
		fmt.Fprintf(w, "Hits: %d of %d (%s) -> done=%v\n", q.Count(pairs), len(q.Specs), q.Mode, q.Done(pairs))

	case "cluster":
		c, ok := item.ParseCluster(text)
		if !ok {
			fmt.Fprintln(w, "Not a cluster jewel")
			return nil
		}
		fmt.Fprintln(w, c)
		if len(opts.patterns) == 0 {
			return nil
		}
		res, err := match.CompileAll(opts.patterns)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Hits: %d of %d -> done=%v\n", match.CountMatches(c.Mods, res), len(res), match.AllPatterns(c.Mods, res))

	case "map":
		parsed, ok := item.ParseMap(text)
		if !ok {
			fmt.Fprintln(w, "Not a map tooltip")
			return nil
		}
		fmt.Fprintf(w, "Mods: %v\nImplicits: %v\n", parsed.Mods, match.ParseImplicits(parsed.Implicits))
		count := opts.count
		if count == 0 {
			count = len(opts.patterns)
		}
		rule, err := match.NewMapRule(opts.patterns, count, map[string]int{"Item Quantity": opts.quant})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Hits: %d of %d wanted -> done=%v\n", match.CountMatches(parsed.Mods, rule.Patterns), count, rule.Done(parsed.Mods, parsed.Implicits))

	default:
		return fmt.Errorf("unknown kind %q", opts.kind)
	}
	return nil
}
