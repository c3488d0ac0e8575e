// Package maps rerolls maps with chaos orbs.
package maps

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ConserveLee/craftbot/app"
	"github.com/ConserveLee/craftbot/internal/blueprint"
	"github.com/ConserveLee/craftbot/internal/craft"
	"github.com/ConserveLee/craftbot/internal/match"
)

// NewMapCommand creates the map command
func NewMapCommand(env func() *app.Env) *cobra.Command {
	var (
		patterns     []string
		settingsFile string
		saveFile     string
		form         blueprint.MapSettings
	)

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Chaos the map at targets/map-item until mods and implicits match",
		Example: `  craftbot map -p "Totems" -p "Attack Speed" --count 2 --quant 80
  craftbot map --settings mapSettings.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := form
			if settingsFile != "" {
				loaded, err := blueprint.LoadMapSettings(settingsFile)
				if err != nil {
					return err
				}
				settings = merge(*loaded, form, cmd.Flags().Changed)
			}
			settings.Regexes = append(settings.Regexes, app.CleanPatterns(patterns)...)
			if len(settings.Regexes) == 0 {
				return errors.New("at least one pattern is required")
			}

			e := env()
			if saveFile != "" {
				if err := blueprint.SaveMapSettings(saveFile, &settings); err != nil {
					return err
				}
				e.Printf("saved %s\n", saveFile)
			}

			rule, err := match.NewMapRule(settings.Regexes, settings.Count(), settings.Implicits())
			if err != nil {
				return err
			}
			_, err = e.Run(cmd.Context(), "map craft", &craft.MapCrafter{Rule: rule})
			return err
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&patterns, "pattern", "p", nil, "mod pattern, repeatable")
	f.IntVar(&form.RegexCount, "count", 0, "required pattern hits (default: number of patterns)")
	f.IntVar(&form.Quant, "quant", 0, "minimum item quantity")
	f.IntVar(&form.Rarity, "rarity", 0, "minimum item rarity")
	f.IntVar(&form.PackSize, "packsize", 0, "minimum monster pack size")
	f.IntVar(&form.MoreMaps, "more-maps", 0, "minimum more maps")
	f.IntVar(&form.MoreScarabs, "more-scarabs", 0, "minimum more scarabs")
	f.IntVar(&form.MoreCurrency, "more-currency", 0, "minimum more currency")
	f.StringVar(&settingsFile, "settings", "", "load thresholds and patterns from a settings file")
	f.StringVar(&saveFile, "save", "", "save the effective settings before crafting")
	return cmd
}

// merge overrides loaded thresholds with the flags given on the command line
func merge(loaded, flags blueprint.MapSettings, changed func(name string) bool) blueprint.MapSettings {
	overrides := []struct {
		flag     string
		dst, src *int
	}{
		{"count", &loaded.RegexCount, &flags.RegexCount},
		{"quant", &loaded.Quant, &flags.Quant},
		{"rarity", &loaded.Rarity, &flags.Rarity},
		{"packsize", &loaded.PackSize, &flags.PackSize},
		{"more-maps", &loaded.MoreMaps, &flags.MoreMaps},
		{"more-scarabs", &loaded.MoreScarabs, &flags.MoreScarabs},
		{"more-currency", &loaded.MoreCurrency, &flags.MoreCurrency},
	}
	for _, o := range overrides {
		if changed(o.flag) {
			*o.dst = *o.src
		}
	}
	return loaded
}
