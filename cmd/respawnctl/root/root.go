package root

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	staticcatalog "respawn/internal/adapter/catalog/static"
	"respawn/internal/domain/player"
)

const Version = "0.1.0"

type options struct {
	catalogFile        string
	multiCycleCooldown bool
}

// NewRootCmd builds the command tree. Commands write to cmd.OutOrStdout.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "respawnctl",
		Short:         "Offline tools for the respawn daily progression rules",
		Long:          "respawnctl runs the daily transition locally, prints the level curve and validates objective catalogs.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	cmd.PersistentFlags().StringVar(&opts.catalogFile, "catalog", "", "objective catalog YAML file (default: built-in catalog)")
	cmd.PersistentFlags().BoolVar(&opts.multiCycleCooldown, "multi-cycle-cooldown", false, "honour objective cooldowns longer than one day")

	cmd.AddCommand(
		newSimulateCmd(opts),
		newLevelsCmd(opts),
		newCatalogCmd(opts),
	)
	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, Bad.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func (o *options) catalog() (player.Catalog, error) {
	if o.catalogFile == "" {
		return player.DefaultCatalog(), nil
	}
	abs, err := filepath.Abs(o.catalogFile)
	if err != nil {
		return player.Catalog{}, err
	}
	raw, err := os.ReadFile(abs)
	if err != nil {
		return player.Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return staticcatalog.Parse(raw)
}

func (o *options) rules() (player.Rules, error) {
	c, err := o.catalog()
	if err != nil {
		return player.Rules{}, err
	}
	rules := player.DefaultRules().WithCatalog(c)
	rules.MultiCycleCooldown = o.multiCycleCooldown
	if err := rules.Validate(); err != nil {
		return player.Rules{}, err
	}
	return rules, nil
}
