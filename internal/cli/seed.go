package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/events-board/internal/event"
	"github.com/pfrederiksen/events-board/internal/logger"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the default events into the configured store",
		Long: `Writes the default catalogue (BugSmash, Hackathon, Kata Camp,
Rails User Group) into the json or sqlite store named by the source setting.
Events already present keep their IDs and creation time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, a)
		},
	}
}

func runSeed(cmd *cobra.Command, a *app) error {
	src, closeSource, err := openSource(a.cfg)
	if err != nil {
		return err
	}
	defer closeSource() // nolint:errcheck

	store, ok := src.(seedableSource)
	if !ok {
		return fmt.Errorf("source %q has a fixed catalogue and cannot be seeded", a.cfg.Source)
	}

	diff, err := store.Seed(cmd.Context(), event.DefaultNames)
	if err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}

	a.log.Info("Catalog seeded", logger.Fields{
		"source":  a.cfg.Source,
		"added":   len(diff.Added),
		"removed": len(diff.Removed),
	})
	writeSeedResult(cmd.OutOrStdout(), diff)
	return nil
}
