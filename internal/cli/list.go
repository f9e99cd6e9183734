package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/events-board/internal/event"
	"github.com/pfrederiksen/events-board/internal/logger"
	"github.com/pfrederiksen/events-board/internal/scraper"
)

func newListCmd(a *app) *cobra.Command {
	var (
		flagFormat string
		flagRemote string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the events listing",
		Long: `Prints the listing the board would render. With --remote, reads the
listing from a running board's /events page instead of the local source.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseFormat(strings.ToLower(flagFormat))
			if err != nil {
				return err
			}

			var listing *event.Listing
			if flagRemote != "" {
				a.log.Debug("Fetching remote listing", logger.Fields{"url": flagRemote})
				listing, err = scraper.New(flagRemote).FetchListing(cmd.Context())
				if err != nil {
					return fmt.Errorf("fetching remote listing: %w", err)
				}
			} else {
				listing, err = localListing(cmd, a)
				if err != nil {
					return err
				}
			}

			if err := WriteOutput(cmd.OutOrStdout(), listing, format); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text, json or yaml")
	cmd.Flags().StringVar(&flagRemote, "remote", "", "Base URL of a running board (e.g. http://localhost:8080)")

	return cmd
}

func localListing(cmd *cobra.Command, a *app) (*event.Listing, error) {
	src, closeSource, err := openSource(a.cfg)
	if err != nil {
		return nil, err
	}
	defer closeSource() // nolint:errcheck

	a.log.Debug("Listing events", logger.Fields{"source": a.cfg.Source})
	return event.BuildListing(cmd.Context(), src, time.Now, a.cfg.ShowTime)
}
