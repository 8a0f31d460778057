package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"take5/internal/config"
)

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show total penalties of every recorded game",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if cfg.Store == config.StoreNone {
				return errors.New("no results store configured")
			}

			store, err := openStore(cfg, opts.logger(cmd.ErrOrStderr()))
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return RenderStats(cmd.OutOrStdout(), stats)
		},
	}
}
