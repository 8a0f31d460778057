package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"take5/internal/config"
	"take5/internal/game"
	"take5/internal/server"
)

type playOptions struct {
	players     []string
	rows        int
	cardsPerRow int
	turns       int
	deckSize    int
	seed        int64
	listen      string
}

func newPlayCmd(opts *options) *cobra.Command {
	po := &playOptions{}
	defaults := config.DefaultRules()

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a hot-seat game at this terminal",
		Example: `  take5 play -p Alice -p Bob -p Carol
  take5 play -p Alice -p Bob --turns 5 --listen :8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			po.apply(cmd, &cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runPlay(ctx, cmd, opts, po, cfg)
		},
	}

	cmd.Flags().StringSliceVarP(&po.players, "player", "p", []string{"Player 1", "Player 2"}, "Player names, in seating order")
	cmd.Flags().IntVar(&po.rows, "rows", defaults.Rows, "Rows on the table (env: TAKE5_ROWS)")
	cmd.Flags().IntVar(&po.cardsPerRow, "cards-per-row", defaults.CardsPerRow, "Cards a row holds before it overflows (env: TAKE5_CARDS_PER_ROW)")
	cmd.Flags().IntVar(&po.turns, "turns", defaults.Turns, "Rounds to play, also the hand size (env: TAKE5_TURNS)")
	cmd.Flags().IntVar(&po.deckSize, "deck-size", defaults.DeckSize, "Highest card in the deck (env: TAKE5_DECK_SIZE)")
	cmd.Flags().Int64Var(&po.seed, "seed", 0, "Shuffle seed; 0 shuffles randomly")
	cmd.Flags().StringVar(&po.listen, "listen", "", "Serve a read-only spectator feed on this address (env: TAKE5_LISTEN)")

	return cmd
}

func (po *playOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("rows") {
		cfg.Rules.Rows = po.rows
	}
	if flags.Changed("cards-per-row") {
		cfg.Rules.CardsPerRow = po.cardsPerRow
	}
	if flags.Changed("turns") {
		cfg.Rules.Turns = po.turns
	}
	if flags.Changed("deck-size") {
		cfg.Rules.DeckSize = po.deckSize
	}
	if flags.Changed("listen") {
		cfg.Listen = po.listen
	}
}

func runPlay(ctx context.Context, cmd *cobra.Command, opts *options, po *playOptions, cfg config.Config) error {
	out := cmd.OutOrStdout()
	logger := opts.logger(cmd.ErrOrStderr())

	if err := cfg.Rules.Validate(len(po.players)); err != nil {
		return err
	}

	store, err := openStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	var recorder game.Recorder
	var stats server.StatsSource
	if store != nil {
		defer store.Close()
		recorder = store
		stats = store
	}

	events := game.Broadcasters{NewDisplay(out)}
	if cfg.Listen != "" {
		hub := server.NewHub(logger)
		srv := server.NewServer(cfg.Listen, server.NewRouter(server.NewHandler(hub, stats, logger), cmd.ErrOrStderr()), logger)
		if err := srv.Start(); err != nil {
			return fmt.Errorf("start spectator server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("spectator server shutdown", slog.String("error", err.Error()))
			}
		}()
		events = append(events, hub)
	}

	var rng *rand.Rand
	if po.seed != 0 {
		rng = rand.New(rand.NewSource(po.seed))
	}

	in := bufio.NewScanner(cmd.InOrStdin())
	seats := make([]game.Seat, 0, len(po.players))
	for _, name := range po.players {
		seats = append(seats, game.Seat{Name: name, Chooser: NewTerminalChooser(name, in, out)})
	}

	g, err := game.New(game.Options{
		Rules:    cfg.Rules,
		Deck:     game.NewDeck(cfg.Rules.DeckSize, rng),
		Seats:    seats,
		Events:   events,
		Recorder: recorder,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	_, err = g.Play(ctx)
	return err
}

