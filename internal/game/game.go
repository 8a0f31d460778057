package game

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"take5/internal/config"
	"take5/internal/model"
)

// Seat is a player joining the table and the input source answering for them.
type Seat struct {
	Name    string
	Chooser Chooser
}

type Options struct {
	ID    string
	Rules config.Rules
	// Deck defaults to a shuffled deck of Rules.DeckSize cards.
	Deck     Deck
	Seats    []Seat
	Events   Broadcaster
	Recorder Recorder
	Logger   *slog.Logger
}

// Game runs the fixed number of rounds of one table. It is driven from a
// single goroutine and is not safe for concurrent use.
type Game struct {
	ID       string
	rules    config.Rules
	board    *Board
	resolver *TurnResolver
	players  []*model.Player
	choosers []Chooser
	round    int
	status   string
	events   Broadcaster
	recorder Recorder
	logger   *slog.Logger
}

// New sets the table up: seeds every row from the deck, then deals each hand.
func New(opts Options) (*Game, error) {
	if err := opts.Rules.Validate(len(opts.Seats)); err != nil {
		return nil, err
	}
	for i, s := range opts.Seats {
		if s.Chooser == nil {
			return nil, fmt.Errorf("seat %d (%s) has no chooser", i+1, s.Name)
		}
	}

	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}
	deck := opts.Deck
	if deck == nil {
		deck = NewDeck(opts.Rules.DeckSize, nil)
	}
	events := opts.Events
	if events == nil {
		events = nopBroadcaster{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("game_id", id))

	board, err := NewBoard(deck, opts.Rules.Rows, opts.Rules.CardsPerRow)
	if err != nil {
		return nil, fmt.Errorf("setup board: %w", err)
	}

	g := &Game{
		ID:       id,
		rules:    opts.Rules,
		board:    board,
		resolver: NewTurnResolver(board, events, logger),
		players:  make([]*model.Player, 0, len(opts.Seats)),
		choosers: make([]Chooser, 0, len(opts.Seats)),
		status:   model.StatusSetup,
		events:   events,
		recorder: opts.Recorder,
		logger:   logger,
	}
	for i, s := range opts.Seats {
		g.players = append(g.players, model.NewPlayer(fmt.Sprintf("p%d", i+1), s.Name))
		g.choosers = append(g.choosers, s.Chooser)
	}
	if _, err := DealCards(deck, g.players, opts.Rules.Turns); err != nil {
		return nil, fmt.Errorf("setup hands: %w", err)
	}

	g.status = model.StatusPlaying
	g.logger.Info("game created",
		slog.Int("player_count", len(g.players)),
		slog.Int("rows", opts.Rules.Rows),
		slog.Int("turns", opts.Rules.Turns),
	)
	g.publishState()
	return g, nil
}

func (g *Game) Status() string {
	return g.status
}

// Round is the number of rounds started so far.
func (g *Game) Round() int {
	return g.round
}

func (g *Game) Rows() []model.Row {
	return g.board.Rows()
}

// Players returns copies of the players in seating order.
func (g *Game) Players() []model.Player {
	out := make([]model.Player, 0, len(g.players))
	for _, p := range g.players {
		cp := *p
		cp.Hand = append([]model.Card(nil), p.Hand...)
		out = append(out, cp)
	}
	return out
}

func (g *Game) Snapshot() model.GameSnapshot {
	summaries := make([]model.PlayerSummary, 0, len(g.players))
	for _, p := range g.players {
		summaries = append(summaries, model.PlayerSummary{
			ID: p.ID, Name: p.Name, Score: p.Score, HandSize: len(p.Hand),
		})
	}
	return model.GameSnapshot{
		ID:      g.ID,
		Status:  g.status,
		Round:   g.round,
		Rows:    g.board.Rows(),
		Players: summaries,
	}
}

// PlayRound collects one card from every player, then resolves them all.
// No card touches the board until every player has chosen.
func (g *Game) PlayRound(ctx context.Context) ([]model.Outcome, error) {
	if g.status == model.StatusFinished {
		return nil, model.ErrGameFinished
	}
	round := g.round + 1
	g.events.Publish(model.Message{
		Type:    model.EventRoundStarted,
		Payload: model.RoundStartedPayload{Round: round, Rows: g.board.Rows()},
	})

	chosen := make([]int, len(g.players))
	seen := make(map[int]string, len(g.players))
	for i, p := range g.players {
		value, err := g.chooseCard(ctx, p, g.choosers[i])
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", round, err)
		}
		if other, ok := seen[value]; ok {
			return nil, fmt.Errorf("round %d, %s and %s both hold %d: %w", round, other, p.Name, value, model.ErrDuplicateCard)
		}
		seen[value] = p.Name
		chosen[i] = value
	}

	// Every card is chosen; from here on the round counts.
	g.round = round
	plays := make([]Play, 0, len(g.players))
	for i, p := range g.players {
		card, err := p.Play(chosen[i])
		if err != nil {
			return nil, err
		}
		plays = append(plays, Play{Player: p, Card: card, Chooser: g.choosers[i]})
	}

	outcomes, err := g.resolver.Resolve(ctx, g.round, plays)
	if err != nil {
		return outcomes, err
	}

	if g.round >= g.rules.Turns {
		if err := g.finish(ctx); err != nil {
			return outcomes, err
		}
		return outcomes, nil
	}
	g.publishState()
	return outcomes, nil
}

// Play runs every remaining round and returns the final standings.
func (g *Game) Play(ctx context.Context) ([]model.Standing, error) {
	for g.status != model.StatusFinished {
		if _, err := g.PlayRound(ctx); err != nil {
			return nil, err
		}
	}
	return g.Standings(), nil
}

// Standings orders players by penalty, lowest first. Equal totals keep seating
// order and share a place.
func (g *Game) Standings() []model.Standing {
	ordered := make([]*model.Player, len(g.players))
	copy(ordered, g.players)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Score < ordered[j].Score })

	standings := make([]model.Standing, 0, len(ordered))
	for i, p := range ordered {
		place := i + 1
		if i > 0 && p.Score == ordered[i-1].Score {
			place = standings[i-1].Place
		}
		standings = append(standings, model.Standing{Place: place, PlayerID: p.ID, Name: p.Name, Score: p.Score})
	}
	return standings
}

func (g *Game) chooseCard(ctx context.Context, p *model.Player, c Chooser) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		hand := append([]model.Card(nil), p.Hand...)
		value, err := c.ChooseCard(ctx, hand)
		if err != nil {
			return 0, fmt.Errorf("%s choosing card: %w", p.Name, err)
		}
		if p.HasCard(value) {
			return value, nil
		}
		g.logger.Warn("card not in hand",
			slog.String("player", p.Name),
			slog.Int("card", value),
			slog.String("error", model.ErrCardNotInHand.Error()),
		)
	}
}

func (g *Game) finish(ctx context.Context) error {
	g.status = model.StatusFinished
	standings := g.Standings()

	g.publishState()
	g.events.Publish(model.Message{
		Type:    model.EventGameFinished,
		Payload: model.GameFinishedPayload{GameID: g.ID, Standings: standings},
	})
	g.logger.Info("game finished",
		slog.String("winner", standings[0].Name),
		slog.Int("winner_score", standings[0].Score),
	)

	if g.recorder == nil {
		return nil
	}
	if err := g.recorder.RecordGameResult(ctx, g.ID, standings); err != nil {
		g.logger.Error("failed to record game result", slog.String("error", err.Error()))
		return fmt.Errorf("record result: %w", err)
	}
	return nil
}

func (g *Game) publishState() {
	g.events.Publish(model.Message{Type: model.EventState, Payload: g.Snapshot()})
}
