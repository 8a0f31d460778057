package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"take5/internal/model"
)

// Play is one revealed card together with whoever revealed it.
type Play struct {
	Player  *model.Player
	Card    model.Card
	Chooser Chooser
}

// TurnResolver applies a round of revealed cards to the board, lowest card first.
type TurnResolver struct {
	board  *Board
	events Broadcaster
	logger *slog.Logger
}

func NewTurnResolver(board *Board, events Broadcaster, logger *slog.Logger) *TurnResolver {
	if events == nil {
		events = nopBroadcaster{}
	}
	return &TurnResolver{board: board, events: events, logger: logger}
}

// Order returns the plays sorted by card value. Submission order is irrelevant.
func Order(plays []Play) []Play {
	ordered := make([]Play, len(plays))
	copy(ordered, plays)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Card.Value < ordered[j].Card.Value })
	return ordered
}

// Resolve places every card in ascending order and credits each player the
// penalty they take. Later cards see the board left by earlier ones. There is
// no rollback: on error the outcomes resolved so far are returned.
func (t *TurnResolver) Resolve(ctx context.Context, round int, plays []Play) ([]model.Outcome, error) {
	seen := make(map[int]bool, len(plays))
	for _, p := range plays {
		if seen[p.Card.Value] {
			return nil, fmt.Errorf("round %d, card %d: %w", round, p.Card.Value, model.ErrDuplicateCard)
		}
		seen[p.Card.Value] = true
	}

	ordered := Order(plays)
	revealed := make([]model.PlayAction, 0, len(ordered))
	for _, p := range ordered {
		revealed = append(revealed, model.PlayAction{PlayerID: p.Player.ID, Card: p.Card})
	}
	t.events.Publish(model.Message{
		Type:    model.EventCardsRevealed,
		Payload: model.CardsRevealedPayload{Round: round, Order: revealed},
	})

	outcomes := make([]model.Outcome, 0, len(ordered))
	for _, p := range ordered {
		outcome, err := t.resolveOne(ctx, p)
		if err != nil {
			return outcomes, fmt.Errorf("round %d, %s plays %d: %w", round, p.Player.Name, p.Card.Value, err)
		}
		p.Player.AddPenalty(outcome.Penalty)
		outcomes = append(outcomes, outcome)

		eventType := model.EventCardPlaced
		if outcome.Taken {
			eventType = model.EventRowTaken
		}
		t.events.Publish(model.Message{Type: eventType, Payload: outcome})
		t.logger.Debug("card resolved",
			slog.Int("round", round),
			slog.String("player", p.Player.Name),
			slog.Int("card", p.Card.Value),
			slog.Int("row", outcome.Row),
			slog.Int("penalty", outcome.Penalty),
		)
	}
	return outcomes, nil
}

func (t *TurnResolver) resolveOne(ctx context.Context, p Play) (model.Outcome, error) {
	outcome := model.Outcome{PlayerID: p.Player.ID, Card: p.Card}

	if t.board.FindTargetRow(p.Card) != NoRow {
		outcome.Row, outcome.Penalty = t.board.AddCard(p.Card)
		return outcome, nil
	}

	// Card is smaller than all row ends, player must choose a row
	outcome.Taken = true
	for {
		if err := ctx.Err(); err != nil {
			return outcome, err
		}
		row, err := p.Chooser.ChooseRow(ctx, t.board.Rows(), p.Card)
		if err != nil {
			return outcome, err
		}
		penalty, err := t.board.ReplaceRow(row, p.Card)
		if errors.Is(err, model.ErrInvalidRowIndex) {
			t.logger.Warn("invalid row choice",
				slog.String("player", p.Player.Name),
				slog.Int("row", row),
			)
			continue
		}
		if err != nil {
			return outcome, err
		}
		outcome.Row = row
		outcome.Penalty = penalty
		return outcome, nil
	}
}
