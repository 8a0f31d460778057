package game

import (
	"context"

	"take5/internal/model"
)

// Chooser is the player's side of the table. Any input source (terminal,
// script, test harness) implements it; the engine never does I/O itself.
type Chooser interface {
	// ChooseCard returns the value of the card to reveal from hand.
	ChooseCard(ctx context.Context, hand []model.Card) (int, error)
	// ChooseRow returns the 0-based row to take when card fits nowhere.
	ChooseRow(ctx context.Context, rows []model.Row, card model.Card) (int, error)
}

// Broadcaster receives game events for display. Publish must not block the game.
type Broadcaster interface {
	Publish(msg model.Message)
}

// Broadcasters fans a message out to several receivers.
type Broadcasters []Broadcaster

func (bs Broadcasters) Publish(msg model.Message) {
	for _, b := range bs {
		if b != nil {
			b.Publish(msg)
		}
	}
}

type nopBroadcaster struct{}

func (nopBroadcaster) Publish(model.Message) {}

// Recorder stores the standings of finished games.
type Recorder interface {
	RecordGameResult(ctx context.Context, gameID string, standings []model.Standing) error
}
