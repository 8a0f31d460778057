package testutil

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"take5/internal/model"
)

// NopLogger returns a logger that discards all output.
// Use this in tests to avoid log noise.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// ErrScriptExhausted is returned once a ScriptedChooser runs out of answers.
var ErrScriptExhausted = errors.New("script exhausted")

// ScriptedChooser answers from queued values. With no queued card it plays the
// lowest card in hand.
type ScriptedChooser struct {
	CardResults []int
	cardIndex   int

	RowResults []int
	rowIndex   int

	// RowCalls counts ChooseRow invocations.
	RowCalls int
}

func NewScriptedChooser() *ScriptedChooser {
	return &ScriptedChooser{}
}

// QueueCards adds values to the ChooseCard result queue.
func (c *ScriptedChooser) QueueCards(values ...int) *ScriptedChooser {
	c.CardResults = append(c.CardResults, values...)
	return c
}

// QueueRows adds 0-based rows to the ChooseRow result queue.
func (c *ScriptedChooser) QueueRows(rows ...int) *ScriptedChooser {
	c.RowResults = append(c.RowResults, rows...)
	return c
}

func (c *ScriptedChooser) ChooseCard(_ context.Context, hand []model.Card) (int, error) {
	if c.cardIndex < len(c.CardResults) {
		v := c.CardResults[c.cardIndex]
		c.cardIndex++
		return v, nil
	}
	if len(hand) == 0 {
		return 0, ErrScriptExhausted
	}
	return hand[0].Value, nil
}

func (c *ScriptedChooser) ChooseRow(_ context.Context, _ []model.Row, _ model.Card) (int, error) {
	c.RowCalls++
	if c.rowIndex >= len(c.RowResults) {
		return 0, ErrScriptExhausted
	}
	r := c.RowResults[c.rowIndex]
	c.rowIndex++
	return r, nil
}

// RecordingBroadcaster keeps every published message.
type RecordingBroadcaster struct {
	mu       sync.Mutex
	Messages []model.Message
}

func (b *RecordingBroadcaster) Publish(msg model.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Messages = append(b.Messages, msg)
}

// OfType returns the recorded messages with the given type.
func (b *RecordingBroadcaster) OfType(t string) []model.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []model.Message
	for _, m := range b.Messages {
		if m.Type == t {
			out = append(out, m)
		}
	}
	return out
}
