package cli

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"

	"take5/internal/game"
	"take5/internal/model"
)

func init() {
	pterm.DisableStyling()
}

func TestDisplayRendersRound(t *testing.T) {
	out := &bytes.Buffer{}
	d := NewDisplay(out)

	d.Publish(model.Message{Type: model.EventState, Payload: model.GameSnapshot{
		Players: []model.PlayerSummary{{ID: "p1", Name: "Alice"}, {ID: "p2", Name: "Bob"}},
	}})
	d.Publish(model.Message{Type: model.EventRoundStarted, Payload: model.RoundStartedPayload{
		Round: 2,
		Rows:  []model.Row{{Cards: game.Cards(10, 11)}, {Cards: game.Cards(20)}},
	}})
	d.Publish(model.Message{Type: model.EventCardsRevealed, Payload: model.CardsRevealedPayload{
		Round: 2,
		Order: []model.PlayAction{{PlayerID: "p2", Card: model.Card{Value: 4, Score: 1}}, {PlayerID: "p1", Card: model.Card{Value: 21, Score: 1}}},
	}})
	d.Publish(model.Message{Type: model.EventRowTaken, Payload: model.Outcome{
		PlayerID: "p2", Card: model.Card{Value: 4, Score: 1}, Row: 0, Penalty: 8, Taken: true,
	}})
	d.Publish(model.Message{Type: model.EventCardPlaced, Payload: model.Outcome{
		PlayerID: "p1", Card: model.Card{Value: 21, Score: 1}, Row: 1,
	}})

	text := out.String()
	assert.Contains(t, text, "Round 2")
	assert.Contains(t, text, "10(3) 11(5)")
	assert.Contains(t, text, "Bob plays 4(1)")
	assert.Contains(t, text, "Alice plays 21(1)")
	assert.Contains(t, text, "Bob takes row 1 with 4: 8 bullheads")
	assert.NotContains(t, text, "Alice places")
}

func TestDisplayRendersStandings(t *testing.T) {
	out := &bytes.Buffer{}
	d := NewDisplay(out)

	d.Publish(model.Message{Type: model.EventGameFinished, Payload: model.GameFinishedPayload{
		GameID: "g1",
		Standings: []model.Standing{
			{Place: 1, PlayerID: "p2", Name: "Bob", Score: 3},
			{Place: 2, PlayerID: "p1", Name: "Alice", Score: 12},
		},
	}})

	assert.Contains(t, out.String(), "The winner is Bob")
	assert.Contains(t, out.String(), "Alice")
}

func TestRenderStats(t *testing.T) {
	out := &bytes.Buffer{}
	assert.NoError(t, RenderStats(out, nil))
	assert.Contains(t, out.String(), "No games recorded yet.")

	out.Reset()
	assert.NoError(t, RenderStats(out, []model.PlayerStat{{Name: "Alice", TotalGames: 2, TotalScore: 7}}))
	assert.Contains(t, out.String(), "Alice")
}
