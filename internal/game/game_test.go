package game

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"take5/internal/config"
	"take5/internal/model"
	"take5/internal/testutil"
)

type fakeRecorder struct {
	gameID    string
	standings []model.Standing
	err       error
}

func (r *fakeRecorder) RecordGameResult(_ context.Context, gameID string, standings []model.Standing) error {
	r.gameID = gameID
	r.standings = standings
	return r.err
}

// firstRow plays its lowest card and always takes the first row.
type firstRow struct{}

func (firstRow) ChooseCard(_ context.Context, hand []model.Card) (int, error) {
	return hand[0].Value, nil
}

func (firstRow) ChooseRow(context.Context, []model.Row, model.Card) (int, error) {
	return 0, nil
}

func threeTurnRules() config.Rules {
	return config.Rules{Rows: 4, CardsPerRow: 5, Turns: 3, DeckSize: 104}
}

// Rows seed 10 20 30 40, Alice holds 22 41 50, Bob holds 5 23 60.
func scriptedGame(t *testing.T, alice, bob *testutil.ScriptedChooser, opts Options) *Game {
	t.Helper()
	opts.ID = "game-1"
	opts.Rules = threeTurnRules()
	opts.Deck = NewPile(Cards(10, 20, 30, 40, 41, 22, 50, 60, 5, 23)...)
	opts.Seats = []Seat{{Name: "Alice", Chooser: alice}, {Name: "Bob", Chooser: bob}}
	opts.Logger = testutil.NopLogger()
	g, err := New(opts)
	require.NoError(t, err)
	return g
}

func TestNewGameSetsUpTable(t *testing.T) {
	events := &testutil.RecordingBroadcaster{}
	g := scriptedGame(t, testutil.NewScriptedChooser(), testutil.NewScriptedChooser(), Options{Events: events})

	assert.Equal(t, model.StatusPlaying, g.Status())
	assert.Equal(t, 0, g.Round())

	rows := g.Rows()
	require.Len(t, rows, 4)
	for i, want := range []int{10, 20, 30, 40} {
		assert.Equal(t, Cards(want), rows[i].Cards)
	}

	players := g.Players()
	require.Len(t, players, 2)
	assert.Equal(t, Cards(22, 41, 50), players[0].Hand)
	assert.Equal(t, Cards(5, 23, 60), players[1].Hand)
	assert.Equal(t, "p1", players[0].ID)

	require.Len(t, events.OfType(model.EventState), 1)
}

func TestNewGameRejectsBadSetup(t *testing.T) {
	t.Run("too few players", func(t *testing.T) {
		_, err := New(Options{Rules: config.DefaultRules(), Seats: []Seat{{Name: "Solo", Chooser: firstRow{}}}})
		assert.ErrorIs(t, err, model.ErrNotEnoughPlayers)
	})

	t.Run("deck runs out while dealing", func(t *testing.T) {
		_, err := New(Options{
			Rules:  threeTurnRules(),
			Deck:   NewPile(Cards(1, 2, 3, 4, 5, 6)...),
			Seats:  []Seat{{Name: "A", Chooser: firstRow{}}, {Name: "B", Chooser: firstRow{}}},
			Logger: testutil.NopLogger(),
		})
		assert.ErrorIs(t, err, model.ErrEmptyDeck)
	})

	t.Run("seat without chooser", func(t *testing.T) {
		_, err := New(Options{
			Rules: threeTurnRules(),
			Seats: []Seat{{Name: "A", Chooser: firstRow{}}, {Name: "B"}},
		})
		assert.Error(t, err)
	})
}

func TestPlayFullGame(t *testing.T) {
	t.Log("Given Bob must take a row with his 5 in the first round")
	alice := testutil.NewScriptedChooser()
	bob := testutil.NewScriptedChooser().QueueRows(0)
	recorder := &fakeRecorder{}
	events := &testutil.RecordingBroadcaster{}
	g := scriptedGame(t, alice, bob, Options{Recorder: recorder, Events: events})

	t.Log("When every round is played")
	standings, err := g.Play(context.Background())
	require.NoError(t, err)

	t.Log("Then the game is finished with every hand empty")
	assert.Equal(t, model.StatusFinished, g.Status())
	assert.Equal(t, 3, g.Round())
	for _, p := range g.Players() {
		assert.Empty(t, p.Hand)
	}

	t.Log("And the board reflects the resolution order")
	rows := g.Rows()
	assert.Equal(t, Cards(5), rows[0].Cards)
	assert.Equal(t, Cards(20, 22, 23), rows[1].Cards)
	assert.Equal(t, Cards(30), rows[2].Cards)
	assert.Equal(t, Cards(40, 41, 50, 60), rows[3].Cards)

	t.Log("And Alice wins with no penalty")
	require.Len(t, standings, 2)
	assert.Equal(t, model.Standing{Place: 1, PlayerID: "p1", Name: "Alice", Score: 0}, standings[0])
	assert.Equal(t, model.Standing{Place: 2, PlayerID: "p2", Name: "Bob", Score: 3}, standings[1])

	assert.Equal(t, "game-1", recorder.gameID)
	assert.Equal(t, standings, recorder.standings)
	assert.Len(t, events.OfType(model.EventRoundStarted), 3)
	assert.Len(t, events.OfType(model.EventGameFinished), 1)
}

func TestPlayRoundReturnsOutcomesInPlayOrder(t *testing.T) {
	g := scriptedGame(t, testutil.NewScriptedChooser(), testutil.NewScriptedChooser().QueueRows(2), Options{})

	outcomes, err := g.PlayRound(context.Background())
	require.NoError(t, err)

	require.Len(t, outcomes, 2)
	assert.Equal(t, model.Outcome{PlayerID: "p2", Card: card(5), Row: 2, Penalty: GetScore(30), Taken: true}, outcomes[0])
	assert.Equal(t, model.Outcome{PlayerID: "p1", Card: card(22), Row: 1}, outcomes[1])
	assert.Equal(t, GetScore(30), g.Players()[1].Score)
}

func TestCardNotInHandIsAskedAgain(t *testing.T) {
	alice := testutil.NewScriptedChooser().QueueCards(99, 5, 41)
	g := scriptedGame(t, alice, testutil.NewScriptedChooser().QueueRows(0), Options{})

	outcomes, err := g.PlayRound(context.Background())
	require.NoError(t, err)

	assert.Equal(t, card(5), outcomes[0].Card)
	assert.Equal(t, card(41), outcomes[1].Card)
	assert.Equal(t, Cards(22, 50), g.Players()[0].Hand)
}

func TestChooserFailureLeavesHandsUntouched(t *testing.T) {
	failing := &failingChooser{err: errors.New("player left")}
	g, err := New(Options{
		Rules:  threeTurnRules(),
		Deck:   NewPile(Cards(10, 20, 30, 40, 41, 22, 50, 60, 5, 23)...),
		Seats:  []Seat{{Name: "Alice", Chooser: firstRow{}}, {Name: "Bob", Chooser: failing}},
		Logger: testutil.NopLogger(),
	})
	require.NoError(t, err)

	_, err = g.PlayRound(context.Background())

	assert.ErrorIs(t, err, failing.err)
	assert.Equal(t, 0, g.Round())
	assert.Len(t, g.Players()[0].Hand, 3)
	assert.Equal(t, Cards(10), g.Rows()[0].Cards)
}

type failingChooser struct{ err error }

func (c *failingChooser) ChooseCard(context.Context, []model.Card) (int, error) { return 0, c.err }

func (c *failingChooser) ChooseRow(context.Context, []model.Row, model.Card) (int, error) {
	return 0, c.err
}

// flakyChooser fails ChooseCard a set number of times before answering from
// its script.
type flakyChooser struct {
	*testutil.ScriptedChooser
	failures int
	err      error
}

func (c *flakyChooser) ChooseCard(ctx context.Context, hand []model.Card) (int, error) {
	if c.failures > 0 {
		c.failures--
		return 0, c.err
	}
	return c.ScriptedChooser.ChooseCard(ctx, hand)
}

func TestGameResumesAfterChooserFailure(t *testing.T) {
	t.Log("Given Bob times out once while choosing his first card")
	bob := &flakyChooser{ScriptedChooser: testutil.NewScriptedChooser().QueueRows(0), failures: 1, err: errors.New("timeout")}
	events := &testutil.RecordingBroadcaster{}
	g, err := New(Options{
		Rules:  threeTurnRules(),
		Deck:   NewPile(Cards(10, 20, 30, 40, 41, 22, 50, 60, 5, 23)...),
		Seats:  []Seat{{Name: "Alice", Chooser: testutil.NewScriptedChooser()}, {Name: "Bob", Chooser: bob}},
		Events: events,
		Logger: testutil.NopLogger(),
	})
	require.NoError(t, err)

	_, err = g.PlayRound(context.Background())
	require.ErrorIs(t, err, bob.err)
	assert.Equal(t, 0, g.Round())
	assert.Equal(t, model.StatusPlaying, g.Status())

	t.Log("When the game is played again")
	standings, err := g.Play(context.Background())
	require.NoError(t, err)

	t.Log("Then all three rounds are played and every hand is empty")
	assert.Equal(t, model.StatusFinished, g.Status())
	assert.Equal(t, 3, g.Round())
	for _, p := range g.Players() {
		assert.Empty(t, p.Hand)
	}
	assert.Equal(t, 3, standings[1].Score)
	assert.Len(t, events.OfType(model.EventCardsRevealed), 3)
}

func TestDuplicateRanksLeaveHandsUntouched(t *testing.T) {
	g, err := New(Options{
		Rules: threeTurnRules(),
		// Alice holds 22 41 50, Bob holds 5 22 60.
		Deck: NewPile(Cards(10, 20, 30, 40, 41, 22, 50, 60, 5, 22)...),
		Seats: []Seat{
			{Name: "Alice", Chooser: testutil.NewScriptedChooser()},
			{Name: "Bob", Chooser: testutil.NewScriptedChooser().QueueCards(22)},
		},
		Logger: testutil.NopLogger(),
	})
	require.NoError(t, err)

	_, err = g.PlayRound(context.Background())

	assert.ErrorIs(t, err, model.ErrDuplicateCard)
	assert.Equal(t, 0, g.Round())
	players := g.Players()
	assert.Equal(t, Cards(22, 41, 50), players[0].Hand)
	assert.Equal(t, Cards(5, 22, 60), players[1].Hand)
	assert.Equal(t, Cards(10), g.Rows()[0].Cards)
}

func TestPlayRoundAfterFinish(t *testing.T) {
	g := scriptedGame(t, testutil.NewScriptedChooser(), testutil.NewScriptedChooser().QueueRows(0), Options{})
	_, err := g.Play(context.Background())
	require.NoError(t, err)

	_, err = g.PlayRound(context.Background())
	assert.ErrorIs(t, err, model.ErrGameFinished)
}

func TestRecorderFailureIsReported(t *testing.T) {
	recorder := &fakeRecorder{err: errors.New("disk full")}
	g := scriptedGame(t, testutil.NewScriptedChooser(), testutil.NewScriptedChooser().QueueRows(0), Options{Recorder: recorder})

	_, err := g.Play(context.Background())

	assert.ErrorIs(t, err, recorder.err)
	assert.Equal(t, model.StatusFinished, g.Status())
}

func TestStandingsAreStableOnTies(t *testing.T) {
	seats := []Seat{
		{Name: "A", Chooser: firstRow{}},
		{Name: "B", Chooser: firstRow{}},
		{Name: "C", Chooser: firstRow{}},
		{Name: "D", Chooser: firstRow{}},
	}
	g, err := New(Options{Rules: config.DefaultRules(), Seats: seats, Logger: testutil.NopLogger()})
	require.NoError(t, err)

	for i, score := range []int{5, 3, 5, 3} {
		g.players[i].Score = score
	}

	standings := g.Standings()
	names := []string{}
	places := []int{}
	for _, s := range standings {
		names = append(names, s.Name)
		places = append(places, s.Place)
	}
	assert.Equal(t, []string{"B", "D", "A", "C"}, names)
	assert.Equal(t, []int{1, 1, 3, 3}, places)
}

func TestRandomGameConservesBullheads(t *testing.T) {
	seats := []Seat{
		{Name: "A", Chooser: firstRow{}},
		{Name: "B", Chooser: firstRow{}},
		{Name: "C", Chooser: firstRow{}},
		{Name: "D", Chooser: firstRow{}},
		{Name: "E", Chooser: firstRow{}},
	}
	g, err := New(Options{Rules: config.DefaultRules(), Seats: seats, Logger: testutil.NopLogger()})
	require.NoError(t, err)

	total := 0
	for _, r := range g.Rows() {
		total += r.Penalty()
	}
	for _, p := range g.Players() {
		for _, c := range p.Hand {
			total += c.Score
		}
	}

	standings, err := g.Play(context.Background())
	require.NoError(t, err)

	after := 0
	for _, r := range g.Rows() {
		require.GreaterOrEqual(t, r.Len(), 1)
		after += r.Penalty()
	}
	for _, s := range standings {
		after += s.Score
	}
	assert.Equal(t, total, after)

	for i := 1; i < len(standings); i++ {
		assert.LessOrEqual(t, standings[i-1].Score, standings[i].Score)
	}
}
