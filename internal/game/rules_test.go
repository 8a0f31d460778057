package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"take5/internal/model"
)

func TestGetScore(t *testing.T) {
	tests := map[int]int{
		1:   1,
		5:   2,
		10:  3,
		11:  5,
		55:  7,
		66:  5,
		100: 3,
		104: 1,
	}
	for value, want := range tests {
		assert.Equal(t, want, GetScore(value), "card %d", value)
	}
}

func TestNewDeckHoldsEveryRankOnce(t *testing.T) {
	deck := NewDeck(104, rand.New(rand.NewSource(1)))
	require.Equal(t, 104, deck.Remaining())

	seen := make(map[int]bool)
	total := 0
	for deck.Remaining() > 0 {
		c, err := deck.Draw()
		require.NoError(t, err)
		assert.False(t, seen[c.Value], "card %d drawn twice", c.Value)
		assert.Equal(t, GetScore(c.Value), c.Score)
		seen[c.Value] = true
		total += c.Score
	}
	assert.Len(t, seen, 104)
	assert.Equal(t, 171, total)
}

func TestPileDrawsInOrderThenEmpties(t *testing.T) {
	pile := NewPile(Cards(3, 1, 2)...)

	for _, want := range []int{3, 1, 2} {
		c, err := pile.Draw()
		require.NoError(t, err)
		assert.Equal(t, want, c.Value)
	}

	_, err := pile.Draw()
	assert.ErrorIs(t, err, model.ErrEmptyDeck)
}

func TestDealCards(t *testing.T) {
	players := []*model.Player{model.NewPlayer("p1", "Alice"), model.NewPlayer("p2", "Bob")}
	pile := NewPile(Cards(9, 2, 7, 4, 1, 8)...)

	drawn, err := DealCards(pile, players, 3)
	require.NoError(t, err)

	assert.Equal(t, 6, drawn)
	assert.Equal(t, Cards(2, 7, 9), players[0].Hand)
	assert.Equal(t, Cards(1, 4, 8), players[1].Hand)
}

func TestDealCardsEmptyDeck(t *testing.T) {
	players := []*model.Player{model.NewPlayer("p1", "Alice"), model.NewPlayer("p2", "Bob")}

	_, err := DealCards(NewPile(Cards(1, 2, 3)...), players, 2)
	assert.ErrorIs(t, err, model.ErrEmptyDeck)
}
