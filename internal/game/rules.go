package game

import (
	"fmt"
	"math/rand"

	"take5/internal/model"
)

// GetScore calculates the penalty score (bullheads) for a given card value.
func GetScore(val int) int {
	if val == 55 {
		return 7
	}
	if val%11 == 0 {
		return 5
	}
	if val%10 == 0 {
		return 3
	}
	if val%5 == 0 {
		return 2
	}
	return 1
}

// Deck is the supply cards are drawn from during setup.
type Deck interface {
	Draw() (model.Card, error)
}

// Pile is a slice-backed Deck drawn from the front.
type Pile struct {
	cards []model.Card
}

// NewPile returns a deck that yields cards in the given order.
func NewPile(cards ...model.Card) *Pile {
	c := make([]model.Card, len(cards))
	copy(c, cards)
	return &Pile{cards: c}
}

// NewDeck builds cards 1..size with their bullheads and shuffles them.
// A nil rng uses the global source.
func NewDeck(size int, rng *rand.Rand) *Pile {
	cards := make([]model.Card, 0, size)
	for i := 1; i <= size; i++ {
		cards = append(cards, model.Card{Value: i, Score: GetScore(i)})
	}
	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	return &Pile{cards: cards}
}

// Cards builds a deterministic card list with standard bullheads, for seeding piles.
func Cards(values ...int) []model.Card {
	cards := make([]model.Card, 0, len(values))
	for _, v := range values {
		cards = append(cards, model.Card{Value: v, Score: GetScore(v)})
	}
	return cards
}

func (p *Pile) Draw() (model.Card, error) {
	if len(p.cards) == 0 {
		return model.Card{}, model.ErrEmptyDeck
	}
	c := p.cards[0]
	p.cards = p.cards[1:]
	return c, nil
}

func (p *Pile) Remaining() int {
	return len(p.cards)
}

// DealCards draws n cards for each player and returns how many were drawn.
func DealCards(deck Deck, players []*model.Player, n int) (int, error) {
	drawn := 0
	for _, p := range players {
		hand := make([]model.Card, 0, n)
		for i := 0; i < n; i++ {
			c, err := deck.Draw()
			if err != nil {
				return drawn, fmt.Errorf("deal to %s: %w", p.Name, err)
			}
			hand = append(hand, c)
			drawn++
		}
		p.Hand = make([]model.Card, 0, n)
		p.Score = 0
		p.Deal(hand...)
	}
	return drawn, nil
}
