package model

import (
	"fmt"
	"sort"
)

// NewPlayer returns a player with an empty hand and no penalty.
func NewPlayer(id, name string) *Player {
	return &Player{ID: id, Name: name, Hand: make([]Card, 0)}
}

// Deal adds cards to the hand and keeps it sorted by value.
func (p *Player) Deal(cards ...Card) {
	p.Hand = append(p.Hand, cards...)
	sort.Slice(p.Hand, func(i, j int) bool { return p.Hand[i].Value < p.Hand[j].Value })
}

func (p *Player) HasCard(value int) bool {
	for _, c := range p.Hand {
		if c.Value == value {
			return true
		}
	}
	return false
}

// Play removes the card with the given value from the hand.
func (p *Player) Play(value int) (Card, error) {
	for i, c := range p.Hand {
		if c.Value == value {
			newHand := make([]Card, 0, len(p.Hand)-1)
			newHand = append(newHand, p.Hand[:i]...)
			newHand = append(newHand, p.Hand[i+1:]...)
			p.Hand = newHand
			return c, nil
		}
	}
	return Card{}, fmt.Errorf("player %s, card %d: %w", p.Name, value, ErrCardNotInHand)
}

// AddPenalty credits bullheads to the running total. Totals never decrease.
func (p *Player) AddPenalty(points int) {
	if points < 0 {
		panic(fmt.Sprintf("player: negative penalty %d", points))
	}
	p.Score += points
}
