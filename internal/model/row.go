package model

import "fmt"

// Row is an ordered pile on the board. Values strictly increase and a row
// on a live board is never empty.
type Row struct {
	Cards []Card `json:"cards"`
}

// NewRow seeds a row with a single card.
func NewRow(seed Card) Row {
	return Row{Cards: []Card{seed}}
}

func (r *Row) Len() int {
	return len(r.Cards)
}

// Last returns the most recently appended card.
func (r *Row) Last() Card {
	return r.Cards[len(r.Cards)-1]
}

// Penalty sums the bullheads of every card in the row.
func (r *Row) Penalty() int {
	score := 0
	for _, c := range r.Cards {
		score += c.Score
	}
	return score
}

// Append adds a card to the end of the row. The caller must ensure the row has
// room and that the card ranks above the last one; anything else is a bug.
func (r *Row) Append(card Card, capacity int) {
	if len(r.Cards) >= capacity {
		panic(fmt.Sprintf("row: append %d to full row", card.Value))
	}
	if len(r.Cards) > 0 && card.Value <= r.Last().Value {
		panic(fmt.Sprintf("row: append %d after %d", card.Value, r.Last().Value))
	}
	r.Cards = append(r.Cards, card)
}

// OverflowClear discards a full row and reseeds it with card.
func (r *Row) OverflowClear(card Card, capacity int) int {
	if len(r.Cards) != capacity {
		panic(fmt.Sprintf("row: overflow clear on row of %d/%d", len(r.Cards), capacity))
	}
	return r.ForcedClear(card)
}

// ForcedClear discards every card regardless of size and reseeds with card.
func (r *Row) ForcedClear(card Card) int {
	penalty := r.Penalty()
	r.Cards = []Card{card}
	return penalty
}

// Clone returns a copy that does not share the backing array.
func (r Row) Clone() Row {
	cards := make([]Card, len(r.Cards))
	copy(cards, r.Cards)
	return Row{Cards: cards}
}
