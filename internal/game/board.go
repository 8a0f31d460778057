package game

import (
	"fmt"

	"take5/internal/model"
)

// NoRow is returned by FindTargetRow when the card is lower than every row end.
const NoRow = -1

// Board owns the rows on the table. All mutation goes through AddCard and
// ReplaceRow so every row stays sorted and non-empty.
type Board struct {
	rows     []model.Row
	capacity int
}

// NewBoard seeds each of n rows with one card drawn from deck.
func NewBoard(deck Deck, n, capacity int) (*Board, error) {
	b := &Board{rows: make([]model.Row, n), capacity: capacity}
	for i := 0; i < n; i++ {
		c, err := deck.Draw()
		if err != nil {
			return nil, fmt.Errorf("seed row %d: %w", i+1, err)
		}
		b.rows[i] = model.NewRow(c)
	}
	return b, nil
}

// NewBoardFromRows builds a board from existing rows. Each row must be
// non-empty, strictly increasing and within capacity.
func NewBoardFromRows(rows []model.Row, capacity int) (*Board, error) {
	b := &Board{rows: make([]model.Row, len(rows)), capacity: capacity}
	for i, r := range rows {
		if r.Len() == 0 || r.Len() > capacity {
			return nil, fmt.Errorf("%w: row %d holds %d cards", model.ErrInvalidRules, i+1, r.Len())
		}
		for j := 1; j < r.Len(); j++ {
			if r.Cards[j].Value <= r.Cards[j-1].Value {
				return nil, fmt.Errorf("%w: row %d is not increasing", model.ErrInvalidRules, i+1)
			}
		}
		b.rows[i] = r.Clone()
	}
	return b, nil
}

func (b *Board) NumRows() int {
	return len(b.rows)
}

func (b *Board) Capacity() int {
	return b.capacity
}

// Rows returns a copy of the board for display.
func (b *Board) Rows() []model.Row {
	rows := make([]model.Row, len(b.rows))
	for i, r := range b.rows {
		rows[i] = r.Clone()
	}
	return rows
}

// FindTargetRow returns the row whose last card is closest below the card.
// Ties go to the lowest index. NoRow means the card fits nowhere.
func (b *Board) FindTargetRow(card model.Card) int {
	bestRowIdx := NoRow
	diff := 0
	for i := range b.rows {
		d := card.Value - b.rows[i].Last().Value
		if d <= 0 {
			continue
		}
		if bestRowIdx == NoRow || d < diff {
			diff = d
			bestRowIdx = i
		}
	}
	return bestRowIdx
}

// AddCard places the card on its target row and returns the penalty for
// taking a full row. Calling it for a card with no target is a bug.
func (b *Board) AddCard(card model.Card) (row int, penalty int) {
	row = b.FindTargetRow(card)
	if row == NoRow {
		panic(fmt.Sprintf("board: no row accepts card %d", card.Value))
	}
	if b.rows[row].Len() < b.capacity {
		b.rows[row].Append(card, b.capacity)
		return row, 0
	}
	return row, b.rows[row].OverflowClear(card, b.capacity)
}

// ReplaceRow takes every card of the row and leaves card in its place.
func (b *Board) ReplaceRow(row int, card model.Card) (int, error) {
	if row < 0 || row >= len(b.rows) {
		return 0, fmt.Errorf("row %d of %d: %w", row, len(b.rows), model.ErrInvalidRowIndex)
	}
	return b.rows[row].ForcedClear(card), nil
}
