package model

import "errors"

var (
	// ErrEmptyDeck is returned when a card is drawn from an exhausted deck.
	ErrEmptyDeck = errors.New("deck is empty")
	// ErrCardNotInHand is returned when a player picks a rank they do not hold.
	ErrCardNotInHand = errors.New("card not in hand")
	// ErrInvalidRowIndex is returned when a row choice falls outside the board.
	ErrInvalidRowIndex = errors.New("invalid row index")

	ErrGameFinished     = errors.New("game already finished")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrInvalidRules     = errors.New("invalid rules")
	ErrDuplicateCard    = errors.New("duplicate card rank")
)
