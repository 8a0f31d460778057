package model

// Card is a single Take 5 card. Value is its rank, Score its bullhead penalty.
type Card struct {
	Value int `json:"value"`
	Score int `json:"score"`
}

type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Hand  []Card `json:"hand"`
	Score int    `json:"score"`
}

// PlayAction is a card revealed by a player for the current round.
type PlayAction struct {
	PlayerID string `json:"playerId"`
	Card     Card   `json:"card"`
}

// Outcome is the resolution of one PlayAction against the board.
type Outcome struct {
	PlayerID string `json:"playerId"`
	Card     Card   `json:"card"`
	Row      int    `json:"row"`
	Penalty  int    `json:"penalty"`
	// Taken is set when the player had to pick a row because the card fit nowhere.
	Taken bool `json:"taken"`
}

type Standing struct {
	Place    int    `json:"place"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

type PlayerStat struct {
	Name       string `json:"name"`
	TotalGames int    `json:"totalGames"`
	TotalScore int    `json:"totalScore"`
}

type PlayerSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	HandSize int    `json:"handSize"`
}

type GameSnapshot struct {
	ID      string          `json:"id"`
	Status  string          `json:"status"`
	Round   int             `json:"round"`
	Rows    []Row           `json:"rows"`
	Players []PlayerSummary `json:"players"`
}

// Message is the envelope pushed to spectators and displays.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	StatusSetup    = "setup"
	StatusPlaying  = "playing"
	StatusFinished = "finished"
)

const (
	EventState         = "state"
	EventRoundStarted  = "round_started"
	EventCardsRevealed = "cards_revealed"
	EventCardPlaced    = "card_placed"
	EventRowTaken      = "row_taken"
	EventGameFinished  = "game_finished"
)

type RoundStartedPayload struct {
	Round int   `json:"round"`
	Rows  []Row `json:"rows"`
}

type CardsRevealedPayload struct {
	Round int          `json:"round"`
	Order []PlayAction `json:"order"`
}

type GameFinishedPayload struct {
	GameID    string     `json:"gameId"`
	Standings []Standing `json:"standings"`
}
