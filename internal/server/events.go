package server

// Inbound event names.
const (
	eventCreateGame = "create_game"
	eventJoinGame   = "join_game"
	eventSubmitWord = "submit_word"
)

// Outbound event names.
const (
	eventGameCreated        = "game_created"
	eventCreateGameError    = "create_game_error"
	eventGameStarted        = "game_started"
	eventJoinGameError      = "join_game_error"
	eventNewRound           = "new_round"
	eventRoundOver          = "round_over"
	eventGameOver           = "game_over"
	eventPlayerDisconnected = "player_disconnected"
)

// clientEvent is the envelope for everything a client sends over the socket.
// Which fields matter depends on Type; the router validates per event.
type clientEvent struct {
	Type        string `json:"type"`
	PlayerName  string `json:"playerName,omitempty"`
	GameCode    string `json:"gameCode,omitempty"`
	Word        string `json:"word,omitempty"`
	TotalRounds int    `json:"totalRounds,omitempty"`
}

type gameCreatedEvent struct {
	Type     string `json:"type"`
	GameCode string `json:"gameCode"`
}

// errorEvent covers create_game_error and join_game_error.
type errorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type gameStartedEvent struct {
	Type    string `json:"type"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

type newRoundEvent struct {
	Type         string `json:"type"`
	Prompt       string `json:"prompt"`
	CurrentRound int    `json:"currentRound"`
}

type roundOverEvent struct {
	Type        string `json:"type"`
	Match       bool   `json:"match"`
	Player1Word string `json:"player1Word"`
	Player2Word string `json:"player2Word"`
}

type gameOverEvent struct {
	Type       string `json:"type"`
	Similarity int    `json:"similarity"`
}

type playerDisconnectedEvent struct {
	Type string `json:"type"`
}
