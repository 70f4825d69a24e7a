package domain

// ClientMessage is what the frontend sends over the WebSocket.
type ClientMessage struct {
	Type       string `json:"type"`
	JWT        string `json:"jwt,omitempty"`
	GameID     string `json:"gameId,omitempty"`
	Column     int    `json:"column,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// ServerMessage is the single envelope the backend pushes to clients.
type ServerMessage struct {
	Type        string  `json:"type"`
	Message     string  `json:"message,omitempty"`
	GameID      string  `json:"gameId,omitempty"`
	Opponent    string  `json:"opponent,omitempty"`
	YourPlayer  int     `json:"yourPlayer,omitempty"`
	CurrentTurn int     `json:"currentTurn,omitempty"`
	Column      *int    `json:"column,omitempty"`
	Row         *int    `json:"row,omitempty"`
	Player      int     `json:"player,omitempty"`
	Board       [][]int `json:"board,omitempty"`
	NextTurn    int     `json:"nextTurn,omitempty"`
	Winner      int     `json:"winner,omitempty"`
	Reason      string  `json:"reason,omitempty"`
}

// ErrorMessage is sent when a client request cannot be honored.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
