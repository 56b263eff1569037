package domain

// ClientMessage is what the browser sends over /ws.
type ClientMessage struct {
	Type       string `json:"type"` // "start", "move", "leave"
	Player     string `json:"player,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Row        *int   `json:"row,omitempty"`
	Col        *int   `json:"col,omitempty"`
}

type ServerMessage struct {
	Type        string `json:"type"`
	Message     string `json:"message,omitempty"`
	GameID      string `json:"gameId,omitempty"`
	YourPlayer  int    `json:"yourPlayer,omitempty"`
	CurrentTurn int    `json:"currentTurn,omitempty"`
	Move        *Move  `json:"move,omitempty"`
	Player      int    `json:"player,omitempty"`
	Board       *Board `json:"board,omitempty"`
	NextTurn    int    `json:"nextTurn,omitempty"`
	Winner      string `json:"winner,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Source      string `json:"source,omitempty"`
	WinningLine []Move `json:"winningLine,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
