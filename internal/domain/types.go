package domain

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

const (
	Size  = 8
	ToWin = 5
)

// Opponent returns the other player. Empty has no opponent.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return Empty
	}
}

func (p PlayerID) IsPlayer() bool {
	return p == Player1 || p == Player2
}

// Symbol is the single character used when rendering boards.
func (p PlayerID) Symbol() string {
	switch p {
	case Player1:
		return "X"
	case Player2:
		return "O"
	default:
		return "."
	}
}

func (p PlayerID) String() string {
	switch p {
	case Player1, Player2:
		return p.Symbol()
	default:
		return "empty"
	}
}

// ParsePlayer accepts the symbols and the numeric ids used on the wire.
func ParsePlayer(s string) (PlayerID, error) {
	switch s {
	case "X", "x", "1":
		return Player1, nil
	case "O", "o", "2":
		return Player2, nil
	default:
		return Empty, ErrInvalidPlayer
	}
}

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove   Error = "invalid move"
	ErrOutOfBounds   Error = "move is out of bounds"
	ErrCellOccupied  Error = "cell is occupied"
	ErrNoLegalMoves  Error = "no legal moves available"
	ErrInvalidPlayer Error = "invalid player"
	ErrInvalidBoard  Error = "invalid board"
	ErrGameOver      Error = "game is over"
	ErrNotYourTurn   Error = "not your turn"
)
