package domain

import "fmt"

type Game struct {
	Board         Board
	CurrentPlayer PlayerID
	Status        GameStatus
	Winner        PlayerID
	History       []Move
}

func NewGame() *Game {
	return &Game{
		Board:         NewBoard(),
		CurrentPlayer: Player1,
		Status:        StatusActive,
		Winner:        Empty,
	}
}

// ResumeGame rebuilds a game from a position supplied by a caller. history is
// optional and only feeds the recent-move context; it is not replayed.
func ResumeGame(b Board, current PlayerID, history []Move) (*Game, error) {
	if !current.IsPlayer() {
		return nil, ErrInvalidPlayer
	}
	for _, m := range history {
		if !InBounds(m.Row, m.Col) {
			return nil, fmt.Errorf("%w: history move %s", ErrOutOfBounds, m)
		}
	}
	g := &Game{
		Board:         b,
		CurrentPlayer: current,
		Status:        StatusActive,
		Winner:        Empty,
		History:       append([]Move(nil), history...),
	}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if p := b[r][c]; p != Empty && CheckWin(&g.Board, r, c, p) {
				g.Status = StatusWon
				g.Winner = p
				return g, nil
			}
		}
	}
	if b.IsFull() {
		g.Status = StatusDraw
	}
	return g, nil
}

// LegalMoves lists the empty cells in row-major order. Nothing is legal once
// the game is finished.
func (g *Game) LegalMoves() []Move {
	if g.IsFinished() {
		return []Move{}
	}
	return g.Board.EmptyCells()
}

func (g *Game) IsValidMove(m Move) bool {
	return !g.IsFinished() && g.Board.IsEmpty(m.Row, m.Col)
}

func (g *Game) MakeMove(player PlayerID, m Move) error {
	if g.Status != StatusActive {
		return ErrGameOver
	}
	if player != g.CurrentPlayer {
		return ErrNotYourTurn
	}
	if err := g.Board.Place(m, player); err != nil {
		return err
	}
	g.History = append(g.History, m)

	if CheckWin(&g.Board, m.Row, m.Col, player) {
		g.Status = StatusWon
		g.Winner = player
		return nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return nil
	}

	g.CurrentPlayer = player.Opponent()
	return nil
}

// Clone returns a deep copy that can be read without holding the owner's lock.
func (g *Game) Clone() *Game {
	cp := *g
	cp.History = append([]Move(nil), g.History...)
	return &cp
}

func (g *Game) MoveCount() int {
	return len(g.History)
}

// RecentMoves returns up to n of the latest moves, oldest first.
func (g *Game) RecentMoves(n int) []Move {
	if n <= 0 || len(g.History) == 0 {
		return []Move{}
	}
	start := len(g.History) - n
	if start < 0 {
		start = 0
	}
	out := make([]Move, len(g.History)-start)
	copy(out, g.History[start:])
	return out
}

// PlayerAt reports who played the i-th move (0-based). Player1 always opens.
func (g *Game) PlayerAt(i int) PlayerID {
	if i%2 == 0 {
		return Player1
	}
	return Player2
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}
