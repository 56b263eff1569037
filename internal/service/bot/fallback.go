package bot

import (
	"github.com/iamasit07/gomoku-agent/internal/domain"
)

// Reasons reported with a Decision.
const (
	ReasonWin       = "win"
	ReasonBlock     = "block"
	ReasonCenter    = "center"
	ReasonHeuristic = "heuristic"
	ReasonRandom    = "random"
)

// CenterCells are tried in this order when nothing tactical is on the board.
var CenterCells = [4]domain.Move{
	{Row: 3, Col: 3},
	{Row: 3, Col: 4},
	{Row: 4, Col: 3},
	{Row: 4, Col: 4},
}

type Decision struct {
	Move   domain.Move `json:"move"`
	Reason string      `json:"reason"`
	Score  float64     `json:"score,omitempty"`
}

// SelectMove picks one move from legal using a fixed cascade:
// win, then block, then a free center cell, then the highest ScorePosition.
// legal is walked in the order given, so the first match (and the first of
// several equally scored moves) wins. Game.LegalMoves supplies row-major order.
func SelectMove(b *domain.Board, legal []domain.Move, self domain.PlayerID, w Weights) (Decision, error) {
	if len(legal) == 0 {
		return Decision{}, domain.ErrNoLegalMoves
	}
	if !self.IsPlayer() {
		return Decision{}, domain.ErrInvalidPlayer
	}

	// === PHASE 1: Take an immediate win ===
	if m, ok, err := findWinningMove(b, legal, self); err != nil {
		return Decision{}, err
	} else if ok {
		return Decision{Move: m, Reason: ReasonWin}, nil
	}

	// === PHASE 2: Block the opponent's immediate win ===
	if m, ok, err := findWinningMove(b, legal, self.Opponent()); err != nil {
		return Decision{}, err
	} else if ok {
		return Decision{Move: m, Reason: ReasonBlock}, nil
	}

	// === PHASE 3: Center control ===
	for _, center := range CenterCells {
		if containsMove(legal, center) {
			return Decision{Move: center, Reason: ReasonCenter}, nil
		}
	}

	// === PHASE 4: Best positional score ===
	best := legal[0]
	bestScore := ScorePosition(b, best, w)
	for _, m := range legal[1:] {
		if score := ScorePosition(b, m, w); score > bestScore {
			best, bestScore = m, score
		}
	}
	return Decision{Move: best, Reason: ReasonHeuristic, Score: bestScore}, nil
}

func containsMove(moves []domain.Move, target domain.Move) bool {
	for _, m := range moves {
		if m == target {
			return true
		}
	}
	return false
}
