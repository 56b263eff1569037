package bot

import (
	"github.com/iamasit07/gomoku-agent/internal/domain"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
)

// CalculateBestMove selects the local move based on difficulty
func CalculateBestMove(b *domain.Board, legal []domain.Move, self domain.PlayerID, difficulty string, w Weights) (Decision, error) {
	switch difficulty {
	case DifficultyEasy:
		return CalculateBestMoveEasy(b, legal, self, nil)
	case DifficultyMedium:
		return SelectMove(b, legal, self, w)
	default:
		return SelectMove(b, legal, self, w)
	}
}
