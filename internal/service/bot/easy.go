package bot

import (
	"math/rand"

	"github.com/iamasit07/gomoku-agent/internal/domain"
)

// CalculateBestMoveEasy wins or blocks when it can and otherwise plays a
// random legal move.
func CalculateBestMoveEasy(b *domain.Board, legal []domain.Move, self domain.PlayerID, rng *rand.Rand) (Decision, error) {
	if len(legal) == 0 {
		return Decision{}, domain.ErrNoLegalMoves
	}
	if !self.IsPlayer() {
		return Decision{}, domain.ErrInvalidPlayer
	}

	if m, ok, err := findWinningMove(b, legal, self); err != nil {
		return Decision{}, err
	} else if ok {
		return Decision{Move: m, Reason: ReasonWin}, nil
	}

	if m, ok, err := findWinningMove(b, legal, self.Opponent()); err != nil {
		return Decision{}, err
	} else if ok {
		return Decision{Move: m, Reason: ReasonBlock}, nil
	}

	var i int
	if rng != nil {
		i = rng.Intn(len(legal))
	} else {
		i = rand.Intn(len(legal))
	}
	return Decision{Move: legal[i], Reason: ReasonRandom}, nil
}
