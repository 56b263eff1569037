package bot

import (
	"fmt"

	"github.com/iamasit07/gomoku-agent/internal/domain"
)

// WouldWin reports whether placing player's stone on m completes five or
// more in a row on any axis. The placement is evaluated as an overlay on
// top of b; the board itself is never written.
//
// m must be an empty in-bounds cell. Anything else is a caller bug and is
// reported as ErrInvalidMove rather than as "does not win".
func WouldWin(b *domain.Board, m domain.Move, player domain.PlayerID) (bool, error) {
	if !player.IsPlayer() {
		return false, domain.ErrInvalidPlayer
	}
	if !domain.InBounds(m.Row, m.Col) {
		return false, fmt.Errorf("%w: %v is off the board", domain.ErrInvalidMove, m)
	}
	if b[m.Row][m.Col] != domain.Empty {
		return false, fmt.Errorf("%w: %v is occupied", domain.ErrInvalidMove, m)
	}

	for _, axis := range domain.Axes {
		if domain.LineLength(b, m.Row, m.Col, axis, player) >= domain.ToWin {
			return true, nil
		}
	}
	return false, nil
}

// findWinningMove returns the first move in legal that wins for player.
func findWinningMove(b *domain.Board, legal []domain.Move, player domain.PlayerID) (domain.Move, bool, error) {
	for _, m := range legal {
		won, err := WouldWin(b, m, player)
		if err != nil {
			return domain.Move{}, false, err
		}
		if won {
			return m, true, nil
		}
	}
	return domain.Move{}, false, nil
}
