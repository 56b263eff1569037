package bot

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/iamasit07/gomoku-agent/internal/domain"
)

func mustSelect(t *testing.T, b domain.Board, self domain.PlayerID) Decision {
	t.Helper()
	legal := b.EmptyCells()
	d, err := SelectMove(&b, legal, self, DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !containsMove(legal, d.Move) {
		t.Fatalf("selected %v is not a legal move", d.Move)
	}
	return d
}

func TestSelectMoveTakesOpenFourWin(t *testing.T) {
	b := boardWith(line(domain.Player1, mv(3, 3), mv(3, 4), mv(3, 5), mv(3, 6)))
	for _, end := range []domain.Move{mv(3, 2), mv(3, 7)} {
		if won, err := WouldWin(&b, end, domain.Player1); err != nil || !won {
			t.Fatalf("expected %v to win, got %v (err %v)", end, won, err)
		}
	}

	d := mustSelect(t, b, domain.Player1)
	if d.Reason != ReasonWin {
		t.Fatalf("expected win, got %s", d.Reason)
	}
	// row-major order reaches (3,2) first
	if d.Move != mv(3, 2) {
		t.Fatalf("expected (3, 2), got %v", d.Move)
	}
}

func TestSelectMoveBlocksOpponentFour(t *testing.T) {
	b := boardWith(line(domain.Player2, mv(3, 3), mv(3, 4), mv(3, 5), mv(3, 6)))
	d := mustSelect(t, b, domain.Player1)
	if d.Reason != ReasonBlock {
		t.Fatalf("expected block, got %s", d.Reason)
	}
	if d.Move != mv(3, 2) && d.Move != mv(3, 7) {
		t.Fatalf("expected a blocking cell, got %v", d.Move)
	}
}

func TestSelectMoveBlocksHalfOpenFour(t *testing.T) {
	stones := line(domain.Player2, mv(6, 0), mv(6, 1), mv(6, 2), mv(6, 3))
	stones[mv(3, 3)] = domain.Player1
	stones[mv(3, 4)] = domain.Player1
	d := mustSelect(t, boardWith(stones), domain.Player1)
	if d.Reason != ReasonBlock || d.Move != mv(6, 4) {
		t.Fatalf("expected block at (6, 4), got %v (%s)", d.Move, d.Reason)
	}
}

func TestSelectMovePrefersWinOverEverything(t *testing.T) {
	// a corner win with a crowded, central alternative and an opponent four
	stones := line(domain.Player1, mv(0, 0), mv(0, 1), mv(0, 2), mv(0, 3))
	for _, m := range []domain.Move{mv(7, 1), mv(7, 2), mv(7, 3), mv(7, 4)} {
		stones[m] = domain.Player2
	}
	for _, m := range []domain.Move{mv(2, 2), mv(2, 4), mv(4, 2), mv(4, 4), mv(5, 3)} {
		stones[m] = domain.Player2
	}
	b := boardWith(stones)
	w := DefaultWeights()
	if ScorePosition(&b, mv(0, 4), w) >= ScorePosition(&b, mv(3, 3), w) {
		t.Fatalf("scenario needs the win to score lower than the center")
	}

	d := mustSelect(t, b, domain.Player1)
	if d.Reason != ReasonWin || d.Move != mv(0, 4) {
		t.Fatalf("expected win at (0, 4), got %v (%s)", d.Move, d.Reason)
	}
}

func TestSelectMoveCenterControl(t *testing.T) {
	b := boardWith(map[domain.Move]domain.PlayerID{
		mv(0, 0): domain.Player2,
		mv(7, 7): domain.Player1,
	})
	d := mustSelect(t, b, domain.Player1)
	if d.Reason != ReasonCenter || d.Move != mv(3, 3) {
		t.Fatalf("expected center (3, 3), got %v (%s)", d.Move, d.Reason)
	}

	b[3][3] = domain.Player2
	b[3][4] = domain.Player2
	d = mustSelect(t, b, domain.Player1)
	if d.Reason != ReasonCenter || d.Move != mv(4, 3) {
		t.Fatalf("expected the next free center (4, 3), got %v (%s)", d.Move, d.Reason)
	}
}

func TestSelectMoveCenterOnlyFromLegalSet(t *testing.T) {
	b := domain.NewBoard()
	legal := []domain.Move{mv(0, 0), mv(4, 4), mv(7, 7)}
	d, err := SelectMove(&b, legal, domain.Player1, DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Move != mv(4, 4) {
		t.Fatalf("expected the only legal center cell, got %v", d.Move)
	}
}

func TestSelectMoveHeuristicTieBreaksOnOrder(t *testing.T) {
	b := boardWith(map[domain.Move]domain.PlayerID{
		mv(3, 3): domain.Player1,
		mv(3, 4): domain.Player2,
		mv(4, 3): domain.Player2,
		mv(4, 4): domain.Player1,
	})
	d := mustSelect(t, b, domain.Player1)
	if d.Reason != ReasonHeuristic {
		t.Fatalf("expected heuristic, got %s", d.Reason)
	}
	// (2,3), (2,4), (3,2), ... all score 5 + 2*2; the first in row-major order wins
	if d.Move != mv(2, 3) || d.Score != 9 {
		t.Fatalf("expected (2, 3) scoring 9, got %v scoring %f", d.Move, d.Score)
	}

	// the same moves in reverse order pick the last of the tied group instead
	legal := b.EmptyCells()
	for i, j := 0, len(legal)-1; i < j; i, j = i+1, j-1 {
		legal[i], legal[j] = legal[j], legal[i]
	}
	rev, err := SelectMove(&b, legal, domain.Player1, DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rev.Score != 9 || rev.Move == d.Move {
		t.Fatalf("expected another move with score 9, got %v scoring %f", rev.Move, rev.Score)
	}
}

func TestSelectMoveEmptyLegalSet(t *testing.T) {
	b := domain.NewBoard()
	if _, err := SelectMove(&b, nil, domain.Player1, DefaultWeights()); !errors.Is(err, domain.ErrNoLegalMoves) {
		t.Fatalf("expected ErrNoLegalMoves, got %v", err)
	}
	if _, err := SelectMove(&b, []domain.Move{}, domain.Player1, DefaultWeights()); !errors.Is(err, domain.ErrNoLegalMoves) {
		t.Fatalf("expected ErrNoLegalMoves, got %v", err)
	}
}

func TestSelectMoveRejectsOccupiedLegalMove(t *testing.T) {
	b := boardWith(line(domain.Player2, mv(0, 0)))
	if _, err := SelectMove(&b, []domain.Move{mv(0, 0)}, domain.Player1, DefaultWeights()); !errors.Is(err, domain.ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
}

func TestSelectMoveAlwaysReturnsLegalMove(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 100; round++ {
		b := domain.NewBoard()
		stones := rng.Intn(50)
		for i := 0; i < stones; i++ {
			b[rng.Intn(domain.Size)][rng.Intn(domain.Size)] = domain.PlayerID(1 + rng.Intn(2))
		}
		legal := b.EmptyCells()
		if len(legal) == 0 {
			continue
		}
		before := b
		d, err := SelectMove(&b, legal, domain.Player2, DefaultWeights())
		if err != nil {
			t.Fatalf("round %d: unexpected error: %v", round, err)
		}
		if !containsMove(legal, d.Move) {
			t.Fatalf("round %d: %v is not legal", round, d.Move)
		}
		if b != before {
			t.Fatalf("round %d: SelectMove changed the board", round)
		}
	}
}
