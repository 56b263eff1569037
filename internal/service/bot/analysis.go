package bot

import (
	"fmt"

	"github.com/iamasit07/gomoku-agent/internal/domain"
)

// Run is a maximal line of one player's stones along an axis.
type Run struct {
	Start     domain.Move      `json:"start"`
	Dir       domain.Direction `json:"dir"`
	Length    int              `json:"length"`
	OpenStart bool             `json:"open_start"`
	OpenEnd   bool             `json:"open_end"`
}

// Open reports whether the run can be extended on both sides.
func (r Run) Open() bool {
	return r.OpenStart && r.OpenEnd
}

// FindRuns lists every maximal run of player, row-major by start cell and
// in Axes order for runs sharing a start. A single stone is reported once
// per axis.
func FindRuns(b *domain.Board, player domain.PlayerID) []Run {
	runs := []Run{}
	for row := 0; row < domain.Size; row++ {
		for col := 0; col < domain.Size; col++ {
			if b[row][col] != player {
				continue
			}
			for _, dir := range domain.Axes {
				prevRow, prevCol := row-dir.DRow, col-dir.DCol
				// only start counting at the first stone of the run
				if b.At(prevRow, prevCol) == player {
					continue
				}
				length := domain.CountRun(b, row, col, dir, player)
				endRow, endCol := row+length*dir.DRow, col+length*dir.DCol
				runs = append(runs, Run{
					Start:     domain.Move{Row: row, Col: col},
					Dir:       dir,
					Length:    length,
					OpenStart: b.IsEmpty(prevRow, prevCol),
					OpenEnd:   b.IsEmpty(endRow, endCol),
				})
			}
		}
	}
	return runs
}

// CountRuns counts the runs of player whose full length is exactly length.
// Longer runs are not counted again from their inner cells.
func CountRuns(b *domain.Board, player domain.PlayerID, length int) int {
	count := 0
	for _, r := range FindRuns(b, player) {
		if r.Length == length {
			count++
		}
	}
	return count
}

// SideSummary counts the interesting runs of one player.
type SideSummary struct {
	Twos       int `json:"twos"`
	Threes     int `json:"threes"`
	Fours      int `json:"fours"`
	OpenTwos   int `json:"open_twos"`
	OpenThrees int `json:"open_threes"`
	OpenFours  int `json:"open_fours"`
}

// Analysis is a human-readable tactical summary. It feeds prompts and the
// analyze endpoint, never move selection.
type Analysis struct {
	Self     SideSummary `json:"self"`
	Opponent SideSummary `json:"opponent"`
	Balance  string      `json:"balance"`
}

func summarize(b *domain.Board, player domain.PlayerID) SideSummary {
	var s SideSummary
	for _, r := range FindRuns(b, player) {
		switch r.Length {
		case 2:
			s.Twos++
			if r.Open() {
				s.OpenTwos++
			}
		case 3:
			s.Threes++
			if r.Open() {
				s.OpenThrees++
			}
		case 4:
			s.Fours++
			if r.Open() {
				s.OpenFours++
			}
		}
	}
	return s
}

func Analyze(b *domain.Board, self domain.PlayerID) Analysis {
	a := Analysis{
		Self:     summarize(b, self),
		Opponent: summarize(b, self.Opponent()),
	}
	switch {
	case a.Self.Threes > a.Opponent.Threes:
		a.Balance = "Attacking"
	case a.Opponent.Threes > a.Self.Threes:
		a.Balance = "Defending"
	default:
		a.Balance = "Equal"
	}
	return a
}

func (a Analysis) String() string {
	return fmt.Sprintf(
		"My position: %d fours, %d threes (%d open), %d twos\n"+
			"Opponent position: %d fours, %d threes (%d open), %d twos\n"+
			"Tactical balance: %s",
		a.Self.Fours, a.Self.Threes, a.Self.OpenThrees, a.Self.Twos,
		a.Opponent.Fours, a.Opponent.Threes, a.Opponent.OpenThrees, a.Opponent.Twos,
		a.Balance,
	)
}
