package domain

type Direction struct {
	DRow int
	DCol int
}

func (d Direction) Reverse() Direction {
	return Direction{DRow: -d.DRow, DCol: -d.DCol}
}

// Axes are the four undirected lines through a cell: horizontal, vertical,
// diagonal \ and diagonal /.
var Axes = [4]Direction{
	{DRow: 0, DCol: 1},
	{DRow: 1, DCol: 0},
	{DRow: 1, DCol: 1},
	{DRow: 1, DCol: -1},
}

// CountRun counts contiguous cells owned by player starting at (row, col)
// inclusive and stepping by dir until it leaves the board or hits another value.
func CountRun(b *Board, row, col int, dir Direction, player PlayerID) int {
	count := 0
	for InBounds(row, col) && b[row][col] == player {
		count++
		row += dir.DRow
		col += dir.DCol
	}
	return count
}

// LineLength is the length of the line of player stones through (row, col)
// along one axis, counting (row, col) itself as a player stone.
func LineLength(b *Board, row, col int, axis Direction, player PlayerID) int {
	back := axis.Reverse()
	return 1 +
		CountRun(b, row+axis.DRow, col+axis.DCol, axis, player) +
		CountRun(b, row+back.DRow, col+back.DCol, back, player)
}

// CheckWin reports whether the stone already on (row, col) completes
// ToWin or more in a row for player.
func CheckWin(b *Board, row, col int, player PlayerID) bool {
	if !InBounds(row, col) || b[row][col] != player {
		return false
	}
	for _, axis := range Axes {
		if LineLength(b, row, col, axis, player) >= ToWin {
			return true
		}
	}
	return false
}

// WinningLine returns the cells of the winning line through (row, col), or nil.
func WinningLine(b *Board, row, col int, player PlayerID) []Move {
	if !CheckWin(b, row, col, player) {
		return nil
	}
	for _, axis := range Axes {
		if LineLength(b, row, col, axis, player) < ToWin {
			continue
		}
		back := axis.Reverse()
		n := CountRun(b, row+back.DRow, col+back.DCol, back, player)
		r, c := row-n*axis.DRow, col-n*axis.DCol
		line := []Move{}
		for InBounds(r, c) && b[r][c] == player {
			line = append(line, Move{Row: r, Col: c})
			r += axis.DRow
			c += axis.DCol
		}
		return line
	}
	return nil
}
