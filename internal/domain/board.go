package domain

import (
	"fmt"
	"strings"
)

// Board is the fixed 8x8 grid. Row 0 is the top row, column 0 the left column.
// It is a value type: assigning a Board copies every cell.
type Board [Size][Size]PlayerID

type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (m Move) String() string {
	return fmt.Sprintf("(%d, %d)", m.Row, m.Col)
}

func NewBoard() Board {
	return Board{}
}

// ParseBoard builds a Board from its wire form, rejecting anything that is
// not exactly Size x Size or holds a value other than 0, 1 or 2.
func ParseBoard(cells [][]int) (Board, error) {
	var b Board
	if len(cells) != Size {
		return b, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoard, Size, len(cells))
	}
	for r, row := range cells {
		if len(row) != Size {
			return b, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidBoard, r, len(row), Size)
		}
		for c, v := range row {
			p := PlayerID(v)
			if p != Empty && !p.IsPlayer() {
				return b, fmt.Errorf("%w: cell (%d, %d) holds %d", ErrInvalidBoard, r, c, v)
			}
			b[r][c] = p
		}
	}
	return b, nil
}

// Cells returns the wire form of the board.
func (b *Board) Cells() [][]int {
	out := make([][]int, Size)
	for r := range b {
		out[r] = make([]int, Size)
		for c, p := range b[r] {
			out[r][c] = int(p)
		}
	}
	return out
}

func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// At reads a cell. Out-of-bounds coordinates read as Empty.
func (b *Board) At(row, col int) PlayerID {
	if !InBounds(row, col) {
		return Empty
	}
	return b[row][col]
}

func (b *Board) IsEmpty(row, col int) bool {
	return InBounds(row, col) && b[row][col] == Empty
}

// Place puts a stone on an empty in-bounds cell.
func (b *Board) Place(m Move, player PlayerID) error {
	if !player.IsPlayer() {
		return ErrInvalidPlayer
	}
	if !InBounds(m.Row, m.Col) {
		return ErrOutOfBounds
	}
	if b[m.Row][m.Col] != Empty {
		return ErrCellOccupied
	}
	b[m.Row][m.Col] = player
	return nil
}

// EmptyCells enumerates every empty cell in row-major order.
func (b *Board) EmptyCells() []Move {
	moves := make([]Move, 0, Size*Size)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] == Empty {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}
	return moves
}

func (b *Board) IsFull() bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] == Empty {
				return false
			}
		}
	}
	return true
}

func (b *Board) StoneCount() int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] != Empty {
				n++
			}
		}
	}
	return n
}

// Render draws the board with a column header and row labels, X and O for
// the players and '.' for empty cells.
func (b *Board) Render() string {
	var sb strings.Builder
	sb.WriteString(" ")
	for c := 0; c < Size; c++ {
		fmt.Fprintf(&sb, " %d", c)
	}
	sb.WriteString("\n")
	for r := 0; r < Size; r++ {
		fmt.Fprintf(&sb, "%d", r)
		for c := 0; c < Size; c++ {
			sb.WriteString(" ")
			sb.WriteString(b[r][c].Symbol())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
