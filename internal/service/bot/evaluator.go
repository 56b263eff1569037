package bot

import (
	"math"

	"github.com/iamasit07/gomoku-agent/internal/domain"
)

const (
	DEFAULT_CENTER_REACH   = 7.0 // centrality score at the exact center, falling by 1 per step
	DEFAULT_NEIGHBOR_BONUS = 2.0 // per occupied neighbouring cell, either colour
)

// the geometric center sits between the four middle cells
const boardCenter = float64(domain.Size-1) / 2

// Weights are the named knobs of the position scorer.
type Weights struct {
	CenterReach   float64 `json:"center_reach"`
	NeighborBonus float64 `json:"neighbor_bonus"`
}

func DefaultWeights() Weights {
	return Weights{
		CenterReach:   DEFAULT_CENTER_REACH,
		NeighborBonus: DEFAULT_NEIGHBOR_BONUS,
	}
}

// ScorePosition rates a candidate cell by how central it is and how many of
// its eight neighbours are already occupied. Higher is better.
func ScorePosition(b *domain.Board, m domain.Move, w Weights) float64 {
	return centrality(m, w) + density(b, m, w)
}

func centrality(m domain.Move, w Weights) float64 {
	distance := math.Abs(float64(m.Row)-boardCenter) + math.Abs(float64(m.Col)-boardCenter)
	return math.Max(0, w.CenterReach-distance)
}

func density(b *domain.Board, m domain.Move, w Weights) float64 {
	occupied := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if b.At(m.Row+dr, m.Col+dc) != domain.Empty {
				occupied++
			}
		}
	}
	return float64(occupied) * w.NeighborBonus
}
