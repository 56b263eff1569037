package llm

import (
	"fmt"
	"strings"

	"github.com/iamasit07/gomoku-agent/internal/domain"
	"github.com/iamasit07/gomoku-agent/internal/service/bot"
)

const RECENT_MOVES_IN_PROMPT = 6

const SystemPrompt = `You are an EXPERT Gomoku strategist. You play on an 8x8 board where 5-in-a-row wins.

PRIORITY SYSTEM (check in this exact order):
1. INSTANT WIN: if you can make 5-in-a-row, play it immediately.
2. CRITICAL BLOCK: if the opponent can make 5-in-a-row next turn, block it.
3. CREATE DOUBLE THREAT: two open threes or a four plus an open three.
4. BLOCK OPPONENT DOUBLE THREAT: stop their forcing moves early.
5. BUILD: open threes (.XXX.) before semi-open threes (OXXX.).
6. POSITION: control the center (3,3), (3,4), (4,3), (4,4) and stay connected.

BOARD READING GUIDE:
- Your stones and the opponent's stones are given as X or O; you are told which one is yours.
- Empty cells are '.'.
- Coordinates are (row, col): (0,0) is top-left, (7,7) is bottom-right.
- You may only play on an empty cell.

RESPONSE FORMAT - respond with a single valid JSON object and nothing else:
{
    "analysis": "short step-by-step analysis following the priority system",
    "strategy": "WIN, BLOCK, ATTACK or POSITION",
    "row": <number>,
    "col": <number>
}`

// GamePhase labels the stage of the game by number of stones played.
func GamePhase(moveCount int) string {
	switch {
	case moveCount < 10:
		return "Opening"
	case moveCount < 20:
		return "Middle Game"
	default:
		return "Endgame"
	}
}

// BuildMessages creates the system and user messages for one decision.
func BuildMessages(g *domain.Game, legal []domain.Move) []Message {
	return []Message{
		{Role: RoleSystem, Content: SystemPrompt},
		{Role: RoleUser, Content: BuildUserPrompt(g, legal)},
	}
}

func BuildUserPrompt(g *domain.Game, legal []domain.Move) string {
	moveCount := g.MoveCount()
	if moveCount == 0 {
		// boards supplied without history still have a move number
		moveCount = g.Board.StoneCount()
	}
	me := g.CurrentPlayer
	analysis := bot.Analyze(&g.Board, me)

	var sb strings.Builder
	sb.WriteString("CURRENT GAME SITUATION:\n")
	sb.WriteString(g.Board.Render())
	sb.WriteString("\nGAME CONTEXT:\n")
	fmt.Fprintf(&sb, "- Move #%d\n", moveCount+1)
	fmt.Fprintf(&sb, "- You are player: %s (opponent: %s)\n", me.Symbol(), me.Opponent().Symbol())
	fmt.Fprintf(&sb, "- Game phase: %s\n", GamePhase(moveCount))
	fmt.Fprintf(&sb, "- Legal moves available: %d\n", len(legal))
	sb.WriteString("\nTACTICAL SITUATION:\n")
	sb.WriteString(analysis.String())
	sb.WriteString("\n\nRECENT MOVES:\n")
	sb.WriteString(formatRecentMoves(g))
	sb.WriteString("\nApply the priority system step by step and provide your best move as JSON.\n")
	return sb.String()
}

func formatRecentMoves(g *domain.Game) string {
	recent := g.RecentMoves(RECENT_MOVES_IN_PROMPT)
	if len(recent) == 0 {
		return "No moves recorded yet.\n"
	}
	first := len(g.History) - len(recent)
	var sb strings.Builder
	for i, m := range recent {
		n := first + i
		fmt.Fprintf(&sb, "- Move %d: %s at %s\n", n+1, g.PlayerAt(n).Symbol(), m)
	}
	return sb.String()
}
