package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/gomoku-agent/internal/domain"
	"github.com/iamasit07/gomoku-agent/internal/service/agent"
	"github.com/iamasit07/gomoku-agent/internal/service/bot"
)

type AgentHandler struct {
	Agent   *agent.Agent
	Weights bot.Weights
}

func NewAgentHandler(a *agent.Agent, w bot.Weights) *AgentHandler {
	return &AgentHandler{Agent: a, Weights: w}
}

type positionRequest struct {
	Board      [][]int       `json:"board" binding:"required"`
	Player     any           `json:"player"`
	History    []domain.Move `json:"history"`
	Difficulty string        `json:"difficulty"`
}

type moveResponse struct {
	agent.Decision
	Player    string `json:"player"`
	RequestID string `json:"requestId,omitempty"`
}

type analyzeResponse struct {
	Player     string        `json:"player"`
	Status     string        `json:"status"`
	LegalMoves int           `json:"legalMoves"`
	Analysis   bot.Analysis  `json:"analysis"`
	Summary    string        `json:"summary"`
	Suggestion *bot.Decision `json:"suggestion,omitempty"`
}

// SuggestMove asks the agent for the next move of a supplied position
func (h *AgentHandler) SuggestMove(c *gin.Context) {
	g, difficulty, ok := h.bindGame(c)
	if !ok {
		return
	}
	if q := c.Query("difficulty"); q != "" {
		difficulty = q
	}

	decision, err := h.Agent.WithDifficulty(difficulty).GetMove(c.Request.Context(), g)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, moveResponse{
		Decision:  decision,
		Player:    g.CurrentPlayer.Symbol(),
		RequestID: c.GetString("request_id"),
	})
}

// Analyze returns the tactical summary and the local engine's choice
func (h *AgentHandler) Analyze(c *gin.Context) {
	g, _, ok := h.bindGame(c)
	if !ok {
		return
	}

	analysis := bot.Analyze(&g.Board, g.CurrentPlayer)
	resp := analyzeResponse{
		Player:     g.CurrentPlayer.Symbol(),
		Status:     string(g.Status),
		LegalMoves: len(g.LegalMoves()),
		Analysis:   analysis,
		Summary:    analysis.String(),
	}
	if resp.LegalMoves > 0 {
		suggestion, err := bot.SelectMove(&g.Board, g.LegalMoves(), g.CurrentPlayer, h.Weights)
		if err != nil {
			writeError(c, err)
			return
		}
		resp.Suggestion = &suggestion
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AgentHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "difficulty": h.Agent.Difficulty()})
}

// bindGame decodes the request body into a game and the requested
// difficulty. It writes the error response itself and reports false when the
// request is unusable.
func (h *AgentHandler) bindGame(c *gin.Context) (*domain.Game, string, bool) {
	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return nil, "", false
	}

	board, err := domain.ParseBoard(req.Board)
	if err != nil {
		writeError(c, err)
		return nil, "", false
	}
	player, err := parsePlayer(req.Player, &board)
	if err != nil {
		writeError(c, err)
		return nil, "", false
	}
	g, err := domain.ResumeGame(board, player, req.History)
	if err != nil {
		writeError(c, err)
		return nil, "", false
	}
	return g, req.Difficulty, true
}

// parsePlayer accepts "X"/"O", 1/2 or nothing. Without a value the side to
// move follows from the stone counts, X having opened.
func parsePlayer(v any, b *domain.Board) (domain.PlayerID, error) {
	switch t := v.(type) {
	case nil:
		if b.StoneCount()%2 == 0 {
			return domain.Player1, nil
		}
		return domain.Player2, nil
	case string:
		return domain.ParsePlayer(t)
	case float64:
		if t != float64(int(t)) {
			return domain.Empty, domain.ErrInvalidPlayer
		}
		return domain.ParsePlayer(strconv.Itoa(int(t)))
	default:
		return domain.Empty, fmt.Errorf("%w: %v", domain.ErrInvalidPlayer, v)
	}
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNoLegalMoves):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidBoard),
		errors.Is(err, domain.ErrInvalidPlayer),
		errors.Is(err, domain.ErrInvalidMove),
		errors.Is(err, domain.ErrOutOfBounds):
		status = http.StatusBadRequest
	default:
		log.Printf("[HTTP] Unexpected error: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
