package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/gomoku-agent/internal/service/game"
)

type WatchHandler struct {
	SessionManager *game.SessionManager
}

func NewWatchHandler(sm *game.SessionManager) *WatchHandler {
	return &WatchHandler{SessionManager: sm}
}

type liveGamesResponse struct {
	Games []game.GameSummary `json:"games"`
	Count int                `json:"count"`
}

// GetLiveGames returns all human vs agent games still in progress
func (h *WatchHandler) GetLiveGames(c *gin.Context) {
	games := h.SessionManager.ActiveGames()
	c.JSON(http.StatusOK, liveGamesResponse{Games: games, Count: len(games)})
}
