package game

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/iamasit07/gomoku-agent/internal/domain"
	"github.com/iamasit07/gomoku-agent/internal/service/agent"
	"github.com/iamasit07/gomoku-agent/pkg/uid"
)

const (
	ReasonFiveInARow = "five_in_a_row"
	ReasonDraw       = "draw"
	ReasonAbandoned  = "abandoned"
)

type GameSession struct {
	GameID      string
	ClientID    string
	HumanPlayer domain.PlayerID
	AgentPlayer domain.PlayerID
	Game        *domain.Game
	Difficulty  string
	Reason      string
	CreatedAt   time.Time
	FinishedAt  time.Time
	mu          sync.Mutex
	sm          *SessionManager
}

type ConnectionManagerInterface interface {
	SendMessage(clientID string, message domain.ServerMessage) error
}

// Mover picks the agent's reply. *agent.Agent satisfies it.
type Mover interface {
	GetMove(ctx context.Context, g *domain.Game) (agent.Decision, error)
}

// MoverFactory returns the mover for a difficulty level.
type MoverFactory func(difficulty string) Mover

// SessionManager manages active human vs agent sessions
type SessionManager struct {
	Session      map[string]*GameSession // gameID → GameSession
	ClientToGame map[string]string       // clientID → gameID
	mu           sync.RWMutex
	movers       MoverFactory
	conn         ConnectionManagerInterface

	// AgentDelay is a pause before the agent answers so replies do not feel instant.
	AgentDelay time.Duration
}

func NewSessionManager(movers MoverFactory, conn ConnectionManagerInterface) *SessionManager {
	return &SessionManager{
		Session:      make(map[string]*GameSession),
		ClientToGame: make(map[string]string),
		movers:       movers,
		conn:         conn,
		AgentDelay:   500 * time.Millisecond,
	}
}

// CreateSession starts a new game for a client, abandoning any game it had.
// If the human chose O the agent opens.
func (sm *SessionManager) CreateSession(clientID string, human domain.PlayerID, difficulty string) (*GameSession, error) {
	if !human.IsPlayer() {
		return nil, domain.ErrInvalidPlayer
	}
	sm.RemoveSessionByClientID(clientID)

	gs := &GameSession{
		GameID:      uid.GenerateGameID(),
		ClientID:    clientID,
		HumanPlayer: human,
		AgentPlayer: human.Opponent(),
		Game:        domain.NewGame(),
		Difficulty:  difficulty,
		CreatedAt:   time.Now(),
		sm:          sm,
	}

	sm.mu.Lock()
	sm.Session[gs.GameID] = gs
	sm.ClientToGame[clientID] = gs.GameID
	sm.mu.Unlock()

	log.Printf("[SESSION] Created session %s: client %s plays %s (%s)", gs.GameID, clientID, human.Symbol(), difficulty)

	board := gs.Game.Board
	sm.conn.SendMessage(clientID, domain.ServerMessage{
		Type:        "game_start",
		GameID:      gs.GameID,
		YourPlayer:  int(human),
		CurrentTurn: int(gs.Game.CurrentPlayer),
		Board:       &board,
	})

	if gs.AgentPlayer == gs.Game.CurrentPlayer {
		gs.triggerAgentMove()
	}
	return gs, nil
}

func (sm *SessionManager) GetSessionByClientID(clientID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	gameID, exists := sm.ClientToGame[clientID]
	if !exists {
		return nil, false
	}

	session, exists := sm.Session[gameID]
	return session, exists
}

func (sm *SessionManager) GetSessionByGameID(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.removeSessionLocked(gameID)
}

// RemoveSessionByClientID drops the client's game, if any.
func (sm *SessionManager) RemoveSessionByClientID(clientID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if gameID, exists := sm.ClientToGame[clientID]; exists {
		sm.removeSessionLocked(gameID)
	}
}

// removeSessionLocked removes session from maps without acquiring lock (caller must hold it)
func (sm *SessionManager) removeSessionLocked(gameID string) error {
	session, exists := sm.Session[gameID]
	if !exists {
		return fmt.Errorf("session not found")
	}

	log.Printf("[SESSION] Removing session %s", gameID)

	if sm.ClientToGame[session.ClientID] == gameID {
		delete(sm.ClientToGame, session.ClientID)
	}
	delete(sm.Session, gameID)

	return nil
}

// CleanupOldSessions drops finished games after an hour and stuck ones after a day.
func (sm *SessionManager) CleanupOldSessions() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	now := time.Now()

	for gameID, session := range sm.Session {
		session.mu.Lock()
		finished := session.Game.IsFinished()
		finishedAt := session.FinishedAt
		session.mu.Unlock()

		if (finished && now.Sub(finishedAt) > 1*time.Hour) || now.Sub(session.CreatedAt) > 24*time.Hour {
			sm.removeSessionLocked(gameID)
			count++
		}
	}

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale game sessions", count)
	}
	return count
}

type GameSummary struct {
	GameID     string `json:"gameId"`
	Human      string `json:"human"`
	Difficulty string `json:"difficulty"`
	MoveCount  int    `json:"moveCount"`
	Status     string `json:"status"`
	StartedAt  string `json:"startedAt"`
}

// ActiveGames lists the games that are still being played.
func (sm *SessionManager) ActiveGames() []GameSummary {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	games := make([]GameSummary, 0, len(sm.Session))
	for _, gs := range sm.Session {
		gs.mu.Lock()
		if !gs.Game.IsFinished() {
			games = append(games, GameSummary{
				GameID:     gs.GameID,
				Human:      gs.HumanPlayer.Symbol(),
				Difficulty: gs.Difficulty,
				MoveCount:  gs.Game.MoveCount(),
				Status:     string(gs.Game.Status),
				StartedAt:  gs.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
		gs.mu.Unlock()
	}
	return games
}

// HandleMove plays the human's stone and hands the turn to the agent.
func (gs *GameSession) HandleMove(clientID string, m domain.Move) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if clientID != gs.ClientID {
		return fmt.Errorf("client %s is not part of game %s", clientID, gs.GameID)
	}
	if err := gs.Game.MakeMove(gs.HumanPlayer, m); err != nil {
		return err
	}

	gs.broadcastMoveLocked(gs.HumanPlayer, m, "")
	if gs.Game.IsFinished() {
		gs.finishLocked()
		return nil
	}

	gs.triggerAgentMove()
	return nil
}

func (gs *GameSession) triggerAgentMove() {
	go func() {
		if delay := gs.sm.AgentDelay; delay > 0 {
			time.Sleep(delay)
		}
		if err := gs.HandleAgentMove(context.Background()); err != nil {
			log.Printf("[AGENT] Error handling agent move in %s: %v", gs.GameID, err)
		}
	}()
}

// HandleAgentMove asks the agent for a move on a snapshot of the game, so the
// session lock is not held during the remote call.
func (gs *GameSession) HandleAgentMove(ctx context.Context) error {
	gs.mu.Lock()
	if gs.Game.IsFinished() || gs.Game.CurrentPlayer != gs.AgentPlayer {
		gs.mu.Unlock()
		return nil
	}
	snapshot := gs.Game.Clone()
	gs.mu.Unlock()

	decision, err := gs.sm.movers(gs.Difficulty).GetMove(ctx, snapshot)
	if err != nil {
		return err
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	// game moved on (or was left) while the agent was thinking
	if gs.Game.MoveCount() != snapshot.MoveCount() || gs.Game.IsFinished() {
		return nil
	}
	if err := gs.Game.MakeMove(gs.AgentPlayer, decision.Move); err != nil {
		return err
	}

	gs.broadcastMoveLocked(gs.AgentPlayer, decision.Move, decision.Source)
	if gs.Game.IsFinished() {
		gs.finishLocked()
	}
	return nil
}

func (gs *GameSession) broadcastMoveLocked(player domain.PlayerID, m domain.Move, source string) {
	board := gs.Game.Board
	move := m
	gs.sm.conn.SendMessage(gs.ClientID, domain.ServerMessage{
		Type:     "move_made",
		GameID:   gs.GameID,
		Move:     &move,
		Player:   int(player),
		Board:    &board,
		NextTurn: int(gs.Game.CurrentPlayer),
		Source:   source,
	})
}

func (gs *GameSession) finishLocked() {
	gs.FinishedAt = time.Now()
	msg := domain.ServerMessage{Type: "game_over", GameID: gs.GameID}

	if gs.Game.Status == domain.StatusWon {
		gs.Reason = ReasonFiveInARow
		msg.Winner = gs.Game.Winner.Symbol()
		last := gs.Game.History[len(gs.Game.History)-1]
		msg.WinningLine = domain.WinningLine(&gs.Game.Board, last.Row, last.Col, gs.Game.Winner)
	} else {
		gs.Reason = ReasonDraw
		msg.Winner = "draw"
	}
	msg.Reason = gs.Reason
	board := gs.Game.Board
	msg.Board = &board

	log.Printf("[GAME] Game %s over: %s (%d moves)", gs.GameID, gs.Reason, gs.Game.MoveCount())
	gs.sm.conn.SendMessage(gs.ClientID, msg)
}

// HandleDisconnect ends the client's game when its socket goes away.
func (gs *GameSession) HandleDisconnect() {
	gs.mu.Lock()
	if !gs.Game.IsFinished() {
		gs.Reason = ReasonAbandoned
		gs.FinishedAt = time.Now()
		log.Printf("[GAME] Game %s abandoned after %d moves", gs.GameID, gs.Game.MoveCount())
	}
	gs.mu.Unlock()

	gs.sm.RemoveSession(gs.GameID)
}
