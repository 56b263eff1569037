package agent

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/iamasit07/gomoku-agent/internal/domain"
	"github.com/iamasit07/gomoku-agent/internal/service/bot"
	"github.com/iamasit07/gomoku-agent/internal/service/llm"
)

const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"

	DEFAULT_LLM_TIMEOUT = 20 * time.Second
)

// Why the remote answer was not used.
const (
	FallbackNoClient    = "no_client"
	FallbackRateLimited = "rate_limited"
	FallbackCallFailed  = "call_failed"
	FallbackUnparsable  = "unparsable"
	FallbackIllegalMove = "illegal_move"
)

// CallLimiter decides whether a remote model call may be made right now.
type CallLimiter interface {
	Allow(ctx context.Context) (bool, error)
}

// EventEmitter receives one event per decision.
type EventEmitter interface {
	Emit(event string, payload map[string]any)
}

type Decision struct {
	Move           domain.Move `json:"move"`
	Source         string      `json:"source"`
	Reason         string      `json:"reason,omitempty"`
	FallbackReason string      `json:"fallbackReason,omitempty"`
	Latency        int64       `json:"latencyMs"`
}

type Config struct {
	Timeout    time.Duration
	Difficulty string
	Weights    bot.Weights
}

type Agent struct {
	client  llm.Client
	limiter CallLimiter
	events  EventEmitter
	cfg     Config
}

// New builds an agent. client, limiter and events may all be nil; without a
// client every move comes from the local engine.
func New(client llm.Client, limiter CallLimiter, events EventEmitter, cfg Config) *Agent {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DEFAULT_LLM_TIMEOUT
	}
	if cfg.Difficulty == "" {
		cfg.Difficulty = bot.DifficultyMedium
	}
	if cfg.Weights == (bot.Weights{}) {
		cfg.Weights = bot.DefaultWeights()
	}
	return &Agent{client: client, limiter: limiter, events: events, cfg: cfg}
}

// WithDifficulty returns a copy of the agent that uses another local engine
// level. The client, limiter and emitter are shared.
func (a *Agent) WithDifficulty(difficulty string) *Agent {
	if difficulty == "" || difficulty == a.cfg.Difficulty {
		return a
	}
	cp := *a
	cp.cfg.Difficulty = difficulty
	return &cp
}

func (a *Agent) Difficulty() string {
	return a.cfg.Difficulty
}

// GetMove returns exactly one member of g.LegalMoves() for the player to move.
// Remote failures are logged and never returned; the only error is
// domain.ErrNoLegalMoves (or a precondition error from the local engine).
func (a *Agent) GetMove(ctx context.Context, g *domain.Game) (Decision, error) {
	start := time.Now()
	legal := g.LegalMoves()
	if len(legal) == 0 {
		return Decision{}, domain.ErrNoLegalMoves
	}

	move, fallbackReason := a.tryRemote(ctx, g, legal)
	if fallbackReason == "" {
		d := Decision{Move: move, Source: SourceLLM, Latency: time.Since(start).Milliseconds()}
		log.Printf("[AGENT] LLM move %s for %s", move, g.CurrentPlayer.Symbol())
		a.emit(g, d)
		return d, nil
	}

	local, err := bot.CalculateBestMove(&g.Board, legal, g.CurrentPlayer, a.cfg.Difficulty, a.cfg.Weights)
	if err != nil {
		return Decision{}, err
	}
	d := Decision{
		Move:           local.Move,
		Source:         SourceFallback,
		Reason:         local.Reason,
		FallbackReason: fallbackReason,
		Latency:        time.Since(start).Milliseconds(),
	}
	log.Printf("[AGENT] Fallback move %s for %s (%s, %s)", d.Move, g.CurrentPlayer.Symbol(), fallbackReason, local.Reason)
	a.emit(g, d)
	return d, nil
}

// tryRemote makes at most one model call. An empty reason means the move is
// usable.
func (a *Agent) tryRemote(ctx context.Context, g *domain.Game, legal []domain.Move) (domain.Move, string) {
	if a.client == nil {
		return domain.Move{}, FallbackNoClient
	}
	if a.limiter != nil {
		ok, err := a.limiter.Allow(ctx)
		if err != nil {
			// limiter outage should not block play
			log.Printf("[AGENT] Limiter error, allowing call: %v", err)
		} else if !ok {
			return domain.Move{}, FallbackRateLimited
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	text, err := a.client.Complete(callCtx, llm.BuildMessages(g, legal))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Printf("[AGENT] LLM call timed out after %s", a.cfg.Timeout)
		} else {
			log.Printf("[AGENT] LLM call failed: %v", err)
		}
		return domain.Move{}, FallbackCallFailed
	}

	move, err := llm.ParseMove(text)
	if err != nil {
		log.Printf("[AGENT] Could not parse LLM response: %v", err)
		return domain.Move{}, FallbackUnparsable
	}
	for _, m := range legal {
		if m == move {
			return move, ""
		}
	}
	log.Printf("[AGENT] LLM suggested illegal move %s", move)
	return domain.Move{}, FallbackIllegalMove
}

func (a *Agent) emit(g *domain.Game, d Decision) {
	if a.events == nil {
		return
	}
	a.events.Emit("agent_move", map[string]any{
		"player":         g.CurrentPlayer.Symbol(),
		"row":            d.Move.Row,
		"col":            d.Move.Col,
		"source":         d.Source,
		"reason":         d.Reason,
		"fallbackReason": d.FallbackReason,
		"moveNumber":     len(g.History) + 1,
		"latencyMs":      d.Latency,
	})
}
