package agent

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/iamasit07/gomoku-agent/internal/domain"
	"github.com/iamasit07/gomoku-agent/internal/service/bot"
	"github.com/iamasit07/gomoku-agent/internal/service/llm"
)

type fakeClient struct {
	reply string
	err   error
	delay time.Duration
	calls int
}

func (f *fakeClient) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}

type fakeLimiter struct {
	allow bool
	err   error
}

func (f fakeLimiter) Allow(ctx context.Context) (bool, error) {
	return f.allow, f.err
}

type recordedEvent struct {
	name    string
	payload map[string]any
}

type fakeEmitter struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeEmitter) Emit(event string, payload map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{name: event, payload: payload})
}

// blockGame leaves X with four in row 2 and O to move.
func blockGame(t *testing.T) *domain.Game {
	t.Helper()
	g := domain.NewGame()
	moves := []domain.Move{
		{Row: 2, Col: 1}, {Row: 7, Col: 0},
		{Row: 2, Col: 2}, {Row: 7, Col: 2},
		{Row: 2, Col: 3}, {Row: 7, Col: 4},
		{Row: 2, Col: 4},
	}
	for _, m := range moves {
		if err := g.MakeMove(g.CurrentPlayer, m); err != nil {
			t.Fatalf("setup move %v: %v", m, err)
		}
	}
	return g
}

func isBlock(m domain.Move) bool {
	return m == domain.Move{Row: 2, Col: 0} || m == domain.Move{Row: 2, Col: 5}
}

func TestGetMoveUsesLLMAnswer(t *testing.T) {
	client := &fakeClient{reply: "```json\n{\"analysis\": \"block\", \"row\": 2, \"col\": 5}\n```"}
	events := &fakeEmitter{}
	a := New(client, fakeLimiter{allow: true}, events, Config{})

	d, err := a.GetMove(context.Background(), blockGame(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Source != SourceLLM || d.Move != (domain.Move{Row: 2, Col: 5}) {
		t.Fatalf("expected llm move (2, 5), got %+v", d)
	}
	if len(events.events) != 1 || events.events[0].payload["source"] != SourceLLM {
		t.Fatalf("expected one llm event, got %+v", events.events)
	}
}

func TestGetMoveFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		client  llm.Client
		limiter CallLimiter
		reason  string
	}{
		{"no client", nil, nil, FallbackNoClient},
		{"rate limited", &fakeClient{reply: `{"row": 2, "col": 5}`}, fakeLimiter{allow: false}, FallbackRateLimited},
		{"call error", &fakeClient{err: errors.New("boom")}, nil, FallbackCallFailed},
		{"prose only", &fakeClient{reply: "play the center"}, nil, FallbackUnparsable},
		{"occupied cell", &fakeClient{reply: `{"row": 2, "col": 1}`}, nil, FallbackIllegalMove},
		{"off board", &fakeClient{reply: `{"row": 9, "col": 9}`}, nil, FallbackIllegalMove},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := New(tc.client, tc.limiter, nil, Config{})
			g := blockGame(t)
			before := g.Board

			d, err := a.GetMove(context.Background(), g)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Source != SourceFallback || d.FallbackReason != tc.reason {
				t.Fatalf("expected fallback (%s), got %+v", tc.reason, d)
			}
			if d.Reason != bot.ReasonBlock || !isBlock(d.Move) {
				t.Fatalf("fallback should block the four, got %+v", d)
			}
			if g.Board != before {
				t.Fatalf("board changed during decision")
			}
		})
	}
}

func TestGetMoveLimiterErrorStillCalls(t *testing.T) {
	client := &fakeClient{reply: `{"row": 2, "col": 0}`}
	a := New(client, fakeLimiter{err: errors.New("redis down")}, nil, Config{})

	d, err := a.GetMove(context.Background(), blockGame(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.calls != 1 || d.Source != SourceLLM {
		t.Fatalf("expected the call to go through, got %+v after %d calls", d, client.calls)
	}
}

func TestGetMoveTimeout(t *testing.T) {
	client := &fakeClient{reply: `{"row": 2, "col": 5}`, delay: time.Second}
	a := New(client, nil, nil, Config{Timeout: 20 * time.Millisecond})

	start := time.Now()
	d, err := a.GetMove(context.Background(), blockGame(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("timeout not honoured, took %s", elapsed)
	}
	if d.Source != SourceFallback || d.FallbackReason != FallbackCallFailed {
		t.Fatalf("expected timeout fallback, got %+v", d)
	}
}

func TestGetMoveNoLegalMoves(t *testing.T) {
	g := domain.NewGame()
	g.Status = domain.StatusDraw
	client := &fakeClient{reply: `{"row": 0, "col": 0}`}
	a := New(client, nil, nil, Config{})

	if _, err := a.GetMove(context.Background(), g); !errors.Is(err, domain.ErrNoLegalMoves) {
		t.Fatalf("expected ErrNoLegalMoves, got %v", err)
	}
	if client.calls != 0 {
		t.Fatalf("no remote call expected without legal moves")
	}
}

func TestGetMoveOpeningTakesCenter(t *testing.T) {
	a := New(nil, nil, nil, Config{})
	d, err := a.GetMove(context.Background(), domain.NewGame())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Move != (domain.Move{Row: 3, Col: 3}) || d.Reason != bot.ReasonCenter {
		t.Fatalf("expected center opening, got %+v", d)
	}
}

func TestWithDifficulty(t *testing.T) {
	a := New(nil, nil, nil, Config{})
	if a.Difficulty() != bot.DifficultyMedium {
		t.Fatalf("expected medium default, got %s", a.Difficulty())
	}
	easy := a.WithDifficulty(bot.DifficultyEasy)
	if easy == a || easy.Difficulty() != bot.DifficultyEasy || a.Difficulty() != bot.DifficultyMedium {
		t.Fatalf("WithDifficulty must copy the agent")
	}
	if a.WithDifficulty("") != a {
		t.Fatalf("empty difficulty keeps the agent")
	}
}
