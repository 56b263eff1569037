// Command selfplay lets two agents play one game in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/iamasit07/gomoku-agent/internal/config"
	"github.com/iamasit07/gomoku-agent/internal/domain"
	"github.com/iamasit07/gomoku-agent/internal/service/agent"
	"github.com/iamasit07/gomoku-agent/internal/service/bot"
	"github.com/iamasit07/gomoku-agent/internal/service/llm"
	"github.com/joho/godotenv"
)

func main() {
	xLevel := flag.String("x", bot.DifficultyMedium, "difficulty for X")
	oLevel := flag.String("o", bot.DifficultyEasy, "difficulty for O")
	useLLM := flag.Bool("llm", false, "let X ask the remote model first")
	pause := flag.Duration("pause", 0, "pause between moves")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.LoadConfig()
	weights := bot.Weights{CenterReach: cfg.CenterReach, NeighborBonus: cfg.NeighborBonus}

	var client llm.Client
	if *useLLM {
		c, err := llm.NewOpenAIClient(llm.Options{
			APIKey:      cfg.LLMAPIKey,
			Model:       cfg.LLMModel,
			Endpoint:    cfg.LLMEndpoint,
			Temperature: cfg.LLMTemperature,
			MaxTokens:   cfg.LLMMaxTokens,
		})
		if err != nil {
			log.Fatalf("Cannot use the remote model: %v", err)
		}
		client = c
	}

	players := map[domain.PlayerID]*agent.Agent{
		domain.Player1: agent.New(client, nil, nil, agent.Config{Timeout: cfg.LLMTimeout, Difficulty: *xLevel, Weights: weights}),
		domain.Player2: agent.New(nil, nil, nil, agent.Config{Difficulty: *oLevel, Weights: weights}),
	}

	g := domain.NewGame()
	ctx := context.Background()
	for !g.IsFinished() {
		mover := g.CurrentPlayer
		d, err := players[mover].GetMove(ctx, g)
		if err != nil {
			log.Fatalf("No move for %s: %v", mover.Symbol(), err)
		}
		if err := g.MakeMove(mover, d.Move); err != nil {
			log.Fatalf("Agent produced a bad move %s: %v", d.Move, err)
		}

		fmt.Printf("Move %d: %s at %s [%s %s]\n", g.MoveCount(), mover.Symbol(), d.Move, d.Source, d.Reason)
		fmt.Println(g.Board.Render())
		if *pause > 0 {
			time.Sleep(*pause)
		}
	}

	if g.Status == domain.StatusWon {
		fmt.Printf("%s wins after %d moves\n", g.Winner.Symbol(), g.MoveCount())
	} else {
		fmt.Println("Draw")
	}
}
