package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

var (
	ErrNoAPIKey      = errors.New("llm api key is not configured")
	ErrEmptyResponse = errors.New("llm returned no choices")
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client produces text for a conversation or fails. One call, no retries.
type Client interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

type Options struct {
	APIKey      string
	Model       string
	Endpoint    string
	Temperature float32
	MaxTokens   int
}

// OpenAIClient talks to any OpenAI-compatible chat completion endpoint
// (Groq by default).
type OpenAIClient struct {
	client *openai.Client
	opts   Options
}

func NewOpenAIClient(opts Options) (*OpenAIClient, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.Endpoint != "" {
		cfg.BaseURL = strings.TrimRight(opts.Endpoint, "/")
	}
	log.Printf("[LLM] Using model %s at %s", opts.Model, cfg.BaseURL)
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		opts:   opts,
	}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, messages []Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.opts.Model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
		Temperature: c.opts.Temperature,
		MaxTokens:   c.opts.MaxTokens,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
