package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"

	"yatra/internal/planner"
	"yatra/pkg/config"
)

type OpenAIClient struct {
	client          *openai.Client
	model           string
	temperature     float32
	maxOutputTokens int
	timeout         time.Duration
}

func NewOpenAIClient(cfg config.AIConfig) *OpenAIClient {
	return &OpenAIClient{
		client:          openai.NewClient(cfg.OpenAIAPIKey),
		model:           cfg.OpenAIModel,
		temperature:     cfg.Temperature,
		maxOutputTokens: int(cfg.MaxOutputTokens),
		timeout:         aiTimeout(cfg.Timeout),
	}
}

func (c *OpenAIClient) Provider() string { return "openai" }
func (c *OpenAIClient) Model() string    { return c.model }

func (c *OpenAIClient) GenerateItinerary(ctx context.Context, profile planner.TripProfile, candidates []planner.CandidateDestination) (string, error) {
	return c.complete(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxOutputTokens,
		TopP:        0.8,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildItineraryPrompt(profile, candidates)},
		},
	})
}

func (c *OpenAIClient) ChatReply(ctx context.Context, cc ChatContext, history []ChatTurn, message string) (string, error) {
	msgs := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: ChatSystemPrompt(cc)},
		{Role: openai.ChatMessageRoleAssistant, Content: ChatGreeting},
	}
	for _, turn := range history {
		role := openai.ChatMessageRoleUser
		if turn.Role == "model" {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: turn.Text})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message})

	return c.complete(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.7,
		MaxTokens:   1000,
		TopP:        0.8,
		Messages:    msgs,
	})
}

func (c *OpenAIClient) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	return c.complete(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.2,
		Messages:    []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: translatePrompt(text, targetLanguage)}},
	})
}

func (c *OpenAIClient) DetectLanguage(ctx context.Context, text string) (string, error) {
	out, err := c.complete(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		MaxTokens:   8,
		Messages:    []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: detectPrompt(text)}},
	})
	if err != nil {
		return "en", err
	}
	return normalizeLanguageCode(out), nil
}

func (c *OpenAIClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.SmallEmbedding3,
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return pgvector.Vector{}, errors.New("openai embeddings: empty response")
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}

func (c *OpenAIClient) Close() error { return nil }

func (c *OpenAIClient) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no content generated by OpenAI")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
