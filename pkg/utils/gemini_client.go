package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/pgvector/pgvector-go"
	"google.golang.org/api/option"

	"yatra/internal/planner"
	"yatra/pkg/config"
)

type GeminiClient struct {
	client          *genai.Client
	model           string
	temperature     float32
	maxOutputTokens int32
	timeout         time.Duration
}

func NewGeminiClient(cfg config.AIConfig) (*GeminiClient, error) {
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:          client,
		model:           model,
		temperature:     cfg.Temperature,
		maxOutputTokens: cfg.MaxOutputTokens,
		timeout:         aiTimeout(cfg.Timeout),
	}, nil
}

func (c *GeminiClient) Provider() string { return "gemini" }
func (c *GeminiClient) Model() string    { return c.model }

func (c *GeminiClient) GenerateItinerary(ctx context.Context, profile planner.TripProfile, candidates []planner.CandidateDestination) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(c.temperature)
	m.SetMaxOutputTokens(c.maxOutputTokens)
	m.SetTopP(0.8)
	m.SetTopK(40)
	m.ResponseMIMEType = "application/json"

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := m.GenerateContent(ctx, genai.Text(BuildItineraryPrompt(profile, candidates)))
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}
	return firstText(resp)
}

func (c *GeminiClient) ChatReply(ctx context.Context, cc ChatContext, history []ChatTurn, message string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.7)
	m.SetMaxOutputTokens(1000)
	m.SetTopP(0.8)
	m.SetTopK(40)

	cs := m.StartChat()
	cs.History = []*genai.Content{
		{Role: "user", Parts: []genai.Part{genai.Text(ChatSystemPrompt(cc))}},
		{Role: "model", Parts: []genai.Part{genai.Text(ChatGreeting)}},
	}
	for _, turn := range history {
		role := "user"
		if turn.Role == "model" {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(turn.Text)}})
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("gemini chat failed: %w", err)
	}
	return firstText(resp)
}

func (c *GeminiClient) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	return c.oneShot(ctx, translatePrompt(text, targetLanguage))
}

func (c *GeminiClient) DetectLanguage(ctx context.Context, text string) (string, error) {
	out, err := c.oneShot(ctx, detectPrompt(text))
	if err != nil {
		return "en", err
	}
	return normalizeLanguageCode(out), nil
}

// GetEmbedding uses the hash embedding so vectors stay comparable with the
// stored 1536-dimension column.
func (c *GeminiClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	return HashEmbedding(text), nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func (c *GeminiClient) oneShot(ctx context.Context, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.2)
	m.SetMaxOutputTokens(1000)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}
	return firstText(resp)
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no content generated by Gemini")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if b.Len() == 0 {
		return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
	}
	return b.String(), nil
}
