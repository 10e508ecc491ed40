package utils

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"

	"yatra/internal/planner"
	"yatra/pkg/config"
)

// EmbeddingDimensions matches the vector column and OpenAI's small model.
const EmbeddingDimensions = 1536

type EmbeddingClientInterface interface {
	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
}

// AIClientInterface is every model-backed capability the services use.
type AIClientInterface interface {
	planner.Generator
	EmbeddingClientInterface
	ChatReply(ctx context.Context, cc ChatContext, history []ChatTurn, message string) (string, error)
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
	DetectLanguage(ctx context.Context, text string) (string, error)
	Close() error
}

// NewAIClient picks the provider named by AI_PROVIDER. It returns nil and no
// error for "none" or when the key is missing, which puts the itinerary
// engine on the basic path and the chat on escalation.
func NewAIClient(cfg config.AIConfig) (AIClientInterface, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, nil
		}
		return NewOpenAIClient(cfg), nil
	case "gemini", "":
		if cfg.GeminiAPIKey == "" {
			return nil, nil
		}
		c, err := NewGeminiClient(cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}

const defaultAITimeout = 30 * time.Second

func aiTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultAITimeout
	}
	return d
}

// HashEmbedding is a deterministic bag-of-words vector for providers without
// an embedding endpoint.
func HashEmbedding(text string) pgvector.Vector {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(text)))
	vector := make([]float32, EmbeddingDimensions)

	for _, word := range words {
		h := fnv.New32a()
		_, _ = h.Write([]byte(word))
		hash := h.Sum32()
		for i := 0; i < EmbeddingDimensions; i++ {
			vector[i] += float32(math.Sin(float64(hash+uint32(i))) * 0.1)
		}
	}

	var magnitude float64
	for _, v := range vector {
		magnitude += float64(v) * float64(v)
	}
	if magnitude > 0 {
		m := float32(math.Sqrt(magnitude))
		for i := range vector {
			vector[i] /= m
		}
	}
	return pgvector.NewVector(vector)
}
