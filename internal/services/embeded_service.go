package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"yatra/internal/models/db_models"
	"yatra/internal/repositories"
	"yatra/pkg/logger"
	"yatra/pkg/utils"
)

type EmbededServiceInterface interface {
	Embed(ctx context.Context, text string) (pgvector.Vector, error)
	StoreDestination(ctx context.Context, d *db_models.Destination) error
	// RerankByInterests orders destinations by similarity to the interests,
	// keeping the original order for destinations without an embedding.
	RerankByInterests(ctx context.Context, interests []string, destinations []db_models.Destination) []db_models.Destination
}

type EmbededService struct {
	embededRepo repositories.IDestinationEmbeddingRepository
	client      utils.EmbeddingClientInterface
	log         *logger.Logger
}

// NewEmbededService falls back to hash embeddings when client is nil.
func NewEmbededService(embededRepo repositories.IDestinationEmbeddingRepository, client utils.EmbeddingClientInterface, log *logger.Logger) EmbededServiceInterface {
	return &EmbededService{
		embededRepo: embededRepo,
		client:      client,
		log:         log,
	}
}

func (s *EmbededService) Embed(ctx context.Context, text string) (pgvector.Vector, error) {
	if s.client == nil {
		return utils.HashEmbedding(text), nil
	}
	return s.client.GetEmbedding(ctx, text)
}

func destinationDocument(d *db_models.Destination) string {
	parts := []string{d.Name, d.Category, d.District, strings.Join(d.Tags, " "), d.ShortDescription}
	return strings.Join(parts, " ")
}

func (s *EmbededService) StoreDestination(ctx context.Context, d *db_models.Destination) error {
	vector, err := s.Embed(ctx, destinationDocument(d))
	if err != nil {
		return err
	}
	return s.embededRepo.Upsert(ctx, &db_models.DestinationEmbedding{
		DestinationID: d.ID,
		Name:          d.Name,
		Tags:          d.Tags,
		Embedding:     vector,
	})
}

func (s *EmbededService) RerankByInterests(ctx context.Context, interests []string, destinations []db_models.Destination) []db_models.Destination {
	if len(interests) == 0 || len(destinations) < 2 {
		return destinations
	}

	vector, err := s.Embed(ctx, strings.Join(interests, " "))
	if err != nil {
		s.log.Warn("interest embedding failed, keeping rating order", "error", err)
		return destinations
	}

	ids := make([]uuid.UUID, len(destinations))
	for i, d := range destinations {
		ids[i] = d.ID
	}
	ranked, err := s.embededRepo.RankBySimilarity(ctx, vector, ids)
	if err != nil {
		s.log.Warn("similarity ranking failed, keeping rating order", "error", err)
		return destinations
	}
	return applyRanking(destinations, ranked)
}

// applyRanking puts ranked destinations first in ranked order; the rest
// follow in their incoming order.
func applyRanking(destinations []db_models.Destination, ranked []repositories.SimilarDestination) []db_models.Destination {
	position := make(map[uuid.UUID]int, len(ranked))
	for i, r := range ranked {
		position[r.DestinationID] = i
	}

	out := make([]db_models.Destination, len(destinations))
	copy(out, destinations)
	sort.SliceStable(out, func(i, j int) bool {
		pi, iok := position[out[i].ID]
		pj, jok := position[out[j].ID]
		switch {
		case iok && jok:
			return pi < pj
		case iok != jok:
			return iok
		default:
			return false
		}
	})
	return out
}
