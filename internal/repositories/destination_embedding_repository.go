package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yatra/internal/models/db_models"
)

type SimilarDestination struct {
	DestinationID uuid.UUID `gorm:"column:destination_id"`
	Similarity    float64   `gorm:"column:similarity"`
}

type IDestinationEmbeddingRepository interface {
	Upsert(ctx context.Context, e *db_models.DestinationEmbedding) error
	RankBySimilarity(ctx context.Context, vector pgvector.Vector, ids []uuid.UUID) ([]SimilarDestination, error)
}

type destinationEmbeddingRepository struct {
	db *gorm.DB
}

func NewDestinationEmbeddingRepository(db *gorm.DB) IDestinationEmbeddingRepository {
	return &destinationEmbeddingRepository{db: db}
}

func (r *destinationEmbeddingRepository) Upsert(ctx context.Context, e *db_models.DestinationEmbedding) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "destination_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "tags", "embedding"}),
		}).
		Create(e).Error
}

// RankBySimilarity orders ids by cosine distance to vector, closest first.
// Destinations without an embedding are not returned.
func (r *destinationEmbeddingRepository) RankBySimilarity(ctx context.Context, vector pgvector.Vector, ids []uuid.UUID) ([]SimilarDestination, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []SimilarDestination

	query := `
		SELECT destination_id, 1 - (embedding <=> ?) AS similarity
		FROM destination_embeddings
		WHERE destination_id IN ?
		ORDER BY embedding <=> ?`

	err := r.db.WithContext(ctx).Raw(query, vector, ids, vector).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
