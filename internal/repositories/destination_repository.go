package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"yatra/internal/models/db_models"
)

type DestinationFilter struct {
	Category string
	District string
	Tags     []string
	Featured *bool
	SortBy   string
	Page     int
	Limit    int
}

// CandidateFilter selects destinations a generation call may use.
type CandidateFilter struct {
	Interests []string
	Exclude   []uuid.UUID
	Limit     int
}

type RecommendationFilter struct {
	Interests []string
	Avoid     []string
	Districts []string
	Limit     int
}

type NearbyDestination struct {
	db_models.Destination
	DistanceKm float64 `gorm:"column:distance_km"`
}

type DestinationRepository interface {
	Create(ctx context.Context, d *db_models.Destination) error
	UpsertBySlug(ctx context.Context, d *db_models.Destination) error
	List(ctx context.Context, f DestinationFilter) ([]db_models.Destination, int64, error)
	Nearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]NearbyDestination, error)
	FindPublishedByIDOrSlug(ctx context.Context, key string) (*db_models.Destination, error)
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Destination, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Candidates(ctx context.Context, f CandidateFilter) ([]db_models.Destination, error)
	Recommend(ctx context.Context, f RecommendationFilter) ([]db_models.Destination, error)
}

type destinationRepository struct {
	db *gorm.DB
}

func NewDestinationRepository(db *gorm.DB) DestinationRepository {
	return &destinationRepository{db: db}
}

func (r *destinationRepository) Create(ctx context.Context, d *db_models.Destination) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *destinationRepository) UpsertBySlug(ctx context.Context, d *db_models.Destination) error {
	var existing db_models.Destination
	err := r.db.WithContext(ctx).Unscoped().Where("slug = ?", d.Slug).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(d).Error
	}
	if err != nil {
		return err
	}
	d.ID = existing.ID
	d.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *destinationRepository) published(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&db_models.Destination{}).
		Where("status = ?", db_models.DestinationPublished)
}

func (r *destinationRepository) List(ctx context.Context, f DestinationFilter) ([]db_models.Destination, int64, error) {
	q := r.published(ctx)
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.District != "" {
		q = q.Where("district = ?", f.District)
	}
	if len(f.Tags) > 0 {
		q = q.Where("tags && ?", pq.StringArray(f.Tags))
	}
	if f.Featured != nil {
		q = q.Where("featured = ?", *f.Featured)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch f.SortBy {
	case "rating":
		q = q.Order("rating DESC").Order("name ASC")
	case "newest":
		q = q.Order("created_at DESC")
	default:
		q = q.Order("name ASC")
	}

	var destinations []db_models.Destination
	offset := (f.Page - 1) * f.Limit
	err := q.Offset(offset).Limit(f.Limit).Find(&destinations).Error
	if err != nil {
		return nil, 0, err
	}
	return destinations, total, nil
}

const nearbyQuery = `
	SELECT * FROM (
		SELECT d.*, 6371 * acos(LEAST(1.0,
			cos(radians(?)) * cos(radians(d.latitude)) * cos(radians(d.longitude) - radians(?)) +
			sin(radians(?)) * sin(radians(d.latitude)))) AS distance_km
		FROM destinations d
		WHERE d.status = ? AND d.deleted_at IS NULL
	) AS nearby
	WHERE distance_km <= ?
	ORDER BY distance_km ASC
	LIMIT ?`

// Nearby uses the haversine distance in kilometres.
func (r *destinationRepository) Nearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]NearbyDestination, error) {
	var rows []NearbyDestination
	err := r.db.WithContext(ctx).
		Raw(nearbyQuery, lat, lng, lat, db_models.DestinationPublished, radiusKm, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *destinationRepository) FindPublishedByIDOrSlug(ctx context.Context, key string) (*db_models.Destination, error) {
	q := r.published(ctx)
	if id, err := uuid.Parse(key); err == nil {
		q = q.Where("id = ?", id)
	} else {
		q = q.Where("slug = ?", key)
	}

	var d db_models.Destination
	if err := q.First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *destinationRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Destination, error) {
	var d db_models.Destination
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *destinationRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Unscoped().
		Model(&db_models.Destination{}).
		Where("slug = ?", slug).
		Count(&n).Error
	return n > 0, err
}

func (r *destinationRepository) Candidates(ctx context.Context, f CandidateFilter) ([]db_models.Destination, error) {
	q := r.published(ctx)
	if len(f.Exclude) > 0 {
		q = q.Where("id NOT IN ?", f.Exclude)
	}
	if len(f.Interests) > 0 {
		q = q.Where("tags && ?", pq.StringArray(f.Interests))
	}

	var destinations []db_models.Destination
	err := q.Order("rating DESC").
		Order("featured DESC").
		Limit(f.Limit).
		Find(&destinations).Error
	if err != nil {
		return nil, err
	}
	return destinations, nil
}

func (r *destinationRepository) Recommend(ctx context.Context, f RecommendationFilter) ([]db_models.Destination, error) {
	q := r.published(ctx)
	if len(f.Interests) > 0 {
		q = q.Where("tags && ?", pq.StringArray(f.Interests))
	}
	if len(f.Avoid) > 0 {
		q = q.Where("NOT (tags && ?)", pq.StringArray(f.Avoid))
	}
	if len(f.Districts) > 0 {
		q = q.Where("LOWER(district) IN ? OR featured = ?", f.Districts, true)
	}

	var destinations []db_models.Destination
	err := q.Order("rating DESC").
		Order("featured DESC").
		Limit(f.Limit).
		Find(&destinations).Error
	if err != nil {
		return nil, err
	}
	return destinations, nil
}
