package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"yatra/internal/models/db_models"
)

type ItineraryFilter struct {
	UserID uuid.UUID
	Status string
	SortBy string
	Page   int
	Limit  int
}

type ItineraryRepository interface {
	Create(ctx context.Context, it *db_models.Itinerary) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Itinerary, error)
	Save(ctx context.Context, it *db_models.Itinerary) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, f ItineraryFilter) ([]db_models.Itinerary, int64, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	IncrementDownloads(ctx context.Context, id uuid.UUID) error
	SaveFeedback(ctx context.Context, id uuid.UUID, values map[string]interface{}) error
	Popular(ctx context.Context, limit int) ([]db_models.Itinerary, error)
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

func (r *itineraryRepository) Create(ctx context.Context, it *db_models.Itinerary) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *itineraryRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Itinerary, error) {
	var it db_models.Itinerary
	err := r.db.WithContext(ctx).First(&it, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}

func (r *itineraryRepository) Save(ctx context.Context, it *db_models.Itinerary) error {
	return r.db.WithContext(ctx).Save(it).Error
}

func (r *itineraryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&db_models.Itinerary{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

var itinerarySortColumns = map[string]string{
	"createdAt": "created_at DESC",
	"startDate": "start_date DESC",
	"budget":    "budget_total DESC",
	"views":     "views DESC",
}

func (r *itineraryRepository) ListByUser(ctx context.Context, f ItineraryFilter) ([]db_models.Itinerary, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&db_models.Itinerary{}).
		Where("user_id = ?", f.UserID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := itinerarySortColumns[f.SortBy]
	if !ok {
		order = itinerarySortColumns["createdAt"]
	}

	var items []db_models.Itinerary
	offset := (f.Page - 1) * f.Limit
	err := q.Order(order).
		Offset(offset).
		Limit(f.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Counter updates skip hooks so the stored plan is not renormalized.
func (r *itineraryRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Itinerary{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (r *itineraryRepository) IncrementDownloads(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Itinerary{}).
		Where("id = ?", id).
		UpdateColumn("downloads", gorm.Expr("downloads + ?", 1)).Error
}

func (r *itineraryRepository) SaveFeedback(ctx context.Context, id uuid.UUID, values map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Itinerary{}).
		Where("id = ?", id).
		UpdateColumns(values).Error
}

func (r *itineraryRepository) Popular(ctx context.Context, limit int) ([]db_models.Itinerary, error) {
	var items []db_models.Itinerary
	err := r.db.WithContext(ctx).
		Where("status IN ?", []string{
			db_models.ItineraryGenerated,
			db_models.ItineraryCustomized,
			db_models.ItineraryFinalized,
		}).
		Order("views DESC").
		Order("feedback_rating DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
