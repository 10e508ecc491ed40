package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"yatra/internal/models/db_models"
)

type AccountRepository interface {
	InsertTx(ctx context.Context, account *db_models.User) error
	FindById(ctx context.Context, id string) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	Save(ctx context.Context, account *db_models.User) error
	UpdateColumns(ctx context.Context, id uuid.UUID, values map[string]interface{}) error
	PasswordChangedAt(ctx context.Context, userID string) (int64, error)
	AppendSearch(ctx context.Context, id uuid.UUID, entry db_models.SearchEntry, keep int) error

	AddVisited(ctx context.Context, visit *db_models.VisitedDestination) error
	HasVisited(ctx context.Context, userID, destinationID uuid.UUID) (bool, error)
	ListVisited(ctx context.Context, userID uuid.UUID) ([]db_models.VisitedDestination, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (a *accountRepository) InsertTx(ctx context.Context, account *db_models.User) error {
	return a.db.WithContext(ctx).Create(account).Error
}

func (a *accountRepository) FindById(ctx context.Context, id string) (*db_models.User, error) {
	var account db_models.User
	err := a.db.WithContext(ctx).First(&account, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	var account db_models.User
	err := a.db.WithContext(ctx).First(&account, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) Save(ctx context.Context, account *db_models.User) error {
	return a.db.WithContext(ctx).Save(account).Error
}

func (a *accountRepository) UpdateColumns(ctx context.Context, id uuid.UUID, values map[string]interface{}) error {
	return a.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", id).
		UpdateColumns(values).Error
}

// PasswordChangedAt returns 0 for unknown users so the caller can decide.
func (a *accountRepository) PasswordChangedAt(ctx context.Context, userID string) (int64, error) {
	var changedAt int64
	err := a.db.WithContext(ctx).
		Model(&db_models.User{}).
		Select("password_changed_at").
		Where("id = ?", userID).
		Limit(1).
		Scan(&changedAt).Error
	return changedAt, err
}

// AppendSearch adds entry to the user's history and keeps the newest keep entries.
func (a *accountRepository) AppendSearch(ctx context.Context, id uuid.UUID, entry db_models.SearchEntry, keep int) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account db_models.User
		if err := tx.Select("id", "search_history").First(&account, "id = ?", id).Error; err != nil {
			return err
		}
		history := append([]db_models.SearchEntry(account.SearchHistory), entry)
		if keep > 0 && len(history) > keep {
			history = history[len(history)-keep:]
		}
		return tx.Model(&db_models.User{}).
			Where("id = ?", id).
			UpdateColumn("search_history", datatypes.NewJSONSlice(history)).Error
	})
}

func (a *accountRepository) AddVisited(ctx context.Context, visit *db_models.VisitedDestination) error {
	return a.db.WithContext(ctx).Create(visit).Error
}

func (a *accountRepository) HasVisited(ctx context.Context, userID, destinationID uuid.UUID) (bool, error) {
	var n int64
	err := a.db.WithContext(ctx).
		Model(&db_models.VisitedDestination{}).
		Where("user_id = ? AND destination_id = ?", userID, destinationID).
		Count(&n).Error
	return n > 0, err
}

func (a *accountRepository) ListVisited(ctx context.Context, userID uuid.UUID) ([]db_models.VisitedDestination, error) {
	var visits []db_models.VisitedDestination
	err := a.db.WithContext(ctx).
		Preload("Destination").
		Where("user_id = ?", userID).
		Order("visit_date DESC").
		Find(&visits).Error
	if err != nil {
		return nil, err
	}
	return visits, nil
}
