package repositories

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"yatra/internal/models/db_models"
)

type FAQSearch struct {
	Keywords []string
	Language string
	Category string
	Limit    int
}

type FAQRepository interface {
	Search(ctx context.Context, s FAQSearch) ([]db_models.FAQ, error)
	IncrementViews(ctx context.Context, faq *db_models.FAQ) error
	Upsert(ctx context.Context, faq *db_models.FAQ) error
}

type faqRepository struct {
	db *gorm.DB
}

func NewFAQRepository(db *gorm.DB) FAQRepository {
	return &faqRepository{db: db}
}

// Search matches active FAQs whose keywords overlap s.Keywords or whose
// question contains any of them. An empty keyword list matches everything.
func (r *faqRepository) Search(ctx context.Context, s FAQSearch) ([]db_models.FAQ, error) {
	q := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("language = ?", s.Language)
	if s.Category != "" {
		q = q.Where("category = ?", s.Category)
	}
	if len(s.Keywords) > 0 {
		q = q.Where("keywords && ? OR question ~* ?", pq.StringArray(s.Keywords), keywordPattern(s.Keywords))
	}

	var faqs []db_models.FAQ
	err := q.Order("priority DESC").
		Order("helpful_count DESC").
		Limit(s.Limit).
		Find(&faqs).Error
	if err != nil {
		return nil, err
	}
	return faqs, nil
}

func (r *faqRepository) IncrementViews(ctx context.Context, faq *db_models.FAQ) error {
	return r.db.WithContext(ctx).
		Model(faq).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// Upsert keys FAQs on question and language.
func (r *faqRepository) Upsert(ctx context.Context, faq *db_models.FAQ) error {
	var existing db_models.FAQ
	err := r.db.WithContext(ctx).
		Where("question = ? AND language = ?", faq.Question, faq.Language).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(faq).Error
	}
	if err != nil {
		return err
	}
	faq.ID = existing.ID
	faq.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(faq).Error
}

func keywordPattern(keywords []string) string {
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return strings.Join(quoted, "|")
}
