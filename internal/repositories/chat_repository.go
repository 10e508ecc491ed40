package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"yatra/internal/models/db_models"
)

type ChatSessionFilter struct {
	Status   string
	Priority string
	Page     int
	Limit    int
}

type ChatRepository interface {
	CreateSession(ctx context.Context, s *db_models.ChatSession) error
	FindSession(ctx context.Context, sessionID string) (*db_models.ChatSession, error)
	SaveSession(ctx context.Context, s *db_models.ChatSession) error
	ListSessions(ctx context.Context, f ChatSessionFilter) ([]db_models.ChatSession, int64, error)

	CreateMessage(ctx context.Context, m *db_models.ChatMessage) error
	ListMessages(ctx context.Context, sessionID string, page, limit int) ([]db_models.ChatMessage, int64, error)
	RecentMessages(ctx context.Context, sessionID string, n int) ([]db_models.ChatMessage, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateSession(ctx context.Context, s *db_models.ChatSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *chatRepository) FindSession(ctx context.Context, sessionID string) (*db_models.ChatSession, error) {
	var s db_models.ChatSession
	err := r.db.WithContext(ctx).First(&s, "session_id = ?", sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *chatRepository) SaveSession(ctx context.Context, s *db_models.ChatSession) error {
	return r.db.WithContext(ctx).Omit("Messages").Save(s).Error
}

func (r *chatRepository) ListSessions(ctx context.Context, f ChatSessionFilter) ([]db_models.ChatSession, int64, error) {
	q := r.db.WithContext(ctx).Model(&db_models.ChatSession{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []db_models.ChatSession
	err := q.Order("updated_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&sessions).Error
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

func (r *chatRepository) CreateMessage(ctx context.Context, m *db_models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *chatRepository) ListMessages(ctx context.Context, sessionID string, page, limit int) ([]db_models.ChatMessage, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&db_models.ChatMessage{}).
		Where("session_id = ?", sessionID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []db_models.ChatMessage
	err := q.Order("sent_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// RecentMessages returns the last n messages, oldest first.
func (r *chatRepository) RecentMessages(ctx context.Context, sessionID string, n int) ([]db_models.ChatMessage, error) {
	var messages []db_models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("sent_at DESC").
		Limit(n).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
