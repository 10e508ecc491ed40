package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	ChatActive          = "active"
	ChatWaitingForAgent = "waiting_for_agent"
	ChatWithAgent       = "with_agent"
	ChatResolved        = "resolved"
	ChatClosed          = "closed"
)

const (
	SenderUser  = "user"
	SenderBot   = "bot"
	SenderAgent = "agent"
)

type ChatSession struct {
	BaseModel
	SessionID        string     `gorm:"size:64;uniqueIndex;not null"`
	UserID           *uuid.UUID `gorm:"type:uuid;index"`
	Status           string     `gorm:"size:20;default:active;index"`
	AssignedAgentID  *uuid.UUID `gorm:"type:uuid"`
	Priority         string     `gorm:"size:10;default:medium;index"`
	Category         string     `gorm:"size:20;default:general"`
	Language         string     `gorm:"size:8;default:en"`
	UserName         string
	UserEmail        string
	UserPhone        string
	RatingScore      int
	RatingFeedback   string                              `gorm:"type:text"`
	Tags             pq.StringArray                      `gorm:"type:text[]"`
	Metadata         datatypes.JSONType[SessionMetadata] `gorm:"type:jsonb"`
	EscalationReason string                              `gorm:"size:30"`
	EscalatedAt      int64
	ResolvedAt       int64

	Messages []ChatMessage `gorm:"foreignKey:SessionID;references:SessionID"`
}

type SessionMetadata struct {
	UserAgent  string `json:"userAgent,omitempty"`
	IPAddress  string `json:"ipAddress,omitempty"`
	Referrer   string `json:"referrer,omitempty"`
	DeviceType string `json:"deviceType,omitempty"`
}

type ChatMessage struct {
	BaseModel
	SessionID         string `gorm:"size:64;index;not null"`
	MessageID         string `gorm:"size:64;not null"`
	Sender            string `gorm:"size:10;not null"`
	Message           string `gorm:"type:text;not null"`
	OriginalLanguage  string `gorm:"size:8;default:en"`
	TranslatedMessage string `gorm:"type:text"`
	IsRead            bool
	Attachments       pq.StringArray `gorm:"type:text[]"`

	// SentAt is unix milliseconds; messages are ordered by it.
	SentAt int64 `gorm:"index"`
}

type FAQ struct {
	BaseModel
	Question     string         `gorm:"type:text;not null"`
	Answer       string         `gorm:"type:text;not null"`
	Category     string         `gorm:"size:20;default:general;index"`
	Language     string         `gorm:"size:8;default:en;index"`
	Keywords     pq.StringArray `gorm:"type:text[]"`
	IsActive     bool           `gorm:"default:true"`
	ViewCount    int
	HelpfulCount int
	Priority     int `gorm:"default:1"`
}
