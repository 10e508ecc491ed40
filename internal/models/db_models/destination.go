package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"yatra/internal/planner"
)

const (
	DestinationDraft     = "draft"
	DestinationPublished = "published"
	DestinationArchived  = "archived"
)

type Destination struct {
	BaseModel
	Name               string         `gorm:"size:150;not null"`
	Slug               string         `gorm:"size:180;uniqueIndex;not null"`
	Description        string         `gorm:"type:text"`
	ShortDescription   string         `gorm:"size:300"`
	Category           string         `gorm:"size:50;index"`
	District           string         `gorm:"size:80;index"`
	State              string         `gorm:"size:80;default:Jharkhand"`
	Latitude           float64
	Longitude          float64
	Tags               pq.StringArray `gorm:"type:text[]"`
	Facilities         pq.StringArray `gorm:"type:text[]"`
	BestTimeToVisit    pq.StringArray `gorm:"type:text[]"`
	Images             pq.StringArray `gorm:"type:text[]"`
	EntryFeeIndian     int64
	EntryFeeForeign    int64
	Timings            string
	Rating             float64 `gorm:"default:0"`
	ReviewCount        int
	Featured           bool   `gorm:"index"`
	Status             string `gorm:"size:20;default:draft;index"`
	TribalSignificance string `gorm:"type:text"`
	CreatedBy          *uuid.UUID `gorm:"type:uuid"`
}

// ToCandidate is the read-only view the planner works on.
func (d Destination) ToCandidate() planner.CandidateDestination {
	return planner.CandidateDestination{
		ID:                   d.ID.String(),
		Name:                 d.Name,
		Slug:                 d.Slug,
		District:             d.District,
		Category:             d.Category,
		Description:          d.Description,
		ShortDescription:     d.ShortDescription,
		Tags:                 []string(d.Tags),
		Rating:               d.Rating,
		Featured:             d.Featured,
		CulturalSignificance: d.TribalSignificance,
		EntryFee:             d.EntryFeeIndian,
		Facilities:           []string(d.Facilities),
		BestTimeToVisit:      []string(d.BestTimeToVisit),
		Longitude:            d.Longitude,
		Latitude:             d.Latitude,
	}
}

type DestinationEmbedding struct {
	DestinationID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string
	Tags          pq.StringArray  `gorm:"type:text[]"`
	Embedding     pgvector.Vector `gorm:"type:vector(1536)"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
}
