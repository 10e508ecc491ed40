package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"yatra/internal/planner"
)

const (
	ItineraryDraft      = "draft"
	ItineraryGenerated  = "generated"
	ItineraryCustomized = "customized"
	ItineraryFinalized  = "finalized"
	ItineraryArchived   = "archived"
)

type Itinerary struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"size:150;not null"`
	Description string    `gorm:"type:text"`

	StartDate time.Time `gorm:"type:date"`
	EndDate   time.Time `gorm:"type:date"`
	Duration  int
	GroupSize int
	GroupType string `gorm:"size:20"`
	Interests pq.StringArray `gorm:"type:text[]"`

	BudgetTotal        int64
	Currency           string `gorm:"size:3;default:INR"`
	BudgetType         string `gorm:"size:20"`
	BudgetBreakdown    datatypes.JSONType[planner.BudgetBreakdown] `gorm:"type:jsonb"`
	TotalEstimatedCost int64

	Days                   datatypes.JSONSlice[planner.ItineraryDay]   `gorm:"type:jsonb"`
	CulturalNotes          pq.StringArray                              `gorm:"type:text[]"`
	TravelTips             pq.StringArray                              `gorm:"type:text[]"`
	LocalExperiences       pq.StringArray                              `gorm:"type:text[]"`
	SeasonalConsiderations pq.StringArray                              `gorm:"type:text[]"`
	EmergencyInfo          datatypes.JSONType[planner.EmergencyInfo]   `gorm:"type:jsonb"`

	Status  string `gorm:"size:20;default:draft;index"`
	Version int    `gorm:"default:1"`

	GeneratedBy      string `gorm:"size:10"`
	AIProvider       string `gorm:"size:30"`
	AIModel          string `gorm:"size:60"`
	GenerationTimeMs int64
	Confidence       float64

	Views     int `gorm:"default:0;index"`
	Downloads int `gorm:"default:0"`
	Shares    int `gorm:"default:0"`

	FeedbackRating      int
	FeedbackReview      string `gorm:"type:text"`
	UsedItinerary       bool
	FeedbackSuggestions string `gorm:"type:text"`
	FeedbackAt          int64
}

// BeforeSave keeps the cost fields consistent with the stored days.
func (it *Itinerary) BeforeSave(tx *gorm.DB) error {
	gen := it.ToGenerated()
	planner.Normalize(&gen, it.BudgetTotal)
	it.Days = datatypes.NewJSONSlice(gen.Days)
	it.BudgetBreakdown = datatypes.NewJSONType(gen.BudgetBreakdown)
	it.TotalEstimatedCost = int64(gen.TotalEstimatedCost)
	return nil
}

func (it *Itinerary) ToGenerated() planner.GeneratedItinerary {
	return planner.GeneratedItinerary{
		Title:                  it.Title,
		Description:            it.Description,
		TotalEstimatedCost:     planner.Cost(it.TotalEstimatedCost),
		BudgetBreakdown:        it.BudgetBreakdown.Data(),
		Days:                   []planner.ItineraryDay(it.Days),
		CulturalNotes:          []string(it.CulturalNotes),
		TravelTips:             []string(it.TravelTips),
		EmergencyInfo:          it.EmergencyInfo.Data(),
		LocalExperiences:       []string(it.LocalExperiences),
		SeasonalConsiderations: []string(it.SeasonalConsiderations),
	}
}

// ApplyGenerated copies a generation result onto the row.
func (it *Itinerary) ApplyGenerated(gen planner.GeneratedItinerary) {
	it.Title = gen.Title
	it.Description = gen.Description
	it.BudgetBreakdown = datatypes.NewJSONType(gen.BudgetBreakdown)
	it.Days = datatypes.NewJSONSlice(gen.Days)
	it.CulturalNotes = pq.StringArray(gen.CulturalNotes)
	it.TravelTips = pq.StringArray(gen.TravelTips)
	it.LocalExperiences = pq.StringArray(gen.LocalExperiences)
	it.SeasonalConsiderations = pq.StringArray(gen.SeasonalConsiderations)
	it.EmergencyInfo = datatypes.NewJSONType(gen.EmergencyInfo)
	it.TotalEstimatedCost = int64(gen.TotalEstimatedCost)
}
