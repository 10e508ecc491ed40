package response_models

import (
	"yatra/internal/models/db_models"
	"yatra/internal/planner"
)

type GenerationStats struct {
	Method                 planner.Method `json:"method"`
	AIProvider             string         `json:"aiProvider"`
	Model                  string         `json:"model"`
	ProcessingTimeMs       int64          `json:"processingTime"`
	DestinationsConsidered int            `json:"destinationsConsidered"`
	Confidence             float64        `json:"confidence"`
}

type AIGeneration struct {
	GeneratedBy      string  `json:"generatedBy"`
	AIProvider       string  `json:"aiProvider,omitempty"`
	AIModel          string  `json:"aiModel,omitempty"`
	GenerationTimeMs int64   `json:"generationTime"`
	Confidence       float64 `json:"confidence"`
}

type TripDetails struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Duration  int    `json:"duration"`
	GroupSize int    `json:"groupSize"`
	GroupType string `json:"groupType"`
}

type BudgetResponse struct {
	Total      int64                   `json:"total"`
	Currency   string                  `json:"currency"`
	BudgetType string                  `json:"budgetType"`
	Breakdown  planner.BudgetBreakdown `json:"breakdown"`
}

type ItineraryAnalytics struct {
	Views     int `json:"views"`
	Downloads int `json:"downloads"`
	Shares    int `json:"shares"`
}

type ItineraryFeedback struct {
	Rating        int    `json:"rating,omitempty"`
	Review        string `json:"review,omitempty"`
	UsedItinerary bool   `json:"usedItinerary"`
	Suggestions   string `json:"suggestions,omitempty"`
	SubmittedAt   int64  `json:"submittedAt,omitempty"`
}

type ItineraryResponse struct {
	ID                     string                 `json:"id"`
	UserID                 string                 `json:"userId"`
	Title                  string                 `json:"title"`
	Description            string                 `json:"description"`
	TripDetails            TripDetails            `json:"tripDetails"`
	Budget                 BudgetResponse         `json:"budget"`
	TotalEstimatedCost     int64                  `json:"totalEstimatedCost"`
	Days                   []planner.ItineraryDay `json:"days"`
	CulturalNotes          []string               `json:"culturalNotes"`
	TravelTips             []string               `json:"travelTips"`
	LocalExperiences       []string               `json:"localExperiences"`
	SeasonalConsiderations []string               `json:"seasonalConsiderations"`
	EmergencyInfo          planner.EmergencyInfo  `json:"emergencyInfo"`
	Interests              []string               `json:"interests"`
	Status                 string                 `json:"status"`
	Version                int                    `json:"version"`
	AIGeneration           AIGeneration           `json:"aiGeneration"`
	Analytics              ItineraryAnalytics     `json:"analytics"`
	Feedback               *ItineraryFeedback     `json:"feedback,omitempty"`
	CreatedAt              int64                  `json:"createdAt"`
	UpdatedAt              int64                  `json:"updatedAt"`
}

func NewItineraryResponse(it *db_models.Itinerary) ItineraryResponse {
	resp := ItineraryResponse{
		ID:          it.ID.String(),
		UserID:      it.UserID.String(),
		Title:       it.Title,
		Description: it.Description,
		TripDetails: TripDetails{
			StartDate: it.StartDate.Format("2006-01-02"),
			EndDate:   it.EndDate.Format("2006-01-02"),
			Duration:  it.Duration,
			GroupSize: it.GroupSize,
			GroupType: it.GroupType,
		},
		Budget: BudgetResponse{
			Total:      it.BudgetTotal,
			Currency:   it.Currency,
			BudgetType: it.BudgetType,
			Breakdown:  it.BudgetBreakdown.Data(),
		},
		TotalEstimatedCost:     it.TotalEstimatedCost,
		Days:                   []planner.ItineraryDay(it.Days),
		CulturalNotes:          nonNil(it.CulturalNotes),
		TravelTips:             nonNil(it.TravelTips),
		LocalExperiences:       nonNil(it.LocalExperiences),
		SeasonalConsiderations: nonNil(it.SeasonalConsiderations),
		EmergencyInfo:          it.EmergencyInfo.Data(),
		Interests:              nonNil(it.Interests),
		Status:                 it.Status,
		Version:                it.Version,
		AIGeneration: AIGeneration{
			GeneratedBy:      it.GeneratedBy,
			AIProvider:       it.AIProvider,
			AIModel:          it.AIModel,
			GenerationTimeMs: it.GenerationTimeMs,
			Confidence:       it.Confidence,
		},
		Analytics: ItineraryAnalytics{Views: it.Views, Downloads: it.Downloads, Shares: it.Shares},
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
	if resp.Days == nil {
		resp.Days = []planner.ItineraryDay{}
	}
	if it.FeedbackAt > 0 {
		resp.Feedback = &ItineraryFeedback{
			Rating:        it.FeedbackRating,
			Review:        it.FeedbackReview,
			UsedItinerary: it.UsedItinerary,
			Suggestions:   it.FeedbackSuggestions,
			SubmittedAt:   it.FeedbackAt,
		}
	}
	return resp
}

type GenerateItineraryResponse struct {
	Itinerary       ItineraryResponse `json:"itinerary"`
	GenerationStats GenerationStats   `json:"generationStats"`
}

type TripSummary struct {
	Destinations    []string `json:"destinations"`
	TotalDays       int      `json:"totalDays"`
	TotalActivities int      `json:"totalActivities"`
	TotalCost       int64    `json:"totalCost"`
	AvgDailyCost    int64    `json:"avgDailyCost"`
}

type ItineraryDetailResponse struct {
	Itinerary ItineraryResponse `json:"itinerary"`
	Summary   TripSummary       `json:"summary"`
	AISummary AIGeneration      `json:"aiSummary"`
}

type ItineraryListItem struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	StartDate          string  `json:"startDate"`
	Duration           int     `json:"duration"`
	BudgetTotal        int64   `json:"budgetTotal"`
	TotalEstimatedCost int64   `json:"totalEstimatedCost"`
	Status             string  `json:"status"`
	GeneratedBy        string  `json:"generatedBy"`
	Views              int     `json:"views"`
	FeedbackRating     int     `json:"rating,omitempty"`
	CreatedAt          int64   `json:"createdAt"`
	Confidence         float64 `json:"confidence"`
}

func NewItineraryListItem(it *db_models.Itinerary) ItineraryListItem {
	return ItineraryListItem{
		ID:                 it.ID.String(),
		Title:              it.Title,
		StartDate:          it.StartDate.Format("2006-01-02"),
		Duration:           it.Duration,
		BudgetTotal:        it.BudgetTotal,
		TotalEstimatedCost: it.TotalEstimatedCost,
		Status:             it.Status,
		GeneratedBy:        it.GeneratedBy,
		Views:              it.Views,
		FeedbackRating:     it.FeedbackRating,
		CreatedAt:          it.CreatedAt,
		Confidence:         it.Confidence,
	}
}

type ItineraryListResponse struct {
	Itineraries []ItineraryListItem `json:"itineraries"`
	Pagination  Pagination          `json:"pagination"`
}

type DeletedItineraryResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Duration    int    `json:"duration"`
	GeneratedBy string `json:"generatedBy"`
}
