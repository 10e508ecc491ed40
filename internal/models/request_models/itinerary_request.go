package request_models

import "yatra/internal/planner"

type GenerateItineraryRequest struct {
	Duration            int                  `json:"duration"`
	StartDate           string               `json:"startDate" binding:"required"`
	GroupSize           int                  `json:"groupSize"`
	GroupType           string               `json:"groupType"`
	Budget              BudgetRequest        `json:"budget"`
	Interests           []string             `json:"interests"`
	ExcludeDestinations []string             `json:"excludeDestinations"`
	Preferences         ItineraryPreferences `json:"preferences"`
}

type BudgetRequest struct {
	Total      int64  `json:"total"`
	BudgetType string `json:"budgetType"`
}

type ItineraryPreferences struct {
	SecondaryInterests  []string `json:"secondaryInterests"`
	BudgetPriorities    []string `json:"budgetPriorities"`
	CulturalPreferences []string `json:"culturalPreferences"`
	GuidedVsIndependent string   `json:"guidedVsIndependent"`
}

type ItineraryListQuery struct {
	Status string `form:"status"`
	SortBy string `form:"sortBy"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

// UpdateItineraryRequest ignores owner, generation metadata and analytics.
type UpdateItineraryRequest struct {
	Title         *string                `json:"title"`
	Description   *string                `json:"description"`
	Status        *string                `json:"status"`
	Days          []planner.ItineraryDay `json:"days"`
	CulturalNotes []string               `json:"culturalNotes"`
	TravelTips    []string               `json:"travelTips"`
}

type ItineraryFeedbackRequest struct {
	Rating        int    `json:"rating" binding:"required,min=1,max=5"`
	Review        string `json:"review" binding:"max=1000"`
	UsedItinerary bool   `json:"usedItinerary"`
	Suggestions   string `json:"suggestions" binding:"max=500"`
}
