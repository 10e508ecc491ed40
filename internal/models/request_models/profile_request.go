package request_models

import "yatra/internal/models/db_models"

type UpdateProfileRequest struct {
	Name           *string            `json:"name" binding:"omitempty,min=2,max=50"`
	Phone          *string            `json:"phone"`
	Address        *db_models.Address `json:"address"`
	Gender         *string            `json:"gender" binding:"omitempty,oneof=male female other prefer-not-to-say"`
	DateOfBirth    *string            `json:"dateOfBirth"`
	ProfilePicture *string            `json:"profilePicture"`
}

// UpdatePreferencesRequest replaces only the sections that are present.
type UpdatePreferencesRequest struct {
	TourismPreferences struct {
		Interests         *db_models.InterestPreferences `json:"interests"`
		BudgetPreferences *db_models.BudgetPreferences   `json:"budgetPreferences"`
		Accessibility     *db_models.Accessibility       `json:"accessibility"`
		TravelStyle       *db_models.TravelStyle         `json:"travelStyle"`
	} `json:"tourismPreferences" binding:"required"`
}

type AddVisitedDestinationRequest struct {
	DestinationID string `json:"destinationId" binding:"required,uuid"`
	VisitDate     string `json:"visitDate"`
	Rating        int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Review        string `json:"review" binding:"max=1000"`
}

type TrackSearchRequest struct {
	Query   string                 `json:"query" binding:"required"`
	Filters map[string]interface{} `json:"filters"`
}
