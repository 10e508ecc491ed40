package response_models

import (
	"yatra/internal/models/db_models"
)

type AccountLoginResponse struct {
	Token     string          `json:"token"`
	ExpiresIn int64           `json:"expiresIn"`
	User      AccountResponse `json:"user"`
}

type AccountResponse struct {
	ID                 string                       `json:"id"`
	Name               string                       `json:"name"`
	Email              string                       `json:"email"`
	Phone              string                       `json:"phone"`
	Role               string                       `json:"role"`
	AccountStatus      string                       `json:"accountStatus"`
	ProfilePicture     string                       `json:"profilePicture,omitempty"`
	DateOfBirth        string                       `json:"dateOfBirth,omitempty"`
	Gender             string                       `json:"gender,omitempty"`
	Address            db_models.Address            `json:"address"`
	TourismPreferences db_models.TourismPreferences `json:"tourismPreferences"`
	LastLoginAt        int64                        `json:"lastLoginAt,omitempty"`
	CreatedAt          int64                        `json:"createdAt"`
}

func NewAccountResponse(u *db_models.User) AccountResponse {
	return AccountResponse{
		ID:                 u.ID.String(),
		Name:               u.Name,
		Email:              u.Email,
		Phone:              u.Phone,
		Role:               u.Role,
		AccountStatus:      u.AccountStatus,
		ProfilePicture:     u.ProfilePicture,
		DateOfBirth:        u.DateOfBirth,
		Gender:             u.Gender,
		Address:            u.Address.Data(),
		TourismPreferences: u.TourismPreferences.Data(),
		LastLoginAt:        u.LastLoginAt,
		CreatedAt:          u.CreatedAt,
	}
}

type VisitedDestinationResponse struct {
	DestinationID string `json:"destinationId"`
	Name          string `json:"name,omitempty"`
	VisitDate     int64  `json:"visitDate"`
	Rating        int    `json:"rating,omitempty"`
	Review        string `json:"review,omitempty"`
}

type RecommendationBasis struct {
	Interests []string `json:"interests"`
	Location  string   `json:"location,omitempty"`
}

type RecommendationsResponse struct {
	Recommendations []DestinationResponse `json:"recommendations"`
	BasedOn         RecommendationBasis   `json:"basedOn"`
}

type PreferencesResponse struct {
	User        AccountResponse              `json:"user"`
	Preferences db_models.TourismPreferences `json:"preferences"`
}
