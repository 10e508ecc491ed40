package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RoleTourist = "tourist"
	RoleGuide   = "guide"
	RoleVendor  = "vendor"
	RoleAgent   = "agent"
	RoleAdmin   = "admin"
)

type User struct {
	BaseModel
	Name               string `gorm:"size:50;not null"`
	Email              string `gorm:"size:255;uniqueIndex;not null"`
	Phone              string `gorm:"size:15"`
	PasswordHash       string `gorm:"not null"`
	Role               string `gorm:"size:20;default:tourist;index"`
	AccountStatus      string `gorm:"size:20;default:active"`
	ProfilePicture     string
	DateOfBirth        string `gorm:"size:10"`
	Gender             string `gorm:"size:20"`
	Address            datatypes.JSONType[Address]            `gorm:"type:jsonb"`
	TourismPreferences datatypes.JSONType[TourismPreferences] `gorm:"type:jsonb"`
	SearchHistory      datatypes.JSONSlice[SearchEntry]       `gorm:"type:jsonb"`
	LastLoginAt        int64
	PasswordChangedAt  int64
	IsActive           bool `gorm:"default:true"`

	VisitedDestinations []VisitedDestination
}

type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
	Country string `json:"country,omitempty"`
}

type TourismPreferences struct {
	Interests         InterestPreferences `json:"interests"`
	BudgetPreferences BudgetPreferences   `json:"budgetPreferences"`
	Accessibility     Accessibility       `json:"accessibility"`
	TravelStyle       TravelStyle         `json:"travelStyle"`
}

type InterestPreferences struct {
	Primary   []string `json:"primary,omitempty"`
	Secondary []string `json:"secondary,omitempty"`
	Avoid     []string `json:"avoid,omitempty"`
}

type BudgetPreferences struct {
	DailyBudget      BudgetRange `json:"dailyBudget"`
	PrioritySpending []string    `json:"prioritySpending,omitempty"`
}

type BudgetRange struct {
	Min int64 `json:"min,omitempty"`
	Max int64 `json:"max,omitempty"`
}

type Accessibility struct {
	LanguagePreference  []string `json:"languagePreference,omitempty"`
	DietaryRestrictions []string `json:"dietaryRestrictions,omitempty"`
	MobilityNeeds       []string `json:"mobilityNeeds,omitempty"`
}

type TravelStyle struct {
	GroupSize           string   `json:"groupSize,omitempty"`
	GuidedVsIndependent string   `json:"guidedVsIndependent,omitempty"`
	CulturalPreferences []string `json:"culturalPreferences,omitempty"`
}

type SearchEntry struct {
	Query     string                 `json:"query"`
	Filters   map[string]interface{} `json:"filters,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

type VisitedDestination struct {
	BaseModel
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_destination"`
	DestinationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_destination"`
	VisitDate     int64
	Rating        int `gorm:"check:rating >= 1 AND rating <= 5"`
	Review        string `gorm:"type:text"`

	Destination *Destination `gorm:"foreignKey:DestinationID"`
}
