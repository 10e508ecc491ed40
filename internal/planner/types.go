package planner

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// TripProfile is the validated input for one generation call.
type TripProfile struct {
	Duration            int
	StartDate           time.Time
	GroupSize           int
	GroupType           string
	TotalBudget         int64
	BudgetType          string
	Interests           []string
	ExcludeDestinations []string
	Preferences         Preferences
	UserLocation        string
}

type Preferences struct {
	SecondaryInterests  []string
	BudgetPriorities    []string
	CulturalPreferences []string
	GuidedVsIndependent string
	LanguagePreference  []string
	DietaryRestrictions []string
}

// CandidateDestination is a read-only snapshot of a published destination.
// A non-positive Rating or EntryFee means the value is absent.
type CandidateDestination struct {
	ID                   string
	Name                 string
	Slug                 string
	District             string
	Category             string
	Description          string
	ShortDescription     string
	Tags                 []string
	Rating               float64
	Featured             bool
	CulturalSignificance string
	EntryFee             int64
	Facilities           []string
	BestTimeToVisit      []string
	Longitude            float64
	Latitude             float64
}

type ScoredDestination struct {
	CandidateDestination
	Score float64
}

// Cost is a currency amount. It decodes from JSON numbers (floored) and
// numeric strings so model output with "450.5" or "1200" still fits.
type Cost int64

// MaxCost bounds any single amount; larger values decode to 0 and sums
// saturate here, so totals cannot wrap around int64.
const MaxCost Cost = 1e15

// Plus adds d to c, clamping negatives to 0 and the result to MaxCost.
func (c Cost) Plus(d Cost) Cost {
	if c < 0 {
		c = 0
	}
	if d < 0 {
		d = 0
	}
	if c >= MaxCost || d >= MaxCost-c {
		return MaxCost
	}
	return c + d
}

func (c *Cost) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == "" {
		*c = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*c = 0
			return nil
		}
		raw = strings.TrimSpace(strings.NewReplacer(",", "", "₹", "", "INR", "").Replace(s))
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f >= float64(MaxCost) {
		*c = 0
		return nil
	}
	*c = Cost(math.Floor(f))
	return nil
}

type BudgetBreakdown struct {
	Accommodation Cost `json:"accommodation"`
	Transport     Cost `json:"transport"`
	Food          Cost `json:"food"`
	Activities    Cost `json:"activities"`
	Miscellaneous Cost `json:"miscellaneous"`
}

func (b BudgetBreakdown) Total() int64 {
	return int64(b.Accommodation + b.Transport + b.Food + b.Activities + b.Miscellaneous)
}

type TimeSlot string

const (
	SlotEarlyMorning TimeSlot = "early-morning"
	SlotMorning      TimeSlot = "morning"
	SlotAfternoon    TimeSlot = "afternoon"
	SlotEvening      TimeSlot = "evening"
	SlotNight        TimeSlot = "night"
)

type ActivityLocation struct {
	Name        string    `json:"name"`
	Coordinates []float64 `json:"coordinates,omitempty"`
	District    string    `json:"district,omitempty"`
}

type Activity struct {
	Type              string           `json:"type"`
	DestinationID     string           `json:"destinationId,omitempty"`
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	Location          ActivityLocation `json:"location"`
	EstimatedCost     Cost             `json:"estimatedCost"`
	EstimatedDuration int              `json:"estimatedDuration"`
	BookingRequired   bool             `json:"bookingRequired"`
	CulturalTips      string           `json:"culturalTips,omitempty"`
	TribalInteraction string           `json:"tribalInteraction,omitempty"`
	Alternatives      []string         `json:"alternatives,omitempty"`
}

type ScheduledActivity struct {
	TimeSlot  TimeSlot `json:"timeSlot"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Activity  Activity `json:"activity"`
	Notes     string   `json:"notes,omitempty"`
}

type Accommodation struct {
	Type               string `json:"type"`
	Name               string `json:"name"`
	Location           string `json:"location"`
	EstimatedCost      Cost   `json:"estimatedCost"`
	Description        string `json:"description,omitempty"`
	CulturalExperience string `json:"culturalExperience,omitempty"`
}

type Meal struct {
	Type            string `json:"type"`
	Cuisine         string `json:"cuisine"`
	EstimatedCost   Cost   `json:"estimatedCost"`
	Recommendations string `json:"recommendations,omitempty"`
	Location        string `json:"location,omitempty"`
}

type Transport struct {
	Mode          string `json:"mode"`
	EstimatedCost Cost   `json:"estimatedCost"`
	Duration      string `json:"duration,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

type ItineraryDay struct {
	DayNumber     int                 `json:"dayNumber"`
	Date          string              `json:"date"`
	Title         string              `json:"title"`
	Location      string              `json:"location"`
	Weather       string              `json:"weather,omitempty"`
	Activities    []ScheduledActivity `json:"activities"`
	Accommodation *Accommodation      `json:"accommodation,omitempty"`
	Meals         []Meal              `json:"meals"`
	Transport     *Transport          `json:"transport,omitempty"`
	TotalDayCost  Cost                `json:"totalDayCost"`
}

type EmergencyInfo struct {
	ImportantNumbers []string `json:"importantNumbers"`
	NearestHospitals []string `json:"nearestHospitals"`
	EmbassyContacts  string   `json:"embassyContacts"`
}

// GeneratedItinerary is the output of both generation paths.
type GeneratedItinerary struct {
	Title                  string          `json:"title"`
	Description            string          `json:"description"`
	TotalEstimatedCost     Cost            `json:"totalEstimatedCost"`
	BudgetBreakdown        BudgetBreakdown `json:"budgetBreakdown"`
	Days                   []ItineraryDay  `json:"days"`
	CulturalNotes          []string        `json:"culturalNotes"`
	TravelTips             []string        `json:"travelTips"`
	EmergencyInfo          EmergencyInfo   `json:"emergencyInfo"`
	LocalExperiences       []string        `json:"localExperiences"`
	SeasonalConsiderations []string        `json:"seasonalConsiderations"`
}

type Method string

const (
	MethodAI    Method = "gemini-ai"
	MethodBasic Method = "basic-algorithm"
)

const (
	ConfidenceAI    = 0.9
	ConfidenceBasic = 0.6
)

// Result is what a generation call hands back to its caller.
type Result struct {
	Itinerary        GeneratedItinerary `json:"itinerary"`
	Method           Method             `json:"generationMethod"`
	Confidence       float64            `json:"confidence"`
	ProcessingTimeMs int64              `json:"processingTimeMs"`
}

// GeneratedBy is the short persisted form of Method.
func (r Result) GeneratedBy() string {
	if r.Method == MethodAI {
		return "ai"
	}
	return "basic"
}
