package response_models

import (
	"time"
)

type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// "day" | "week" | "month"
	Interval string `json:"interval"`
	Timezone string `json:"timezone,omitempty"`
}

type KPIBlock struct {
	TotalUsers            int64   `json:"totalUsers"`
	NewUsers              int64   `json:"newUsers"`
	TotalItineraries      int64   `json:"totalItineraries"`
	AIItineraries         int64   `json:"aiItineraries"`
	BasicItineraries      int64   `json:"basicItineraries"`
	TotalSessions         int64   `json:"totalSessions"`
	EscalatedSessions     int64   `json:"escalatedSessions"`
	EscalationRatePct     float64 `json:"escalationRatePct"`
	AverageChatRating     float64 `json:"averageChatRating"`
	PublishedDestinations int64   `json:"publishedDestinations"`
}

type SeriesPoint struct {
	Bucket time.Time `json:"bucket"`
	Value  int64     `json:"value"`
}

type CountSeries struct {
	Points []SeriesPoint `json:"points"`
	Total  int64         `json:"total"`
}

type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type AnalyticsReport struct {
	Range              TimeRange    `json:"range"`
	KPIs               KPIBlock     `json:"kpis"`
	SessionsByStatus   []LabelCount `json:"sessionsByStatus"`
	SessionsByPriority []LabelCount `json:"sessionsByPriority"`
	MessagesBySender   []LabelCount `json:"messagesBySender"`
	DailySessions      CountSeries  `json:"dailySessions"`
	NewUsersSeries     CountSeries  `json:"newUsers"`
	TopDistricts       []LabelCount `json:"topDistricts"`
}
