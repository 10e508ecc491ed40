package services

import (
	"context"
	"time"

	"yatra/internal/models/request_models"
	resp "yatra/internal/models/response_models"
	"yatra/internal/repositories"
	"yatra/pkg/logger"
	"yatra/pkg/utils"
)

const (
	analyticsTimezone = "Asia/Kolkata"
	topDistrictsLimit = 10
	defaultRangeDays  = 30
	maxAnalyticsRange = 366 * 24 * time.Hour
)

var validIntervals = map[string]bool{"day": true, "week": true, "month": true}

type AnalyticsServiceInterface interface {
	BuildReport(ctx context.Context, query request_models.AnalyticsQuery) (*resp.AnalyticsReport, error)
}

type AnalyticsService struct {
	repo repositories.DashboardRepository
	log  *logger.Logger
	now  func() time.Time
}

func NewAnalyticsService(repo repositories.DashboardRepository, log *logger.Logger) AnalyticsServiceInterface {
	return &AnalyticsService{repo: repo, log: log, now: time.Now}
}

// rangeFromQuery parses from/to (YYYY-MM-DD, to inclusive) and applies the
// defaults: the last 30 days, bucketed by day.
func (s *AnalyticsService) rangeFromQuery(q request_models.AnalyticsQuery) (resp.TimeRange, error) {
	out := resp.TimeRange{Interval: q.Interval, Timezone: analyticsTimezone}
	if out.Interval == "" {
		out.Interval = "day"
	}
	if !validIntervals[out.Interval] {
		return out, utils.NewFieldError("interval", "must be one of day, week, month")
	}
	if q.To != "" {
		t, err := parseTripDate(q.To)
		if err != nil {
			return out, utils.NewFieldError("to", "must be a valid date (YYYY-MM-DD)")
		}
		out.End = t.Add(24*time.Hour - time.Second)
	}
	if q.From != "" {
		t, err := parseTripDate(q.From)
		if err != nil {
			return out, utils.NewFieldError("from", "must be a valid date (YYYY-MM-DD)")
		}
		out.Start = t
	}
	return normalizeRange(out, s.now())
}

func normalizeRange(r resp.TimeRange, now time.Time) (resp.TimeRange, error) {
	out := r
	if out.End.IsZero() {
		out.End = now.UTC()
	}
	if out.Start.IsZero() {
		out.Start = out.End.AddDate(0, 0, -defaultRangeDays)
	}
	if out.Start.After(out.End) {
		out.Start, out.End = out.End, out.Start
	}
	if out.End.Sub(out.Start) > maxAnalyticsRange {
		return out, utils.NewFieldError("from", "range cannot exceed one year")
	}
	return out, nil
}

func labelCounts(rows []repositories.LabelRow) []resp.LabelCount {
	out := make([]resp.LabelCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, resp.LabelCount{Label: r.Label, Count: r.Count})
	}
	return out
}

func countSeries(rows []repositories.BucketSum) resp.CountSeries {
	out := resp.CountSeries{Points: make([]resp.SeriesPoint, 0, len(rows))}
	for _, r := range rows {
		out.Points = append(out.Points, resp.SeriesPoint{Bucket: r.Bucket, Value: r.Sum})
		out.Total += r.Sum
	}
	return out
}

func (s *AnalyticsService) BuildReport(ctx context.Context, query request_models.AnalyticsQuery) (*resp.AnalyticsReport, error) {
	rng, err := s.rangeFromQuery(query)
	if err != nil {
		return nil, err
	}
	report, err := s.build(ctx, rng)
	if err != nil {
		s.log.Error("build analytics failed", "error", err)
		return nil, utils.ErrDatabaseError
	}
	return report, nil
}

func (s *AnalyticsService) build(ctx context.Context, rng resp.TimeRange) (*resp.AnalyticsReport, error) {
	// ---------- Platform counts ----------
	totalUsers, err := s.repo.CountTotalUsers(ctx)
	if err != nil {
		return nil, err
	}
	newUsers, err := s.repo.CountNewUsers(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	published, err := s.repo.CountPublishedDestinations(ctx)
	if err != nil {
		return nil, err
	}
	methods, err := s.repo.ItinerariesByMethod(ctx)
	if err != nil {
		return nil, err
	}

	// ---------- Support chat ----------
	sessions, err := s.repo.CountSessions(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	escalated, err := s.repo.CountEscalated(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	avgRating, err := s.repo.AverageChatRating(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.SessionsByStatus(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.repo.SessionsByPriority(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	bySender, err := s.repo.MessagesBySender(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	// ---------- Series ----------
	sessionRows, err := s.repo.SessionsSeries(ctx, rng.Start, rng.End, rng.Interval, rng.Timezone)
	if err != nil {
		return nil, err
	}
	userRows, err := s.repo.NewUsersSeries(ctx, rng.Start, rng.End, rng.Interval, rng.Timezone)
	if err != nil {
		return nil, err
	}

	districts, err := s.repo.TopDistricts(ctx, rng.Start, rng.End, topDistrictsLimit)
	if err != nil {
		return nil, err
	}

	kpis := resp.KPIBlock{
		TotalUsers:            totalUsers,
		NewUsers:              newUsers,
		TotalSessions:         sessions,
		EscalatedSessions:     escalated,
		AverageChatRating:     avgRating,
		PublishedDestinations: published,
	}
	for _, m := range methods {
		kpis.TotalItineraries += m.Count
		switch m.Label {
		case "ai":
			kpis.AIItineraries = m.Count
		case "basic":
			kpis.BasicItineraries = m.Count
		}
	}
	if sessions > 0 {
		kpis.EscalationRatePct = float64(escalated) * 100.0 / float64(sessions)
	}

	return &resp.AnalyticsReport{
		Range:              rng,
		KPIs:               kpis,
		SessionsByStatus:   labelCounts(byStatus),
		SessionsByPriority: labelCounts(byPriority),
		MessagesBySender:   labelCounts(bySender),
		DailySessions:      countSeries(sessionRows),
		NewUsersSeries:     countSeries(userRows),
		TopDistricts:       labelCounts(districts),
	}, nil
}
