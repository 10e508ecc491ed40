package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	dbm "yatra/internal/models/db_models"
)

type DashboardRepository interface {
	// KPIs / counts
	CountTotalUsers(ctx context.Context) (int64, error)
	CountNewUsers(ctx context.Context, start, end time.Time) (int64, error)
	CountPublishedDestinations(ctx context.Context) (int64, error)
	ItinerariesByMethod(ctx context.Context) ([]LabelRow, error)

	CountSessions(ctx context.Context, start, end time.Time) (int64, error)
	CountEscalated(ctx context.Context, start, end time.Time) (int64, error)
	AverageChatRating(ctx context.Context, start, end time.Time) (float64, error)
	SessionsByStatus(ctx context.Context, start, end time.Time) ([]LabelRow, error)
	SessionsByPriority(ctx context.Context, start, end time.Time) ([]LabelRow, error)
	MessagesBySender(ctx context.Context, start, end time.Time) ([]LabelRow, error)

	// Time series
	SessionsSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error)
	NewUsersSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error)

	// Top districts across generated itinerary days
	TopDistricts(ctx context.Context, start, end time.Time, limit int) ([]LabelRow, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------
type BucketSum struct {
	Bucket time.Time `gorm:"column:bucket"`
	Sum    int64     `gorm:"column:sum"`
}

type LabelRow struct {
	Label string `gorm:"column:label"`
	Count int64  `gorm:"column:count"`
}

// ---------- Helpers ----------

// dateTrunc buckets a column holding UNIX seconds.
func dateTrunc(tz string, unixColumn string) string {
	if tz == "" {
		return "date_trunc(?, to_timestamp(" + unixColumn + "))"
	}
	return "date_trunc(?, timezone(?, to_timestamp(" + unixColumn + ")))"
}

func truncArgs(interval, tz string) []interface{} {
	if tz == "" {
		return []interface{}{interval}
	}
	return []interface{}{interval, tz}
}

func (r *dashboardRepository) sessionsIn(ctx context.Context, start, end time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&dbm.ChatSession{}).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix())
}

func (r *dashboardRepository) groupCount(tx *gorm.DB, column string) ([]LabelRow, error) {
	var rows []LabelRow
	err := tx.Select(column + " AS label, COUNT(*) AS count").
		Group(column).
		Order("count DESC").
		Find(&rows).Error
	return rows, err
}

// ---------- Counts ----------
func (r *dashboardRepository) CountTotalUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.User{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountNewUsers(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.User{}).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountPublishedDestinations(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Destination{}).
		Where("status = ?", dbm.DestinationPublished).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) ItinerariesByMethod(ctx context.Context) ([]LabelRow, error) {
	return r.groupCount(r.db.WithContext(ctx).Model(&dbm.Itinerary{}), "generated_by")
}

func (r *dashboardRepository) CountSessions(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.sessionsIn(ctx, start, end).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountEscalated(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.sessionsIn(ctx, start, end).
		Where("escalated_at > 0").
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) AverageChatRating(ctx context.Context, start, end time.Time) (float64, error) {
	var avg float64
	err := r.sessionsIn(ctx, start, end).
		Select("COALESCE(AVG(rating_score), 0)").
		Where("rating_score > 0").
		Scan(&avg).Error
	return avg, err
}

func (r *dashboardRepository) SessionsByStatus(ctx context.Context, start, end time.Time) ([]LabelRow, error) {
	return r.groupCount(r.sessionsIn(ctx, start, end), "status")
}

func (r *dashboardRepository) SessionsByPriority(ctx context.Context, start, end time.Time) ([]LabelRow, error) {
	return r.groupCount(r.sessionsIn(ctx, start, end), "priority")
}

func (r *dashboardRepository) MessagesBySender(ctx context.Context, start, end time.Time) ([]LabelRow, error) {
	tx := r.db.WithContext(ctx).
		Model(&dbm.ChatMessage{}).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix())
	return r.groupCount(tx, "sender")
}

// ---------- Series ----------
func (r *dashboardRepository) SessionsSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error) {
	var rows []BucketSum
	truncExpr := dateTrunc(tz, "created_at")
	err := r.db.WithContext(ctx).
		Table("chat_sessions").
		Select(truncExpr+" AS bucket, COUNT(*) AS sum", truncArgs(interval, tz)...).
		Where("deleted_at IS NULL").
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Group("bucket").
		Order("bucket ASC").
		Find(&rows).Error
	return rows, err
}

func (r *dashboardRepository) NewUsersSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error) {
	var rows []BucketSum
	truncExpr := dateTrunc(tz, "created_at")
	err := r.db.WithContext(ctx).
		Table("users").
		Select(truncExpr+" AS bucket, COUNT(*) AS sum", truncArgs(interval, tz)...).
		Where("deleted_at IS NULL").
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Group("bucket").
		Order("bucket ASC").
		Find(&rows).Error
	return rows, err
}

// ---------- Top districts ----------
func (r *dashboardRepository) TopDistricts(ctx context.Context, start, end time.Time, limit int) ([]LabelRow, error) {
	var rows []LabelRow
	err := r.db.WithContext(ctx).
		Table("itineraries i, jsonb_array_elements(i.days) AS day").
		Select("day->>'location' AS label, COUNT(*) AS count").
		Where("i.deleted_at IS NULL").
		Where("i.created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Where("COALESCE(day->>'location', '') <> ''").
		Group("label").
		Order("count DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
