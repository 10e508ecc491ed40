package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}
	return db, mock
}

func TestItineraryFindByIdNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItineraryRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "itineraries" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	it, err := repo.FindById(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it != nil {
		t.Fatalf("expected nil itinerary, got %+v", it)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestItineraryIncrementViewsSkipsHooks(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItineraryRepository(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "itineraries" SET "views"=views \+ \$1 WHERE id = \$2`).
		WithArgs(1, id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.IncrementViews(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestItineraryListByUserSortsAndCounts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItineraryRepository(db)
	userID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "itineraries" WHERE user_id = \$1 AND status = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT \* FROM "itineraries" WHERE user_id = \$1 AND status = \$2 .*ORDER BY views DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow(uuid.New(), "Ranchi falls").
			AddRow(uuid.New(), "Betla safari"))

	items, total, err := repo.ListByUser(context.Background(), ItineraryFilter{
		UserID: userID, Status: "generated", SortBy: "views", Page: 1, Limit: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 || len(items) != 2 {
		t.Fatalf("expected 2 of 3 itineraries, got %d of %d", len(items), total)
	}
	if items[1].Title != "Betla safari" {
		t.Fatalf("unexpected order %q", items[1].Title)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDestinationLookupBySlug(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDestinationRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "destinations" WHERE status = \$1 AND slug = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "district"}).
			AddRow(id, "Hundru Falls", "hundru-falls", "Ranchi"))

	d, err := repo.FindPublishedByIDOrSlug(context.Background(), "hundru-falls")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d == nil || d.ID != id || d.District != "Ranchi" {
		t.Fatalf("unexpected destination %+v", d)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDestinationLookupByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDestinationRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "destinations" WHERE status = \$1 AND id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	d, err := repo.FindPublishedByIDOrSlug(context.Background(), id.String())
	if err != nil || d != nil {
		t.Fatalf("expected nil, nil, got %+v, %v", d, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDestinationNearbyArguments(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDestinationRepository(db)

	mock.ExpectQuery(`SELECT \* FROM \(`).
		WithArgs(23.34, 85.31, 23.34, "published", 50.0, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "distance_km"}).
			AddRow(uuid.New(), "Hundru Falls", 12.5))

	rows, err := repo.Nearby(context.Background(), 23.34, 85.31, 50, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Hundru Falls" || rows[0].DistanceKm != 12.5 {
		t.Fatalf("unexpected rows %+v", rows)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPasswordChangedAt(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT password_changed_at FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"password_changed_at"}).AddRow(int64(1700000000)))

	changedAt, err := repo.PasswordChangedAt(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changedAt != 1700000000 {
		t.Fatalf("expected 1700000000, got %d", changedAt)
	}
}

func TestFAQSearchMatchesKeywordsOrQuestion(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFAQRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "faqs" WHERE is_active = \$1 AND language = \$2 AND \(keywords && \$3 OR question ~\* \$4\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "question", "answer"}).
			AddRow(uuid.New(), "How do I reach Ranchi?", "By train or air."))

	faqs, err := repo.Search(context.Background(), FAQSearch{
		Keywords: []string{"reach", "ranchi"},
		Language: "en",
		Limit:    1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(faqs) != 1 || faqs[0].Answer != "By train or air." {
		t.Fatalf("unexpected faqs %+v", faqs)
	}
}

func TestKeywordPatternEscapes(t *testing.T) {
	if got := keywordPattern([]string{"a.b", "c+"}); got != `a\.b|c\+` {
		t.Fatalf("unexpected pattern %q", got)
	}
}

func TestRankBySimilarityEmptyIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDestinationEmbeddingRepository(db)

	rows, err := repo.RankBySimilarity(context.Background(), pgvector.NewVector([]float32{1, 0}), nil)
	if err != nil || rows != nil {
		t.Fatalf("expected no query for empty ids, got %v, %v", rows, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected queries: %v", err)
	}
}

func TestSessionsSeriesUsesTimezone(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDashboardRepository(db)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	mock.ExpectQuery(`SELECT date_trunc\(\$1, timezone\(\$2, to_timestamp\(created_at\)\)\) AS bucket, COUNT\(\*\) AS sum FROM "chat_sessions"`).
		WithArgs("day", "Asia/Kolkata", start.Unix(), end.Unix()).
		WillReturnRows(sqlmock.NewRows([]string{"bucket", "sum"}).AddRow(start, 4))

	rows, err := repo.SessionsSeries(context.Background(), start, end, "day", "Asia/Kolkata")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Sum != 4 {
		t.Fatalf("unexpected rows %+v", rows)
	}
}
