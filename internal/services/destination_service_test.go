package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"yatra/internal/models/db_models"
	"yatra/internal/models/request_models"
	"yatra/internal/repositories"
	"yatra/pkg/logger"
	"yatra/pkg/utils"
)

type catalogRepo struct {
	repositories.DestinationRepository
	slugs   map[string]bool
	created *db_models.Destination
	filter  repositories.DestinationFilter
	total   int64
	radius  float64
}

func (r *catalogRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	return r.slugs[slug], nil
}

func (r *catalogRepo) Create(_ context.Context, d *db_models.Destination) error {
	d.ID = uuid.New()
	r.created = d
	return nil
}

func (r *catalogRepo) List(_ context.Context, f repositories.DestinationFilter) ([]db_models.Destination, int64, error) {
	r.filter = f
	return testDestinations(), r.total, nil
}

func (r *catalogRepo) Nearby(_ context.Context, _, _, radiusKm float64, _ int) ([]repositories.NearbyDestination, error) {
	r.radius = radiusKm
	return []repositories.NearbyDestination{{Destination: testDestinations()[0], DistanceKm: 12.5}}, nil
}

type recordingEmbedded struct {
	EmbededServiceInterface
	stored []string
	err    error
}

func (e *recordingEmbedded) StoreDestination(_ context.Context, d *db_models.Destination) error {
	e.stored = append(e.stored, d.Slug)
	return e.err
}

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Hundru Falls", "hundru-falls"},
		{"  Baba   Baidyanath Dham ", "baba-baidyanath-dham"},
		{"Patratu Valley (Ramgarh)!", "patratu-valley-ramgarh"},
		{"Rock -- Garden", "rock-garden"},
		{"झरना", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizePage(t *testing.T) {
	page, limit, err := normalizePage(0, 0, 10)
	if err != nil || page != 1 || limit != 10 {
		t.Fatalf("unexpected defaults %d %d %v", page, limit, err)
	}
	if _, _, err := normalizePage(-1, 10, 10); !errors.Is(err, utils.ErrInvalidPage) {
		t.Fatalf("expected ErrInvalidPage, got %v", err)
	}
	if _, _, err := normalizePage(1, 101, 10); !errors.Is(err, utils.ErrInvalidPageSize) {
		t.Fatalf("expected ErrInvalidPageSize, got %v", err)
	}
}

func TestCreateDestination(t *testing.T) {
	repo := &catalogRepo{slugs: map[string]bool{"hundru-falls": true}}
	embedded := &recordingEmbedded{err: errors.New("embedding down")}
	svc := NewDestinationService(repo, embedded, logger.NewNop())
	adminID := uuid.New()

	req := request_models.CreateDestinationRequest{
		Name:     "Lodh Falls",
		Category: "waterfall",
		District: "Latehar",
		Tags:     []string{" Waterfalls ", "Nature"},
	}
	out, err := svc.Create(context.Background(), adminID.String(), req)
	if err != nil {
		t.Fatalf("embedding failures should not fail creation: %v", err)
	}
	if out.Slug != "lodh-falls" || repo.created.Status != db_models.DestinationDraft {
		t.Fatalf("unexpected destination %+v", repo.created)
	}
	if repo.created.CreatedBy == nil || *repo.created.CreatedBy != adminID {
		t.Fatalf("expected creator to be recorded")
	}
	if repo.created.Tags[0] != "waterfalls" || repo.created.Tags[1] != "nature" {
		t.Fatalf("expected normalized tags, got %v", repo.created.Tags)
	}
	if len(embedded.stored) != 1 {
		t.Fatalf("expected an embedding attempt")
	}

	req.Name = "Hundru Falls"
	if _, err := svc.Create(context.Background(), adminID.String(), req); !errors.Is(err, utils.ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
	req.Name = "!!"
	if _, err := svc.Create(context.Background(), adminID.String(), req); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestListDestinationsFilters(t *testing.T) {
	repo := &catalogRepo{total: 23}
	svc := NewDestinationService(repo, &recordingEmbedded{}, logger.NewNop())

	out, err := svc.List(context.Background(), request_models.DestinationListQuery{Tags: "waterfalls, ,trekking", Featured: "true", Page: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.filter.Tags) != 2 || repo.filter.Featured == nil || !*repo.filter.Featured {
		t.Fatalf("unexpected filter %+v", repo.filter)
	}
	if out.Pagination.TotalPages != 3 || !out.Pagination.HasNextPage || !out.Pagination.HasPrevPage {
		t.Fatalf("unexpected pagination %+v", out.Pagination)
	}

	if _, err := svc.List(context.Background(), request_models.DestinationListQuery{Featured: "maybe"}); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestNearbyDefaultsRadius(t *testing.T) {
	repo := &catalogRepo{}
	svc := NewDestinationService(repo, &recordingEmbedded{}, logger.NewNop())

	out, err := svc.Nearby(context.Background(), request_models.NearbyQuery{Lat: 23.34, Lng: 85.31})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.radius != defaultNearbyRadiusKm {
		t.Fatalf("expected default radius, got %v", repo.radius)
	}
	if out[0].DistanceKm == nil || *out[0].DistanceKm != 12.5 {
		t.Fatalf("expected distance on the response")
	}
	if _, err := svc.Nearby(context.Background(), request_models.NearbyQuery{Lat: 95, Lng: 85}); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("expected invalid latitude, got %v", err)
	}
}

type fixedRanking struct {
	repositories.IDestinationEmbeddingRepository
	ranked []repositories.SimilarDestination
	err    error
}

func (r *fixedRanking) RankBySimilarity(context.Context, pgvector.Vector, []uuid.UUID) ([]repositories.SimilarDestination, error) {
	return r.ranked, r.err
}

func TestRerankByInterests(t *testing.T) {
	dests := testDestinations()
	repo := &fixedRanking{ranked: []repositories.SimilarDestination{
		{DestinationID: dests[2].ID, Similarity: 0.9},
		{DestinationID: dests[0].ID, Similarity: 0.4},
	}}
	svc := NewEmbededService(repo, nil, logger.NewNop())

	out := svc.RerankByInterests(context.Background(), []string{"temples"}, dests)
	if out[0].ID != dests[2].ID || out[1].ID != dests[0].ID || out[2].ID != dests[1].ID {
		t.Fatalf("unexpected order %s, %s, %s", out[0].Name, out[1].Name, out[2].Name)
	}
	if dests[0].Name != "Hundru Falls" {
		t.Fatalf("input slice was reordered")
	}

	repo.err = errors.New("no vector extension")
	if out := svc.RerankByInterests(context.Background(), []string{"temples"}, dests); out[0].ID != dests[0].ID {
		t.Fatalf("expected incoming order on ranking failure")
	}
}

func TestHashEmbeddingWithoutClient(t *testing.T) {
	svc := NewEmbededService(&fixedRanking{}, nil, logger.NewNop())
	a, err := svc.Embed(context.Background(), "waterfalls trekking")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := svc.Embed(context.Background(), "waterfalls trekking")
	if len(a.Slice()) != utils.EmbeddingDimensions {
		t.Fatalf("expected %d dimensions, got %d", utils.EmbeddingDimensions, len(a.Slice()))
	}
	for i := range a.Slice() {
		if a.Slice()[i] != b.Slice()[i] {
			t.Fatalf("hash embeddings must be deterministic")
		}
	}
}
