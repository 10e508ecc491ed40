package services

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"yatra/internal/models/db_models"
	"yatra/internal/models/request_models"
	resp "yatra/internal/models/response_models"
	"yatra/internal/repositories"
	"yatra/pkg/logger"
	"yatra/pkg/utils"
)

const (
	defaultNearbyRadiusKm  = 50
	nearbyLimit            = 20
	defaultDestinationPage = 10
	maxPageSize            = 100
)

type DestinationServiceInterface interface {
	List(ctx context.Context, query request_models.DestinationListQuery) (*resp.DestinationListResponse, error)
	Nearby(ctx context.Context, query request_models.NearbyQuery) ([]resp.DestinationResponse, error)
	Get(ctx context.Context, idOrSlug string) (*resp.DestinationResponse, error)
	Create(ctx context.Context, createdBy string, request request_models.CreateDestinationRequest) (*resp.DestinationResponse, error)
}

type DestinationService struct {
	repo     repositories.DestinationRepository
	embedded EmbededServiceInterface
	log      *logger.Logger
}

func NewDestinationService(repo repositories.DestinationRepository, embedded EmbededServiceInterface, log *logger.Logger) DestinationServiceInterface {
	return &DestinationService{repo: repo, embedded: embedded, log: log}
}

// normalizePage applies the default limit and rejects out-of-range values.
func normalizePage(page, limit, defaultLimit int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = defaultLimit
	}
	if page < 1 {
		return 0, 0, utils.ErrInvalidPage
	}
	if limit < 1 || limit > maxPageSize {
		return 0, 0, utils.ErrInvalidPageSize
	}
	return page, limit, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (s *DestinationService) List(ctx context.Context, query request_models.DestinationListQuery) (*resp.DestinationListResponse, error) {
	page, limit, err := normalizePage(query.Page, query.Limit, defaultDestinationPage)
	if err != nil {
		return nil, err
	}

	filter := repositories.DestinationFilter{
		Category: query.Category,
		District: query.District,
		Tags:     splitList(query.Tags),
		SortBy:   query.SortBy,
		Page:     page,
		Limit:    limit,
	}
	if query.Featured != "" {
		featured, err := strconv.ParseBool(query.Featured)
		if err != nil {
			return nil, utils.NewFieldError("featured", "must be true or false")
		}
		filter.Featured = &featured
	}

	destinations, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.Error("list destinations failed", "error", err)
		return nil, utils.ErrDatabaseError
	}

	return &resp.DestinationListResponse{
		Destinations: resp.NewDestinationResponses(destinations),
		Pagination:   resp.NewPagination(page, limit, total),
	}, nil
}

func (s *DestinationService) Nearby(ctx context.Context, query request_models.NearbyQuery) ([]resp.DestinationResponse, error) {
	if query.Lat < -90 || query.Lat > 90 {
		return nil, utils.NewFieldError("lat", "must be between -90 and 90")
	}
	if query.Lng < -180 || query.Lng > 180 {
		return nil, utils.NewFieldError("lng", "must be between -180 and 180")
	}
	radius := query.Radius
	if radius <= 0 {
		radius = defaultNearbyRadiusKm
	}

	rows, err := s.repo.Nearby(ctx, query.Lat, query.Lng, radius, nearbyLimit)
	if err != nil {
		s.log.Error("nearby destinations failed", "error", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]resp.DestinationResponse, 0, len(rows))
	for i := range rows {
		d := resp.NewDestinationResponse(&rows[i].Destination)
		distance := rows[i].DistanceKm
		d.DistanceKm = &distance
		out = append(out, d)
	}
	return out, nil
}

func (s *DestinationService) Get(ctx context.Context, idOrSlug string) (*resp.DestinationResponse, error) {
	d, err := s.repo.FindPublishedByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if d == nil {
		return nil, utils.ErrDestinationNotFound
	}
	out := resp.NewDestinationResponse(d)
	return &out, nil
}

func (s *DestinationService) Create(ctx context.Context, createdBy string, request request_models.CreateDestinationRequest) (*resp.DestinationResponse, error) {
	slug := Slugify(request.Name)
	if slug == "" {
		return nil, utils.NewFieldError("name", "must contain letters or digits")
	}
	taken, err := s.repo.SlugExists(ctx, slug)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if taken {
		return nil, utils.ErrSlugTaken
	}

	status := request.Status
	if status == "" {
		status = db_models.DestinationDraft
	}
	d := &db_models.Destination{
		Name:               strings.TrimSpace(request.Name),
		Slug:               slug,
		Description:        request.Description,
		ShortDescription:   request.ShortDescription,
		Category:           request.Category,
		District:           request.District,
		State:              "Jharkhand",
		Latitude:           request.Latitude,
		Longitude:          request.Longitude,
		Tags:               pq.StringArray(lowerAll(request.Tags)),
		Facilities:         pq.StringArray(request.Facilities),
		BestTimeToVisit:    pq.StringArray(request.BestTimeToVisit),
		Images:             pq.StringArray(request.Images),
		EntryFeeIndian:     request.EntryFeeIndian,
		EntryFeeForeign:    request.EntryFeeForeign,
		Timings:            request.Timings,
		Featured:           request.Featured,
		Status:             status,
		TribalSignificance: request.TribalSignificance,
	}
	if id, err := uuid.Parse(createdBy); err == nil {
		d.CreatedBy = &id
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.log.Error("create destination failed", "slug", slug, "error", err)
		return nil, utils.ErrDatabaseError
	}

	// the destination is usable without an embedding; recommendations just skip it
	if err := s.embedded.StoreDestination(ctx, d); err != nil {
		s.log.Warn("destination embedding not stored", "destination_id", d.ID, "error", err)
	}

	out := resp.NewDestinationResponse(d)
	return &out, nil
}

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9 -]`)
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// Slugify lowercases name, drops characters outside [a-z0-9 -], turns
// whitespace into dashes and collapses repeated dashes.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(strings.TrimSpace(s), "-")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func lowerAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if v := strings.ToLower(strings.TrimSpace(it)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
