package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"yatra/internal/models/db_models"
	"yatra/internal/models/request_models"
	resp "yatra/internal/models/response_models"
	"yatra/internal/repositories"
	"yatra/pkg/logger"
	"yatra/pkg/utils"
)

const (
	recommendationLimit = 10
	searchHistoryKeep   = 50
)

var nearbyDistricts = map[string][]string{
	"ranchi":     {"ranchi", "khunti", "gumla", "simdega"},
	"jamshedpur": {"east singhbhum", "west singhbhum", "seraikela kharsawan"},
	"dhanbad":    {"dhanbad", "bokaro", "giridih"},
	"deoghar":    {"deoghar", "dumka", "godda"},
}

type ProfileServiceInterface interface {
	UpdatePreferences(ctx context.Context, userID string, request request_models.UpdatePreferencesRequest) (*resp.PreferencesResponse, error)
	AddVisited(ctx context.Context, userID string, request request_models.AddVisitedDestinationRequest) ([]resp.VisitedDestinationResponse, error)
	ListVisited(ctx context.Context, userID string) ([]resp.VisitedDestinationResponse, error)
	Recommendations(ctx context.Context, userID string) (*resp.RecommendationsResponse, error)
	TrackSearch(ctx context.Context, userID string, request request_models.TrackSearchRequest) error
}

type ProfileService struct {
	accounts     repositories.AccountRepository
	destinations repositories.DestinationRepository
	embedded     EmbededServiceInterface
	log          *logger.Logger
	now          func() time.Time
}

func NewProfileService(
	accounts repositories.AccountRepository,
	destinations repositories.DestinationRepository,
	embedded EmbededServiceInterface,
	log *logger.Logger,
) ProfileServiceInterface {
	return &ProfileService{
		accounts:     accounts,
		destinations: destinations,
		embedded:     embedded,
		log:          log,
		now:          time.Now,
	}
}

func (s *ProfileService) loadUser(ctx context.Context, userID string) (*db_models.User, error) {
	user, err := s.accounts.FindById(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	return user, nil
}

// UpdatePreferences replaces each preference section that the request carries
// and leaves the others untouched.
func (s *ProfileService) UpdatePreferences(ctx context.Context, userID string, request request_models.UpdatePreferencesRequest) (*resp.PreferencesResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	prefs := user.TourismPreferences.Data()
	in := request.TourismPreferences
	if in.Interests != nil {
		prefs.Interests = db_models.InterestPreferences{
			Primary:   lowerAll(in.Interests.Primary),
			Secondary: lowerAll(in.Interests.Secondary),
			Avoid:     lowerAll(in.Interests.Avoid),
		}
	}
	if in.BudgetPreferences != nil {
		daily := in.BudgetPreferences.DailyBudget
		if daily.Min < 0 || daily.Max < 0 {
			return nil, utils.NewFieldError("budgetPreferences.dailyBudget", "amounts cannot be negative")
		}
		if daily.Max > 0 && daily.Min > daily.Max {
			return nil, utils.NewFieldError("budgetPreferences.dailyBudget", "minimum cannot exceed maximum")
		}
		prefs.BudgetPreferences = *in.BudgetPreferences
	}
	if in.Accessibility != nil {
		prefs.Accessibility = *in.Accessibility
	}
	if in.TravelStyle != nil {
		prefs.TravelStyle = *in.TravelStyle
	}

	user.TourismPreferences = datatypes.NewJSONType(prefs)
	if err := s.accounts.UpdateColumns(ctx, user.ID, map[string]interface{}{
		"tourism_preferences": user.TourismPreferences,
	}); err != nil {
		s.log.Error("update preferences failed", "user_id", userID, "error", err)
		return nil, utils.ErrDatabaseError
	}

	return &resp.PreferencesResponse{
		User:        resp.NewAccountResponse(user),
		Preferences: prefs,
	}, nil
}

func (s *ProfileService) AddVisited(ctx context.Context, userID string, request request_models.AddVisitedDestinationRequest) ([]resp.VisitedDestinationResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}
	destinationID, err := uuid.Parse(request.DestinationID)
	if err != nil {
		return nil, utils.NewFieldError("destinationId", "must be a valid destination ID")
	}
	if request.Rating != 0 && (request.Rating < 1 || request.Rating > 5) {
		return nil, utils.NewFieldError("rating", "must be between 1 and 5")
	}
	visitDate := s.now().Unix()
	if request.VisitDate != "" {
		t, err := parseTripDate(request.VisitDate)
		if err != nil {
			return nil, utils.NewFieldError("visitDate", "must be a valid date (YYYY-MM-DD)")
		}
		visitDate = t.Unix()
	}

	dest, err := s.destinations.FindById(ctx, destinationID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if dest == nil {
		return nil, utils.ErrDestinationNotFound
	}
	visited, err := s.accounts.HasVisited(ctx, uid, destinationID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if visited {
		return nil, utils.ErrAlreadyVisited
	}

	err = s.accounts.AddVisited(ctx, &db_models.VisitedDestination{
		UserID:        uid,
		DestinationID: destinationID,
		VisitDate:     visitDate,
		Rating:        request.Rating,
		Review:        strings.TrimSpace(request.Review),
	})
	if err != nil {
		s.log.Error("add visited destination failed", "user_id", userID, "destination_id", destinationID, "error", err)
		return nil, utils.ErrDatabaseError
	}
	return s.ListVisited(ctx, userID)
}

func (s *ProfileService) ListVisited(ctx context.Context, userID string) ([]resp.VisitedDestinationResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}
	rows, err := s.accounts.ListVisited(ctx, uid)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	out := make([]resp.VisitedDestinationResponse, 0, len(rows))
	for _, v := range rows {
		item := resp.VisitedDestinationResponse{
			DestinationID: v.DestinationID.String(),
			VisitDate:     v.VisitDate,
			Rating:        v.Rating,
			Review:        v.Review,
		}
		if v.Destination != nil {
			item.Name = v.Destination.Name
		}
		out = append(out, item)
	}
	return out, nil
}

// NearbyDistricts maps a home city to the districts worth suggesting first.
func NearbyDistricts(city string) []string {
	key := strings.ToLower(strings.TrimSpace(city))
	if key == "" {
		return nil
	}
	if districts, ok := nearbyDistricts[key]; ok {
		return districts
	}
	return []string{key}
}

func (s *ProfileService) Recommendations(ctx context.Context, userID string) (*resp.RecommendationsResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	prefs := user.TourismPreferences.Data()
	address := user.Address.Data()

	filter := repositories.RecommendationFilter{
		Interests: prefs.Interests.Primary,
		Avoid:     prefs.Interests.Avoid,
		Limit:     recommendationLimit,
	}
	if strings.EqualFold(address.State, "Jharkhand") {
		filter.Districts = NearbyDistricts(address.City)
	}

	rows, err := s.destinations.Recommend(ctx, filter)
	if err != nil {
		s.log.Error("recommendations failed", "user_id", userID, "error", err)
		return nil, utils.ErrDatabaseError
	}
	if len(prefs.Interests.Primary) > 0 {
		rows = s.embedded.RerankByInterests(ctx, prefs.Interests.Primary, rows)
	}

	return &resp.RecommendationsResponse{
		Recommendations: resp.NewDestinationResponses(rows),
		BasedOn: resp.RecommendationBasis{
			Interests: nonNilStrings(prefs.Interests.Primary),
			Location:  address.City,
		},
	}, nil
}

func (s *ProfileService) TrackSearch(ctx context.Context, userID string, request request_models.TrackSearchRequest) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return utils.ErrUnauthorized
	}
	query := strings.TrimSpace(request.Query)
	if query == "" {
		return utils.NewFieldError("query", "is required")
	}
	entry := db_models.SearchEntry{
		Query:     query,
		Filters:   request.Filters,
		Timestamp: s.now().Unix(),
	}
	if err := s.accounts.AppendSearch(ctx, uid, entry, searchHistoryKeep); err != nil {
		s.log.Error("track search failed", "user_id", userID, "error", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
