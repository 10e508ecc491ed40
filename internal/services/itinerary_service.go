package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"yatra/internal/models/db_models"
	"yatra/internal/models/request_models"
	resp "yatra/internal/models/response_models"
	"yatra/internal/planner"
	"yatra/internal/repositories"
	"yatra/pkg/logger"
	"yatra/pkg/utils"
)

const (
	maxTripDays          = 30
	maxGroupSize         = 50
	minTripBudget        = 1000
	minDailyBudget       = 500
	candidateLimit       = 20
	defaultItineraryPage = 10
	popularLimit         = 10
	maxTitleLength       = 150
	maxDescriptionLength = 1000
	maxReviewLength      = 1000
	maxSuggestionsLength = 500
	dateLayout           = "2006-01-02"
)

var validInterests = map[string]bool{
	"adventure-sports":    true,
	"cultural-heritage":   true,
	"nature-wildlife":     true,
	"religious-spiritual": true,
	"tribal-culture":      true,
	"food-cuisine":        true,
	"photography":         true,
	"trekking":            true,
	"waterfalls":          true,
	"caves":               true,
	"historical-sites":    true,
	"festivals":           true,
	"handicrafts":         true,
	"meditation":          true,
}

var (
	validGroupTypes  = []string{"solo", "couple", "family", "friends", "corporate"}
	validBudgetTypes = []string{"budget", "mid-range", "luxury"}
	validStatuses    = []string{
		db_models.ItineraryDraft,
		db_models.ItineraryGenerated,
		db_models.ItineraryCustomized,
		db_models.ItineraryFinalized,
		db_models.ItineraryArchived,
	}
)

type ItineraryServiceInterface interface {
	Generate(ctx context.Context, userID string, request request_models.GenerateItineraryRequest) (*resp.GenerateItineraryResponse, error)
	ListMine(ctx context.Context, userID string, query request_models.ItineraryListQuery) (*resp.ItineraryListResponse, error)
	Get(ctx context.Context, userID, id string) (*resp.ItineraryDetailResponse, error)
	Update(ctx context.Context, userID, id string, request request_models.UpdateItineraryRequest) (*resp.ItineraryResponse, error)
	Delete(ctx context.Context, userID, id string) (*resp.DeletedItineraryResponse, error)
	SubmitFeedback(ctx context.Context, userID, id string, request request_models.ItineraryFeedbackRequest) (*resp.ItineraryFeedback, error)
	Export(ctx context.Context, userID, id string) ([]byte, string, error)
	Popular(ctx context.Context) ([]resp.ItineraryListItem, error)
}

// Planner is the part of *planner.Engine the service depends on.
type Planner interface {
	Generate(ctx context.Context, profile planner.TripProfile, candidates []planner.CandidateDestination) (planner.Result, error)
	Provider() string
	Model() string
}

type ItineraryService struct {
	itineraries  repositories.ItineraryRepository
	destinations repositories.DestinationRepository
	accounts     repositories.AccountRepository
	engine       Planner
	frontendURL  string
	log          *logger.Logger
	now          func() time.Time
}

func NewItineraryService(
	itineraries repositories.ItineraryRepository,
	destinations repositories.DestinationRepository,
	accounts repositories.AccountRepository,
	engine Planner,
	frontendURL string,
	log *logger.Logger,
) ItineraryServiceInterface {
	return &ItineraryService{
		itineraries:  itineraries,
		destinations: destinations,
		accounts:     accounts,
		engine:       engine,
		frontendURL:  strings.TrimRight(frontendURL, "/"),
		log:          log,
		now:          time.Now,
	}
}

func (s *ItineraryService) Generate(ctx context.Context, userID string, request request_models.GenerateItineraryRequest) (*resp.GenerateItineraryResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}
	startDate, err := s.validateGeneration(request)
	if err != nil {
		return nil, err
	}
	exclude, err := parseUUIDs(request.ExcludeDestinations)
	if err != nil {
		return nil, utils.NewFieldError("excludeDestinations", "invalid destination IDs provided")
	}

	user, err := s.accounts.FindById(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	prefs := user.TourismPreferences.Data()
	interests := mergeInterests(request.Interests, prefs.Interests.Primary)

	rows, err := s.destinations.Candidates(ctx, repositories.CandidateFilter{
		Interests: interests,
		Exclude:   exclude,
		Limit:     candidateLimit,
	})
	if err != nil {
		s.log.Error("load candidate destinations failed", "user_id", userID, "error", err)
		return nil, utils.ErrDatabaseError
	}
	if len(rows) == 0 {
		return nil, utils.ErrNoSuitableDestinations
	}
	candidates := make([]planner.CandidateDestination, 0, len(rows))
	for _, d := range rows {
		candidates = append(candidates, d.ToCandidate())
	}

	profile := buildTripProfile(request, startDate, interests, user)
	result, err := s.engine.Generate(ctx, profile, candidates)
	if errors.Is(err, planner.ErrInvalidProfile) {
		return nil, utils.NewFieldError("duration", "must be at least 1 day")
	}
	if err != nil {
		s.log.Error("itinerary generation failed", "user_id", userID, "error", err)
		return nil, err
	}

	it := &db_models.Itinerary{
		UserID:           uid,
		StartDate:        startDate,
		EndDate:          startDate.AddDate(0, 0, request.Duration-1),
		Duration:         request.Duration,
		GroupSize:        request.GroupSize,
		GroupType:        request.GroupType,
		Interests:        pq.StringArray(interests),
		BudgetTotal:      request.Budget.Total,
		Currency:         "INR",
		BudgetType:       request.Budget.BudgetType,
		Status:           db_models.ItineraryGenerated,
		Version:          1,
		GeneratedBy:      result.GeneratedBy(),
		AIProvider:       s.engine.Provider(),
		AIModel:          s.engine.Model(),
		GenerationTimeMs: result.ProcessingTimeMs,
		Confidence:       result.Confidence,
	}
	gen := result.Itinerary
	if len(gen.EmergencyInfo.ImportantNumbers) == 0 {
		gen.EmergencyInfo = planner.DefaultEmergencyInfo()
	}
	it.ApplyGenerated(gen)

	if err := s.itineraries.Create(ctx, it); err != nil {
		s.log.Error("save itinerary failed", "user_id", userID, "error", err)
		return nil, utils.ErrDatabaseError
	}

	s.log.Info("itinerary generated",
		"itinerary_id", it.ID,
		"method", result.Method,
		"candidates", len(candidates),
		"processing_ms", result.ProcessingTimeMs,
	)

	return &resp.GenerateItineraryResponse{
		Itinerary: resp.NewItineraryResponse(it),
		GenerationStats: resp.GenerationStats{
			Method:                 result.Method,
			AIProvider:             it.AIProvider,
			Model:                  it.AIModel,
			ProcessingTimeMs:       result.ProcessingTimeMs,
			DestinationsConsidered: len(candidates),
			Confidence:             result.Confidence,
		},
	}, nil
}

func (s *ItineraryService) validateGeneration(request request_models.GenerateItineraryRequest) (time.Time, error) {
	if request.Duration < 1 || request.Duration > maxTripDays {
		return time.Time{}, utils.NewFieldError("duration", "must be between 1 and %d days", maxTripDays)
	}
	startDate, err := parseTripDate(request.StartDate)
	if err != nil {
		return time.Time{}, utils.NewFieldError("startDate", "must be a valid date (YYYY-MM-DD)")
	}
	ist := utils.StartOfDayIST(s.now())
	today := time.Date(ist.Year(), ist.Month(), ist.Day(), 0, 0, 0, 0, time.UTC)
	if startDate.Before(today) {
		return time.Time{}, utils.NewFieldError("startDate", "cannot be in the past")
	}
	if startDate.After(today.AddDate(2, 0, 0)) {
		return time.Time{}, utils.NewFieldError("startDate", "cannot be more than 2 years in the future")
	}
	if request.GroupSize < 1 || request.GroupSize > maxGroupSize {
		return time.Time{}, utils.NewFieldError("groupSize", "must be between 1 and %d", maxGroupSize)
	}
	if !contains(validGroupTypes, request.GroupType) {
		return time.Time{}, utils.NewFieldError("groupType", "must be one of: %s", strings.Join(validGroupTypes, ", "))
	}
	if request.Budget.Total < minTripBudget {
		return time.Time{}, utils.NewFieldError("budget.total", "must be at least %d INR", minTripBudget)
	}
	if floor := int64(request.Duration) * minDailyBudget; request.Budget.Total < floor {
		return time.Time{}, utils.NewFieldError("budget.total", "must be at least %d INR for a %d-day trip", floor, request.Duration)
	}
	if !contains(validBudgetTypes, request.Budget.BudgetType) {
		return time.Time{}, utils.NewFieldError("budget.budgetType", "must be one of: %s", strings.Join(validBudgetTypes, ", "))
	}
	var invalid []string
	for _, interest := range request.Interests {
		if !validInterests[interest] {
			invalid = append(invalid, interest)
		}
	}
	if len(invalid) > 0 {
		return time.Time{}, utils.NewFieldError("interests", "invalid interests: %s", strings.Join(invalid, ", "))
	}
	return startDate, nil
}

// parseTripDate accepts a plain date or an RFC 3339 timestamp and returns
// the calendar day at UTC midnight.
func parseTripDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	t = t.In(utils.IST())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(strings.TrimSpace(r))
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// mergeInterests appends profile interests to the requested ones, keeping
// first-seen order.
func mergeInterests(requested, profile []string) []string {
	seen := make(map[string]bool, len(requested)+len(profile))
	out := make([]string, 0, len(requested)+len(profile))
	for _, list := range [][]string{requested, profile} {
		for _, interest := range list {
			v := strings.ToLower(strings.TrimSpace(interest))
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func buildTripProfile(request request_models.GenerateItineraryRequest, startDate time.Time, interests []string, user *db_models.User) planner.TripProfile {
	prefs := user.TourismPreferences.Data()

	secondary := request.Preferences.SecondaryInterests
	if len(secondary) == 0 {
		secondary = prefs.Interests.Secondary
	}
	priorities := request.Preferences.BudgetPriorities
	if len(priorities) == 0 {
		priorities = prefs.BudgetPreferences.PrioritySpending
	}
	cultural := request.Preferences.CulturalPreferences
	if len(cultural) == 0 {
		cultural = prefs.TravelStyle.CulturalPreferences
	}
	guided := request.Preferences.GuidedVsIndependent
	if guided == "" {
		guided = prefs.TravelStyle.GuidedVsIndependent
	}

	return planner.TripProfile{
		Duration:            request.Duration,
		StartDate:           startDate,
		GroupSize:           request.GroupSize,
		GroupType:           request.GroupType,
		TotalBudget:         request.Budget.Total,
		BudgetType:          request.Budget.BudgetType,
		Interests:           interests,
		ExcludeDestinations: request.ExcludeDestinations,
		Preferences: planner.Preferences{
			SecondaryInterests:  secondary,
			BudgetPriorities:    priorities,
			CulturalPreferences: cultural,
			GuidedVsIndependent: guided,
			LanguagePreference:  prefs.Accessibility.LanguagePreference,
			DietaryRestrictions: prefs.Accessibility.DietaryRestrictions,
		},
		UserLocation: user.Address.Data().City,
	}
}

func (s *ItineraryService) ListMine(ctx context.Context, userID string, query request_models.ItineraryListQuery) (*resp.ItineraryListResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}
	page, limit, err := normalizePage(query.Page, query.Limit, defaultItineraryPage)
	if err != nil {
		return nil, err
	}
	if query.Status != "" && !contains(validStatuses, query.Status) {
		return nil, utils.NewFieldError("status", "must be one of: %s", strings.Join(validStatuses, ", "))
	}

	rows, total, err := s.itineraries.ListByUser(ctx, repositories.ItineraryFilter{
		UserID: uid,
		Status: query.Status,
		SortBy: query.SortBy,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		s.log.Error("list itineraries failed", "user_id", userID, "error", err)
		return nil, utils.ErrDatabaseError
	}

	items := make([]resp.ItineraryListItem, 0, len(rows))
	for i := range rows {
		items = append(items, resp.NewItineraryListItem(&rows[i]))
	}
	return &resp.ItineraryListResponse{
		Itineraries: items,
		Pagination:  resp.NewPagination(page, limit, total),
	}, nil
}

// owned loads an itinerary and checks that userID owns it.
func (s *ItineraryService) owned(ctx context.Context, userID, id string) (*db_models.Itinerary, error) {
	itineraryID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.NewFieldError("id", "invalid itinerary ID")
	}
	it, err := s.itineraries.FindById(ctx, itineraryID)
	if err != nil {
		s.log.Error("load itinerary failed", "itinerary_id", id, "error", err)
		return nil, utils.ErrDatabaseError
	}
	if it == nil {
		return nil, utils.ErrItineraryNotFound
	}
	if it.UserID.String() != userID {
		return nil, utils.ErrForbidden
	}
	return it, nil
}

func (s *ItineraryService) Get(ctx context.Context, userID, id string) (*resp.ItineraryDetailResponse, error) {
	it, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.itineraries.IncrementViews(ctx, it.ID); err != nil {
		s.log.Warn("increment itinerary views failed", "itinerary_id", it.ID, "error", err)
	} else {
		it.Views++
	}

	out := resp.NewItineraryResponse(it)
	return &resp.ItineraryDetailResponse{
		Itinerary: out,
		Summary:   TripSummaryOf(it),
		AISummary: out.AIGeneration,
	}, nil
}

// TripSummaryOf condenses the stored days into headline numbers.
func TripSummaryOf(it *db_models.Itinerary) resp.TripSummary {
	summary := resp.TripSummary{
		Destinations: []string{},
		TotalDays:    len(it.Days),
		TotalCost:    it.TotalEstimatedCost,
	}
	seen := map[string]bool{}
	for _, day := range it.Days {
		summary.TotalActivities += len(day.Activities)
		loc := strings.TrimSpace(day.Location)
		if loc != "" && !seen[loc] {
			seen[loc] = true
			summary.Destinations = append(summary.Destinations, loc)
		}
	}
	if summary.TotalDays > 0 {
		summary.AvgDailyCost = (summary.TotalCost + int64(summary.TotalDays)/2) / int64(summary.TotalDays)
	}
	return summary
}

func (s *ItineraryService) Update(ctx context.Context, userID, id string, request request_models.UpdateItineraryRequest) (*resp.ItineraryResponse, error) {
	if err := validateUpdate(request); err != nil {
		return nil, err
	}
	it, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if request.Title != nil {
		it.Title = strings.TrimSpace(*request.Title)
	}
	if request.Description != nil {
		it.Description = strings.TrimSpace(*request.Description)
	}
	if request.Status != nil {
		it.Status = *request.Status
	}
	if request.Days != nil {
		it.Days = datatypes.NewJSONSlice(request.Days)
		if it.GeneratedBy == "ai" {
			it.Status = db_models.ItineraryCustomized
		}
	}
	if request.CulturalNotes != nil {
		it.CulturalNotes = pq.StringArray(request.CulturalNotes)
	}
	if request.TravelTips != nil {
		it.TravelTips = pq.StringArray(request.TravelTips)
	}
	it.Version++

	if err := s.itineraries.Save(ctx, it); err != nil {
		s.log.Error("update itinerary failed", "itinerary_id", it.ID, "error", err)
		return nil, utils.ErrDatabaseError
	}
	out := resp.NewItineraryResponse(it)
	return &out, nil
}

func validateUpdate(request request_models.UpdateItineraryRequest) error {
	if request.Title != nil {
		n := utf8.RuneCountInString(strings.TrimSpace(*request.Title))
		if n < 1 || n > maxTitleLength {
			return utils.NewFieldError("title", "must be between 1 and %d characters", maxTitleLength)
		}
	}
	if request.Description != nil && utf8.RuneCountInString(strings.TrimSpace(*request.Description)) > maxDescriptionLength {
		return utils.NewFieldError("description", "cannot exceed %d characters", maxDescriptionLength)
	}
	if request.Status != nil && !contains(validStatuses, *request.Status) {
		return utils.NewFieldError("status", "must be one of: %s", strings.Join(validStatuses, ", "))
	}
	for i, day := range request.Days {
		if day.DayNumber < 1 || strings.TrimSpace(day.Date) == "" || strings.TrimSpace(day.Title) == "" {
			return utils.NewFieldError("days", "day %d is missing required fields (dayNumber, date, title)", i+1)
		}
		if day.Activities == nil {
			return utils.NewFieldError("days", "day %d activities must be an array", i+1)
		}
	}
	return nil
}

func (s *ItineraryService) Delete(ctx context.Context, userID, id string) (*resp.DeletedItineraryResponse, error) {
	it, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.itineraries.Delete(ctx, it.ID); err != nil {
		s.log.Error("delete itinerary failed", "itinerary_id", it.ID, "error", err)
		return nil, utils.ErrDatabaseError
	}
	return &resp.DeletedItineraryResponse{
		ID:          it.ID.String(),
		Title:       it.Title,
		Duration:    it.Duration,
		GeneratedBy: it.GeneratedBy,
	}, nil
}

func (s *ItineraryService) SubmitFeedback(ctx context.Context, userID, id string, request request_models.ItineraryFeedbackRequest) (*resp.ItineraryFeedback, error) {
	if request.Rating < 1 || request.Rating > 5 {
		return nil, utils.NewFieldError("rating", "must be between 1 and 5")
	}
	if utf8.RuneCountInString(request.Review) > maxReviewLength {
		return nil, utils.NewFieldError("review", "cannot exceed %d characters", maxReviewLength)
	}
	if utf8.RuneCountInString(request.Suggestions) > maxSuggestionsLength {
		return nil, utils.NewFieldError("suggestions", "cannot exceed %d characters", maxSuggestionsLength)
	}
	it, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	submittedAt := s.now().Unix()
	err = s.itineraries.SaveFeedback(ctx, it.ID, map[string]interface{}{
		"feedback_rating":      request.Rating,
		"feedback_review":      strings.TrimSpace(request.Review),
		"used_itinerary":       request.UsedItinerary,
		"feedback_suggestions": strings.TrimSpace(request.Suggestions),
		"feedback_at":          submittedAt,
	})
	if err != nil {
		s.log.Error("save itinerary feedback failed", "itinerary_id", it.ID, "error", err)
		return nil, utils.ErrDatabaseError
	}
	return &resp.ItineraryFeedback{
		Rating:        request.Rating,
		Review:        strings.TrimSpace(request.Review),
		UsedItinerary: request.UsedItinerary,
		Suggestions:   strings.TrimSpace(request.Suggestions),
		SubmittedAt:   submittedAt,
	}, nil
}

// ShareURL is the public link encoded in exported documents.
func (s *ItineraryService) ShareURL(id uuid.UUID) string {
	return fmt.Sprintf("%s/itinerary/%s", s.frontendURL, id)
}

func (s *ItineraryService) Export(ctx context.Context, userID, id string) ([]byte, string, error) {
	it, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}
	doc, err := RenderItineraryPDF(it, TripSummaryOf(it), s.ShareURL(it.ID))
	if err != nil {
		s.log.Error("render itinerary pdf failed", "itinerary_id", it.ID, "error", err)
		return nil, "", err
	}
	if err := s.itineraries.IncrementDownloads(ctx, it.ID); err != nil {
		s.log.Warn("increment itinerary downloads failed", "itinerary_id", it.ID, "error", err)
	}
	filename := fmt.Sprintf("itinerary-%s.pdf", Slugify(it.Title))
	if filename == "itinerary-.pdf" {
		filename = fmt.Sprintf("itinerary-%s.pdf", it.ID)
	}
	return doc, filename, nil
}

func (s *ItineraryService) Popular(ctx context.Context) ([]resp.ItineraryListItem, error) {
	rows, err := s.itineraries.Popular(ctx, popularLimit)
	if err != nil {
		s.log.Error("popular itineraries failed", "error", err)
		return nil, utils.ErrDatabaseError
	}
	items := make([]resp.ItineraryListItem, 0, len(rows))
	for i := range rows {
		items = append(items, resp.NewItineraryListItem(&rows[i]))
	}
	return items, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
