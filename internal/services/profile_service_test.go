package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"yatra/internal/models/db_models"
	"yatra/internal/models/request_models"
	"yatra/pkg/logger"
	"yatra/pkg/utils"
)

func newTestProfileService(accounts *fakeAccountRepo, dests *fakeDestinationRepo, embedded EmbededServiceInterface) *ProfileService {
	svc := NewProfileService(accounts, dests, embedded, logger.NewNop()).(*ProfileService)
	svc.now = func() time.Time { return time.Date(2025, time.November, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestUpdatePreferencesMergesSections(t *testing.T) {
	user := testUser()
	user.TourismPreferences = datatypes.NewJSONType(db_models.TourismPreferences{
		Interests:   db_models.InterestPreferences{Primary: []string{"caves"}},
		TravelStyle: db_models.TravelStyle{GuidedVsIndependent: "guided"},
	})
	accounts := newFakeAccountRepo(user)
	svc := newTestProfileService(accounts, &fakeDestinationRepo{}, &reverseEmbedded{})

	var req request_models.UpdatePreferencesRequest
	req.TourismPreferences.Interests = &db_models.InterestPreferences{Primary: []string{" Waterfalls "}, Avoid: []string{"caves"}}
	out, err := svc.UpdatePreferences(context.Background(), user.ID.String(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Preferences.Interests.Primary[0] != "waterfalls" {
		t.Fatalf("expected normalized interests, got %v", out.Preferences.Interests.Primary)
	}
	if out.Preferences.TravelStyle.GuidedVsIndependent != "guided" {
		t.Fatalf("untouched section was replaced")
	}
	if _, ok := accounts.updates["tourism_preferences"]; !ok {
		t.Fatalf("expected tourism_preferences to be written")
	}
}

func TestUpdatePreferencesRejectsInvertedBudget(t *testing.T) {
	user := testUser()
	svc := newTestProfileService(newFakeAccountRepo(user), &fakeDestinationRepo{}, &reverseEmbedded{})

	var req request_models.UpdatePreferencesRequest
	req.TourismPreferences.BudgetPreferences = &db_models.BudgetPreferences{
		DailyBudget: db_models.BudgetRange{Min: 5000, Max: 2000},
	}
	_, err := svc.UpdatePreferences(context.Background(), user.ID.String(), req)
	if !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestAddVisited(t *testing.T) {
	user := testUser()
	dest := testDestinations()[0]
	accounts := newFakeAccountRepo(user)
	dests := &fakeDestinationRepo{byID: map[uuid.UUID]*db_models.Destination{dest.ID: &dest}}
	svc := newTestProfileService(accounts, dests, &reverseEmbedded{})

	req := request_models.AddVisitedDestinationRequest{DestinationID: dest.ID.String(), VisitDate: "2025-10-02", Rating: 5}
	out, err := svc.AddVisited(context.Background(), user.ID.String(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].Rating != 5 {
		t.Fatalf("unexpected visited list %+v", out)
	}
	if want := time.Date(2025, time.October, 2, 0, 0, 0, 0, time.UTC).Unix(); out[0].VisitDate != want {
		t.Fatalf("expected visit date %d, got %d", want, out[0].VisitDate)
	}

	if _, err := svc.AddVisited(context.Background(), user.ID.String(), req); !errors.Is(err, utils.ErrAlreadyVisited) {
		t.Fatalf("expected ErrAlreadyVisited, got %v", err)
	}

	req.DestinationID = uuid.NewString()
	if _, err := svc.AddVisited(context.Background(), user.ID.String(), req); !errors.Is(err, utils.ErrDestinationNotFound) {
		t.Fatalf("expected ErrDestinationNotFound, got %v", err)
	}
}

func TestRecommendationsUseNearbyDistricts(t *testing.T) {
	user := testUser()
	user.Address = datatypes.NewJSONType(db_models.Address{City: "Ranchi", State: "Jharkhand"})
	dests := &fakeDestinationRepo{recommended: testDestinations()}
	embedded := &reverseEmbedded{}
	svc := newTestProfileService(newFakeAccountRepo(user), dests, embedded)

	out, err := svc.Recommendations(context.Background(), user.ID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dests.recommendF.Districts) != 4 || dests.recommendF.Districts[1] != "khunti" {
		t.Fatalf("unexpected districts %v", dests.recommendF.Districts)
	}
	if dests.recommendF.Limit != 10 {
		t.Fatalf("expected limit 10, got %d", dests.recommendF.Limit)
	}
	if embedded.calls != 1 || out.Recommendations[0].Name != "Jagannath Temple" {
		t.Fatalf("expected reranked output, got %d calls", embedded.calls)
	}
	if out.BasedOn.Location != "Ranchi" {
		t.Fatalf("unexpected basis %+v", out.BasedOn)
	}
}

func TestRecommendationsOutsideJharkhand(t *testing.T) {
	user := testUser()
	user.TourismPreferences = datatypes.NewJSONType(db_models.TourismPreferences{})
	user.Address = datatypes.NewJSONType(db_models.Address{City: "Kolkata", State: "West Bengal"})
	dests := &fakeDestinationRepo{recommended: testDestinations()}
	embedded := &reverseEmbedded{}
	svc := newTestProfileService(newFakeAccountRepo(user), dests, embedded)

	out, err := svc.Recommendations(context.Background(), user.ID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dests.recommendF.Districts != nil {
		t.Fatalf("expected no district filter, got %v", dests.recommendF.Districts)
	}
	if embedded.calls != 0 || out.Recommendations[0].Name != "Hundru Falls" {
		t.Fatalf("expected rating order without interests")
	}
	if out.BasedOn.Interests == nil {
		t.Fatalf("expected an empty interests list")
	}
}

func TestNearbyDistricts(t *testing.T) {
	if got := NearbyDistricts(" Dhanbad "); len(got) != 3 || got[1] != "bokaro" {
		t.Fatalf("unexpected districts %v", got)
	}
	if got := NearbyDistricts("Hazaribagh"); len(got) != 1 || got[0] != "hazaribagh" {
		t.Fatalf("expected the city itself, got %v", got)
	}
	if got := NearbyDistricts(""); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestTrackSearch(t *testing.T) {
	user := testUser()
	accounts := newFakeAccountRepo(user)
	svc := newTestProfileService(accounts, &fakeDestinationRepo{}, &reverseEmbedded{})

	err := svc.TrackSearch(context.Background(), user.ID.String(), request_models.TrackSearchRequest{
		Query:   " waterfalls near ranchi ",
		Filters: map[string]interface{}{"district": "Ranchi"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts.history) != 1 || accounts.history[0].Query != "waterfalls near ranchi" {
		t.Fatalf("unexpected history %+v", accounts.history)
	}
	if err := svc.TrackSearch(context.Background(), user.ID.String(), request_models.TrackSearchRequest{Query: "  "}); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
