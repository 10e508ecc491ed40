package services

import (
	"context"

	"github.com/google/uuid"

	"yatra/internal/models/db_models"
	"yatra/internal/repositories"
)

// The fakes embed the repository interface so only the methods a test
// touches need an implementation.

type fakeAccountRepo struct {
	repositories.AccountRepository
	users   map[string]*db_models.User
	updates map[string]interface{}
	visited map[uuid.UUID]bool
	added   []*db_models.VisitedDestination
	history []db_models.SearchEntry
}

func newFakeAccountRepo(users ...*db_models.User) *fakeAccountRepo {
	r := &fakeAccountRepo{users: map[string]*db_models.User{}, visited: map[uuid.UUID]bool{}}
	for _, u := range users {
		r.users[u.ID.String()] = u
	}
	return r
}

func (r *fakeAccountRepo) InsertTx(_ context.Context, u *db_models.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID.String()] = u
	return nil
}

func (r *fakeAccountRepo) FindById(_ context.Context, id string) (*db_models.User, error) {
	return r.users[id], nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*db_models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) Save(_ context.Context, u *db_models.User) error {
	r.users[u.ID.String()] = u
	return nil
}

func (r *fakeAccountRepo) UpdateColumns(_ context.Context, _ uuid.UUID, values map[string]interface{}) error {
	if r.updates == nil {
		r.updates = map[string]interface{}{}
	}
	for k, v := range values {
		r.updates[k] = v
	}
	return nil
}

func (r *fakeAccountRepo) AppendSearch(_ context.Context, _ uuid.UUID, entry db_models.SearchEntry, keep int) error {
	r.history = append(r.history, entry)
	if len(r.history) > keep {
		r.history = r.history[len(r.history)-keep:]
	}
	return nil
}

func (r *fakeAccountRepo) AddVisited(_ context.Context, v *db_models.VisitedDestination) error {
	r.visited[v.DestinationID] = true
	r.added = append(r.added, v)
	return nil
}

func (r *fakeAccountRepo) HasVisited(_ context.Context, _ uuid.UUID, destinationID uuid.UUID) (bool, error) {
	return r.visited[destinationID], nil
}

type fakeDestinationRepo struct {
	repositories.DestinationRepository
	byID        map[uuid.UUID]*db_models.Destination
	candidates  []db_models.Destination
	recommended []db_models.Destination
	candidateF  repositories.CandidateFilter
	recommendF  repositories.RecommendationFilter
}

func (r *fakeDestinationRepo) FindById(_ context.Context, id uuid.UUID) (*db_models.Destination, error) {
	return r.byID[id], nil
}

func (r *fakeDestinationRepo) Candidates(_ context.Context, f repositories.CandidateFilter) ([]db_models.Destination, error) {
	r.candidateF = f
	return r.candidates, nil
}

func (r *fakeDestinationRepo) Recommend(_ context.Context, f repositories.RecommendationFilter) ([]db_models.Destination, error) {
	r.recommendF = f
	return r.recommended, nil
}

type fakeItineraryRepo struct {
	repositories.ItineraryRepository
	items     map[uuid.UUID]*db_models.Itinerary
	created   *db_models.Itinerary
	saved     *db_models.Itinerary
	deleted   []uuid.UUID
	views     int
	downloads int
	feedback  map[string]interface{}
}

func newFakeItineraryRepo(items ...*db_models.Itinerary) *fakeItineraryRepo {
	r := &fakeItineraryRepo{items: map[uuid.UUID]*db_models.Itinerary{}}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *fakeItineraryRepo) Create(_ context.Context, it *db_models.Itinerary) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	r.created = it
	r.items[it.ID] = it
	return nil
}

func (r *fakeItineraryRepo) FindById(_ context.Context, id uuid.UUID) (*db_models.Itinerary, error) {
	return r.items[id], nil
}

func (r *fakeItineraryRepo) Save(_ context.Context, it *db_models.Itinerary) error {
	r.saved = it
	return nil
}

func (r *fakeItineraryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	delete(r.items, id)
	return nil
}

func (r *fakeItineraryRepo) IncrementViews(context.Context, uuid.UUID) error {
	r.views++
	return nil
}

func (r *fakeItineraryRepo) IncrementDownloads(context.Context, uuid.UUID) error {
	r.downloads++
	return nil
}

func (r *fakeItineraryRepo) SaveFeedback(_ context.Context, _ uuid.UUID, values map[string]interface{}) error {
	r.feedback = values
	return nil
}

func (r *fakeAccountRepo) ListVisited(_ context.Context, userID uuid.UUID) ([]db_models.VisitedDestination, error) {
	var out []db_models.VisitedDestination
	for _, v := range r.added {
		if v.UserID == userID {
			out = append(out, *v)
		}
	}
	return out, nil
}

// reverseEmbedded reverses the order so tests can tell a rerank happened.
type reverseEmbedded struct {
	EmbededServiceInterface
	calls int
}

func (e *reverseEmbedded) RerankByInterests(_ context.Context, _ []string, destinations []db_models.Destination) []db_models.Destination {
	e.calls++
	out := make([]db_models.Destination, len(destinations))
	for i, d := range destinations {
		out[len(destinations)-1-i] = d
	}
	return out
}
