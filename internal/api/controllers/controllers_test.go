package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"yatra/internal/models/request_models"
	resp "yatra/internal/models/response_models"
	"yatra/internal/services"
	"yatra/pkg/utils"
)

type fakeItineraryService struct {
	services.ItineraryServiceInterface
	userID  string
	request request_models.GenerateItineraryRequest
	err     error
}

func (f *fakeItineraryService) Generate(_ context.Context, userID string, request request_models.GenerateItineraryRequest) (*resp.GenerateItineraryResponse, error) {
	f.userID = userID
	f.request = request
	if f.err != nil {
		return nil, f.err
	}
	return &resp.GenerateItineraryResponse{Itinerary: resp.ItineraryResponse{ID: "it-1", Title: "Ranchi Adventure"}}, nil
}

func (f *fakeItineraryService) Export(_ context.Context, userID, id string) ([]byte, string, error) {
	if id != "it-1" {
		return nil, "", utils.ErrItineraryNotFound
	}
	return []byte("%PDF-1.3"), "ranchi-adventure.pdf", nil
}

type fakeDestinationService struct {
	services.DestinationServiceInterface
	nearby request_models.NearbyQuery
}

func (f *fakeDestinationService) Get(_ context.Context, idOrSlug string) (*resp.DestinationResponse, error) {
	if idOrSlug != "hundru-falls" {
		return nil, utils.ErrDestinationNotFound
	}
	return &resp.DestinationResponse{Name: "Hundru Falls", Slug: idOrSlug}, nil
}

func (f *fakeDestinationService) Nearby(_ context.Context, query request_models.NearbyQuery) ([]resp.DestinationResponse, error) {
	f.nearby = query
	return []resp.DestinationResponse{}, nil
}

type fakeChatService struct {
	services.ChatServiceInterface
	userID string
	client services.ClientInfo
	sent   int
}

func (f *fakeChatService) Initialize(_ context.Context, userID string, request request_models.InitializeChatRequest, client services.ClientInfo) (*resp.InitializeChatResponse, error) {
	f.userID = userID
	f.client = client
	return &resp.InitializeChatResponse{SessionID: "s-1", Status: "active", Language: "en"}, nil
}

func (f *fakeChatService) SendMessage(context.Context, request_models.SendMessageRequest) (*resp.SendMessageResponse, error) {
	f.sent++
	return &resp.SendMessageResponse{Status: "active"}, nil
}

// withUser stands in for the JWT middleware.
func withUser(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id != "" {
			c.Set("user_id", id)
		}
		c.Next()
	}
}

func newTestRouter(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(withUser(userID))
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var body utils.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestGenerateItinerary(t *testing.T) {
	svc := &fakeItineraryService{}
	r := newTestRouter("user-1")
	r.POST("/itinerary/generate", NewItineraryController(svc).Generate)

	body := `{"duration":3,"startDate":"2025-11-10","groupSize":2,"budget":{"total":15000,"budgetType":"mid-range"},"interests":["waterfalls"]}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/itinerary/generate", strings.NewReader(body)))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if svc.userID != "user-1" || svc.request.Duration != 3 || svc.request.Budget.Total != 15000 {
		t.Fatalf("request not passed through: %q %+v", svc.userID, svc.request)
	}
	if got := decode(t, w); got.Status != "success" {
		t.Fatalf("unexpected envelope %+v", got)
	}
}

func TestGenerateItineraryRejectsBadBody(t *testing.T) {
	svc := &fakeItineraryService{}
	r := newTestRouter("user-1")
	r.POST("/itinerary/generate", NewItineraryController(svc).Generate)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/itinerary/generate", strings.NewReader(`{"duration":3}`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without startDate, got %d", w.Code)
	}
	if svc.userID != "" {
		t.Fatalf("service should not be called")
	}
}

func TestGenerateItineraryMapsServiceErrors(t *testing.T) {
	svc := &fakeItineraryService{err: utils.NewFieldError("duration", "must be between 1 and 30 days")}
	r := newTestRouter("user-1")
	r.POST("/itinerary/generate", NewItineraryController(svc).Generate)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/itinerary/generate", strings.NewReader(`{"duration":0,"startDate":"2025-11-10"}`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := decode(t, w); !strings.HasPrefix(got.Message, "duration:") {
		t.Fatalf("expected the field in the message, got %q", got.Message)
	}
}

func TestExportItinerary(t *testing.T) {
	r := newTestRouter("user-1")
	r.GET("/itinerary/:id/export", NewItineraryController(&fakeItineraryService{}).Export)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/itinerary/it-1/export", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="ranchi-adventure.pdf"` {
		t.Fatalf("unexpected disposition %q", cd)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/itinerary/other/export", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDestinationGet(t *testing.T) {
	r := newTestRouter("")
	r.GET("/destinations/:id", NewDestinationController(&fakeDestinationService{}).Get)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/destinations/hundru-falls", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/destinations/atlantis", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDestinationNearbyRequiresCoordinates(t *testing.T) {
	svc := &fakeDestinationService{}
	r := newTestRouter("")
	r.GET("/destinations/nearby", NewDestinationController(svc).Nearby)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/destinations/nearby?lat=23.3", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without lng, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/destinations/nearby?lat=23.3&lng=85.3&radius=20", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.nearby.Radius != 20 || svc.nearby.Lng != 85.3 {
		t.Fatalf("unexpected query %+v", svc.nearby)
	}
}

func TestChatInitializeWithoutBody(t *testing.T) {
	svc := &fakeChatService{}
	r := newTestRouter("")
	r.POST("/chat/initialize", NewChatController(svc).Initialize)

	req := httptest.NewRequest(http.MethodPost, "/chat/initialize", nil)
	req.Header.Set("User-Agent", "yatra-test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if svc.userID != "" || svc.client.UserAgent != "yatra-test" {
		t.Fatalf("unexpected call %q %+v", svc.userID, svc.client)
	}
}

func TestChatSendMessageValidation(t *testing.T) {
	svc := &fakeChatService{}
	r := newTestRouter("")
	r.POST("/chat/message", NewChatController(svc).SendMessage)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat/message", strings.NewReader(`{"sessionId":"s-1"}`)))
	if w.Code != http.StatusBadRequest || svc.sent != 0 {
		t.Fatalf("expected 400 without message, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat/message", strings.NewReader(`{"sessionId":"s-1","message":"hello"}`)))
	if w.Code != http.StatusOK || svc.sent != 1 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter("")
	r.GET("/health", NewHealthController("test").Health)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	data, _ := decode(t, w).Data.(map[string]interface{})
	if data["status"] != "OK" || data["environment"] != "test" {
		t.Fatalf("unexpected data %+v", data)
	}
}
