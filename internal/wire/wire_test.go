package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/notify"
	"venue-booking/pkg/middleware"
	"venue-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const adminPassword = "loG#123"

type testServer struct {
	t      *testing.T
	router http.Handler
	repo   *repository.Repository
	config *utils.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	hash, err := utils.HashPassword(adminPassword)
	require.NoError(t, err)

	config := &utils.Config{
		App:       utils.AppConfig{Name: "venue-booking-test", Timezone: "UTC"},
		Storage:   utils.StorageConfig{Driver: "memory"},
		JWT:       utils.JWTConfig{Secret: "test-secret"},
		Admin:     utils.AdminConfig{PasswordHash: hash, SessionHours: 8},
		RateLimit: utils.RateLimitConfig{Booking: "1000-M", Login: "1000-M"},
		CORS:      utils.CORSConfig{AllowedOrigins: []string{"*"}},
	}
	repo := repository.NewMemoryRepository(zap.NewNop())

	app, err := Wiring(repo, config, Infra{}, zap.NewNop())
	require.NoError(t, err)

	return &testServer{t: t, router: app.Router, repo: repo, config: config}
}

func (s *testServer) addVenue(name string) *entity.Venue {
	s.t.Helper()
	now := time.Now()
	v := &entity.Venue{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:     name,
		Location: "Bloco A",
		Capacity: 50,
		IsActive: true,
	}
	require.NoError(s.t, s.repo.Venue.Create(context.Background(), v))
	return v
}

func (s *testServer) token(userID string) string {
	s.t.Helper()
	tok, err := utils.IssueToken(s.config.JWT, userID, userID+"@example.com", time.Hour)
	require.NoError(s.t, err)
	return tok
}

type call struct {
	method string
	path   string
	body   any
	token  string
	admin  bool
}

func (s *testServer) do(c call) *httptest.ResponseRecorder {
	s.t.Helper()
	var body bytes.Buffer
	if c.body != nil {
		require.NoError(s.t, json.NewEncoder(&body).Encode(c.body))
	}
	req := httptest.NewRequest(c.method, c.path, &body)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.admin {
		req.AddCookie(&http.Cookie{Name: middleware.AdminCookieName, Value: middleware.AdminCookieValue})
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func bookingBody(venueID uuid.UUID, date, start, end string) map[string]any {
	return map[string]any{
		"company_name":          "ACME",
		"contact_name":          "Maria",
		"contact_phone":         "+55 14 99999-0000",
		"contact_email":         "maria@example.com",
		"venue_id":              venueID.String(),
		"event_date":            date,
		"start_time":            start,
		"end_time":              end,
		"event_title":           "Workshop",
		"is_public":             true,
		"is_free":               true,
		"requires_registration": false,
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestBookingFlow(t *testing.T) {
	s := newTestServer(t)
	v1 := s.addVenue("V1")
	u1, u2 := s.token("U1"), s.token("U2")

	rec := s.do(call{method: http.MethodPost, path: "/api/bookings", body: bookingBody(v1.ID, "2025-07-01", "14:00", "16:00"), token: u1})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[utils.MessageBody](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.Message)

	rec = s.do(call{method: http.MethodPost, path: "/api/bookings", body: bookingBody(v1.ID, "2025-07-01", "15:00", "17:00"), token: u2})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, decode[utils.ErrorBody](t, rec).Error)

	rec = s.do(call{method: http.MethodPost, path: "/api/admin/bookings/" + created.ID + "/action", body: map[string]string{"action": "reject", "rejection_reason": "Maintenance"}, admin: true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(call{method: http.MethodPost, path: "/api/bookings", body: bookingBody(v1.ID, "2025-07-01", "15:00", "17:00"), token: u2})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(call{method: http.MethodGet, path: "/api/bookings/my", token: u1})
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decode[[]map[string]any](t, rec)
	require.Len(t, mine, 1)
	assert.Equal(t, "rejected", mine[0]["status"])
	assert.Equal(t, "Maintenance", mine[0]["rejection_reason"])
	assert.Equal(t, "V1", mine[0]["venue_name"])
	assert.Equal(t, "Bloco A", mine[0]["venue_location"])

	rec = s.do(call{method: http.MethodGet, path: "/api/admin/bookings", admin: true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 2)
}

func TestAuthErrors(t *testing.T) {
	s := newTestServer(t)
	v := s.addVenue("V")

	rec := s.do(call{method: http.MethodPost, path: "/api/bookings", body: bookingBody(v.ID, "2025-07-01", "14:00", "16:00")})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(call{method: http.MethodGet, path: "/api/bookings/my", token: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(call{method: http.MethodGet, path: "/api/admin/bookings"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(call{method: http.MethodPost, path: "/api/admin/bookings/" + uuid.NewString() + "/action", body: map[string]string{"action": "approve"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestValidationErrors(t *testing.T) {
	s := newTestServer(t)
	v := s.addVenue("V")
	tok := s.token("U1")

	body := bookingBody(v.ID, "2025-07-01", "16:00", "14:00")
	delete(body, "company_name")
	rec := s.do(call{method: http.MethodPost, path: "/api/bookings", body: body, token: tok})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errBody := decode[utils.ErrorBody](t, rec)
	assert.Contains(t, errBody.Fields, "company_name")
	assert.Contains(t, errBody.Fields, "end_time")

	rec = s.do(call{method: http.MethodPost, path: "/api/admin/bookings/" + uuid.NewString() + "/action", body: map[string]string{"action": "archive"}, admin: true})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[utils.ErrorBody](t, rec).Fields, "action")
}

func TestAdminActionOnUnknownBooking(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(call{method: http.MethodPost, path: "/api/admin/bookings/" + uuid.NewString() + "/action", body: map[string]string{"action": "approve"}, admin: true})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(call{method: http.MethodDelete, path: "/api/admin/bookings/" + uuid.NewString(), admin: true})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSecondDecisionIsRejected(t *testing.T) {
	s := newTestServer(t)
	v := s.addVenue("V")

	rec := s.do(call{method: http.MethodPost, path: "/api/bookings", body: bookingBody(v.ID, "2025-07-01", "14:00", "16:00"), token: s.token("U1")})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[utils.MessageBody](t, rec).ID

	rec = s.do(call{method: http.MethodPost, path: "/api/admin/bookings/" + id + "/action", body: map[string]string{"action": "approve"}, admin: true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(call{method: http.MethodPost, path: "/api/admin/bookings/" + id + "/action", body: map[string]string{"action": "reject"}, admin: true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminSessionLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(call{method: http.MethodGet, path: "/api/admin/status"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]bool{"isAuthenticated": false}, decode[map[string]bool](t, rec))

	rec = s.do(call{method: http.MethodPost, path: "/api/admin/login", body: map[string]string{"cpf": "52998224725", "password": "wrong"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(call{method: http.MethodPost, path: "/api/admin/login", body: map[string]string{"cpf": "123", "password": adminPassword}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(call{method: http.MethodPost, path: "/api/admin/login", body: map[string]string{"cpf": "123", "password": "wrong"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(call{method: http.MethodPost, path: "/api/admin/login", body: map[string]string{"cpf": "52998224725", "password": adminPassword}})
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.AdminCookieName, cookies[0].Name)
	assert.Equal(t, middleware.AdminCookieValue, cookies[0].Value)
	assert.Equal(t, 8*60*60, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)

	rec = s.do(call{method: http.MethodGet, path: "/api/admin/status", admin: true})
	assert.Equal(t, map[string]bool{"isAuthenticated": true}, decode[map[string]bool](t, rec))

	rec = s.do(call{method: http.MethodPost, path: "/api/admin/logout", admin: true})
	require.Equal(t, http.StatusOK, rec.Code)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestPublicEndpoints(t *testing.T) {
	s := newTestServer(t)
	v := s.addVenue("Teatro")
	future := time.Now().UTC().AddDate(0, 0, 7).Format(time.DateOnly)

	rec := s.do(call{method: http.MethodGet, path: "/api/venues"})
	require.Equal(t, http.StatusOK, rec.Code)
	venues := decode[[]map[string]any](t, rec)
	require.Len(t, venues, 1)
	assert.Equal(t, "Teatro", venues[0]["name"])

	rec = s.do(call{method: http.MethodPost, path: "/api/bookings", body: bookingBody(v.ID, future, "09:00", "10:00"), token: s.token("U1")})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[utils.MessageBody](t, rec).ID

	rec = s.do(call{method: http.MethodGet, path: "/api/events/public"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]map[string]any](t, rec), "pending bookings are not public events")

	rec = s.do(call{method: http.MethodPost, path: "/api/admin/bookings/" + id + "/action", body: map[string]string{"action": "approve"}, admin: true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(call{method: http.MethodGet, path: "/api/events/public"})
	require.Equal(t, http.StatusOK, rec.Code)
	events := decode[[]map[string]any](t, rec)
	require.Len(t, events, 1)
	assert.Equal(t, "Teatro", events[0]["venue_name"])
	assert.NotContains(t, events[0], "contact_email")

	rec = s.do(call{method: http.MethodGet, path: "/api/venues/" + v.ID.String() + "/availability?date=" + future + "&start_time=09:30&end_time=11:00"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]bool{"available": false}, decode[map[string]bool](t, rec))

	rec = s.do(call{method: http.MethodGet, path: "/api/venues/" + v.ID.String() + "/availability?date=" + future + "&start_time=10:00&end_time=11:00"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]bool{"available": true}, decode[map[string]bool](t, rec))
}

func TestUsersMe(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(call{method: http.MethodGet, path: "/api/users/me", token: s.token("U9")})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"id": "U9", "email": "U9@example.com"}, decode[map[string]string](t, rec))
}

func TestAdminVenueManagement(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(call{method: http.MethodPost, path: "/api/admin/venues", body: map[string]any{"name": "Sala Nova", "location": "Bloco F", "capacity": 40, "amenities": []string{"Projetor"}}})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(call{method: http.MethodPost, path: "/api/admin/venues", body: map[string]any{"name": "Sala Nova", "location": "Bloco F", "capacity": 40, "amenities": []string{"Projetor"}}, admin: true})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]any](t, rec)
	assert.Equal(t, true, created["is_active"])

	id := created["id"].(string)
	rec = s.do(call{method: http.MethodPut, path: "/api/admin/venues/" + id, body: map[string]any{"name": "Sala Nova", "location": "Bloco F", "capacity": 45, "is_active": false}, admin: true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(call{method: http.MethodGet, path: "/api/venues"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]map[string]any](t, rec))
}

func TestWildcardOriginCannotUseAdminSession(t *testing.T) {
	s := newTestServer(t)

	preflight := httptest.NewRequest(http.MethodOptions, "/api/admin/bookings", nil)
	preflight.Header.Set("Origin", "https://evil.example")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, preflight)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.AddCookie(&http.Cookie{Name: middleware.AdminCookieName, Value: middleware.AdminCookieValue})
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.NotEqual(t, "https://evil.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestListedOriginKeepsAdminSession(t *testing.T) {
	hash, err := utils.HashPassword(adminPassword)
	require.NoError(t, err)
	config := &utils.Config{
		App:       utils.AppConfig{Name: "venue-booking-test", Timezone: "UTC"},
		Storage:   utils.StorageConfig{Driver: "memory"},
		JWT:       utils.JWTConfig{Secret: "test-secret"},
		Admin:     utils.AdminConfig{PasswordHash: hash, SessionHours: 8},
		RateLimit: utils.RateLimitConfig{Booking: "1000-M", Login: "1000-M"},
		CORS:      utils.CORSConfig{AllowedOrigins: []string{"https://eventos.unimar.br"}},
	}
	app, err := Wiring(repository.NewMemoryRepository(zap.NewNop()), config, Infra{}, zap.NewNop())
	require.NoError(t, err)

	for _, origin := range []string{"https://eventos.unimar.br", "https://evil.example"} {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil)
		req.Header.Set("Origin", origin)
		req.AddCookie(&http.Cookie{Name: middleware.AdminCookieName, Value: middleware.AdminCookieValue})
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)

		if origin == "https://evil.example" {
			assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
			continue
		}
		assert.Equal(t, origin, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	}
}

type stalledNotifier struct{ release chan struct{} }

func (s stalledNotifier) BookingCreated(context.Context, *entity.Booking, *entity.Venue) { <-s.release }
func (s stalledNotifier) BookingDecided(context.Context, *entity.Booking, *entity.Venue) { <-s.release }

func TestStalledNotifierDoesNotDelayResponses(t *testing.T) {
	hash, err := utils.HashPassword(adminPassword)
	require.NoError(t, err)
	config := &utils.Config{
		App:       utils.AppConfig{Name: "venue-booking-test", Timezone: "UTC"},
		Storage:   utils.StorageConfig{Driver: "memory"},
		JWT:       utils.JWTConfig{Secret: "test-secret"},
		Admin:     utils.AdminConfig{PasswordHash: hash, SessionHours: 8},
		RateLimit: utils.RateLimitConfig{Booking: "1000-M", Login: "1000-M"},
	}
	stalled := stalledNotifier{release: make(chan struct{})}
	async := notify.NewAsync(stalled, notify.DefaultQueueSize, zap.NewNop())
	defer func() {
		close(stalled.release)
		_ = async.Close(context.Background())
	}()

	repo := repository.NewMemoryRepository(zap.NewNop())
	app, err := Wiring(repo, config, Infra{Notifier: async}, zap.NewNop())
	require.NoError(t, err)
	s := &testServer{t: t, router: app.Router, repo: repo, config: config}
	venue := s.addVenue("V1")

	start := time.Now()
	rec := s.do(call{method: http.MethodPost, path: "/api/bookings", body: bookingBody(venue.ID, "2025-07-01", "14:00", "16:00"), token: s.token("U1")})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[utils.MessageBody](t, rec)

	rec = s.do(call{method: http.MethodPost, path: "/api/admin/bookings/" + created.ID + "/action", body: map[string]string{"action": "approve"}, admin: true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Less(t, time.Since(start), time.Second)
}
