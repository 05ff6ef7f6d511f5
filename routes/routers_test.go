package routes

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"rento/controllers"
	"rento/middleware"
	"rento/response"
	"rento/services"
	"rento/services/logger"
	"rento/services/notification"
	"rento/storage"
	"rento/validator"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	ownerEmail    = "owner@rento.local"
	ownerPassword = "12345"
)

type testApp struct {
	router   *gin.Engine
	store    *storage.MemoryStore
	notifier *notification.Recorder
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.RegisterBindings())

	log := logger.NewNop()
	store := storage.NewMemoryStore()
	rec := &notification.Recorder{}
	sessions := services.NewMemorySessionStore(100, nil)
	t.Cleanup(sessions.Stop)

	users := services.NewUserService(services.UserServiceOptions{
		Store:    store,
		Sessions: sessions,
		Logger:   log,
		HashCost: bcrypt.MinCost,
	})
	require.NoError(t, users.EnsureDefaultUser(context.Background(), ownerEmail, ownerPassword))

	properties := services.NewPropertyService(services.PropertyServiceOptions{Store: store, Logger: log})
	bookings := services.NewBookingService(services.BookingServiceOptions{
		Properties: properties,
		Notifier:   rec,
		Logger:     log,
	})
	tickets := services.NewTicketService(services.TicketServiceOptions{
		Store:      store,
		Properties: properties,
		Notifier:   rec,
		Logger:     log,
	})
	tokens := services.NewTokenService("test-secret", "rento")

	router := gin.New()
	router.Use(middleware.ErrorHandler(log))
	SetupRoutes(router, Dependencies{
		Auth:  controllers.NewAuthController(users, tokens),
		Users: controllers.NewUserController(users),
		Properties: controllers.NewPropertyController(controllers.PropertyControllerOptions{
			Properties: properties,
			Bookings:   bookings,
			Tickets:    tickets,
			Links:      services.NewTenantLinks("http://localhost:3000"),
		}),
		Tickets:     controllers.NewTicketController(tickets),
		Tenant:      controllers.NewTenantController(properties, tickets),
		Dashboard:   controllers.NewDashboardController(services.NewDashboardService(properties, tickets, nil)),
		Media:       controllers.NewMediaController(services.NewMediaService(nil, log)),
		RequireAuth: middleware.AuthMiddleware(tokens, users),
	})
	return &testApp{router: router, store: store, notifier: rec}
}

func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) response.Response {
	t.Helper()
	var envelope struct {
		Code int             `json:"code"`
		Mess string          `json:"mess"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	if data != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, data))
	}
	return response.Response{Code: envelope.Code, Mess: envelope.Mess}
}

func (a *testApp) login(t *testing.T) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    ownerEmail,
		"password": ownerPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		AccessToken string `json:"accessToken"`
	}
	decode(t, w, &out)
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

func TestPing(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/v1/properties", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/tickets", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignupLoginMeLogout(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name": "Ana", "email": "ana@example.com", "password": "secret",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = app.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name": "Ana", "email": "ana@example.com", "password": "secret",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "ana@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := app.login(t)
	w = app.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me map[string]interface{}
	decode(t, w, &me)
	assert.Equal(t, ownerEmail, me["email"])
	assert.NotContains(t, me, "password")

	w = app.do(t, http.MethodDelete, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSeededPropertiesAreListed(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	w := app.do(t, http.MethodGet, "/api/v1/properties", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var props []map[string]interface{}
	decode(t, w, &props)
	require.Len(t, props, 4)
	assert.Equal(t, "Sunny Beach House", props[0]["name"])

	w = app.do(t, http.MethodGet, "/api/v1/properties/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePropertyRejectsTakenID(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	w := app.do(t, http.MethodPost, "/api/v1/properties", token, map[string]interface{}{
		"id": "1", "name": "Copy", "address": "1 Elm St", "status": "vacant", "pricePerNight": 90,
	})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	w = app.do(t, http.MethodGet, "/api/v1/properties", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var props []map[string]interface{}
	decode(t, w, &props)
	assert.Len(t, props, 4)
}

func TestBookingConflict(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	w := app.do(t, http.MethodPost, "/api/v1/properties/2/bookings", token, map[string]interface{}{
		"guestName": "John", "startDate": "2024-06-10", "endDate": "2024-06-15",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var booked map[string]interface{}
	decode(t, w, &booked)
	assert.Equal(t, float64(6), booked["nights"])
	assert.Equal(t, float64(1080), booked["total"])
	assert.Equal(t, "2024-06-10", booked["startDate"])

	w = app.do(t, http.MethodPost, "/api/v1/properties/2/bookings", token, map[string]interface{}{
		"guestName": "Jane", "startDate": "2024-06-15", "endDate": "2024-06-18",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/properties/2/bookings", token, map[string]interface{}{
		"guestName": "Jane", "startDate": "2024-06-20", "endDate": "2024-06-18",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/properties/2/bookings", token, map[string]interface{}{
		"guestName": "Jane", "startDate": "June 20", "endDate": "2024-06-22",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/properties/2/booked-dates", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dates []string
	decode(t, w, &dates)
	assert.Len(t, dates, 6)
}

func TestTicketCreateThenUpdate(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	w := app.do(t, http.MethodPost, "/api/v1/tickets", token, map[string]interface{}{
		"propertyId":  "1",
		"title":       "Leaky Faucet",
		"description": "Kitchen faucet drips",
		"urgency":     "high",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created map[string]interface{}
	decode(t, w, &created)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "open", created["status"])

	w = app.do(t, http.MethodPut, "/api/v1/tickets/"+id, token, map[string]interface{}{
		"status":     "in-progress",
		"assignedTo": "Bob the Plumber",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated map[string]interface{}
	decode(t, w, &updated)
	assert.Equal(t, "in-progress", updated["status"])
	assert.Equal(t, "Leaky Faucet", updated["title"])
	assert.Equal(t, created["createdAt"], updated["createdAt"])

	w = app.do(t, http.MethodPut, "/api/v1/tickets/nope", token, map[string]interface{}{"status": "closed"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/tickets?q=plumber", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var found []map[string]interface{}
	decode(t, w, &found)
	assert.Len(t, found, 1)

	assert.Len(t, app.notifier.Events(), 2)
}

func TestTenantSubmission(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/v1/tenant/properties/3", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/tenant/properties/3/tickets", "", map[string]interface{}{
		"title": "Broken window",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var ticket map[string]interface{}
	decode(t, w, &ticket)
	assert.Equal(t, true, ticket["isTenantSubmitted"])
	assert.Equal(t, "3", ticket["propertyId"])

	w = app.do(t, http.MethodPost, "/api/v1/tenant/properties/404/tickets", "", map[string]interface{}{
		"title": "Broken window",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQRCode(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	w := app.do(t, http.MethodGet, "/api/v1/properties/1/qrcode", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
}

func TestUploadDisabled(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	w := app.do(t, http.MethodPost, "/api/v1/img/upload", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
