package middleware

import (
	goerrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"rento/errors"
	"rento/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"property missing", errors.ErrPropertyNotFound, http.StatusNotFound},
		{"wrapped ticket missing", fmt.Errorf("update: %w", errors.ErrTicketNotFound), http.StatusNotFound},
		{"booking conflict", fmt.Errorf("%w: John", errors.ErrBookingConflict), http.StatusConflict},
		{"duplicate email", errors.ErrUserAlreadyExists, http.StatusConflict},
		{"duplicate property id", errors.ErrPropertyExists, http.StatusConflict},
		{"bad password", errors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired session", errors.ErrSessionExpired, http.StatusUnauthorized},
		{"uploads off", errors.ErrUploadDisabled, http.StatusServiceUnavailable},
		{"validation", errors.NewAppError(errors.ErrCodeRequiredField, "title is required", nil), http.StatusBadRequest},
		{"unknown", goerrors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusFor(tc.err))
		})
	}
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler(logger.NewNop()))
	r.GET("/fail", func(c *gin.Context) { c.Error(goerrors.New("secret detail")) })
	r.GET("/missing", func(c *gin.Context) { c.Error(errors.ErrPropertyNotFound) })
	r.GET("/written", func(c *gin.Context) {
		c.String(http.StatusTeapot, "done")
		c.Error(errors.ErrPropertyNotFound)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret detail")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), errors.ErrPropertyNotFound.Error())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/written", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "done", w.Body.String())
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
