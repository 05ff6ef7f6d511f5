package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_CountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Register()
	Register()

	r := gin.New()
	r.Use(Middleware("rento-test"))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	before := testutil.ToFloat64(RequestCounter.WithLabelValues("rento-test", "GET", "/items/:id", "404"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	after := testutil.ToFloat64(RequestCounter.WithLabelValues("rento-test", "GET", "/items/:id", "404"))
	assert.Equal(t, before+1, after)
	assert.Equal(t, float64(1), testutil.ToFloat64(
		StatusCodeCategoryCounter.WithLabelValues("rento-test", "4xx", "GET", "/items/:id")))
}

func TestStatusCategory(t *testing.T) {
	assert.Equal(t, "2xx", statusCategory(201))
	assert.Equal(t, "5xx", statusCategory(503))
	assert.Equal(t, "", statusCategory(302))
}
