package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"freelancebid/internal/infrastructure/ratelimit"
)

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	e := echo.New()
	limiter := ratelimit.NewRateLimiter(ratelimit.Policy{Rate: rate.Every(time.Hour), Burst: 2})
	e.GET("/admin/ping", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RateLimit(limiter, ratelimit.ActionAdminRequest))

	hit := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, hit("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, hit("10.0.0.1").Code)

	rec := hit("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOO_MANY_REQUESTS")

	// other clients keep their own bucket
	assert.Equal(t, http.StatusOK, hit("10.0.0.2").Code)
}
