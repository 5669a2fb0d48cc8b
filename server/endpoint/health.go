package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/flowsynth/observability"
	"github.com/kbukum/flowsynth/version"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	*observability.ServiceHealth
	Timestamp string `json:"timestamp"`
}

// Health aggregates the checkers. A down component answers 503; degraded
// still answers 200 because builds keep working on the deterministic path.
func Health(service string, checkers ...observability.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := observability.CheckAll(c.Request.Context(), service, version.Version, checkers...)

		status := http.StatusOK
		if sh.Status == observability.HealthStatusDown {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, HealthResponse{
			ServiceHealth: sh,
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
		})
	}
}
