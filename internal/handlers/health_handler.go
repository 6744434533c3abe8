package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"wms-service/internal/replica"
)

// HealthHandler reports the state of the service's backing stores
type HealthHandler struct {
	db          *gorm.DB
	store       replica.Store
	redisClient *redis.Client
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, store replica.Store, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:          db,
		store:       store,
		redisClient: redisClient,
	}
}

// HealthResponse is the health endpoint payload.
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// Health checks PostgreSQL and the replica independently. Either one
// failing turns the response into a 503; Redis state is informational.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	services := map[string]string{}
	healthy := true

	if err := h.db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		services["postgres"] = "unhealthy: " + err.Error()
		healthy = false
	} else {
		services["postgres"] = "healthy"
	}

	if err := h.store.Ping(ctx); err != nil {
		services["replica"] = "unhealthy: " + err.Error()
		healthy = false
	} else {
		services["replica"] = "healthy"
	}

	if h.redisClient == nil {
		services["redis"] = "disabled"
	} else if err := h.redisClient.Ping(ctx).Err(); err != nil {
		services["redis"] = "unhealthy: " + err.Error()
	} else {
		services["redis"] = "healthy"
	}

	status := http.StatusOK
	response := HealthResponse{Status: "healthy", Services: services}
	if !healthy {
		status = http.StatusServiceUnavailable
		response.Status = "unhealthy"
	}

	c.JSON(status, response)
}
