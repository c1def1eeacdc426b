package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SystemHandler serves the service index and the health check.
type SystemHandler struct {
	Pool    *pgxpool.Pool
	AppName string
}

func NewSystemHandler(pool *pgxpool.Pool, appName string) *SystemHandler {
	return &SystemHandler{Pool: pool, AppName: appName}
}

// Index GET /
func (h *SystemHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": h.AppName,
		"endpoints": gin.H{
			"POST /api/register":        "Register a user",
			"POST /api/login":           "Log in, returns a bearer token",
			"GET /api/listings":         "List listings (supports ?limit=&offset=)",
			"GET /api/listings/:id":     "Get listing by ID",
			"POST /api/listings":        "Create listing (auth)",
			"PUT /api/listings/:id":     "Partially update listing (auth, owner)",
			"PATCH /api/listings/:id":   "Partially update listing (auth, owner)",
			"DELETE /api/listings/:id":  "Delete listing (auth, owner)",
			"GET /health":               "Health check",
		},
	})
}

// Health GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.Pool.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
