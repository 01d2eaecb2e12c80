package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse reports database reachability and the span of loaded data.
type StatusResponse struct {
	Database    bool   `json:"database"`
	TotalRows   int    `json:"totalRows"`
	FirstPickup string `json:"firstPickup"`
	LastPickup  string `json:"lastPickup"`
}

// GetStatus answers GET /api/status.
func (h *Handler) GetStatus(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusOK, StatusResponse{Database: false})
		return
	}

	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, StatusResponse{Database: true})
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		Database:    true,
		TotalRows:   stats.TotalRows,
		FirstPickup: stats.FirstPickup,
		LastPickup:  stats.LastPickup,
	})
}
