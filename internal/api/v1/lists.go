package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adamseriwarp/custom-reports/internal/cache"
)

// ListClients answers GET /api/clients.
func (h *Handler) ListClients(c *gin.Context) {
	names, err := cached(h, "clients", func() ([]string, error) {
		return h.store.DistinctClients(c.Request.Context())
	})
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": emptyAsList(names)})
}

// ListCarriers answers GET /api/carriers.
func (h *Handler) ListCarriers(c *gin.Context) {
	names, err := cached(h, "carriers", func() ([]string, error) {
		return h.store.DistinctCarriers(c.Request.Context())
	})
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": emptyAsList(names)})
}

// ListLanes answers GET /api/lanes. Lanes resolve from location names,
// so this goes through the report service rather than a column scan.
func (h *Handler) ListLanes(c *gin.Context) {
	f, err := h.window(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	key := cache.Key("lanes", f.Start.Format(dateParam), f.End.Format(dateParam))
	lanes, err := cached(h, key, func() ([]string, error) {
		return h.reports.Lanes(c.Request.Context(), f)
	})
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": emptyAsList(lanes)})
}

// emptyAsList keeps empty results serializing as [] rather than null.
func emptyAsList(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
