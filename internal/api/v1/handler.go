// Package v1 exposes the report engine over HTTP.
package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adamseriwarp/custom-reports/internal/cache"
	"github.com/adamseriwarp/custom-reports/internal/config"
	"github.com/adamseriwarp/custom-reports/internal/report"
	"github.com/adamseriwarp/custom-reports/internal/store"
)

// Handler is the v1 API handler.
type Handler struct {
	store     *store.Store
	reports   *report.Service
	cache     *cache.Cache
	cfg       config.ReportsConfig
	downloads *exportDownloadStore
}

// NewHandler wires the API to the data store and the report service.
func NewHandler(st *store.Store, svc *report.Service, cfg config.ReportsConfig) *Handler {
	return &Handler{
		store:     st,
		reports:   svc,
		cache:     cache.New(time.Duration(cfg.CacheTTLSeconds) * time.Second),
		cfg:       cfg,
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes attaches the v1 routes to the /api group.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	router.GET("/clients", h.ListClients)
	router.GET("/carriers", h.ListCarriers)
	router.GET("/lanes", h.ListLanes)

	router.GET("/reports/profit", h.GetProfit)
	router.GET("/reports/markets", h.GetMarkets)
	router.GET("/reports/trends", h.GetTrends)
	router.GET("/reports/otp-otd/summary", h.GetClientSummary)
	router.GET("/reports/otp-otd/clients/:name", h.GetClientDetail)
	router.GET("/reports/transit", h.GetTransit)
	router.GET("/reports/shipments", h.GetShipments)
	router.GET("/reports/within-market", h.GetWithinMarket)
	router.GET("/reports/drilldown", h.GetDrilldown)

	router.GET("/quality", h.GetQuality)

	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}
