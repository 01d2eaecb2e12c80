package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adamseriwarp/custom-reports/internal/cache"
	"github.com/adamseriwarp/custom-reports/internal/report"
)

// GetProfit answers GET /api/reports/profit.
func (h *Handler) GetProfit(c *gin.Context) {
	f, err := h.window(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	groupBy := c.DefaultQuery("groupBy", report.GroupByRoute)
	switch groupBy {
	case report.GroupByPickZip, report.GroupByDropZip, report.GroupByRoute:
	default:
		badRequest(c, fmt.Errorf("unknown groupBy %q", groupBy))
		return
	}

	key := cache.Key("profit", groupBy, f.Start.Format(dateParam), f.End.Format(dateParam))
	rep, err := cached(h, key, func() (*report.ProfitReport, error) {
		return h.reports.ProfitByLocation(c.Request.Context(), f, groupBy)
	})
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GetMarkets answers GET /api/reports/markets.
func (h *Handler) GetMarkets(c *gin.Context) {
	year, err := yearParam(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	key := cache.Key("markets", strconv.Itoa(year))
	rep, err := cached(h, key, func() (*report.MarketReport, error) {
		return h.reports.MarketFinancials(c.Request.Context(), year)
	})
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GetTrends answers GET /api/reports/trends. ?year bounds the end of the
// fitted range; ?startYear extends it backwards, defaulting to two years
// before the end so markets can accumulate enough quarters.
func (h *Handler) GetTrends(c *gin.Context) {
	endYear, err := yearParam(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	startYear := endYear - 2
	if v := c.Query("startYear"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			badRequest(c, err)
			return
		}
		startYear = y
	}

	key := cache.Key("trends", strconv.Itoa(startYear), strconv.Itoa(endYear))
	rep, err := cached(h, key, func() (*report.TrendReport, error) {
		return h.reports.MarketTrends(c.Request.Context(), startYear, endYear)
	})
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GetClientSummary answers GET /api/reports/otp-otd/summary.
func (h *Handler) GetClientSummary(c *gin.Context) {
	f, err := h.window(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	order := c.DefaultQuery("order", report.OrderBest)
	if order != report.OrderBest && order != report.OrderWorst {
		badRequest(c, fmt.Errorf("unknown order %q", order))
		return
	}
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			badRequest(c, fmt.Errorf("bad limit %q", v))
			return
		}
		limit = n
	}

	key := cache.Key("otp-otd-summary", order, strconv.Itoa(limit), f.Start.Format(dateParam), f.End.Format(dateParam))
	rep, err := cached(h, key, func() (*report.ClientSummaryReport, error) {
		return h.reports.ClientSummary(c.Request.Context(), f, order, limit)
	})
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GetClientDetail answers GET /api/reports/otp-otd/clients/:name.
func (h *Handler) GetClientDetail(c *gin.Context) {
	f, err := h.window(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	client := c.Param("name")

	key := cache.Key("otp-otd-client", client, f.Start.Format(dateParam), f.End.Format(dateParam))
	rep, err := cached(h, key, func() (*report.ClientDetailReport, error) {
		return h.reports.ClientDetail(c.Request.Context(), client, f)
	})
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GetTransit answers GET /api/reports/transit.
func (h *Handler) GetTransit(c *gin.Context) {
	f, err := h.window(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	f.CarrierName = c.Query("carrier")

	key := cache.Key("transit", f.CarrierName, f.Start.Format(dateParam), f.End.Format(dateParam))
	rep, err := cached(h, key, func() (*report.TransitReport, error) {
		return h.reports.CarrierTransit(c.Request.Context(), f)
	})
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GetShipments answers GET /api/reports/shipments.
func (h *Handler) GetShipments(c *gin.Context) {
	f, err := h.window(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	f.ClientName = c.Query("client")

	key := cache.Key("shipments", f.ClientName, f.Start.Format(dateParam), f.End.Format(dateParam))
	rep, err := cached(h, key, func() (*report.ShipmentsReport, error) {
		return h.reports.Shipments(c.Request.Context(), f)
	})
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GetWithinMarket answers GET /api/reports/within-market. ?year is a
// shorthand for a whole-year window and wins over start/end.
func (h *Handler) GetWithinMarket(c *gin.Context) {
	f, err := h.window(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	if c.Query("year") != "" {
		year, err := yearParam(c)
		if err != nil {
			badRequest(c, err)
			return
		}
		f.Start = time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		f.End = time.Date(year, 12, 31, 23, 59, 59, 0, time.UTC)
	}
	f.ShipmentType = c.Query("shipmentType")
	includeCrossdock := c.DefaultQuery("includeCrossdock", "true") == "true"

	key := cache.Key("within-market", f.ShipmentType, strconv.FormatBool(includeCrossdock),
		f.Start.Format(dateParam), f.End.Format(dateParam))
	rep, err := cached(h, key, func() (*report.WithinMarketReport, error) {
		return h.reports.WithinMarket(c.Request.Context(), f, includeCrossdock)
	})
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GetDrilldown answers GET /api/reports/drilldown.
func (h *Handler) GetDrilldown(c *gin.Context) {
	f, err := h.window(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	f.ShipmentType = c.Query("shipmentType")
	by := c.DefaultQuery("by", report.DrillByClient)
	switch by {
	case report.DrillByClient, report.DrillByCarrier, report.DrillByLane:
	default:
		badRequest(c, fmt.Errorf("unknown drilldown dimension %q", by))
		return
	}
	value := c.Query("value")

	key := cache.Key("drilldown", by, value, f.ShipmentType, f.Start.Format(dateParam), f.End.Format(dateParam))
	rep, err := cached(h, key, func() (*report.DrilldownReport, error) {
		return h.reports.Drilldown(c.Request.Context(), by, value, f)
	})
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GetQuality answers GET /api/quality.
func (h *Handler) GetQuality(c *gin.Context) {
	f, err := h.window(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	key := cache.Key("quality", f.Start.Format(dateParam), f.End.Format(dateParam))
	rep, err := cached(h, key, func() (*report.QualityReport, error) {
		return h.reports.Quality(c.Request.Context(), f)
	})
	if err != nil {
		dataError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}
