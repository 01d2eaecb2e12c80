package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adamseriwarp/custom-reports/internal/exporter"
	"github.com/adamseriwarp/custom-reports/internal/report"
)

// Exportable report names.
const (
	ExportProfit        = "profit"
	ExportMarkets       = "markets"
	ExportClientSummary = "otp-otd-summary"
	ExportTransit       = "transit"
	ExportShipments     = "shipments"
	ExportWithinMarket  = "within-market"
	ExportDrilldown     = "drilldown"
	ExportQuality       = "quality"
)

const downloadTTL = 10 * time.Minute

// ExportRequest asks for one report serialized to a file.
type ExportRequest struct {
	Report string            `json:"report"`
	Format string            `json:"format"`
	Params map[string]string `json:"params"`
}

// ExportResponse hands back the one-time download handle.
type ExportResponse struct {
	Token     string `json:"token"`
	FileName  string `json:"fileName"`
	ExpiresIn int    `json:"expiresIn"`
}

// Export answers POST /api/export: computes the requested report, encodes
// it, and parks the payload behind a short-lived download token.
func (h *Handler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Errorf("bad export request: %w", err))
		return
	}
	if req.Format == "" {
		req.Format = exporter.FormatCSV
	}
	if req.Format != exporter.FormatCSV && req.Format != exporter.FormatXLSX {
		badRequest(c, fmt.Errorf("unknown export format %q", req.Format))
		return
	}
	param := func(name string) string { return req.Params[name] }

	table, err := h.buildTable(c, req.Report, param)
	if err != nil {
		badRequest(c, err)
		return
	}
	if table == nil {
		return // buildTable already wrote the data error
	}

	payload, contentType, err := exporter.Encode(*table, req.Format)
	if err != nil {
		badRequest(c, err)
		return
	}

	name := exporter.FileName(req.Report, req.Format, time.Now())
	token := h.downloads.put(payload, name, contentType, downloadTTL)
	c.JSON(http.StatusOK, ExportResponse{
		Token:     token,
		FileName:  name,
		ExpiresIn: int(downloadTTL.Seconds()),
	})
}

// buildTable computes the named report with the request's parameters.
// A nil table with a nil error means a data-access failure was already
// reported on the context.
func (h *Handler) buildTable(c *gin.Context, name string, param func(string) string) (*exporter.Table, error) {
	ctx := c.Request.Context()

	f, err := h.windowFrom(param)
	if err != nil {
		return nil, err
	}

	fail := func(err error) (*exporter.Table, error) {
		dataError(c, err)
		return nil, nil
	}

	switch name {
	case ExportProfit:
		groupBy := param("groupBy")
		if groupBy == "" {
			groupBy = report.GroupByRoute
		}
		switch groupBy {
		case report.GroupByPickZip, report.GroupByDropZip, report.GroupByRoute:
		default:
			return nil, fmt.Errorf("unknown groupBy %q", groupBy)
		}
		rep, err := h.reports.ProfitByLocation(ctx, f, groupBy)
		if err != nil {
			return fail(err)
		}
		t := exporter.ProfitTable(rep)
		return &t, nil
	case ExportMarkets:
		year, err := yearFrom(param)
		if err != nil {
			return nil, err
		}
		rep, err := h.reports.MarketFinancials(ctx, year)
		if err != nil {
			return fail(err)
		}
		t := exporter.MarketTable(rep)
		return &t, nil
	case ExportClientSummary:
		order := param("order")
		if order == "" {
			order = report.OrderBest
		}
		if order != report.OrderBest && order != report.OrderWorst {
			return nil, fmt.Errorf("unknown order %q", order)
		}
		rep, err := h.reports.ClientSummary(ctx, f, order, 0)
		if err != nil {
			return fail(err)
		}
		t := exporter.ClientSummaryTable(rep)
		return &t, nil
	case ExportTransit:
		f.CarrierName = param("carrier")
		rep, err := h.reports.CarrierTransit(ctx, f)
		if err != nil {
			return fail(err)
		}
		t := exporter.TransitTable(rep)
		return &t, nil
	case ExportShipments:
		f.ClientName = param("client")
		rep, err := h.reports.Shipments(ctx, f)
		if err != nil {
			return fail(err)
		}
		t := exporter.ShipmentsTable(rep)
		return &t, nil
	case ExportWithinMarket:
		f.ShipmentType = param("shipmentType")
		include := param("includeCrossdock") != "false"
		rep, err := h.reports.WithinMarket(ctx, f, include)
		if err != nil {
			return fail(err)
		}
		t := exporter.WithinMarketTable(rep)
		return &t, nil
	case ExportDrilldown:
		f.ShipmentType = param("shipmentType")
		by := param("by")
		if by == "" {
			by = report.DrillByClient
		}
		switch by {
		case report.DrillByClient, report.DrillByCarrier, report.DrillByLane:
		default:
			return nil, fmt.Errorf("unknown drilldown dimension %q", by)
		}
		rep, err := h.reports.Drilldown(ctx, by, param("value"), f)
		if err != nil {
			return fail(err)
		}
		t := exporter.DrilldownTable(rep)
		return &t, nil
	case ExportQuality:
		rep, err := h.reports.Quality(ctx, f)
		if err != nil {
			return fail(err)
		}
		t := exporter.QualityTable(rep)
		return &t, nil
	default:
		return nil, fmt.Errorf("unknown report %q", name)
	}
}

// DownloadExport answers GET /api/export/download/:token. Tokens are
// single-use: the payload is dropped once served.
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	d, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download expired or unknown"})
		return
	}
	h.downloads.delete(token)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.fileName))
	c.Data(http.StatusOK, d.contentType, d.payload)
}
