package exporter

import (
	"strings"

	"github.com/adamseriwarp/custom-reports/internal/report"
)

// ProfitTable flattens the profit-by-location report, totals line last.
func ProfitTable(r *report.ProfitReport) Table {
	t := Table{
		Name:    "Profit by " + r.GroupBy,
		Headers: []string{"Group", "Orders", "Revenue", "Cost", "Margin", "Margin %"},
	}
	for _, row := range r.Rows {
		t.Rows = append(t.Rows, []interface{}{row.Key, row.Orders, row.Revenue, row.Cost, row.Margin, row.MarginPct})
	}
	t.Rows = append(t.Rows, []interface{}{"TOTAL", r.Totals.Orders, r.Totals.Revenue, r.Totals.Cost, r.Totals.Margin, nil})
	return t
}

// MarketTable flattens the market financials summary.
func MarketTable(r *report.MarketReport) Table {
	t := Table{
		Name:    "Markets",
		Headers: []string{"Market", "Shipments", "Revenue", "Cost", "Pieces", "Profit", "Cost/Piece", "Margin %"},
	}
	for _, m := range r.Summary {
		t.Rows = append(t.Rows, []interface{}{m.Market, m.Shipments, m.Revenue, m.Cost, m.Pieces, m.Profit, m.CostPerPiece, m.MarginPct})
	}
	return t
}

// ClientSummaryTable flattens the per-client OTP/OTD ranking.
func ClientSummaryTable(r *report.ClientSummaryReport) Table {
	t := Table{
		Name:    "OTP OTD Summary",
		Headers: []string{"Client", "Shipments", "OTP On Time", "OTP Late", "OTP %", "OTD On Time", "OTD Late", "OTD %"},
	}
	for _, c := range r.Clients {
		t.Rows = append(t.Rows, []interface{}{c.Client, c.Shipments, c.OTPOnTime, c.OTPLate, c.OTPRate, c.OTDOnTime, c.OTDLate, c.OTDRate})
	}
	return t
}

// TransitTable flattens the carrier transit rows.
func TransitTable(r *report.TransitReport) Table {
	t := Table{
		Name:    "Transit",
		Headers: []string{"Load", "Order", "Client", "Pickup", "Delivery", "Transit Days", "Pallets", "Cost", "OTP", "OTD"},
	}
	for _, row := range r.Rows {
		var days interface{}
		if row.TransitDays != nil {
			days = *row.TransitDays
		}
		t.Rows = append(t.Rows, []interface{}{
			row.LoadID, row.OrderCode, row.ClientName, row.PickLocation, row.DropLocation,
			days, row.PalletCount, row.Cost, string(row.Pickup.Status), string(row.Delivery.Status),
		})
	}
	return t
}

// ShipmentsTable flattens the deduped per-order rows.
func ShipmentsTable(r *report.ShipmentsReport) Table {
	t := Table{
		Name:    "Shipments",
		Headers: []string{"Order", "Warp ID", "Pickup", "Delivery", "Pickup Arrived", "Revenue", "Cost", "Pieces"},
	}
	for _, o := range r.Orders {
		t.Rows = append(t.Rows, []interface{}{
			o.OrderCode, o.WarpID, o.PickLocation, o.DropLocation, o.PickArrivedRaw,
			o.Revenue, o.Cost, o.Pieces,
		})
	}
	return t
}

// WithinMarketTable flattens the intra-market rows.
func WithinMarketTable(r *report.WithinMarketReport) Table {
	t := Table{
		Name:    "Within Market",
		Headers: []string{"Market", "Orders", "Revenue", "Cost", "Profit", "Margin %", "Crossdock Revenue", "Crossdock Cost"},
	}
	for _, row := range r.Rows {
		t.Rows = append(t.Rows, []interface{}{
			row.Market, row.Orders, row.Revenue, row.Cost, row.Profit, row.MarginPct,
			row.CrossdockRevenue, row.CrossdockCost,
		})
	}
	return t
}

// DrilldownTable flattens the row-level billable legs.
func DrilldownTable(r *report.DrilldownReport) Table {
	t := Table{
		Name:    "Drilldown",
		Headers: []string{"Order", "Warp ID", "Client", "Carrier", "Pickup", "Delivery", "Type", "Revenue", "Cost"},
	}
	for _, leg := range r.Rows {
		t.Rows = append(t.Rows, []interface{}{
			leg.OrderCode, leg.WarpID, leg.ClientName, leg.CarrierName,
			leg.PickLocation, leg.DropLocation, leg.ShipmentType, leg.Revenue, leg.Cost,
		})
	}
	return t
}

// QualityTable flattens the audit findings, samples joined for display.
func QualityTable(r *report.QualityReport) Table {
	t := Table{
		Name:    "Quality",
		Headers: []string{"Category", "Description", "Count", "Samples"},
	}
	for _, f := range r.Findings {
		t.Rows = append(t.Rows, []interface{}{f.Category, f.Description, f.Count, strings.Join(f.Samples, "; ")})
	}
	return t
}
