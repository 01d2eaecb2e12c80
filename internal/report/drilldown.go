package report

import (
	"context"
	"fmt"

	"github.com/adamseriwarp/custom-reports/internal/classify"
	"github.com/adamseriwarp/custom-reports/internal/model"
	"github.com/adamseriwarp/custom-reports/internal/normalize"
)

// Drill-down dimensions.
const (
	DrillByClient  = "client"
	DrillByCarrier = "carrier"
	DrillByLane    = "lane"
)

// DrilldownTotals summarizes the selected rows.
type DrilldownTotals struct {
	Orders           int     `json:"orders"`
	Revenue          float64 `json:"revenue"`
	Cost             float64 `json:"cost"`
	Margin           float64 `json:"margin"`
	MarginPct        float64 `json:"marginPct"`
	CrossdockCost    float64 `json:"crossdockCost"`
	CrossdockCostPct float64 `json:"crossdockCostPct"`
}

// DrilldownReport is the row-level view behind one aggregate cell.
type DrilldownReport struct {
	By     string              `json:"by"`
	Value  string              `json:"value"`
	Rows   []model.ShipmentLeg `json:"rows"`
	Totals DrilldownTotals     `json:"totals"`
}

// Drilldown returns the billable legs behind one client, carrier, or
// market lane, with totals and the share of cost spent on pure handling
// legs. Client and carrier push down to the data source; lanes resolve
// from locations, so that dimension filters in memory.
func (s *Service) Drilldown(ctx context.Context, by, value string, f model.LegFilter) (*DrilldownReport, error) {
	switch by {
	case DrillByClient:
		f.ClientName = value
	case DrillByCarrier:
		f.CarrierName = value
	case DrillByLane:
	default:
		return nil, fmt.Errorf("unknown drilldown dimension %q", by)
	}

	legs, err := s.fetch(ctx, f)
	if err != nil {
		return nil, err
	}
	billable := classify.MarkBillable(legs)

	report := &DrilldownReport{By: by, Value: value}
	orders := make(map[string]bool)
	for i := range legs {
		if !billable[i] {
			continue
		}
		leg := &legs[i]
		if by == DrillByLane && s.laneOf(leg) != value {
			continue
		}
		report.Rows = append(report.Rows, *leg)
		orders[leg.ReferenceID()] = true
		report.Totals.Revenue += leg.Revenue
		report.Totals.Cost += leg.Cost
		if classify.CrossdockLeg(leg) {
			report.Totals.CrossdockCost += leg.Cost
		}
	}

	report.Totals.Orders = len(orders)
	report.Totals.Margin = report.Totals.Revenue - report.Totals.Cost
	report.Totals.MarginPct = MarginPct(report.Totals.Revenue, report.Totals.Margin)
	if report.Totals.Cost != 0 {
		report.Totals.CrossdockCostPct = report.Totals.CrossdockCost / report.Totals.Cost * 100
	}
	return report, nil
}

// laneOf resolves a leg's market lane, empty when either side has no
// market.
func (s *Service) laneOf(leg *model.ShipmentLeg) string {
	from, ok := s.rules.Market(leg.PickLocation)
	if !ok {
		return ""
	}
	to, ok := s.rules.Market(leg.DropLocation)
	if !ok {
		return ""
	}
	return normalize.Lane(from, to)
}

// Lanes lists the distinct market lanes present in the window, in
// first-appearance order of the underlying rows.
func (s *Service) Lanes(ctx context.Context, f model.LegFilter) ([]string, error) {
	legs, err := s.fetch(ctx, f)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var lanes []string
	for i := range legs {
		lane := s.laneOf(&legs[i])
		if lane == "" || seen[lane] {
			continue
		}
		seen[lane] = true
		lanes = append(lanes, lane)
	}
	return lanes, nil
}
