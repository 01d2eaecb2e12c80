package report

import (
	"context"
	"fmt"

	"github.com/adamseriwarp/custom-reports/internal/classify"
	"github.com/adamseriwarp/custom-reports/internal/model"
)

// Profit report grouping dimensions.
const (
	GroupByPickZip = "pickZip"
	GroupByDropZip = "dropZip"
	GroupByRoute   = "route"
)

// ProfitReport is the profit-by-location table plus its totals line.
type ProfitReport struct {
	GroupBy string         `json:"groupBy"`
	Rows    []AggregateRow `json:"rows"`
	Totals  ProfitTotals   `json:"totals"`
}

// ProfitTotals summarizes the whole table.
type ProfitTotals struct {
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Margin  float64 `json:"margin"`
}

// ProfitByLocation groups billable legs by pickup zip, drop zip, or
// customer route. Rows come back ranked by revenue descending.
func (s *Service) ProfitByLocation(ctx context.Context, f model.LegFilter, groupBy string) (*ProfitReport, error) {
	keyOf, err := profitKey(groupBy)
	if err != nil {
		return nil, err
	}

	legs, err := s.fetch(ctx, f)
	if err != nil {
		return nil, err
	}

	billable := classify.MarkBillable(legs)
	rows := Aggregate(legs, billable, keyOf)
	SortRows(rows, ByRevenueDesc)

	report := &ProfitReport{GroupBy: groupBy, Rows: rows}
	orders := make(map[string]bool)
	for i := range legs {
		if !billable[i] {
			continue
		}
		orders[legs[i].ReferenceID()] = true
		report.Totals.Revenue += legs[i].Revenue
		report.Totals.Cost += legs[i].Cost
	}
	report.Totals.Orders = len(orders)
	report.Totals.Margin = report.Totals.Revenue - report.Totals.Cost
	return report, nil
}

func profitKey(groupBy string) (func(*model.ShipmentLeg) string, error) {
	switch groupBy {
	case GroupByPickZip:
		return func(l *model.ShipmentLeg) string { return l.PickZip }, nil
	case GroupByDropZip:
		return func(l *model.ShipmentLeg) string { return l.DropZip }, nil
	case GroupByRoute:
		return func(l *model.ShipmentLeg) string { return l.CustomerRoute }, nil
	default:
		return nil, fmt.Errorf("unknown groupBy %q", groupBy)
	}
}
