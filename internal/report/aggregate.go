package report

import (
	"sort"

	"github.com/adamseriwarp/custom-reports/internal/model"
)

// AggregateRow is one row of a grouped report table.
type AggregateRow struct {
	Key       string  `json:"key"`
	Orders    int     `json:"orders"`
	Revenue   float64 `json:"revenue"`
	Cost      float64 `json:"cost"`
	Margin    float64 `json:"margin"`
	MarginPct float64 `json:"marginPct"`
}

// Aggregate groups legs by the extracted key and sums the billable rows.
// Order counts are distinct order identifiers among billable rows only;
// a row whose key extracts empty is left out of the grouping. Rows come
// back in first-appearance order of their keys; callers sort.
func Aggregate(legs []model.ShipmentLeg, billable []bool, keyOf func(*model.ShipmentLeg) string) []AggregateRow {
	type group struct {
		row    AggregateRow
		orders map[string]bool
	}
	groups := make(map[string]*group)
	var order []string

	for i := range legs {
		if !billable[i] {
			continue
		}
		key := keyOf(&legs[i])
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &group{row: AggregateRow{Key: key}, orders: make(map[string]bool)}
			groups[key] = g
			order = append(order, key)
		}
		g.orders[legs[i].ReferenceID()] = true
		g.row.Revenue += legs[i].Revenue
		g.row.Cost += legs[i].Cost
	}

	rows := make([]AggregateRow, 0, len(order))
	for _, key := range order {
		g := groups[key]
		g.row.Orders = len(g.orders)
		g.row.Margin = g.row.Revenue - g.row.Cost
		g.row.MarginPct = MarginPct(g.row.Revenue, g.row.Margin)
		rows = append(rows, g.row)
	}
	return rows
}

// MarginPct is margin over revenue as a percentage, 0 when revenue is 0.
func MarginPct(revenue, margin float64) float64 {
	if revenue == 0 {
		return 0
	}
	return margin / revenue * 100
}

// RatePct is onTime over (onTime + late) as a percentage, 0 when the
// denominator is 0. No-data rows belong to neither term.
func RatePct(onTime, late int) float64 {
	total := onTime + late
	if total == 0 {
		return 0
	}
	return float64(onTime) / float64(total) * 100
}

// SortRows stable-sorts aggregate rows with the given comparator.
// Ranking direction is report policy, so it stays a parameter.
func SortRows(rows []AggregateRow, less func(a, b AggregateRow) bool) {
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
}

// Stock comparators for the common ranking policies.
func ByRevenueDesc(a, b AggregateRow) bool { return a.Revenue > b.Revenue }
func ByMarginAsc(a, b AggregateRow) bool   { return a.Margin < b.Margin }
func ByKeyAsc(a, b AggregateRow) bool      { return a.Key < b.Key }
