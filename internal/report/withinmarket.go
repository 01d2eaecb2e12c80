package report

import (
	"context"
	"sort"

	"github.com/adamseriwarp/custom-reports/internal/classify"
	"github.com/adamseriwarp/custom-reports/internal/model"
)

// WithinMarketRow is one market's intra-market financials.
type WithinMarketRow struct {
	Market           string  `json:"market"`
	Orders           int     `json:"orders"`
	Revenue          float64 `json:"revenue"`
	Cost             float64 `json:"cost"`
	Profit           float64 `json:"profit"`
	MarginPct        float64 `json:"marginPct"`
	CrossdockRevenue float64 `json:"crossdockRevenue"`
	CrossdockCost    float64 `json:"crossdockCost"`
}

// WithinMarketReport covers orders that start and end in the same market.
type WithinMarketReport struct {
	IncludeCrossdock bool              `json:"includeCrossdock"`
	Rows             []WithinMarketRow `json:"rows"`
}

// WithinMarket aggregates billable legs whose pickup and drop both
// resolve to the same market. Pure handling legs (pickup == drop
// location) are broken out separately and, when includeCrossdock is
// false, excluded from the market totals as well. Rows come back worst
// profit first.
func (s *Service) WithinMarket(ctx context.Context, f model.LegFilter, includeCrossdock bool) (*WithinMarketReport, error) {
	legs, err := s.fetch(ctx, f)
	if err != nil {
		return nil, err
	}
	billable := classify.MarkBillable(legs)

	type group struct {
		row    WithinMarketRow
		orders map[string]bool
	}
	groups := make(map[string]*group)
	var order []string

	for i := range legs {
		if !billable[i] {
			continue
		}
		leg := &legs[i]
		pickMarket, ok := s.rules.Market(leg.PickLocation)
		if !ok {
			continue
		}
		dropMarket, ok := s.rules.Market(leg.DropLocation)
		if !ok || pickMarket != dropMarket {
			continue
		}

		crossdock := classify.CrossdockLeg(leg)
		if crossdock && !includeCrossdock {
			continue
		}

		g, found := groups[pickMarket]
		if !found {
			g = &group{row: WithinMarketRow{Market: pickMarket}, orders: make(map[string]bool)}
			groups[pickMarket] = g
			order = append(order, pickMarket)
		}
		g.orders[leg.ReferenceID()] = true
		g.row.Revenue += leg.Revenue
		g.row.Cost += leg.Cost
		if crossdock {
			g.row.CrossdockRevenue += leg.Revenue
			g.row.CrossdockCost += leg.Cost
		}
	}

	report := &WithinMarketReport{IncludeCrossdock: includeCrossdock}
	for _, market := range order {
		g := groups[market]
		g.row.Orders = len(g.orders)
		g.row.Profit = g.row.Revenue - g.row.Cost
		g.row.MarginPct = MarginPct(g.row.Revenue, g.row.Profit)
		report.Rows = append(report.Rows, g.row)
	}
	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].Profit < report.Rows[j].Profit
	})
	return report, nil
}
