package report

import (
	"context"
	"sort"
	"time"

	"github.com/adamseriwarp/custom-reports/internal/classify"
	"github.com/adamseriwarp/custom-reports/internal/model"
)

// MarketQuarter is one market's metrics for one quarter.
type MarketQuarter struct {
	Market       string  `json:"market"`
	Quarter      int     `json:"quarter"`
	Shipments    int     `json:"shipments"`
	Revenue      float64 `json:"revenue"`
	Cost         float64 `json:"cost"`
	Pieces       float64 `json:"pieces"`
	Profit       float64 `json:"profit"`
	CostPerPiece float64 `json:"costPerPiece"`
}

// MarketSummary is one market's year-to-date rollup.
type MarketSummary struct {
	Market       string  `json:"market"`
	Shipments    int     `json:"shipments"`
	Revenue      float64 `json:"revenue"`
	Cost         float64 `json:"cost"`
	Pieces       float64 `json:"pieces"`
	Profit       float64 `json:"profit"`
	CostPerPiece float64 `json:"costPerPiece"`
	MarginPct    float64 `json:"marginPct"`
}

// MarketReport is the LTL market financials for one year.
type MarketReport struct {
	Year      int             `json:"year"`
	Summary   []MarketSummary `json:"summary"`
	Quarterly []MarketQuarter `json:"quarterly"`
}

// MarketFinancials computes the LTL market report for one year.
//
// A main-shipment leg anchors an order to a market when exactly one of
// its sides is a crossdock facility and that side resolves to a market
// code. Revenue, shipments and pieces come from the anchoring legs
// (negative revenue clamped out); cost rolls up across all of the
// order's legs so cross-dock handling is captured.
func (s *Service) MarketFinancials(ctx context.Context, year int) (*MarketReport, error) {
	legs, err := s.fetch(ctx, model.LegFilter{
		Start:        time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
		End:          time.Date(year, 12, 31, 23, 59, 59, 0, time.UTC),
		ShipmentType: model.TypeLessThanTruckload,
	})
	if err != nil {
		return nil, err
	}

	type mq struct {
		market  string
		quarter int
	}

	// Anchor each order to a (market, quarter); first eligible main leg wins.
	anchors := make(map[string]mq)
	buckets := make(map[mq]*MarketQuarter)
	shipments := make(map[mq]map[string]bool)
	var order []mq

	bucket := func(key mq) *MarketQuarter {
		b, ok := buckets[key]
		if !ok {
			b = &MarketQuarter{Market: key.market, Quarter: key.quarter}
			buckets[key] = b
			shipments[key] = make(map[string]bool)
			order = append(order, key)
		}
		return b
	}

	for i := range legs {
		leg := &legs[i]
		if !leg.IsMain() || leg.PickWindowFrom == nil {
			continue
		}
		if !classify.OneSidedCrossdock(leg, s.rules) {
			continue
		}
		market, ok := s.rules.Market(leg.PickLocation)
		if !ok {
			market, ok = s.rules.Market(leg.DropLocation)
		}
		if !ok {
			continue
		}

		key := mq{market: market, quarter: quarterOf(*leg.PickWindowFrom)}
		if leg.OrderCode != "" {
			if _, seen := anchors[leg.OrderCode]; !seen {
				anchors[leg.OrderCode] = key
			}
		}

		b := bucket(key)
		if leg.Revenue > 0 {
			b.Revenue += leg.Revenue
		}
		b.Pieces += leg.Pieces
		shipments[key][leg.WarpID] = true
	}

	// Cost rolls up every leg of an anchored order, main or not.
	for i := range legs {
		key, ok := anchors[legs[i].OrderCode]
		if !ok {
			continue
		}
		bucket(key).Cost += legs[i].Cost
	}

	report := &MarketReport{Year: year}
	for _, key := range order {
		b := buckets[key]
		b.Shipments = len(shipments[key])
		b.Profit = b.Revenue - b.Cost
		b.CostPerPiece = perUnit(b.Cost, b.Pieces)
		report.Quarterly = append(report.Quarterly, *b)
	}
	sort.SliceStable(report.Quarterly, func(i, j int) bool {
		a, b := report.Quarterly[i], report.Quarterly[j]
		if a.Market != b.Market {
			return a.Market < b.Market
		}
		return a.Quarter < b.Quarter
	})

	report.Summary = summarizeMarkets(report.Quarterly)
	return report, nil
}

func summarizeMarkets(quarterly []MarketQuarter) []MarketSummary {
	totals := make(map[string]*MarketSummary)
	var order []string
	for _, q := range quarterly {
		t, ok := totals[q.Market]
		if !ok {
			t = &MarketSummary{Market: q.Market}
			totals[q.Market] = t
			order = append(order, q.Market)
		}
		t.Shipments += q.Shipments
		t.Revenue += q.Revenue
		t.Cost += q.Cost
		t.Pieces += q.Pieces
	}

	out := make([]MarketSummary, 0, len(order))
	for _, market := range order {
		t := totals[market]
		t.Profit = t.Revenue - t.Cost
		t.CostPerPiece = perUnit(t.Cost, t.Pieces)
		t.MarginPct = MarginPct(t.Revenue, t.Profit)
		out = append(out, *t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out
}

func quarterOf(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

func perUnit(total, units float64) float64 {
	if units <= 0 {
		return 0
	}
	return total / units
}
