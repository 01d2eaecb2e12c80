package report

import (
	"context"
	"sort"

	"github.com/adamseriwarp/custom-reports/internal/trend"
)

// TrendReport ranks markets by fitted quarterly trajectories.
type TrendReport struct {
	StartYear    int               `json:"startYear"`
	EndYear      int               `json:"endYear"`
	Markets      []trend.GroupTrend `json:"markets"`
	TopGrowers   []trend.GroupTrend `json:"topGrowers"`
	CostReducers []trend.GroupTrend `json:"costReducers"`
}

// MarketTrends fits per-market trend lines over quarterly financials
// between startYear and endYear inclusive. Markets without enough
// quarters on record are left out.
func (s *Service) MarketTrends(ctx context.Context, startYear, endYear int) (*TrendReport, error) {
	if endYear < startYear {
		startYear, endYear = endYear, startYear
	}

	points := make(map[string][]trend.Point)
	var order []string
	for year := startYear; year <= endYear; year++ {
		rep, err := s.MarketFinancials(ctx, year)
		if err != nil {
			return nil, err
		}
		for _, q := range rep.Quarterly {
			if _, ok := points[q.Market]; !ok {
				order = append(order, q.Market)
			}
			points[q.Market] = append(points[q.Market], trend.Point{
				Period:      (year-startYear)*4 + q.Quarter,
				Profit:      q.Profit,
				CostPerUnit: q.CostPerPiece,
				Revenue:     q.Revenue,
			})
		}
	}
	sort.Strings(order)

	report := &TrendReport{StartYear: startYear, EndYear: endYear}
	for _, market := range order {
		if g, ok := trend.Compute(market, points[market]); ok {
			report.Markets = append(report.Markets, g)
		}
	}
	report.TopGrowers = trend.TopGrowers(report.Markets)
	report.CostReducers = trend.TopCostReducers(report.Markets)
	return report, nil
}
