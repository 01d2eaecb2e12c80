// Package trend ranks groups by the consistency of their quarter-over-
// quarter movement, using an ordinary least-squares fit per group.
package trend

import "sort"

// Quarterly metric thresholds.
const (
	// MinPeriods is the fewest periods that make a fit meaningful.
	MinPeriods = 3
	// MinR2 is the consistency floor for a trend to be reported.
	MinR2 = 0.5
	// TopN caps each ranking.
	TopN = 10
)

// Point is one period of a group's series. Period is the 1-based bucket
// index (quarter number in the current reports).
type Point struct {
	Period      int
	Profit      float64
	CostPerUnit float64
	Revenue     float64
}

// GroupTrend is the fitted trend of one group across its periods.
type GroupTrend struct {
	Key              string  `json:"key"`
	Periods          int     `json:"periods"`
	TotalRevenue     float64 `json:"totalRevenue"`
	TotalProfit      float64 `json:"totalProfit"`
	AvgCostPerUnit   float64 `json:"avgCostPerUnit"`
	ProfitSlope      float64 `json:"profitSlope"`
	ProfitR2         float64 `json:"profitR2"`
	CostPerUnitSlope float64 `json:"costPerUnitSlope"`
	CostPerUnitR2    float64 `json:"costPerUnitR2"`
}

// Fit computes the OLS slope and R² of ys against xs. A degenerate x
// spread yields (0, 0); a flat series fits slope 0 with R² 0.
func Fit(xs, ys []float64) (slope, r2 float64) {
	n := float64(len(xs))
	if n < 2 {
		return 0, 0
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var sxx, syy, sxy float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}
	if sxx == 0 {
		return 0, 0
	}
	slope = sxy / sxx
	if syy == 0 {
		return slope, 0
	}
	r2 = (sxy * sxy) / (sxx * syy)
	return slope, r2
}

// Compute fits one group's series. Returns false when the group has fewer
// than MinPeriods periods.
func Compute(key string, points []Point) (GroupTrend, bool) {
	if len(points) < MinPeriods {
		return GroupTrend{}, false
	}

	xs := make([]float64, len(points))
	profits := make([]float64, len(points))
	cpps := make([]float64, len(points))
	t := GroupTrend{Key: key, Periods: len(points)}
	for i, p := range points {
		xs[i] = float64(p.Period)
		profits[i] = p.Profit
		cpps[i] = p.CostPerUnit
		t.TotalRevenue += p.Revenue
		t.TotalProfit += p.Profit
		t.AvgCostPerUnit += p.CostPerUnit
	}
	t.AvgCostPerUnit /= float64(len(points))

	t.ProfitSlope, t.ProfitR2 = Fit(xs, profits)
	t.CostPerUnitSlope, t.CostPerUnitR2 = Fit(xs, cpps)
	return t, true
}

// TopGrowers returns the groups with consistent positive profit movement,
// ranked by slope × R² descending, capped at TopN.
func TopGrowers(trends []GroupTrend) []GroupTrend {
	var out []GroupTrend
	for _, t := range trends {
		if t.ProfitSlope > 0 && t.ProfitR2 >= MinR2 {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ProfitSlope*out[i].ProfitR2 > out[j].ProfitSlope*out[j].ProfitR2
	})
	if len(out) > TopN {
		out = out[:TopN]
	}
	return out
}

// TopCostReducers returns the groups with consistent cost-per-unit
// decline, ranked by |slope| × R² descending, capped at TopN.
func TopCostReducers(trends []GroupTrend) []GroupTrend {
	var out []GroupTrend
	for _, t := range trends {
		if t.CostPerUnitSlope < 0 && t.CostPerUnitR2 >= MinR2 {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return -out[i].CostPerUnitSlope*out[i].CostPerUnitR2 > -out[j].CostPerUnitSlope*out[j].CostPerUnitR2
	})
	if len(out) > TopN {
		out = out[:TopN]
	}
	return out
}
