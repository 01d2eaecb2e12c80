// Package dedupe collapses multiple leg rows for one order into a single
// canonical row.
package dedupe

import (
	"time"

	"github.com/adamseriwarp/custom-reports/internal/model"
	"github.com/adamseriwarp/custom-reports/internal/normalize"
)

// Canonical picks the canonical leg from one order's rows:
//
//  1. keep only rows at the latest pickup arrival,
//  2. among ties prefer a row whose drop location is not a warehouse,
//  3. ties beyond that resolve by stable input order.
//
// The warehouse test varies by deployment, so it comes in as a predicate.
// Given identical input ordering the result is deterministic, and the
// function is idempotent on its own output. Returns -1 for an empty group.
func Canonical(legs []model.ShipmentLeg, isWarehouse func(string) bool) int {
	if len(legs) == 0 {
		return -1
	}

	var maxArrival *time.Time
	for i := range legs {
		t := legs[i].PickArrived
		if t == nil {
			continue
		}
		day := normalize.Midnight(*t)
		if maxArrival == nil || day.After(*maxArrival) {
			maxArrival = &day
		}
	}

	// Rows at the latest arrival date; when no row has an arrival at all,
	// every row ties.
	var latest []int
	for i := range legs {
		if maxArrival == nil {
			latest = append(latest, i)
			continue
		}
		t := legs[i].PickArrived
		if t != nil && normalize.Midnight(*t).Equal(*maxArrival) {
			latest = append(latest, i)
		}
	}
	if len(latest) == 1 {
		return latest[0]
	}

	for _, i := range latest {
		if !isWarehouse(legs[i].DropLocation) {
			return i
		}
	}
	return latest[0]
}

// ByOrder groups legs by order code and returns the canonical row of each
// group, preserving first-appearance order of the orders. Legs without an
// order code are skipped: there is nothing to collapse them with.
func ByOrder(legs []model.ShipmentLeg, isWarehouse func(string) bool) []model.ShipmentLeg {
	groups := make(map[string][]model.ShipmentLeg)
	var order []string
	for i := range legs {
		code := legs[i].OrderCode
		if code == "" {
			continue
		}
		if _, seen := groups[code]; !seen {
			order = append(order, code)
		}
		groups[code] = append(groups[code], legs[i])
	}

	out := make([]model.ShipmentLeg, 0, len(order))
	for _, code := range order {
		g := groups[code]
		if idx := Canonical(g, isWarehouse); idx >= 0 {
			out = append(out, g[idx])
		}
	}
	return out
}
