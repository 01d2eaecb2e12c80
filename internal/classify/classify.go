// Package classify decides which legs of an order count towards
// revenue/cost aggregates. Multi-leg orders carry duplicate billing rows in
// the source table; the selection rules differ by shipment type so that
// cross-dock handling cost is captured without double-counting revenue.
package classify

import (
	"github.com/adamseriwarp/custom-reports/internal/model"
	"github.com/adamseriwarp/custom-reports/internal/normalize"
)

// MarkBillable annotates every leg with a "counts towards aggregate" flag.
// The result is aligned with the input slice; rows are never filtered out
// here so that quality diagnostics still see the whole set.
//
// Selection per shipment type:
//   - Full Truckload: every leg counts. Cross-dock handling legs carry real
//     incremental cost.
//   - Less Than Truckload: a single-leg order counts as-is. With multiple
//     legs only the auxiliary (non-main) legs count, because the main leg
//     duplicates the revenue already allocated to them.
//   - Anything else: only the main leg counts.
func MarkBillable(legs []model.ShipmentLeg) []bool {
	counts := make(map[string]int, len(legs))
	for i := range legs {
		counts[groupKey(&legs[i])]++
	}

	billable := make([]bool, len(legs))
	for i := range legs {
		leg := &legs[i]
		switch leg.Kind() {
		case model.KindFullTruckload:
			billable[i] = true
		case model.KindLessThanTruckload:
			if counts[groupKey(leg)] == 1 {
				billable[i] = true
			} else {
				billable[i] = !leg.IsMain()
			}
		default:
			billable[i] = leg.IsMain()
		}
	}
	return billable
}

// groupKey groups legs by order. Rows without an order code cannot be
// related to each other, so each stands alone keyed by its leg id.
func groupKey(leg *model.ShipmentLeg) string {
	if leg.OrderCode != "" {
		return leg.OrderCode
	}
	return "warp:" + leg.WarpID
}

// InterLocation reports whether a leg moves between two distinct
// locations. Legs with either side missing pass the test; only a literal
// pickup == drop match is treated as a same-location artifact.
func InterLocation(leg *model.ShipmentLeg) bool {
	if leg.PickLocation == "" || leg.DropLocation == "" {
		return true
	}
	return leg.PickLocation != leg.DropLocation
}

// OneSidedCrossdock reports whether exactly one side of the leg is a
// recognized crossdock facility. This is the market-report eligibility
// test: such legs represent genuine moves into or out of a market hub.
func OneSidedCrossdock(leg *model.ShipmentLeg, rules normalize.RuleTable) bool {
	pick := rules.IsCrossdock(leg.PickLocation)
	drop := rules.IsCrossdock(leg.DropLocation)
	return pick != drop
}

// CrossdockLeg reports whether pickup and drop name the same facility,
// i.e. the leg is pure intermediate handling.
func CrossdockLeg(leg *model.ShipmentLeg) bool {
	return leg.PickLocation != "" && leg.PickLocation == leg.DropLocation
}
