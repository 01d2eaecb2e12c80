// Package quality runs anomaly checks over the raw, unfiltered row set.
// Checks are independent of each other and of the aggregation path: they
// see every row, including ones the classifier marks non-billable.
package quality

import (
	"fmt"
	"regexp"

	"github.com/adamseriwarp/custom-reports/internal/model"
)

// maxSamples caps the example identifiers attached to a finding.
const maxSamples = 5

// Finding is one detected anomaly with sample evidence.
type Finding struct {
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Count       int      `json:"count"`
	Samples     []string `json:"samples"`
}

var multiSpace = regexp.MustCompile(`\s{2,}`)

// Audit runs the full check battery. Checks with nothing to report are
// omitted entirely; the returned order is fixed so output is stable.
func Audit(legs []model.ShipmentLeg) []Finding {
	var findings []Finding

	appendIf := func(f *Finding) {
		if f != nil {
			findings = append(findings, *f)
		}
	}

	appendIf(checkMissingRoutes(legs))
	appendIf(checkMissingZips(legs))
	appendIf(checkOrderRevenue(legs))
	appendIf(checkOrderCost(legs))
	appendIf(checkDuplicateLegs(legs))
	appendIf(checkRouteWhitespace(legs))
	appendIf(checkRouteSeparator(legs))
	appendIf(checkMissingMetadata(legs))

	return findings
}

func checkMissingRoutes(legs []model.ShipmentLeg) *Finding {
	var samples []string
	count := 0
	for i := range legs {
		if legs[i].CustomerRoute == "" {
			count++
			samples = addSample(samples, legs[i].ReferenceID())
		}
	}
	if count == 0 {
		return nil
	}
	return &Finding{
		Category:    "Missing Routes",
		Description: fmt.Sprintf("%d records with null/empty customer routes", count),
		Count:       count,
		Samples:     samples,
	}
}

func checkMissingZips(legs []model.ShipmentLeg) *Finding {
	var samples []string
	pick, drop := 0, 0
	for i := range legs {
		missing := false
		if legs[i].PickZip == "" {
			pick++
			missing = true
		}
		if legs[i].DropZip == "" {
			drop++
			missing = true
		}
		if missing {
			samples = addSample(samples, legs[i].ReferenceID())
		}
	}
	if pick == 0 && drop == 0 {
		return nil
	}
	return &Finding{
		Category:    "Missing Zip Codes",
		Description: fmt.Sprintf("%d pickup, %d drop zip codes missing", pick, drop),
		Count:       pick + drop,
		Samples:     samples,
	}
}

// orderTotals sums revenue/cost per order code, preserving first-seen
// order so samples come out deterministic.
func orderTotals(legs []model.ShipmentLeg) (codes []string, revenue, cost map[string]float64) {
	revenue = make(map[string]float64)
	cost = make(map[string]float64)
	for i := range legs {
		code := legs[i].OrderCode
		if code == "" {
			continue
		}
		if _, seen := revenue[code]; !seen {
			codes = append(codes, code)
		}
		revenue[code] += legs[i].Revenue
		cost[code] += legs[i].Cost
	}
	return codes, revenue, cost
}

func checkOrderRevenue(legs []model.ShipmentLeg) *Finding {
	codes, revenue, _ := orderTotals(legs)
	var samples []string
	zero, negative := 0, 0
	for _, code := range codes {
		switch {
		case revenue[code] == 0:
			zero++
		case revenue[code] < 0:
			negative++
		default:
			continue
		}
		samples = addSample(samples, code)
	}
	if zero == 0 && negative == 0 {
		return nil
	}
	return &Finding{
		Category:    "Revenue Issues",
		Description: fmt.Sprintf("%d orders with zero revenue, %d orders with negative revenue", zero, negative),
		Count:       zero + negative,
		Samples:     samples,
	}
}

func checkOrderCost(legs []model.ShipmentLeg) *Finding {
	codes, _, cost := orderTotals(legs)
	var samples []string
	zero, negative := 0, 0
	for _, code := range codes {
		switch {
		case cost[code] == 0:
			zero++
		case cost[code] < 0:
			negative++
		default:
			continue
		}
		samples = addSample(samples, code)
	}
	if zero == 0 && negative == 0 {
		return nil
	}
	return &Finding{
		Category:    "Cost Issues",
		Description: fmt.Sprintf("%d orders with zero cost, %d orders with negative cost", zero, negative),
		Count:       zero + negative,
		Samples:     samples,
	}
}

func checkDuplicateLegs(legs []model.ShipmentLeg) *Finding {
	seen := make(map[string]bool, len(legs))
	var samples []string
	count := 0
	for i := range legs {
		id := legs[i].WarpID
		if id == "" {
			continue
		}
		if seen[id] {
			count++
			samples = addSample(samples, id)
			continue
		}
		seen[id] = true
	}
	if count == 0 {
		return nil
	}
	return &Finding{
		Category:    "Duplicate Records",
		Description: fmt.Sprintf("%d duplicate warpId entries", count),
		Count:       count,
		Samples:     samples,
	}
}

func checkRouteWhitespace(legs []model.ShipmentLeg) *Finding {
	var samples []string
	count := 0
	for i := range legs {
		route := legs[i].CustomerRoute
		if route != "" && multiSpace.MatchString(route) {
			count++
			samples = addSample(samples, route)
		}
	}
	if count == 0 {
		return nil
	}
	return &Finding{
		Category:    "Route Formatting",
		Description: fmt.Sprintf("%d routes with irregular whitespace", count),
		Count:       count,
		Samples:     samples,
	}
}

func checkRouteSeparator(legs []model.ShipmentLeg) *Finding {
	var samples []string
	count := 0
	for i := range legs {
		route := legs[i].CustomerRoute
		if route == "" {
			continue
		}
		hasSep := false
		for _, r := range route {
			if r == '>' {
				hasSep = true
				break
			}
		}
		if !hasSep {
			count++
			samples = addSample(samples, route)
		}
	}
	if count == 0 {
		return nil
	}
	return &Finding{
		Category:    "Route Pattern",
		Description: fmt.Sprintf("%d routes missing '>' separator", count),
		Count:       count,
		Samples:     samples,
	}
}

func checkMissingMetadata(legs []model.ShipmentLeg) *Finding {
	var samples []string
	missingType, missingMain := 0, 0
	for i := range legs {
		missing := false
		if legs[i].ShipmentType == "" {
			missingType++
			missing = true
		}
		if legs[i].MainShipment == "" {
			missingMain++
			missing = true
		}
		if missing {
			samples = addSample(samples, legs[i].ReferenceID())
		}
	}
	if missingType == 0 && missingMain == 0 {
		return nil
	}
	return &Finding{
		Category:    "Missing Metadata",
		Description: fmt.Sprintf("%d missing shipment type, %d missing main shipment flag", missingType, missingMain),
		Count:       missingType + missingMain,
		Samples:     samples,
	}
}

func addSample(samples []string, id string) []string {
	if len(samples) >= maxSamples {
		return samples
	}
	return append(samples, id)
}
