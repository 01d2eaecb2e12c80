package report

import (
	"context"
	"sort"

	"github.com/adamseriwarp/custom-reports/internal/dedupe"
	"github.com/adamseriwarp/custom-reports/internal/model"
)

// LocationCount is one destination's share of the deduped orders.
type LocationCount struct {
	Location string `json:"location"`
	Orders   int    `json:"orders"`
}

// ShipmentsReport lists one row per order after dedup, with a pivot of
// delivery locations.
type ShipmentsReport struct {
	Client    string              `json:"client"`
	Orders    []model.ShipmentLeg `json:"orders"`
	Locations []LocationCount     `json:"locations"`
}

// Shipments collapses a client's leg rows to one canonical row per order
// and counts orders per delivery location. Counts come back largest
// first, ties by location name.
func (s *Service) Shipments(ctx context.Context, f model.LegFilter) (*ShipmentsReport, error) {
	legs, err := s.fetch(ctx, f)
	if err != nil {
		return nil, err
	}

	orders := dedupe.ByOrder(legs, s.isWarehouse)

	counts := make(map[string]int)
	for i := range orders {
		if loc := orders[i].DropLocation; loc != "" {
			counts[loc]++
		}
	}
	locations := make([]LocationCount, 0, len(counts))
	for loc, n := range counts {
		locations = append(locations, LocationCount{Location: loc, Orders: n})
	}
	sort.Slice(locations, func(i, j int) bool {
		if locations[i].Orders != locations[j].Orders {
			return locations[i].Orders > locations[j].Orders
		}
		return locations[i].Location < locations[j].Location
	})

	return &ShipmentsReport{Client: f.ClientName, Orders: orders, Locations: locations}, nil
}
