package report

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/adamseriwarp/custom-reports/internal/model"
	"github.com/adamseriwarp/custom-reports/internal/normalize"
	"github.com/adamseriwarp/custom-reports/internal/ontime"
)

// stubSource serves an in-memory row set, honoring the filter's window,
// client, carrier, type, and main-only constraints the way the real
// store's SQL does.
type stubSource struct {
	legs []model.ShipmentLeg
	err  error
}

func (s *stubSource) FetchLegs(_ context.Context, f model.LegFilter) ([]model.ShipmentLeg, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []model.ShipmentLeg
	for _, leg := range s.legs {
		if f.ClientName != "" && leg.ClientName != f.ClientName {
			continue
		}
		if f.CarrierName != "" && leg.CarrierName != f.CarrierName {
			continue
		}
		if f.ShipmentType != "" && leg.ShipmentType != f.ShipmentType {
			continue
		}
		if f.MainOnly && leg.MainShipment != "YES" {
			continue
		}
		if !f.Start.IsZero() || !f.End.IsZero() {
			ts := normalize.ParseTimestamp(leg.PickWindowFromRaw)
			if ts == nil {
				continue
			}
			if !f.Start.IsZero() && ts.Before(f.Start) {
				continue
			}
			if !f.End.IsZero() && ts.After(f.End) {
				continue
			}
		}
		out = append(out, leg)
	}
	return out, nil
}

func newTestService(legs []model.ShipmentLeg) *Service {
	return NewService(
		&stubSource{legs: legs},
		normalize.DefaultRuleTable(),
		normalize.WarehousePredicate(normalize.WarehousePrefixOrAbbrev),
	)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestProfitByLocation_GroupsAndRanks(t *testing.T) {
	t.Parallel()

	legs := []model.ShipmentLeg{
		// Multi-leg LTL: main leg excluded, auxiliaries count.
		{OrderCode: "A1", WarpID: "w1", ShipmentType: model.TypeLessThanTruckload, MainShipment: "YES",
			CustomerRoute: "LAX > EWR", Revenue: 500, Cost: 0},
		{OrderCode: "A1", WarpID: "w2", ShipmentType: model.TypeLessThanTruckload, MainShipment: "NO",
			CustomerRoute: "LAX > EWR", Revenue: 0, Cost: 120},
		{OrderCode: "A1", WarpID: "w3", ShipmentType: model.TypeLessThanTruckload, MainShipment: "NO",
			CustomerRoute: "LAX > EWR", Revenue: 0, Cost: 80},
		// Single-leg order on another route.
		{OrderCode: "B1", WarpID: "w4", ShipmentType: model.TypeLessThanTruckload, MainShipment: "YES",
			CustomerRoute: "DFW > ATL", Revenue: 300, Cost: 100},
	}
	rep, err := newTestService(legs).ProfitByLocation(context.Background(), model.LegFilter{}, GroupByRoute)
	if err != nil {
		t.Fatalf("ProfitByLocation: %v", err)
	}

	if len(rep.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rep.Rows))
	}
	// DFW > ATL has more billable revenue than LAX > EWR (300 vs 0).
	if rep.Rows[0].Key != "DFW > ATL" {
		t.Fatalf("top row = %q, want DFW > ATL", rep.Rows[0].Key)
	}
	lax := rep.Rows[1]
	if lax.Orders != 1 || !almostEqual(lax.Revenue, 0) || !almostEqual(lax.Cost, 200) {
		t.Fatalf("LAX row wrong: %+v", lax)
	}
	if !almostEqual(lax.MarginPct, 0) {
		t.Fatalf("zero revenue must give 0%% margin, got %v", lax.MarginPct)
	}
	if rep.Totals.Orders != 2 || !almostEqual(rep.Totals.Revenue, 300) || !almostEqual(rep.Totals.Cost, 300) {
		t.Fatalf("totals wrong: %+v", rep.Totals)
	}
}

func TestProfitByLocation_UnknownGroupBy(t *testing.T) {
	t.Parallel()

	if _, err := newTestService(nil).ProfitByLocation(context.Background(), model.LegFilter{}, "color"); err == nil {
		t.Fatal("expected an error for an unknown grouping")
	}
}

func TestService_SourceErrorPropagates(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubSource{err: errors.New("connection refused")},
		normalize.DefaultRuleTable(), func(string) bool { return false })
	if _, err := svc.ProfitByLocation(context.Background(), model.LegFilter{}, GroupByRoute); err == nil {
		t.Fatal("source failure must propagate")
	}
}

func TestMarketFinancials(t *testing.T) {
	t.Parallel()

	legs := []model.ShipmentLeg{
		// O1: eligible main leg out of the LAX hub in Q1, plus a handling leg.
		{OrderCode: "O1", WarpID: "w1", ShipmentType: model.TypeLessThanTruckload, MainShipment: "YES",
			PickLocation: "WTCH-LAX-9", DropLocation: "Retail Store", PickWindowFromRaw: "02/10/2025 08:00:00",
			Revenue: 300, Cost: 100, Pieces: 10},
		{OrderCode: "O1", WarpID: "w2", ShipmentType: model.TypeLessThanTruckload, MainShipment: "NO",
			PickLocation: "WTCH-LAX-9", DropLocation: "WTCH-LAX-9", PickWindowFromRaw: "02/09/2025 08:00:00",
			Revenue: 0, Cost: 50},
		// O2: negative revenue clamps out but cost still rolls up. Q3.
		{OrderCode: "O2", WarpID: "w3", ShipmentType: model.TypeLessThanTruckload, MainShipment: "YES",
			PickLocation: "Store B", DropLocation: "SB-LA-Downtown", PickWindowFromRaw: "08/01/2025 08:00:00",
			Revenue: -20, Cost: 30, Pieces: 5},
		// Crossdock on both sides: not eligible.
		{OrderCode: "O3", WarpID: "w4", ShipmentType: model.TypeLessThanTruckload, MainShipment: "YES",
			PickLocation: "WTCH-LAX-9", DropLocation: "SB-LA-Downtown", PickWindowFromRaw: "02/11/2025 08:00:00",
			Revenue: 999, Cost: 1},
	}
	rep, err := newTestService(legs).MarketFinancials(context.Background(), 2025)
	if err != nil {
		t.Fatalf("MarketFinancials: %v", err)
	}

	if len(rep.Quarterly) != 2 {
		t.Fatalf("got %d quarterly rows, want 2: %+v", len(rep.Quarterly), rep.Quarterly)
	}
	q1 := rep.Quarterly[0]
	if q1.Market != "LAX" || q1.Quarter != 1 {
		t.Fatalf("first quarterly row = %+v", q1)
	}
	if !almostEqual(q1.Revenue, 300) || !almostEqual(q1.Cost, 150) || q1.Shipments != 1 {
		t.Fatalf("Q1 totals wrong: %+v", q1)
	}
	if !almostEqual(q1.CostPerPiece, 15) {
		t.Fatalf("cost per piece = %v, want 15", q1.CostPerPiece)
	}

	q3 := rep.Quarterly[1]
	if q3.Quarter != 3 || !almostEqual(q3.Revenue, 0) || !almostEqual(q3.Cost, 30) {
		t.Fatalf("Q3 totals wrong: %+v", q3)
	}

	if len(rep.Summary) != 1 || rep.Summary[0].Market != "LAX" {
		t.Fatalf("summary wrong: %+v", rep.Summary)
	}
	s := rep.Summary[0]
	if !almostEqual(s.Revenue, 300) || !almostEqual(s.Cost, 180) || !almostEqual(s.Profit, 120) {
		t.Fatalf("summary totals wrong: %+v", s)
	}
}

func TestMarketTrends(t *testing.T) {
	t.Parallel()

	// Three quarters of steadily growing profit in one market.
	var legs []model.ShipmentLeg
	months := []string{"01", "04", "07"}
	for i, m := range months {
		legs = append(legs, model.ShipmentLeg{
			OrderCode: "T" + m, WarpID: "t" + m,
			ShipmentType: model.TypeLessThanTruckload, MainShipment: "YES",
			PickLocation: "WTCH-LAX-9", DropLocation: "Retail Store",
			PickWindowFromRaw: m + "/10/2025 08:00:00",
			Revenue:           float64(100 * (i + 1)), Cost: 0, Pieces: 1,
		})
	}
	rep, err := newTestService(legs).MarketTrends(context.Background(), 2025, 2025)
	if err != nil {
		t.Fatalf("MarketTrends: %v", err)
	}

	if len(rep.Markets) != 1 || rep.Markets[0].Key != "LAX" {
		t.Fatalf("markets wrong: %+v", rep.Markets)
	}
	lax := rep.Markets[0]
	if !almostEqual(lax.ProfitSlope, 100) || !almostEqual(lax.ProfitR2, 1) {
		t.Fatalf("fit wrong: slope=%v r2=%v", lax.ProfitSlope, lax.ProfitR2)
	}
	if len(rep.TopGrowers) != 1 || rep.TopGrowers[0].Key != "LAX" {
		t.Fatalf("growers wrong: %+v", rep.TopGrowers)
	}
}

func TestClientSummary_RanksByOTD(t *testing.T) {
	t.Parallel()

	mk := func(client, order, warp, dropArrived, dropWindowTo string) model.ShipmentLeg {
		return model.ShipmentLeg{
			OrderCode: order, WarpID: warp, ClientName: client,
			ShipmentType: model.TypeLessThanTruckload, MainShipment: "YES",
			PickLocation: "A", DropLocation: "B",
			DropArrivedRaw: dropArrived, DropWindowToRaw: dropWindowTo,
		}
	}
	legs := []model.ShipmentLeg{
		mk("Acme", "A1", "w1", "03/10/2025 10:00:00", "03/10/2025 12:00:00"), // on time
		mk("Acme", "A2", "w2", "03/11/2025 13:00:00", "03/11/2025 12:00:00"), // late
		mk("Brick", "B1", "w3", "03/10/2025 10:00:00", "03/10/2025 12:00:00"),
		mk("Brick", "B2", "w4", "03/11/2025 11:00:00", "03/11/2025 12:00:00"),
	}
	rep, err := newTestService(legs).ClientSummary(context.Background(), model.LegFilter{}, OrderBest, 0)
	if err != nil {
		t.Fatalf("ClientSummary: %v", err)
	}

	if len(rep.Clients) != 2 {
		t.Fatalf("got %d clients, want 2", len(rep.Clients))
	}
	if rep.Clients[0].Client != "Brick" || !almostEqual(rep.Clients[0].OTDRate, 100) {
		t.Fatalf("best client wrong: %+v", rep.Clients[0])
	}
	if rep.Clients[1].Client != "Acme" || !almostEqual(rep.Clients[1].OTDRate, 50) {
		t.Fatalf("second client wrong: %+v", rep.Clients[1])
	}

	worst, err := newTestService(legs).ClientSummary(context.Background(), model.LegFilter{}, OrderWorst, 1)
	if err != nil {
		t.Fatalf("ClientSummary worst: %v", err)
	}
	if len(worst.Clients) != 1 || worst.Clients[0].Client != "Acme" {
		t.Fatalf("worst ranking wrong: %+v", worst.Clients)
	}
}

func TestClientSummary_SkipsSameLocationLegs(t *testing.T) {
	t.Parallel()

	legs := []model.ShipmentLeg{
		{OrderCode: "A1", WarpID: "w1", ClientName: "Acme",
			ShipmentType: model.TypeLessThanTruckload, MainShipment: "YES",
			PickLocation: "WTCH-LAX-9", DropLocation: "WTCH-LAX-9",
			DropArrivedRaw: "03/10/2025 10:00:00", DropWindowToRaw: "03/10/2025 12:00:00"},
	}
	rep, err := newTestService(legs).ClientSummary(context.Background(), model.LegFilter{}, OrderBest, 0)
	if err != nil {
		t.Fatalf("ClientSummary: %v", err)
	}
	if len(rep.Clients) != 0 {
		t.Fatalf("same-location legs must not count: %+v", rep.Clients)
	}
}

func TestClientDetail_DelayCodeFallbackAndLoadHours(t *testing.T) {
	t.Parallel()

	legs := []model.ShipmentLeg{
		// Main leg carries no delay codes.
		{OrderCode: "O1", WarpID: "w1", ClientName: "Acme",
			ShipmentType: model.TypeLessThanTruckload, MainShipment: "YES",
			PickLocation: "A", DropLocation: "B",
			PickWindowFromRaw: "03/10/2025 06:00:00", PickWindowToRaw: "03/10/2025 08:00:00",
			PickArrivedRaw: "03/10/2025 07:00:00", PickDepartedRaw: "03/10/2025 09:30:00",
			DropWindowToRaw: "03/12/2025 12:00:00", DropArrivedRaw: "03/12/2025 13:00:00"},
		// Earlier pickup leg with a pickup code, later drop leg with a
		// delivery code.
		{OrderCode: "O1", WarpID: "w2", ClientName: "Acme",
			ShipmentType: model.TypeLessThanTruckload, MainShipment: "NO",
			PickArrivedRaw: "03/09/2025 07:00:00", PickupDelayCode: "WEATHER",
			DropArrivedRaw: "03/13/2025 07:00:00", DeliveryDelayCode: "DRIVER"},
	}
	rep, err := newTestService(legs).ClientDetail(context.Background(), "Acme", model.LegFilter{})
	if err != nil {
		t.Fatalf("ClientDetail: %v", err)
	}

	if len(rep.Orders) != 1 {
		t.Fatalf("got %d orders, want 1", len(rep.Orders))
	}
	row := rep.Orders[0]
	if row.PickDelayCode != "WEATHER" {
		t.Fatalf("pickup delay code = %q, want WEATHER", row.PickDelayCode)
	}
	if row.DropDelayCode != "DRIVER" {
		t.Fatalf("delivery delay code = %q, want DRIVER", row.DropDelayCode)
	}
	if row.PickLoadHours == nil || !almostEqual(*row.PickLoadHours, 2.5) {
		t.Fatalf("pickup load hours wrong: %v", row.PickLoadHours)
	}
	if row.DropLoadHours != nil {
		t.Fatal("missing drop departure must give nil load hours")
	}
	if row.Pickup.Status != ontime.OnTime {
		t.Fatalf("pickup status = %s", row.Pickup.Status)
	}
	if row.Delivery.Status != ontime.Late {
		t.Fatalf("delivery status = %s", row.Delivery.Status)
	}
	if rep.Totals.OTDLate != 1 || !almostEqual(rep.Totals.OTDRate, 0) {
		t.Fatalf("totals wrong: %+v", rep.Totals)
	}
}

func TestCarrierTransit(t *testing.T) {
	t.Parallel()

	legs := []model.ShipmentLeg{
		{LoadID: "L1", OrderCode: "O1", CarrierName: "FastCo",
			PickWindowFromRaw: "03/10/2025 06:00:00", PickArrivedRaw: "03/10/2025 06:00:00",
			DropWindowFromRaw: "03/12/2025 06:00:00", DropArrivedRaw: "03/12/2025 18:00:00",
			PalletCount: 4, Cost: 200},
		{LoadID: "L2", OrderCode: "O2", CarrierName: "FastCo",
			PickWindowFromRaw: "03/11/2025 06:00:00", PickArrivedRaw: "03/11/2025 06:00:00",
			DropWindowFromRaw: "03/12/2025 06:00:00", DropArrivedRaw: "03/12/2025 06:00:00",
			PalletCount: 2, Cost: 100},
		// No drop arrival: no transit measurement.
		{LoadID: "L3", OrderCode: "O3", CarrierName: "FastCo",
			PickWindowFromRaw: "03/11/2025 06:00:00", PickArrivedRaw: "03/11/2025 06:00:00",
			Cost: 50},
	}
	rep, err := newTestService(legs).CarrierTransit(context.Background(), model.LegFilter{CarrierName: "FastCo"})
	if err != nil {
		t.Fatalf("CarrierTransit: %v", err)
	}

	if rep.Summary.Loads != 3 {
		t.Fatalf("loads = %d, want 3", rep.Summary.Loads)
	}
	if rep.Rows[0].TransitDays == nil || !almostEqual(*rep.Rows[0].TransitDays, 2.5) {
		t.Fatalf("L1 transit days wrong: %v", rep.Rows[0].TransitDays)
	}
	if rep.Rows[2].TransitDays != nil {
		t.Fatal("L3 has no transit measurement")
	}
	if !almostEqual(rep.Summary.MinTransitDays, 1) || !almostEqual(rep.Summary.MaxTransitDays, 2.5) {
		t.Fatalf("min/max wrong: %+v", rep.Summary)
	}
	if !almostEqual(rep.Summary.AvgTransitDays, 1.75) {
		t.Fatalf("avg = %v, want 1.75", rep.Summary.AvgTransitDays)
	}
	// L1 arrives 03/12 against a 03/12 window start: on time by date.
	if rep.Rows[0].Delivery.Status != ontime.OnTime {
		t.Fatalf("L1 delivery = %s", rep.Rows[0].Delivery.Status)
	}
	if !almostEqual(rep.Summary.TotalCost, 350) {
		t.Fatalf("total cost = %v", rep.Summary.TotalCost)
	}
}

func TestShipments_DedupAndPivot(t *testing.T) {
	t.Parallel()

	legs := []model.ShipmentLeg{
		{OrderCode: "O1", WarpID: "w1", ClientName: "Kith",
			PickArrivedRaw: "03/10/2025 08:00:00", DropLocation: "WTCH-LAX-9"},
		{OrderCode: "O1", WarpID: "w2", ClientName: "Kith",
			PickArrivedRaw: "03/12/2025 08:00:00", DropLocation: "Store SoHo"},
		{OrderCode: "O2", WarpID: "w3", ClientName: "Kith",
			PickArrivedRaw: "03/12/2025 08:00:00", DropLocation: "Store SoHo"},
	}
	rep, err := newTestService(legs).Shipments(context.Background(), model.LegFilter{ClientName: "Kith"})
	if err != nil {
		t.Fatalf("Shipments: %v", err)
	}

	if len(rep.Orders) != 2 {
		t.Fatalf("got %d orders, want 2", len(rep.Orders))
	}
	if rep.Orders[0].WarpID != "w2" {
		t.Fatalf("O1 canonical = %s, want w2", rep.Orders[0].WarpID)
	}
	if len(rep.Locations) != 1 || rep.Locations[0].Location != "Store SoHo" || rep.Locations[0].Orders != 2 {
		t.Fatalf("pivot wrong: %+v", rep.Locations)
	}
}

func TestWithinMarket_CrossdockBreakout(t *testing.T) {
	t.Parallel()

	legs := []model.ShipmentLeg{
		// Moves within the LAX market.
		{OrderCode: "O1", WarpID: "w1", ShipmentType: model.TypeLessThanTruckload, MainShipment: "YES",
			PickLocation: "WTCH-LAX-9", DropLocation: "SB-LA-Downtown", Revenue: 200, Cost: 120},
		// Pure handling leg inside the same market.
		{OrderCode: "O2", WarpID: "w2", ShipmentType: model.TypeLessThanTruckload, MainShipment: "YES",
			PickLocation: "WTCH-LAX-9", DropLocation: "WTCH-LAX-9", Revenue: 10, Cost: 60},
		// Cross-market: excluded.
		{OrderCode: "O3", WarpID: "w3", ShipmentType: model.TypeLessThanTruckload, MainShipment: "YES",
			PickLocation: "WTCH-LAX-9", DropLocation: "SB-NYC-UG", Revenue: 500, Cost: 300},
	}

	with, err := newTestService(legs).WithinMarket(context.Background(), model.LegFilter{}, true)
	if err != nil {
		t.Fatalf("WithinMarket: %v", err)
	}
	if len(with.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(with.Rows))
	}
	row := with.Rows[0]
	if row.Market != "LAX" || row.Orders != 2 {
		t.Fatalf("row wrong: %+v", row)
	}
	if !almostEqual(row.Revenue, 210) || !almostEqual(row.Cost, 180) {
		t.Fatalf("totals wrong: %+v", row)
	}
	if !almostEqual(row.CrossdockRevenue, 10) || !almostEqual(row.CrossdockCost, 60) {
		t.Fatalf("crossdock breakout wrong: %+v", row)
	}

	without, err := newTestService(legs).WithinMarket(context.Background(), model.LegFilter{}, false)
	if err != nil {
		t.Fatalf("WithinMarket exclude: %v", err)
	}
	if !almostEqual(without.Rows[0].Revenue, 200) || !almostEqual(without.Rows[0].Cost, 120) {
		t.Fatalf("exclusion wrong: %+v", without.Rows[0])
	}
}

func TestDrilldown_LaneFilter(t *testing.T) {
	t.Parallel()

	legs := []model.ShipmentLeg{
		{OrderCode: "O1", WarpID: "w1", ShipmentType: model.TypeLessThanTruckload, MainShipment: "YES",
			PickLocation: "WTCH-LAX-9", DropLocation: "SB-NYC-UG", Revenue: 500, Cost: 300},
		{OrderCode: "O2", WarpID: "w2", ShipmentType: model.TypeLessThanTruckload, MainShipment: "YES",
			PickLocation: "WTCH-LAX-9", DropLocation: "SB-ATL-South", Revenue: 200, Cost: 100},
	}
	rep, err := newTestService(legs).Drilldown(context.Background(), DrillByLane, "LAX → EWR", model.LegFilter{})
	if err != nil {
		t.Fatalf("Drilldown: %v", err)
	}

	if len(rep.Rows) != 1 || rep.Rows[0].OrderCode != "O1" {
		t.Fatalf("lane filter wrong: %+v", rep.Rows)
	}
	if rep.Totals.Orders != 1 || !almostEqual(rep.Totals.Revenue, 500) {
		t.Fatalf("totals wrong: %+v", rep.Totals)
	}
}

func TestDrilldown_CrossdockCostShare(t *testing.T) {
	t.Parallel()

	legs := []model.ShipmentLeg{
		{OrderCode: "O1", WarpID: "w1", ClientName: "Acme", ShipmentType: model.TypeFullTruckload,
			MainShipment: "YES", PickLocation: "A", DropLocation: "B", Revenue: 1000, Cost: 300},
		{OrderCode: "O1", WarpID: "w2", ClientName: "Acme", ShipmentType: model.TypeFullTruckload,
			MainShipment: "NO", PickLocation: "WTCH-LAX-9", DropLocation: "WTCH-LAX-9", Cost: 100},
	}
	rep, err := newTestService(legs).Drilldown(context.Background(), DrillByClient, "Acme", model.LegFilter{})
	if err != nil {
		t.Fatalf("Drilldown: %v", err)
	}
	if !almostEqual(rep.Totals.CrossdockCost, 100) {
		t.Fatalf("crossdock cost = %v", rep.Totals.CrossdockCost)
	}
	if !almostEqual(rep.Totals.CrossdockCostPct, 25) {
		t.Fatalf("crossdock share = %v, want 25", rep.Totals.CrossdockCostPct)
	}
}

func TestDrilldown_UnknownDimension(t *testing.T) {
	t.Parallel()

	if _, err := newTestService(nil).Drilldown(context.Background(), "region", "", model.LegFilter{}); err == nil {
		t.Fatal("expected an error")
	}
}

func TestLanes(t *testing.T) {
	t.Parallel()

	legs := []model.ShipmentLeg{
		{OrderCode: "O1", PickLocation: "WTCH-LAX-9", DropLocation: "SB-NYC-UG"},
		{OrderCode: "O2", PickLocation: "WTCH-LAX-9", DropLocation: "SB-NYC-UG"},
		{OrderCode: "O3", PickLocation: "SB-ATL-South", DropLocation: "WTCH-ORD-1"},
		{OrderCode: "O4", PickLocation: "No Market", DropLocation: "SB-NYC-UG"},
	}
	lanes, err := newTestService(legs).Lanes(context.Background(), model.LegFilter{})
	if err != nil {
		t.Fatalf("Lanes: %v", err)
	}
	want := []string{"LAX → EWR", "ATL → ORD"}
	if len(lanes) != len(want) {
		t.Fatalf("got %v, want %v", lanes, want)
	}
	for i := range want {
		if lanes[i] != want[i] {
			t.Fatalf("lane %d = %q, want %q", i, lanes[i], want[i])
		}
	}
}

func TestQuality_CountsRows(t *testing.T) {
	t.Parallel()

	legs := []model.ShipmentLeg{
		{OrderCode: "O1", WarpID: "w1", ShipmentType: model.TypeParcel, MainShipment: "YES",
			PickZip: "1", DropZip: "2", Revenue: 10, Cost: 5},
	}
	rep, err := newTestService(legs).Quality(context.Background(), model.LegFilter{})
	if err != nil {
		t.Fatalf("Quality: %v", err)
	}
	if rep.RowsAudited != 1 {
		t.Fatalf("rows audited = %d", rep.RowsAudited)
	}
	if len(rep.Findings) == 0 {
		t.Fatal("missing route should surface a finding")
	}
}

func TestRatePct(t *testing.T) {
	t.Parallel()

	if got := RatePct(0, 0); got != 0 {
		t.Fatalf("empty denominator: got %v", got)
	}
	if got := RatePct(3, 1); !almostEqual(got, 75) {
		t.Fatalf("got %v, want 75", got)
	}
}

func TestMarginPct(t *testing.T) {
	t.Parallel()

	if got := MarginPct(0, -50); got != 0 {
		t.Fatalf("zero revenue: got %v", got)
	}
	if got := MarginPct(200, 50); !almostEqual(got, 25) {
		t.Fatalf("got %v, want 25", got)
	}
}
