package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/adamseriwarp/custom-reports/internal/classify"
	"github.com/adamseriwarp/custom-reports/internal/model"
	"github.com/adamseriwarp/custom-reports/internal/ontime"
)

// Ranking directions for the client summary.
const (
	OrderBest  = "best"
	OrderWorst = "worst"
)

// ClientRates is one client's on-time performance over a window.
type ClientRates struct {
	Client    string  `json:"client"`
	Shipments int     `json:"shipments"`
	OTPOnTime int     `json:"otpOnTime"`
	OTPLate   int     `json:"otpLate"`
	OTPRate   float64 `json:"otpRate"`
	OTDOnTime int     `json:"otdOnTime"`
	OTDLate   int     `json:"otdLate"`
	OTDRate   float64 `json:"otdRate"`
}

// ClientSummaryReport ranks clients by delivery performance.
type ClientSummaryReport struct {
	Order   string        `json:"order"`
	Clients []ClientRates `json:"clients"`
}

// ClientSummary computes per-client OTP/OTD rates over main-shipment legs
// that actually move between two different locations, ranked by OTD rate.
// order is "best" (descending) or "worst" (ascending); limit caps the
// list, 0 meaning no cap.
func (s *Service) ClientSummary(ctx context.Context, f model.LegFilter, order string, limit int) (*ClientSummaryReport, error) {
	switch order {
	case OrderBest, OrderWorst:
	default:
		return nil, fmt.Errorf("unknown order %q", order)
	}

	f.MainOnly = true
	legs, err := s.fetch(ctx, f)
	if err != nil {
		return nil, err
	}

	rates := make(map[string]*ClientRates)
	var names []string
	for i := range legs {
		leg := &legs[i]
		if leg.ClientName == "" || !classify.InterLocation(leg) {
			continue
		}
		r, ok := rates[leg.ClientName]
		if !ok {
			r = &ClientRates{Client: leg.ClientName}
			rates[leg.ClientName] = r
			names = append(names, leg.ClientName)
		}
		r.Shipments++
		tally(&r.OTPOnTime, &r.OTPLate, ontime.Evaluate(leg.PickArrived, leg.PickWindowFrom, leg.PickWindowTo, ontime.ModeWindowEndExact))
		tally(&r.OTDOnTime, &r.OTDLate, ontime.Evaluate(leg.DropArrived, leg.DropWindowFrom, leg.DropWindowTo, ontime.ModeWindowEndExact))
	}

	report := &ClientSummaryReport{Order: order}
	for _, name := range names {
		r := rates[name]
		r.OTPRate = RatePct(r.OTPOnTime, r.OTPLate)
		r.OTDRate = RatePct(r.OTDOnTime, r.OTDLate)
		report.Clients = append(report.Clients, *r)
	}
	sort.SliceStable(report.Clients, func(i, j int) bool {
		a, b := report.Clients[i], report.Clients[j]
		if order == OrderWorst {
			return a.OTDRate < b.OTDRate
		}
		return a.OTDRate > b.OTDRate
	})
	if limit > 0 && len(report.Clients) > limit {
		report.Clients = report.Clients[:limit]
	}
	return report, nil
}

func tally(onTime, late *int, r ontime.Result) {
	switch r.Status {
	case ontime.OnTime:
		*onTime++
	case ontime.Late:
		*late++
	}
}

// OrderDetail is one order's row in the per-client detail table.
type OrderDetail struct {
	OrderCode    string `json:"orderCode"`
	PickLocation string `json:"pickLocationName"`
	DropLocation string `json:"dropLocationName"`

	PickWindowFrom string        `json:"pickWindowFrom"`
	PickWindowTo   string        `json:"pickWindowTo"`
	PickArrived    string        `json:"pickTimeArrived"`
	PickDeparted   string        `json:"pickTimeDeparted"`
	PickLoadHours  *float64      `json:"pickLoadHours"`
	PickDelayCode  string        `json:"pickupDelayCode"`
	Pickup         ontime.Result `json:"pickup"`

	DropWindowFrom string        `json:"dropWindowFrom"`
	DropWindowTo   string        `json:"dropWindowTo"`
	DropArrived    string        `json:"dropTimeArrived"`
	DropDeparted   string        `json:"dropTimeDeparted"`
	DropLoadHours  *float64      `json:"dropLoadHours"`
	DropDelayCode  string        `json:"deliveryDelayCode"`
	Delivery       ontime.Result `json:"delivery"`
}

// PeriodRate is one bucket of the client's rate series.
type PeriodRate struct {
	Period    string  `json:"period"`
	Shipments int     `json:"shipments"`
	OTPRate   float64 `json:"otpRate"`
	OTDRate   float64 `json:"otdRate"`
}

// ClientDetailReport is one client's per-order rows plus the rate series.
type ClientDetailReport struct {
	Client  string        `json:"client"`
	Totals  ClientRates   `json:"totals"`
	Orders  []OrderDetail `json:"orders"`
	Periods []PeriodRate  `json:"periods"`
}

// ClientDetail builds one client's per-order OTP/OTD rows. Each order is
// represented by its first main-shipment leg; when that leg carries no
// delay code, the code falls back to the earliest pickup leg (or latest
// drop leg) of the order that does. The period series buckets by day,
// week, or month depending on the span of the requested window.
func (s *Service) ClientDetail(ctx context.Context, client string, f model.LegFilter) (*ClientDetailReport, error) {
	f.ClientName = client
	legs, err := s.fetch(ctx, f)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]model.ShipmentLeg)
	var codes []string
	for i := range legs {
		code := legs[i].OrderCode
		if code == "" {
			continue
		}
		if _, seen := groups[code]; !seen {
			codes = append(codes, code)
		}
		groups[code] = append(groups[code], legs[i])
	}

	report := &ClientDetailReport{Client: client, Totals: ClientRates{Client: client}}
	label := periodLabeler(f.Start, f.End)
	periods := make(map[string]*periodTally)
	var periodOrder []string

	for _, code := range codes {
		group := groups[code]
		main := mainLeg(group)
		if main == nil || !classify.InterLocation(main) {
			continue
		}

		row := OrderDetail{
			OrderCode:      code,
			PickLocation:   main.PickLocation,
			DropLocation:   main.DropLocation,
			PickWindowFrom: main.PickWindowFromRaw,
			PickWindowTo:   main.PickWindowToRaw,
			PickArrived:    main.PickArrivedRaw,
			PickDeparted:   main.PickDepartedRaw,
			PickLoadHours:  loadHours(main.PickArrived, main.PickDeparted),
			PickDelayCode:  pickupDelayCode(main, group),
			Pickup:         ontime.Evaluate(main.PickArrived, main.PickWindowFrom, main.PickWindowTo, ontime.ModeWindowEndExact),
			DropWindowFrom: main.DropWindowFromRaw,
			DropWindowTo:   main.DropWindowToRaw,
			DropArrived:    main.DropArrivedRaw,
			DropDeparted:   main.DropDepartedRaw,
			DropLoadHours:  loadHours(main.DropArrived, main.DropDeparted),
			DropDelayCode:  deliveryDelayCode(main, group),
			Delivery:       ontime.Evaluate(main.DropArrived, main.DropWindowFrom, main.DropWindowTo, ontime.ModeWindowEndExact),
		}
		report.Orders = append(report.Orders, row)

		report.Totals.Shipments++
		tally(&report.Totals.OTPOnTime, &report.Totals.OTPLate, row.Pickup)
		tally(&report.Totals.OTDOnTime, &report.Totals.OTDLate, row.Delivery)

		if main.PickWindowFrom != nil {
			key := label(*main.PickWindowFrom)
			p, ok := periods[key]
			if !ok {
				p = &periodTally{}
				periods[key] = p
				periodOrder = append(periodOrder, key)
			}
			p.shipments++
			tally(&p.otpOnTime, &p.otpLate, row.Pickup)
			tally(&p.otdOnTime, &p.otdLate, row.Delivery)
		}
	}

	report.Totals.OTPRate = RatePct(report.Totals.OTPOnTime, report.Totals.OTPLate)
	report.Totals.OTDRate = RatePct(report.Totals.OTDOnTime, report.Totals.OTDLate)

	sort.Strings(periodOrder)
	for _, key := range periodOrder {
		p := periods[key]
		report.Periods = append(report.Periods, PeriodRate{
			Period:    key,
			Shipments: p.shipments,
			OTPRate:   RatePct(p.otpOnTime, p.otpLate),
			OTDRate:   RatePct(p.otdOnTime, p.otdLate),
		})
	}
	return report, nil
}

type periodTally struct {
	shipments int
	otpOnTime int
	otpLate   int
	otdOnTime int
	otdLate   int
}

func mainLeg(group []model.ShipmentLeg) *model.ShipmentLeg {
	for i := range group {
		if group[i].IsMain() {
			return &group[i]
		}
	}
	return nil
}

// loadHours is departure minus arrival at one stop, nil when either
// timestamp is missing.
func loadHours(arrived, departed *time.Time) *float64 {
	if arrived == nil || departed == nil {
		return nil
	}
	h := departed.Sub(*arrived).Hours()
	return &h
}

// pickupDelayCode falls back to the order's earliest-arriving pickup leg
// that carries a code when the main leg has none.
func pickupDelayCode(main *model.ShipmentLeg, group []model.ShipmentLeg) string {
	if main.PickupDelayCode != "" {
		return main.PickupDelayCode
	}
	var best *model.ShipmentLeg
	for i := range group {
		leg := &group[i]
		if leg.PickupDelayCode == "" || leg.PickArrived == nil {
			continue
		}
		if best == nil || leg.PickArrived.Before(*best.PickArrived) {
			best = leg
		}
	}
	if best == nil {
		return ""
	}
	return best.PickupDelayCode
}

// deliveryDelayCode falls back to the order's latest-arriving drop leg
// that carries a code.
func deliveryDelayCode(main *model.ShipmentLeg, group []model.ShipmentLeg) string {
	if main.DeliveryDelayCode != "" {
		return main.DeliveryDelayCode
	}
	var best *model.ShipmentLeg
	for i := range group {
		leg := &group[i]
		if leg.DeliveryDelayCode == "" || leg.DropArrived == nil {
			continue
		}
		if best == nil || leg.DropArrived.After(*best.DropArrived) {
			best = leg
		}
	}
	if best == nil {
		return ""
	}
	return best.DeliveryDelayCode
}

// periodLabeler picks the series granularity from the window span:
// daily up to a month, weekly up to half a year, monthly beyond.
func periodLabeler(start, end time.Time) func(time.Time) string {
	span := end.Sub(start)
	switch {
	case !start.IsZero() && !end.IsZero() && span <= 31*24*time.Hour:
		return func(t time.Time) string { return t.Format("2006-01-02") }
	case !start.IsZero() && !end.IsZero() && span <= 183*24*time.Hour:
		return func(t time.Time) string {
			year, week := t.ISOWeek()
			return fmt.Sprintf("%d-W%02d", year, week)
		}
	default:
		return func(t time.Time) string { return t.Format("2006-01") }
	}
}
