package report

import (
	"context"

	"github.com/adamseriwarp/custom-reports/internal/model"
	"github.com/adamseriwarp/custom-reports/internal/ontime"
)

// TransitRow is one load's line in the carrier transit report.
type TransitRow struct {
	LoadID       string        `json:"loadId"`
	OrderCode    string        `json:"orderCode"`
	ClientName   string        `json:"clientName"`
	PickLocation string        `json:"pickLocationName"`
	DropLocation string        `json:"dropLocationName"`
	TransitDays  *float64      `json:"transitDays"`
	PalletCount  float64       `json:"palletCount"`
	Cost         float64       `json:"cost"`
	Pickup       ontime.Result `json:"pickup"`
	Delivery     ontime.Result `json:"delivery"`
}

// TransitSummary aggregates the per-load rows.
type TransitSummary struct {
	Loads          int     `json:"loads"`
	AvgTransitDays float64 `json:"avgTransitDays"`
	MinTransitDays float64 `json:"minTransitDays"`
	MaxTransitDays float64 `json:"maxTransitDays"`
	OTPRate        float64 `json:"otpRate"`
	OTDRate        float64 `json:"otdRate"`
	TotalCost      float64 `json:"totalCost"`
}

// TransitReport is the carrier transit table plus its summary.
type TransitReport struct {
	Carrier string         `json:"carrier"`
	Rows    []TransitRow   `json:"rows"`
	Summary TransitSummary `json:"summary"`
}

// CarrierTransit reports per-load transit performance for one carrier.
// Transit days are fractional (drop arrival minus pickup arrival); rows
// missing either arrival keep a nil transit and are left out of the
// min/avg/max. On-time status compares calendar dates against the window
// start at both ends.
func (s *Service) CarrierTransit(ctx context.Context, f model.LegFilter) (*TransitReport, error) {
	legs, err := s.fetch(ctx, f)
	if err != nil {
		return nil, err
	}

	report := &TransitReport{Carrier: f.CarrierName}
	var otpOnTime, otpLate, otdOnTime, otdLate int
	var sum float64
	var measured int

	for i := range legs {
		leg := &legs[i]
		row := TransitRow{
			LoadID:       leg.LoadID,
			OrderCode:    leg.OrderCode,
			ClientName:   leg.ClientName,
			PickLocation: leg.PickLocation,
			DropLocation: leg.DropLocation,
			PalletCount:  leg.PalletCount,
			Cost:         leg.Cost,
			Pickup:       ontime.Evaluate(leg.PickArrived, leg.PickWindowFrom, leg.PickWindowTo, ontime.ModeWindowStartDate),
			Delivery:     ontime.Evaluate(leg.DropArrived, leg.DropWindowFrom, leg.DropWindowTo, ontime.ModeWindowStartDate),
		}
		if leg.PickArrived != nil && leg.DropArrived != nil {
			days := leg.DropArrived.Sub(*leg.PickArrived).Hours() / 24
			row.TransitDays = &days
			sum += days
			measured++
			if measured == 1 || days < report.Summary.MinTransitDays {
				report.Summary.MinTransitDays = days
			}
			if measured == 1 || days > report.Summary.MaxTransitDays {
				report.Summary.MaxTransitDays = days
			}
		}
		tally(&otpOnTime, &otpLate, row.Pickup)
		tally(&otdOnTime, &otdLate, row.Delivery)
		report.Summary.TotalCost += leg.Cost
		report.Rows = append(report.Rows, row)
	}

	report.Summary.Loads = len(report.Rows)
	if measured > 0 {
		report.Summary.AvgTransitDays = sum / float64(measured)
	}
	report.Summary.OTPRate = RatePct(otpOnTime, otpLate)
	report.Summary.OTDRate = RatePct(otdOnTime, otdLate)
	return report, nil
}
