package normalize

import (
	"strings"
	"time"

	"github.com/adamseriwarp/custom-reports/internal/model"
)

// Timestamp formats used by the otp_reports text columns.
const (
	timestampLayout = "01/02/2006 15:04:05"
	dateLayout      = "01/02/2006"
)

// ParseTimestamp parses a free-text timestamp column. The table stores
// either a full timestamp or a bare date; empty strings and sentinel
// values like "Invalid date" yield nil. Parsing never fails loudly: a bad
// value degrades to an absent timestamp that reads as "No Data" downstream.
func ParseTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "Invalid date") {
		return nil
	}
	if t, err := time.Parse(timestampLayout, s); err == nil {
		return &t
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return &t
	}
	return nil
}

// Midnight truncates a timestamp to its calendar date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Row fills the parsed timestamp fields of a leg from its raw columns.
// All downstream components read the parsed fields only; no other package
// re-parses the text columns.
func Row(leg *model.ShipmentLeg) {
	leg.PickWindowFrom = ParseTimestamp(leg.PickWindowFromRaw)
	leg.PickWindowTo = ParseTimestamp(leg.PickWindowToRaw)
	leg.PickArrived = ParseTimestamp(leg.PickArrivedRaw)
	leg.PickDeparted = ParseTimestamp(leg.PickDepartedRaw)
	leg.DropWindowFrom = ParseTimestamp(leg.DropWindowFromRaw)
	leg.DropWindowTo = ParseTimestamp(leg.DropWindowToRaw)
	leg.DropArrived = ParseTimestamp(leg.DropArrivedRaw)
	leg.DropDeparted = ParseTimestamp(leg.DropDepartedRaw)
}

// Rows normalizes a whole result set in place.
func Rows(legs []model.ShipmentLeg) {
	for i := range legs {
		Row(&legs[i])
	}
}
