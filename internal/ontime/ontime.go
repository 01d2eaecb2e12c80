// Package ontime evaluates actual arrivals against scheduled windows.
//
// Production grew two comparison conventions and reports depend on both,
// so the evaluator keeps them as named modes instead of unifying them:
// the carrier transit report compares calendar dates against the window
// start, the client OTP/OTD reports compare full timestamps against the
// window end.
package ontime

import (
	"time"

	"github.com/adamseriwarp/custom-reports/internal/normalize"
)

// Status of one arrival against its scheduled window.
type Status string

const (
	OnTime Status = "On Time"
	Late   Status = "Late"
	NoData Status = "No Data"
)

// Mode selects the comparison convention.
type Mode int

const (
	// ModeWindowStartDate compares midnight-truncated dates against the
	// window start. Arriving later in the scheduled day is still on time.
	ModeWindowStartDate Mode = iota
	// ModeWindowEndExact compares the full arrival timestamp against the
	// window end. Arrival exactly at the bound is on time.
	ModeWindowEndExact
)

// Result carries the status and, for late arrivals, the magnitude in
// calendar days. DaysLate never goes negative: an early arrival against a
// later-dated window reads as 0 days late.
type Result struct {
	Status   Status `json:"status"`
	DaysLate int    `json:"daysLate"`
}

// Evaluate scores one arrival. A missing actual arrival, or a missing
// window bound for the chosen mode, yields NoData rather than a guess.
func Evaluate(actual, windowFrom, windowTo *time.Time, mode Mode) Result {
	if actual == nil {
		return Result{Status: NoData}
	}

	var bound *time.Time
	if mode == ModeWindowEndExact {
		bound = windowTo
	} else {
		bound = windowFrom
	}
	if bound == nil {
		return Result{Status: NoData}
	}

	var late bool
	if mode == ModeWindowEndExact {
		late = actual.After(*bound)
	} else {
		late = normalize.Midnight(*actual).After(normalize.Midnight(*bound))
	}
	if !late {
		return Result{Status: OnTime}
	}

	return Result{Status: Late, DaysLate: daysLate(*actual, *bound)}
}

// daysLate is the calendar-day difference between the actual and scheduled
// dates, floored at zero.
func daysLate(actual, scheduled time.Time) int {
	d := int(normalize.Midnight(actual).Sub(normalize.Midnight(scheduled)).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
