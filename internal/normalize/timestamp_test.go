package normalize

import (
	"testing"
	"time"

	"github.com/adamseriwarp/custom-reports/internal/model"
)

func TestParseTimestamp_FullTimestamp(t *testing.T) {
	t.Parallel()

	got := ParseTimestamp("03/15/2025 14:30:00")
	if got == nil {
		t.Fatal("expected a parsed timestamp")
	}
	want := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseTimestamp_BareDate(t *testing.T) {
	t.Parallel()

	got := ParseTimestamp("12/01/2024")
	if got == nil {
		t.Fatal("expected a parsed date")
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Fatalf("bare date should parse to midnight, got %v", got)
	}
}

func TestParseTimestamp_Sentinels(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "  ", "Invalid date", "invalid DATE", "not a date"} {
		if got := ParseTimestamp(s); got != nil {
			t.Fatalf("ParseTimestamp(%q) = %v, want nil", s, got)
		}
	}
}

func TestParseTimestamp_TrimsWhitespace(t *testing.T) {
	t.Parallel()

	if got := ParseTimestamp("  01/02/2025 08:00:00  "); got == nil {
		t.Fatal("padded timestamp should still parse")
	}
}

func TestMidnight(t *testing.T) {
	t.Parallel()

	in := time.Date(2025, 6, 9, 23, 59, 59, 0, time.UTC)
	got := Midnight(in)
	want := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRow_FillsAllParsedFields(t *testing.T) {
	t.Parallel()

	leg := model.ShipmentLeg{
		PickWindowFromRaw: "01/02/2025 08:00:00",
		PickWindowToRaw:   "01/02/2025 12:00:00",
		PickArrivedRaw:    "01/02/2025 09:15:00",
		PickDepartedRaw:   "01/02/2025 10:00:00",
		DropWindowFromRaw: "01/03/2025",
		DropWindowToRaw:   "Invalid date",
		DropArrivedRaw:    "",
		DropDepartedRaw:   "01/03/2025 18:00:00",
	}
	Row(&leg)

	if leg.PickWindowFrom == nil || leg.PickWindowTo == nil || leg.PickArrived == nil || leg.PickDeparted == nil {
		t.Fatal("pickup timestamps should all parse")
	}
	if leg.DropWindowFrom == nil || leg.DropDeparted == nil {
		t.Fatal("valid drop timestamps should parse")
	}
	if leg.DropWindowTo != nil {
		t.Fatal("Invalid date must read as absent")
	}
	if leg.DropArrived != nil {
		t.Fatal("empty column must read as absent")
	}
}
