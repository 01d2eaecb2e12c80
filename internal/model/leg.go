package model

import "time"

// Shipment type values as they appear in the otp_reports table.
const (
	TypeFullTruckload     = "Full Truckload"
	TypeLessThanTruckload = "Less Than Truckload"
	TypeParcel            = "Parcel"
)

// TypeKind collapses the free-text shipment type into the three
// categories the leg-selection rules care about.
type TypeKind int

const (
	KindOther TypeKind = iota
	KindFullTruckload
	KindLessThanTruckload
)

// ShipmentLeg is one row of the otp_reports table: a single movement
// between two locations, possibly one of several legs composing an order.
// Timestamp columns are free text in the source table; the Raw fields hold
// the table values and the *time.Time fields are filled by the normalize
// package. Revenue and cost default to zero when the column is NULL.
type ShipmentLeg struct {
	OrderCode   string `json:"orderCode"`
	WarpID      string `json:"warpId"`
	LoadID      string `json:"loadId"`
	ClientName  string `json:"clientName"`
	CarrierName string `json:"carrierName"`

	ShipmentType string `json:"shipmentType"` // Full Truckload / Less Than Truckload / ...
	MainShipment string `json:"mainShipment"` // YES / NO, empty when missing

	PickLocation  string `json:"pickLocationName"`
	DropLocation  string `json:"dropLocationName"`
	PickZip       string `json:"pickZipcode"`
	DropZip       string `json:"dropZipcode"`
	CustomerRoute string `json:"customerRoute"`

	PickWindowFromRaw string `json:"pickWindowFrom"`
	PickWindowToRaw   string `json:"pickWindowTo"`
	PickArrivedRaw    string `json:"pickTimeArrived"`
	PickDepartedRaw   string `json:"pickTimeDeparted"`
	DropWindowFromRaw string `json:"dropWindowFrom"`
	DropWindowToRaw   string `json:"dropWindowTo"`
	DropArrivedRaw    string `json:"dropTimeArrived"`
	DropDepartedRaw   string `json:"dropTimeDeparted"`

	PickupDelayCode   string `json:"pickupDelayCode"`
	DeliveryDelayCode string `json:"deliveryDelayCode"`

	Revenue     float64 `json:"revenueAllocationNumber"`
	Cost        float64 `json:"costAllocationNumber"`
	Pieces      float64 `json:"pieces"`
	PalletCount float64 `json:"palletCount"`

	ShipmentStatus string `json:"shipmentStatus"` // in-scope rows are 'Complete'
	LoadStatus     string `json:"loadStatus"`     // 'Canceled' rows excluded upstream

	// Parsed timestamps, nil when the raw value is empty or unparseable.
	PickWindowFrom *time.Time `json:"-"`
	PickWindowTo   *time.Time `json:"-"`
	PickArrived    *time.Time `json:"-"`
	PickDeparted   *time.Time `json:"-"`
	DropWindowFrom *time.Time `json:"-"`
	DropWindowTo   *time.Time `json:"-"`
	DropArrived    *time.Time `json:"-"`
	DropDeparted   *time.Time `json:"-"`
}

// Kind maps the free-text shipment type to its selection category.
// Missing or unknown types fall into KindOther.
func (l *ShipmentLeg) Kind() TypeKind {
	switch l.ShipmentType {
	case TypeFullTruckload:
		return KindFullTruckload
	case TypeLessThanTruckload:
		return KindLessThanTruckload
	default:
		return KindOther
	}
}

// IsMain reports whether the row carries the main-shipment flag.
func (l *ShipmentLeg) IsMain() bool {
	return l.MainShipment == "YES"
}

// ReferenceID returns the order code, falling back to a synthetic
// warpId-based identifier when the order code is absent.
func (l *ShipmentLeg) ReferenceID() string {
	if l.OrderCode != "" {
		return l.OrderCode
	}
	return "warpId:" + l.WarpID
}

// LegFilter selects rows from the data source. Zero values mean
// "no constraint". Start/End bound the pickup window start.
type LegFilter struct {
	Start        time.Time
	End          time.Time
	ClientName   string
	CarrierName  string
	ShipmentType string
	MainOnly     bool
}
