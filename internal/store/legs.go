package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/adamseriwarp/custom-reports/internal/model"
)

// legDateFormat is the MySQL STR_TO_DATE pattern for the text timestamp
// columns of otp_reports.
const legDateFormat = "%m/%d/%Y %H:%i:%s"

// legColumns is the full column list the reports consume, in scan order.
const legColumns = `
	COALESCE(orderCode, ''),
	COALESCE(warpId, ''),
	COALESCE(loadId, ''),
	COALESCE(clientName, ''),
	COALESCE(carrierName, ''),
	COALESCE(shipmentType, ''),
	COALESCE(mainShipment, ''),
	COALESCE(pickLocationName, ''),
	COALESCE(dropLocationName, ''),
	COALESCE(pickZipcode, ''),
	COALESCE(dropZipcode, ''),
	COALESCE(customerRoute, ''),
	COALESCE(pickWindowFrom, ''),
	COALESCE(pickWindowTo, ''),
	COALESCE(pickTimeArrived, ''),
	COALESCE(pickTimeDeparted, ''),
	COALESCE(dropWindowFrom, ''),
	COALESCE(dropWindowTo, ''),
	COALESCE(dropTimeArrived, ''),
	COALESCE(dropTimeDeparted, ''),
	COALESCE(pickupDelayCode, ''),
	COALESCE(deliveryDelayCode, ''),
	COALESCE(revenueAllocationNumber, 0),
	COALESCE(costAllocationNumber, 0),
	COALESCE(pieces, 0),
	COALESCE(palletCount, 0),
	COALESCE(shipmentStatus, ''),
	COALESCE(loadStatus, '')`

// FetchLegs returns all completed, non-canceled legs matching the filter.
// Date bounds apply to the pickup window start, parsed from its text form
// the same way the upstream reports always did.
func (s *Store) FetchLegs(ctx context.Context, f model.LegFilter) ([]model.ShipmentLeg, error) {
	var conds []string
	var args []interface{}

	conds = append(conds, "shipmentStatus = 'Complete'")
	conds = append(conds, "(loadStatus IS NULL OR loadStatus != 'Canceled')")
	conds = append(conds, "pickWindowFrom IS NOT NULL AND pickWindowFrom != '' AND pickWindowFrom != 'Invalid date'")

	if !f.Start.IsZero() {
		conds = append(conds, fmt.Sprintf("STR_TO_DATE(pickWindowFrom, '%s') >= ?", legDateFormat))
		args = append(args, f.Start.Format("2006-01-02"))
	}
	if !f.End.IsZero() {
		conds = append(conds, fmt.Sprintf("STR_TO_DATE(pickWindowFrom, '%s') <= ?", legDateFormat))
		args = append(args, f.End.Format("2006-01-02 15:04:05"))
	}
	if f.ClientName != "" {
		conds = append(conds, "clientName = ?")
		args = append(args, f.ClientName)
	}
	if f.CarrierName != "" {
		conds = append(conds, "carrierName = ?")
		args = append(args, f.CarrierName)
	}
	if f.ShipmentType != "" {
		conds = append(conds, "shipmentType = ?")
		args = append(args, f.ShipmentType)
	}
	if f.MainOnly {
		conds = append(conds, "mainShipment = 'YES'")
	}

	query := "SELECT " + legColumns + " FROM otp_reports WHERE " + strings.Join(conds, " AND ")

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query legs: %w", err)
	}
	defer rows.Close()

	var legs []model.ShipmentLeg
	for rows.Next() {
		var l model.ShipmentLeg
		if err := rows.Scan(
			&l.OrderCode, &l.WarpID, &l.LoadID, &l.ClientName, &l.CarrierName,
			&l.ShipmentType, &l.MainShipment,
			&l.PickLocation, &l.DropLocation, &l.PickZip, &l.DropZip, &l.CustomerRoute,
			&l.PickWindowFromRaw, &l.PickWindowToRaw, &l.PickArrivedRaw, &l.PickDepartedRaw,
			&l.DropWindowFromRaw, &l.DropWindowToRaw, &l.DropArrivedRaw, &l.DropDepartedRaw,
			&l.PickupDelayCode, &l.DeliveryDelayCode,
			&l.Revenue, &l.Cost, &l.Pieces, &l.PalletCount,
			&l.ShipmentStatus, &l.LoadStatus,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leg: %w", err)
		}
		legs = append(legs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read legs: %w", err)
	}
	return legs, nil
}

// DistinctClients lists client names present in the table.
func (s *Store) DistinctClients(ctx context.Context) ([]string, error) {
	return s.distinctColumn(ctx, "clientName")
}

// DistinctCarriers lists carrier names present in the table.
func (s *Store) DistinctCarriers(ctx context.Context) ([]string, error) {
	return s.distinctColumn(ctx, "carrierName")
}

func (s *Store) distinctColumn(ctx context.Context, column string) ([]string, error) {
	query := fmt.Sprintf(
		"SELECT DISTINCT %s FROM otp_reports WHERE %s IS NOT NULL AND %s != '' ORDER BY %s LIMIT 500",
		column, column, column, column)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", column, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", column, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// TableStats summarizes the table for the status endpoint.
type TableStats struct {
	TotalRows   int    `json:"totalRows"`
	FirstPickup string `json:"firstPickup"`
	LastPickup  string `json:"lastPickup"`
}

// Stats counts the in-scope rows and the span of their pickup windows.
func (s *Store) Stats(ctx context.Context) (TableStats, error) {
	var stats TableStats
	var first, last sql.NullString

	query := fmt.Sprintf(`
		SELECT COUNT(*),
			MIN(STR_TO_DATE(pickWindowFrom, '%s')),
			MAX(STR_TO_DATE(pickWindowFrom, '%s'))
		FROM otp_reports
		WHERE shipmentStatus = 'Complete'
		  AND pickWindowFrom IS NOT NULL AND pickWindowFrom != '' AND pickWindowFrom != 'Invalid date'
	`, legDateFormat, legDateFormat)

	if err := s.db.QueryRowContext(ctx, query).Scan(&stats.TotalRows, &first, &last); err != nil {
		return TableStats{}, fmt.Errorf("failed to query stats: %w", err)
	}
	stats.FirstPickup = first.String
	stats.LastPickup = last.String
	return stats, nil
}
