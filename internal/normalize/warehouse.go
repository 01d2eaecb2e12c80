package normalize

import "strings"

// WarehouseVariant names the two warehouse-detection heuristics observed
// in production. Which one is authoritative is an open question, so the
// variant is configuration, not code.
type WarehouseVariant string

const (
	// WarehousePrefix matches the WTCH- warehouse prefix only.
	WarehousePrefix WarehouseVariant = "prefix"
	// WarehousePrefixOrAbbrev additionally treats any location containing
	// the WH abbreviation (case-insensitive) as a warehouse.
	WarehousePrefixOrAbbrev WarehouseVariant = "prefix_or_abbrev"
)

const warehousePrefix = "WTCH-"

// WarehousePredicate returns the location test for the chosen variant.
// Unknown variants fall back to the broader test.
func WarehousePredicate(v WarehouseVariant) func(string) bool {
	if v == WarehousePrefix {
		return func(location string) bool {
			return strings.HasPrefix(location, warehousePrefix)
		}
	}
	return func(location string) bool {
		if location == "" {
			return false
		}
		return strings.HasPrefix(location, warehousePrefix) ||
			strings.Contains(strings.ToUpper(location), "WH")
	}
}
