// Package report computes the derived report tables served by the API.
// It consumes row sets from a data source, classifies and normalizes them,
// and returns structured tables; it owns no connection, UI, or file I/O.
package report

import (
	"context"

	"github.com/adamseriwarp/custom-reports/internal/model"
	"github.com/adamseriwarp/custom-reports/internal/normalize"
)

// LegSource is the data-source contract: given a fully-specified filter,
// return all matching rows or fail with a data-access error.
type LegSource interface {
	FetchLegs(ctx context.Context, f model.LegFilter) ([]model.ShipmentLeg, error)
}

// Service computes all report tables. One invocation processes one
// in-memory row set; the Service itself is stateless across invocations.
type Service struct {
	source      LegSource
	rules       normalize.RuleTable
	isWarehouse func(string) bool
}

// NewService wires the report computations to a data source, a market
// rule table, and the configured warehouse-detection predicate.
func NewService(source LegSource, rules normalize.RuleTable, isWarehouse func(string) bool) *Service {
	return &Service{
		source:      source,
		rules:       rules,
		isWarehouse: isWarehouse,
	}
}

// fetch pulls a row set and normalizes its timestamp fields so that no
// downstream computation touches the raw text columns.
func (s *Service) fetch(ctx context.Context, f model.LegFilter) ([]model.ShipmentLeg, error) {
	legs, err := s.source.FetchLegs(ctx, f)
	if err != nil {
		return nil, err
	}
	normalize.Rows(legs)
	return legs, nil
}
