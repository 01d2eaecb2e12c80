package report

import (
	"context"

	"github.com/adamseriwarp/custom-reports/internal/model"
	"github.com/adamseriwarp/custom-reports/internal/quality"
)

// QualityReport is the audit battery's output for one window.
type QualityReport struct {
	RowsAudited int               `json:"rowsAudited"`
	Findings    []quality.Finding `json:"findings"`
}

// Quality runs the data-quality audit over the rows in the window.
func (s *Service) Quality(ctx context.Context, f model.LegFilter) (*QualityReport, error) {
	legs, err := s.fetch(ctx, f)
	if err != nil {
		return nil, err
	}
	return &QualityReport{RowsAudited: len(legs), Findings: quality.Audit(legs)}, nil
}
