package dto

import (
	"github.com/ecogestor/ecogestor_backend/internal/core/domain"
)

// ExportRequest selects the period and renderer backend for a cash book export.
type ExportRequest struct {
	PeriodType string `json:"periodType" binding:"required,periodtype"`
	Value      string `json:"value" binding:"required"`
	Format     string `json:"format" binding:"required,oneof=pdf html"`
}

// Period converts the request to the domain selector.
func (r ExportRequest) Period() domain.Period {
	return domain.Period{Type: domain.PeriodType(r.PeriodType), Value: r.Value}
}
