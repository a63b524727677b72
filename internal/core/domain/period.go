package domain

import (
	"fmt"
	"time"

	"github.com/ecogestor/ecogestor_backend/internal/apperrors"
)

// PeriodType selects the granularity of a reporting period.
type PeriodType string

const (
	PeriodDay   PeriodType = "day"
	PeriodMonth PeriodType = "month"
	PeriodYear  PeriodType = "year"
)

// Period is a caller-supplied reporting period selector. The Value format
// depends on Type: YYYY-MM-DD for day, YYYY-MM for month, YYYY for year.
type Period struct {
	Type  PeriodType `json:"type"`
	Value string     `json:"value"`
}

// PeriodBounds is the inclusive [Start, End] date range derived from a Period.
// Both bounds are canonical YYYY-MM-DD strings, so containment checks reduce
// to lexicographic comparison. Invariant: Start <= End.
type PeriodBounds struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Resolve maps the period selector to its inclusive date bounds.
// Malformed values return an error wrapping apperrors.ErrValidation.
func (p Period) Resolve() (PeriodBounds, error) {
	switch p.Type {
	case PeriodDay:
		day, ok := NormalizeDate(p.Value)
		if !ok {
			return PeriodBounds{}, fmt.Errorf("%w: invalid day value %q", apperrors.ErrValidation, p.Value)
		}
		return PeriodBounds{Start: day, End: day}, nil

	case PeriodMonth:
		firstOfMonth, err := time.Parse("2006-01", p.Value)
		if err != nil {
			return PeriodBounds{}, fmt.Errorf("%w: invalid month value %q", apperrors.ErrValidation, p.Value)
		}
		// Day zero of the next month resolves to the last day of this month,
		// which handles leap years and variable month lengths.
		lastOfMonth := time.Date(firstOfMonth.Year(), firstOfMonth.Month()+1, 0, 0, 0, 0, 0, time.UTC)
		return PeriodBounds{
			Start: firstOfMonth.Format(DateLayout),
			End:   lastOfMonth.Format(DateLayout),
		}, nil

	case PeriodYear:
		year, err := time.Parse("2006", p.Value)
		if err != nil {
			return PeriodBounds{}, fmt.Errorf("%w: invalid year value %q", apperrors.ErrValidation, p.Value)
		}
		return PeriodBounds{
			Start: year.Format("2006") + "-01-01",
			End:   year.Format("2006") + "-12-31",
		}, nil

	default:
		return PeriodBounds{}, fmt.Errorf("%w: unknown period type %q", apperrors.ErrValidation, p.Type)
	}
}

// Label returns the human-readable period label used in report titles and
// export filenames.
func (p Period) Label() string {
	return p.Value
}

// Contains reports whether a raw transaction date falls inside the bounds.
// Dates that fail to normalize are excluded rather than treated as "before
// the window".
func (b PeriodBounds) Contains(rawDate string) bool {
	date, ok := NormalizeDate(rawDate)
	if !ok {
		return false
	}
	return date >= b.Start && date <= b.End
}
