package usecase

import (
	"sort"
	"time"

	"freelancebid/internal/domain/entity"
	"freelancebid/pkg/errors"
)

const calendarDateLayout = "2006-01-02"

// ReportFilter narrows the normalized feed. Nil bounds are unbounded; both
// bounds are inclusive calendar dates in UTC.
type ReportFilter struct {
	RespondedOnly bool
	From          *time.Time
	To            *time.Time
}

// ParseCalendarDate reads a YYYY-MM-DD value. An empty string means no bound.
func ParseCalendarDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(calendarDateLayout, value, time.UTC)
	if err != nil {
		return nil, errors.Validation(field + " must be a date in YYYY-MM-DD format")
	}
	return &d, nil
}

// ParseRespondedOnly accepts "true"/"1" and the absent or "false" value.
func ParseRespondedOnly(value string) (bool, error) {
	switch value {
	case "", "false", "0":
		return false, nil
	case "true", "1":
		return true, nil
	default:
		return false, errors.Validation("respondedOnly must be true or false")
	}
}

func (f ReportFilter) Matches(r entity.FraudReport) bool {
	base := r.Base()
	if f.RespondedOnly && !base.Responded() {
		return false
	}

	created := base.CreatedAt.UTC()
	day := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, time.UTC)
	if f.From != nil && day.Before(*f.From) {
		return false
	}
	if f.To != nil && day.After(*f.To) {
		return false
	}
	return true
}

func FilterReports(reports []entity.FraudReport, f ReportFilter) []entity.FraudReport {
	filtered := make([]entity.FraudReport, 0, len(reports))
	for _, r := range reports {
		if f.Matches(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// SortNewestFirst orders by createdAt descending. Equal timestamps keep
// their input order.
func SortNewestFirst(reports []entity.FraudReport) {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Base().CreatedAt.After(reports[j].Base().CreatedAt)
	})
}
