package analysis

import (
	"fmt"
	"strings"
	"time"
)

// Granularity is the bucket size for timeline reports.
type Granularity string

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
	Year  Granularity = "year"
)

const DefaultGranularity = Week

// ParseGranularity accepts day, week, month or year in any case. An empty
// string yields def.
func ParseGranularity(s string, def Granularity) (Granularity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return def, nil
	}
	if err := getValidator().Var(s, "oneof=day week month year"); err != nil {
		return "", fmt.Errorf("%w: got %q", ErrInvalidGranularity, s)
	}
	return Granularity(s), nil
}

// FormatPeriod returns the label of the period containing t. Weeks use the
// ISO 8601 week-numbering year, e.g. 2024-12-30 is in "2025-W01", so labels
// never decrease over sorted input.
func FormatPeriod(t time.Time, g Granularity) string {
	t = t.UTC()
	switch g {
	case Day:
		return t.Format("2006-01-02")
	case Month:
		return t.Format("2006-01")
	case Year:
		return t.Format("2006")
	default:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	}
}

// TimeRange is an inclusive span of time. End is the last second in the
// range, e.g. 23:59:59 on the final day.
type TimeRange struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// Days returns the whole number of days in the range, counting through the
// end of End's final second.
func (r TimeRange) Days() int {
	d := int(r.End.Add(time.Second).Sub(r.Start).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// YearRange covers January 1 through the last second of December 31 in UTC.
func YearRange(year int) (TimeRange, error) {
	if err := ValidateYear(year); err != nil {
		return TimeRange{}, err
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return TimeRange{Start: start, End: start.AddDate(1, 0, 0).Add(-time.Second)}, nil
}

// MonthRange covers one calendar month in UTC.
func MonthRange(year, month int) (TimeRange, error) {
	if err := ValidateMonth(year, month); err != nil {
		return TimeRange{}, err
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return TimeRange{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Second)}, nil
}

// LastMonthRange covers the calendar month before the one containing now.
func LastMonthRange(now time.Time) TimeRange {
	now = now.UTC()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return TimeRange{Start: thisMonth.AddDate(0, -1, 0), End: thisMonth.Add(-time.Second)}
}
