package analysis

import (
	"fmt"
	"time"
)

// EventSource supplies stored plays. A nil bound means unbounded.
type EventSource interface {
	GetEvents(start, end *time.Time) ([]PlayEvent, error)
	GetEventsBefore(t time.Time) ([]PlayEvent, error)
}

// GenerateYearlyReport fetches one year of plays, plus everything before it,
// and builds the yearly report.
func GenerateYearlyReport(src EventSource, year int, opts YearlyOptions) (YearlyReport, error) {
	yr, err := YearRange(year)
	if err != nil {
		return YearlyReport{}, err
	}

	events, err := src.GetEvents(&yr.Start, &yr.End)
	if err != nil {
		return YearlyReport{}, fmt.Errorf("getting events for %d: %w", year, err)
	}

	history, err := src.GetEventsBefore(yr.Start)
	if err != nil {
		return YearlyReport{}, fmt.Errorf("getting history before %d: %w", year, err)
	}

	return AnalyzeYear(year, events, history, opts)
}

// GenerateYearComparison builds both yearly reports and compares current
// against previous.
func GenerateYearComparison(src EventSource, current, previous int, opts YearlyOptions) (YearComparison, error) {
	if err := ValidateYear(current); err != nil {
		return YearComparison{}, err
	}
	if err := ValidateYear(previous); err != nil {
		return YearComparison{}, err
	}

	cur, err := GenerateYearlyReport(src, current, opts)
	if err != nil {
		return YearComparison{}, err
	}
	prev, err := GenerateYearlyReport(src, previous, opts)
	if err != nil {
		return YearComparison{}, err
	}
	return CompareYears(cur, prev), nil
}

// GeneratePeriodReport summarizes the plays in r, or all plays when r is nil.
func GeneratePeriodReport(src EventSource, period string, r *TimeRange) (PeriodReport, error) {
	var start, end *time.Time
	if r != nil {
		start, end = &r.Start, &r.End
	}

	events, err := src.GetEvents(start, end)
	if err != nil {
		return PeriodReport{}, fmt.Errorf("getting events for %s: %w", period, err)
	}
	return Summarize(period, r, events), nil
}
