package analysis

import (
	"fmt"
	"time"
)

const (
	daysPerWeek  = 7
	hoursPerDay  = 24
	heatmapCells = daysPerWeek * hoursPerDay
)

var weekdayNames = [daysPerWeek]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

type HeatmapOptions struct {
	// Location buckets plays by local time. Nil means UTC.
	Location  *time.Location
	Normalize bool
	// Range sets the number of weeks used for normalization. Nil counts as
	// one week.
	Range *TimeRange
}

type HeatmapCell struct {
	Weekday    int     `json:"weekday" yaml:"weekday"`
	Hour       int     `json:"hour" yaml:"hour"`
	Count      int     `json:"count" yaml:"count"`
	Normalized float64 `json:"normalized" yaml:"normalized"`
}

type HourData struct {
	Hour  int `json:"hour" yaml:"hour"`
	Count int `json:"count" yaml:"count"`
}

type DayGrid struct {
	DayOfWeek int        `json:"day_of_week" yaml:"day_of_week"`
	Hours     []HourData `json:"hours" yaml:"hours"`
}

type PeakDay struct {
	DayOfWeek int `json:"day_of_week" yaml:"day_of_week"`
	Count     int `json:"count" yaml:"count"`
}

type PeakHour struct {
	Hour  int `json:"hour" yaml:"hour"`
	Count int `json:"count" yaml:"count"`
}

type DayTotal struct {
	Weekday int    `json:"weekday" yaml:"weekday"`
	Name    string `json:"name" yaml:"name"`
	Count   int    `json:"count" yaml:"count"`
}

type HourTotal struct {
	Hour  int `json:"hour" yaml:"hour"`
	Count int `json:"count" yaml:"count"`
}

type HeatmapSummary struct {
	TotalScrobbles int `json:"total_scrobbles" yaml:"total_scrobbles"`
	WeeksInRange   int `json:"weeks_in_range" yaml:"weeks_in_range"`
	PeakHour       int `json:"peak_hour" yaml:"peak_hour"`
	PeakWeekday    int `json:"peak_weekday" yaml:"peak_weekday"`
	PeakCount      int `json:"peak_count" yaml:"peak_count"`
}

type HeatmapReport struct {
	Heatmap        []HeatmapCell  `json:"heatmap" yaml:"heatmap"`
	Grid           []DayGrid      `json:"grid" yaml:"grid"`
	PeakDay        PeakDay        `json:"peak_day" yaml:"peak_day"`
	PeakHour       PeakHour       `json:"peak_hour" yaml:"peak_hour"`
	TotalScrobbles int            `json:"total_scrobbles" yaml:"total_scrobbles"`
	IsNormalized   bool           `json:"is_normalized" yaml:"is_normalized"`
	Summary        HeatmapSummary `json:"summary" yaml:"summary"`
	WeekdayTotals  []DayTotal     `json:"weekday_totals" yaml:"weekday_totals"`
	HourTotals     []HourTotal    `json:"hour_totals" yaml:"hour_totals"`
}

// LoadLocation resolves an IANA zone name. Empty means UTC.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	return loc, nil
}

// mondayFirst maps time.Weekday (Sunday=0) to Monday=0..Sunday=6.
func mondayFirst(d time.Weekday) int {
	return (int(d) + 6) % daysPerWeek
}

// WeeksInRange is the number of whole weeks in r, at least 1. A nil range
// counts as one week.
func WeeksInRange(r *TimeRange) int {
	if r == nil {
		return 1
	}
	weeks := r.Days() / daysPerWeek
	if weeks < 1 {
		return 1
	}
	return weeks
}

// AnalyzeHeatmap counts plays per weekday and hour.
func AnalyzeHeatmap(events []PlayEvent, opts HeatmapOptions) HeatmapReport {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	var counts [daysPerWeek][hoursPerDay]int
	for _, e := range events {
		local := e.Timestamp.In(loc)
		counts[mondayFirst(local.Weekday())][local.Hour()]++
	}

	weeks := WeeksInRange(opts.Range)
	report := HeatmapReport{
		Heatmap:        make([]HeatmapCell, 0, heatmapCells),
		Grid:           make([]DayGrid, 0, daysPerWeek),
		TotalScrobbles: len(events),
		IsNormalized:   opts.Normalize,
		WeekdayTotals:  make([]DayTotal, 0, daysPerWeek),
		HourTotals:     make([]HourTotal, 0, hoursPerDay),
	}

	var dayTotals [daysPerWeek]int
	var hourTotals [hoursPerDay]int
	peakCell := HeatmapCell{}
	for d := 0; d < daysPerWeek; d++ {
		day := DayGrid{DayOfWeek: d, Hours: make([]HourData, 0, hoursPerDay)}
		for h := 0; h < hoursPerDay; h++ {
			c := counts[d][h]
			cell := HeatmapCell{Weekday: d, Hour: h, Count: c, Normalized: float64(c)}
			if opts.Normalize {
				cell.Normalized = float64(c) / float64(weeks)
			}
			report.Heatmap = append(report.Heatmap, cell)
			day.Hours = append(day.Hours, HourData{Hour: h, Count: c})

			dayTotals[d] += c
			hourTotals[h] += c
			if c > peakCell.Count {
				peakCell = cell
			}
		}
		report.Grid = append(report.Grid, day)
	}

	for d, c := range dayTotals {
		report.WeekdayTotals = append(report.WeekdayTotals, DayTotal{Weekday: d, Name: weekdayNames[d], Count: c})
		if c > report.PeakDay.Count {
			report.PeakDay = PeakDay{DayOfWeek: d, Count: c}
		}
	}
	for h, c := range hourTotals {
		report.HourTotals = append(report.HourTotals, HourTotal{Hour: h, Count: c})
		if c > report.PeakHour.Count {
			report.PeakHour = PeakHour{Hour: h, Count: c}
		}
	}

	report.Summary = HeatmapSummary{
		TotalScrobbles: len(events),
		WeeksInRange:   weeks,
		PeakHour:       peakCell.Hour,
		PeakWeekday:    peakCell.Weekday,
		PeakCount:      peakCell.Count,
	}
	return report
}
