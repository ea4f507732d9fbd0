package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeHeatmap_fullGrid(t *testing.T) {
	var events []PlayEvent
	for i := 0; i < 500; i++ {
		events = append(events, play("A", "x", at(2024, time.January, 1, 0, 0).Add(time.Duration(i*37)*time.Minute)))
	}

	report := AnalyzeHeatmap(events, HeatmapOptions{})
	require.Len(t, report.Heatmap, 168)
	require.Len(t, report.Grid, 7)

	sum := 0
	for i, c := range report.Heatmap {
		assert.Equal(t, i/24, c.Weekday)
		assert.Equal(t, i%24, c.Hour)
		sum += c.Count
	}
	assert.Equal(t, 500, sum)
	assert.Equal(t, 500, report.TotalScrobbles)
	for _, d := range report.Grid {
		assert.Len(t, d.Hours, 24)
	}
}

func TestAnalyzeHeatmap_empty(t *testing.T) {
	report := AnalyzeHeatmap(nil, HeatmapOptions{Normalize: true})
	require.Len(t, report.Heatmap, 168)
	for _, c := range report.Heatmap {
		assert.Equal(t, 0, c.Count)
		assert.Equal(t, 0.0, c.Normalized)
	}
	assert.Equal(t, PeakDay{}, report.PeakDay)
	assert.Equal(t, PeakHour{}, report.PeakHour)
	assert.Equal(t, 1, report.Summary.WeeksInRange)
	assert.Len(t, report.WeekdayTotals, 7)
	assert.Len(t, report.HourTotals, 24)
}

func TestAnalyzeHeatmap_timezone(t *testing.T) {
	// Monday 02:00 UTC is Sunday 21:00 five hours west.
	events := []PlayEvent{play("A", "x", at(2024, time.January, 1, 2, 0))}
	report := AnalyzeHeatmap(events, HeatmapOptions{Location: time.FixedZone("EST", -5*60*60)})

	assert.Equal(t, 1, report.Heatmap[6*24+21].Count)
	assert.Equal(t, PeakDay{DayOfWeek: 6, Count: 1}, report.PeakDay)
	assert.Equal(t, PeakHour{Hour: 21, Count: 1}, report.PeakHour)

	utc := AnalyzeHeatmap(events, HeatmapOptions{})
	assert.Equal(t, 1, utc.Heatmap[2].Count)
}

func TestAnalyzeHeatmap_normalize(t *testing.T) {
	var events []PlayEvent
	for i := 0; i < 8; i++ {
		// Tuesdays at 18:00.
		events = append(events, play("A", "x", at(2024, time.January, 2, 18, 0).AddDate(0, 0, 7*(i%4))))
	}
	r := &TimeRange{Start: at(2024, time.January, 1, 0, 0), End: at(2024, time.January, 29, 0, 0)}

	report := AnalyzeHeatmap(events, HeatmapOptions{Normalize: true, Range: r})
	cell := report.Heatmap[1*24+18]
	assert.Equal(t, 8, cell.Count)
	assert.InDelta(t, 2.0, cell.Normalized, 1e-9)
	assert.True(t, report.IsNormalized)
	assert.Equal(t, 4, report.Summary.WeeksInRange)

	raw := AnalyzeHeatmap(events, HeatmapOptions{Range: r})
	assert.Equal(t, 8.0, raw.Heatmap[1*24+18].Normalized)
	assert.False(t, raw.IsNormalized)
}

func TestWeeksInRange(t *testing.T) {
	assert.Equal(t, 1, WeeksInRange(nil))
	short := &TimeRange{Start: at(2024, time.January, 1, 0, 0), End: at(2024, time.January, 4, 0, 0)}
	assert.Equal(t, 1, WeeksInRange(short))
	long := &TimeRange{Start: at(2024, time.January, 1, 0, 0), End: at(2024, time.February, 5, 0, 0)}
	assert.Equal(t, 5, WeeksInRange(long))
	backwards := &TimeRange{Start: long.End, End: long.Start}
	assert.Equal(t, 1, WeeksInRange(backwards))
}

func TestWeeksInRange_inclusiveEnd(t *testing.T) {
	feb, err := MonthRange(2026, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, WeeksInRange(&feb))

	lastMonth := LastMonthRange(time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 4, WeeksInRange(&lastMonth))

	twoWeeks := &TimeRange{Start: at(2024, time.March, 1, 0, 0), End: at(2024, time.March, 14, 0, 0).Add(24*time.Hour - time.Second)}
	assert.Equal(t, 2, WeeksInRange(twoWeeks))
	assert.Equal(t, 14, twoWeeks.Days())
}

func TestAnalyzeHeatmap_peakTiesGoToLowestIndex(t *testing.T) {
	events := []PlayEvent{
		play("A", "x", at(2024, time.January, 2, 15, 0)), // Tuesday
		play("A", "x", at(2024, time.January, 1, 9, 0)),  // Monday
	}
	report := AnalyzeHeatmap(events, HeatmapOptions{})
	assert.Equal(t, 0, report.PeakDay.DayOfWeek)
	assert.Equal(t, 9, report.PeakHour.Hour)
	assert.Equal(t, "Monday", report.WeekdayTotals[0].Name)
	assert.Equal(t, "Sunday", report.WeekdayTotals[6].Name)
	assert.Equal(t, 0, report.Summary.PeakWeekday)
	assert.Equal(t, 9, report.Summary.PeakHour)
}

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = LoadLocation("Not/AZone")
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}
