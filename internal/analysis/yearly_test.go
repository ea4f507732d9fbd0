package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yearPlays() (events, history []PlayEvent) {
	history = []PlayEvent{play("A", "x", at(2023, time.June, 1, 12, 0))}

	bee := func(e PlayEvent) PlayEvent {
		e.Album = "Bee"
		return e
	}
	events = []PlayEvent{
		play("A", "x", at(2024, time.March, 1, 22, 0)),
		bee(play("B", "y", at(2024, time.March, 1, 22, 10))),
		bee(play("B", "y", at(2024, time.March, 1, 22, 20))),
		play("C", "z", at(2024, time.March, 2, 23, 0)),
		play("B", "w", at(2024, time.July, 4, 8, 0)),
	}
	return events, history
}

func TestAnalyzeYear_overview(t *testing.T) {
	events, history := yearPlays()
	report, err := AnalyzeYear(2024, events, history, DefaultYearlyOptions())
	require.NoError(t, err)

	assert.Equal(t, 2024, report.Year)
	o := report.Overview
	assert.Equal(t, 5, o.TotalScrobbles)
	assert.Equal(t, 3, o.TotalArtists)
	assert.Equal(t, 4, o.TotalTracks)
	assert.Equal(t, 1, o.TotalAlbums)
	assert.Equal(t, 17, o.TotalMinutes)
	assert.InDelta(t, 5.0/366.0, o.AveragePerDay, 1e-12)
	assert.Equal(t, "2024-03", o.MostActiveMonth)
	assert.Equal(t, "2024-03-01", o.MostActiveDay)
}

func TestAnalyzeYear_topContent(t *testing.T) {
	events, history := yearPlays()
	report, err := AnalyzeYear(2024, events, history, DefaultYearlyOptions())
	require.NoError(t, err)

	c := report.TopContent
	require.Len(t, c.TopArtists, 3)
	assert.Equal(t, TopArtist{Artist: "B", PlayCount: 3, Percentage: 60, Rank: 1}, c.TopArtists[0])
	assert.Equal(t, "A", c.TopArtists[1].Artist)
	assert.Equal(t, 2, c.TopArtists[1].Rank)
	assert.Equal(t, "C", c.TopArtists[2].Artist)

	require.Len(t, c.TopTracks, 4)
	assert.Equal(t, TopTrack{Artist: "B", Track: "y", PlayCount: 2, Rank: 1}, c.TopTracks[0])
	assert.Equal(t, "x", c.TopTracks[1].Track)

	assert.Equal(t, []TopAlbum{{Artist: "B", Album: "Bee", PlayCount: 2, Rank: 1}}, c.TopAlbums)
}

func TestAnalyzeYear_listeningPatterns(t *testing.T) {
	events, history := yearPlays()
	report, err := AnalyzeYear(2024, events, history, DefaultYearlyOptions())
	require.NoError(t, err)

	p := report.ListeningPatterns
	assert.Equal(t, 22, p.PeakHour)
	assert.Equal(t, 4, p.PeakDay) // Friday
	assert.Equal(t, 20, p.LongestSessionMinutes)
	assert.InDelta(t, 20.0/3.0, p.AvgSessionMinutes, 1e-9)
	assert.InDelta(t, 80.0, p.NightOwlScore, 1e-9)
	assert.InDelta(t, 20.0, p.EarlyBirdScore, 1e-9)
	assert.InDelta(t, 20.0, p.WeekendWarriorScore, 1e-9)
}

func TestAnalyzeYear_sessionGapOption(t *testing.T) {
	events, history := yearPlays()
	report, err := AnalyzeYear(2024, events, history, YearlyOptions{SessionGapMinutes: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, report.ListeningPatterns.LongestSessionMinutes)
}

func TestAnalyzeYear_zeroOptionsUseYearlyGap(t *testing.T) {
	events, history := yearPlays()
	report, err := AnalyzeYear(2024, events, history, YearlyOptions{})
	require.NoError(t, err)

	want, err := AnalyzeYear(2024, events, history, DefaultYearlyOptions())
	require.NoError(t, err)
	assert.Equal(t, 20, report.ListeningPatterns.LongestSessionMinutes)
	assert.Equal(t, want.ListeningPatterns, report.ListeningPatterns)
}

func TestAnalyzeYear_discoveries(t *testing.T) {
	events, history := yearPlays()
	report, err := AnalyzeYear(2024, events, history, DefaultYearlyOptions())
	require.NoError(t, err)

	d := report.Discoveries
	assert.Equal(t, 2, d.NewArtists)
	assert.Equal(t, 3, d.NewTracks)
	require.NotNil(t, d.FirstArtist)
	assert.Equal(t, FirstPlay{Artist: "B", Track: "y", Timestamp: at(2024, time.March, 1, 22, 10)}, *d.FirstArtist)
	require.NotNil(t, d.TopDiscovery)
	assert.Equal(t, TopDiscovery{Artist: "B", FirstHeard: at(2024, time.March, 1, 22, 10), PlaysThisYear: 3}, *d.TopDiscovery)
}

func TestAnalyzeYear_ignoresHistoryFromTheYear(t *testing.T) {
	events, _ := yearPlays()
	// History that overlaps the year must not hide discoveries.
	report, err := AnalyzeYear(2024, events, events, DefaultYearlyOptions())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Discoveries.NewArtists)
	assert.Equal(t, "A", report.Discoveries.FirstArtist.Artist)
}

func TestAnalyzeYear_diversity(t *testing.T) {
	events, history := yearPlays()
	report, err := AnalyzeYear(2024, events, history, DefaultYearlyOptions())
	require.NoError(t, err)

	assert.InDelta(t, 60.0, report.Diversity.DiversityScore, 1e-9)
	assert.Equal(t, 0, report.Diversity.GenreCount)
	assert.InDelta(t, 60.0, report.Diversity.ArtistLoyalty, 1e-9)
	assert.InDelta(t, 40.0, report.Diversity.ExplorationScore, 1e-9)
}

func milestoneTitles(ms []Milestone) []string {
	titles := make([]string, len(ms))
	for i, m := range ms {
		titles[i] = m.Title
	}
	return titles
}

func TestAnalyzeYear_milestones(t *testing.T) {
	events, history := yearPlays()
	report, err := AnalyzeYear(2024, events, history, DefaultYearlyOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"Music Marathon", "Your #1 Artist", "Explorer", "Night Owl"}, milestoneTitles(report.Milestones))
	assert.Equal(t, "0 hours", report.Milestones[0].Value)
	assert.Equal(t, "B", report.Milestones[1].Value)
	assert.Equal(t, "You played 3 songs", report.Milestones[1].Description)
	assert.Equal(t, "2 artists", report.Milestones[2].Value)
	assert.Equal(t, "80% night listening", report.Milestones[3].Value)
}

func TestAnalyzeYear_marathonAndEarlyBird(t *testing.T) {
	var events []PlayEvent
	for i := 0; i <= 20; i++ {
		events = append(events, play("A", "x", at(2024, time.May, 4, 7, 0).Add(time.Duration(i*10)*time.Minute)))
	}
	report, err := AnalyzeYear(2024, events, nil, DefaultYearlyOptions())
	require.NoError(t, err)

	assert.Equal(t, 200, report.ListeningPatterns.LongestSessionMinutes)
	assert.Equal(t, []string{"Music Marathon", "Your #1 Artist", "Explorer", "Early Bird", "Marathon Listener"}, milestoneTitles(report.Milestones))
	assert.Equal(t, "200 minutes", report.Milestones[4].Value)
}

func TestAnalyzeYear_ignoresOtherYears(t *testing.T) {
	events, history := yearPlays()
	events = append(events,
		play("Z", "z", at(2025, time.January, 1, 0, 0)),
		play("Z", "z", at(2023, time.December, 31, 23, 59)),
	)
	report, err := AnalyzeYear(2024, events, history, DefaultYearlyOptions())
	require.NoError(t, err)
	assert.Equal(t, 5, report.Overview.TotalScrobbles)
}

func TestAnalyzeYear_lastInstantOfYear(t *testing.T) {
	last := time.Date(2024, time.December, 31, 23, 59, 59, 500*int(time.Millisecond), time.UTC)
	events := []PlayEvent{play("A", "x", last)}

	report, err := AnalyzeYear(2024, events, nil, DefaultYearlyOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Overview.TotalScrobbles)

	next, err := AnalyzeYear(2025, events, nil, DefaultYearlyOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, next.Overview.TotalScrobbles)
}

func TestAnalyzeYear_empty(t *testing.T) {
	report, err := AnalyzeYear(2023, nil, nil, DefaultYearlyOptions())
	require.NoError(t, err)

	assert.Equal(t, 2023, report.Year)
	assert.Equal(t, YearOverview{}, report.Overview)
	assert.NotNil(t, report.TopContent.TopArtists)
	assert.NotNil(t, report.TopContent.TopTracks)
	assert.NotNil(t, report.TopContent.TopAlbums)
	assert.Nil(t, report.Discoveries.FirstArtist)
	assert.Nil(t, report.Discoveries.TopDiscovery)
	assert.Equal(t, DiversityStats{}, report.Diversity)
	assert.NotNil(t, report.Milestones)
	assert.Empty(t, report.Milestones)
}

func TestAnalyzeYear_invalidYear(t *testing.T) {
	_, err := AnalyzeYear(1969, nil, nil, DefaultYearlyOptions())
	assert.ErrorIs(t, err, ErrInvalidYear)
	_, err = AnalyzeYear(2101, nil, nil, DefaultYearlyOptions())
	assert.ErrorIs(t, err, ErrInvalidYear)
}

func TestIsLeapYear(t *testing.T) {
	assert.True(t, isLeapYear(2024))
	assert.True(t, isLeapYear(2000))
	assert.False(t, isLeapYear(1900))
	assert.False(t, isLeapYear(2023))
}
