package analysis

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeMonths() []PlayEvent {
	return []PlayEvent{
		play("A", "x", at(2024, time.January, 3, 10, 0)),
		play("A", "y", at(2024, time.January, 3, 10, 5)),
		play("B", "z", at(2024, time.January, 3, 10, 10)),

		play("A", "x", at(2024, time.February, 3, 10, 0)),
		play("A", "y", at(2024, time.February, 3, 10, 5)),
		play("C", "w", at(2024, time.February, 3, 10, 10)),

		play("A", "x", at(2024, time.March, 3, 10, 0)),
		play("A", "y", at(2024, time.March, 3, 10, 5)),
		play("B", "z", at(2024, time.March, 3, 10, 10)),
	}
}

func TestAnalyzeNovelty_timeline(t *testing.T) {
	report := AnalyzeNovelty(threeMonths(), Month)

	require.Len(t, report.Timeline, 3)
	assert.Equal(t, NoveltyPoint{
		Period: "2024-01", TotalScrobbles: 3, NewTracks: 3, RepeatTracks: 0,
		NewArtists: 2, RepeatArtists: 0, NoveltyRatio: 1,
	}, report.Timeline[0])
	assert.Equal(t, "2024-02", report.Timeline[1].Period)
	assert.Equal(t, 1, report.Timeline[1].NewTracks)
	assert.Equal(t, 2, report.Timeline[1].RepeatTracks)
	assert.Equal(t, 1, report.Timeline[1].NewArtists)
	assert.Equal(t, 1, report.Timeline[1].RepeatArtists)
	assert.InDelta(t, 1.0/3.0, report.Timeline[1].NoveltyRatio, 1e-12)
	assert.Equal(t, NoveltyPoint{
		Period: "2024-03", TotalScrobbles: 3, NewTracks: 0, RepeatTracks: 3,
		NewArtists: 0, RepeatArtists: 2, NoveltyRatio: 0,
	}, report.Timeline[2])
}

func TestAnalyzeNovelty_summary(t *testing.T) {
	s := AnalyzeNovelty(threeMonths(), Month).Summary

	assert.Equal(t, 9, s.TotalScrobbles)
	assert.Equal(t, 4, s.TotalUniqueTracks)
	assert.Equal(t, 3, s.TotalUniqueArtists)
	assert.InDelta(t, 4.0/9.0, s.AvgNoveltyRatio, 1e-12)
	assert.Equal(t, "2024-01", s.MostExploratoryPeriod)
	assert.Equal(t, "2024-03", s.LeastExploratoryPeriod)
}

func TestAnalyzeNovelty_discoveries(t *testing.T) {
	report := AnalyzeNovelty(threeMonths(), Month)

	assert.Equal(t, []ArtistDiscovery{
		{Artist: "A", FirstHeard: at(2024, time.January, 3, 10, 0), Period: "2024-01", TotalPlays: 6},
		{Artist: "B", FirstHeard: at(2024, time.January, 3, 10, 10), Period: "2024-01", TotalPlays: 2},
		{Artist: "C", FirstHeard: at(2024, time.February, 3, 10, 10), Period: "2024-02", TotalPlays: 1},
	}, report.NewArtistsDiscovered)
}

func TestAnalyzeNovelty_comfortTracks(t *testing.T) {
	report := AnalyzeNovelty(threeMonths(), Month)

	require.Len(t, report.TopComfortTracks, 4)
	assert.Equal(t, ComfortTrack{Artist: "A", Track: "x", PlayCount: 3, FirstHeard: at(2024, time.January, 3, 10, 0)}, report.TopComfortTracks[0])
	assert.Equal(t, "y", report.TopComfortTracks[1].Track)
	assert.Equal(t, "z", report.TopComfortTracks[2].Track)
	assert.Equal(t, "w", report.TopComfortTracks[3].Track)
}

func TestAnalyzeNovelty_comfortTrackLimit(t *testing.T) {
	var events []PlayEvent
	for i := 0; i < 12; i++ {
		events = append(events, play("A", fmt.Sprintf("t%d", i), at(2024, time.January, 1, 0, i)))
	}
	report := AnalyzeNovelty(events, Week)
	assert.Len(t, report.TopComfortTracks, ComfortTrackLimit)
}

func TestAnalyzeNovelty_unsortedInput(t *testing.T) {
	events := threeMonths()
	reversed := make([]PlayEvent, len(events))
	for i, e := range events {
		reversed[len(events)-1-i] = e
	}
	assert.Equal(t, AnalyzeNovelty(events, Month).Timeline, AnalyzeNovelty(reversed, Month).Timeline)
}

func TestAnalyzeNovelty_noStateBetweenCalls(t *testing.T) {
	first := AnalyzeNovelty(threeMonths(), Month)
	second := AnalyzeNovelty(threeMonths(), Month)
	assert.Equal(t, first, second)
	assert.Equal(t, 1.0, second.Timeline[0].NoveltyRatio)
}

func TestAnalyzeNovelty_empty(t *testing.T) {
	report := AnalyzeNovelty(nil, Week)
	assert.NotNil(t, report.Timeline)
	assert.Empty(t, report.Timeline)
	assert.Empty(t, report.NewArtistsDiscovered)
	assert.NotNil(t, report.TopComfortTracks)
	assert.Equal(t, NoveltySummary{}, report.Summary)
}
