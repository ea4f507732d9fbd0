package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func reportWith(year, scrobbles, artists int, diversity float64, top ...string) YearlyReport {
	r := YearlyReport{Year: year}
	r.Overview.TotalScrobbles = scrobbles
	r.Overview.TotalArtists = artists
	r.Diversity.DiversityScore = diversity
	for i, a := range top {
		r.TopContent.TopArtists = append(r.TopContent.TopArtists, TopArtist{Artist: a, Rank: i + 1})
	}
	return r
}

func TestCompareYears(t *testing.T) {
	current := reportWith(2024, 150, 30, 50, "A", "B", "C")
	previous := reportWith(2023, 100, 20, 40, "B", "D")

	c := CompareYears(current, previous)
	assert.Equal(t, 2024, c.CurrentYear)
	assert.Equal(t, 2023, c.PreviousYear)
	assert.Equal(t, 50, c.ScrobblesChange)
	assert.InDelta(t, 50.0, c.ScrobblesChangePercent, 1e-9)
	assert.Equal(t, 10, c.ArtistsChange)
	assert.InDelta(t, 50.0, c.ArtistsChangePercent, 1e-9)
	assert.InDelta(t, 10.0, c.DiversityChange, 1e-9)
	assert.Equal(t, []string{"B"}, c.TopArtistsOverlap)
	assert.Equal(t, []string{"A", "C"}, c.NewFavorites)
}

func TestCompareYears_onlyTopTenCount(t *testing.T) {
	top := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}
	current := reportWith(2024, 10, 10, 0, top...)
	previous := reportWith(2023, 10, 10, 0, "k")

	c := CompareYears(current, previous)
	assert.Empty(t, c.TopArtistsOverlap)
	assert.Len(t, c.NewFavorites, 10)
}

func TestCompareYears_emptyPrevious(t *testing.T) {
	c := CompareYears(reportWith(2024, 10, 2, 20, "A"), emptyYearlyReport(2023))
	assert.Equal(t, 10, c.ScrobblesChange)
	assert.Equal(t, 0.0, c.ScrobblesChangePercent)
	assert.Equal(t, 0.0, c.ArtistsChangePercent)
	assert.NotNil(t, c.TopArtistsOverlap)
	assert.Equal(t, []string{"A"}, c.NewFavorites)
}
