package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShannonEntropy(t *testing.T) {
	assert.InDelta(t, 2.0, ShannonEntropy([]int{10, 10, 10, 10}), 1e-9)
	assert.InDelta(t, math.Log2(3), ShannonEntropy([]int{5, 5, 5}), 1e-9)
	assert.Equal(t, 0.0, ShannonEntropy([]int{7}))
	assert.Equal(t, 0.0, ShannonEntropy(nil))
	assert.Equal(t, 0.0, ShannonEntropy([]int{0, 0}))
}

func TestGiniCoefficient(t *testing.T) {
	assert.InDelta(t, 0.0, GiniCoefficient([]int{10, 10, 10}), 1e-9)
	assert.Greater(t, GiniCoefficient([]int{90, 5, 5}), 0.4)
	assert.InDelta(t, 2.0/3.0, GiniCoefficient([]int{0, 10, 0}), 1e-9)
	assert.Equal(t, 0.0, GiniCoefficient(nil))
	assert.Equal(t, 0.0, GiniCoefficient([]int{0, 0}))
}

func TestDiversityScore(t *testing.T) {
	assert.Equal(t, 0.0, DiversityScore(0, 0, 0))
	assert.InDelta(t, 100.0, DiversityScore(entropyReference*2, 10, 10), 1e-9)
	assert.InDelta(t, 10.0, DiversityScore(0, 1, 4), 1e-9)
}

func TestAnalyzeDiversity(t *testing.T) {
	events := []PlayEvent{
		// Out of order on purpose.
		play("A", "track", at(2024, time.May, 2, 10, 0)),
		play("A", "track", at(2024, time.May, 1, 10, 0)),
		play("B", "track", at(2024, time.May, 1, 10, 5)),
		play("C", "track", at(2024, time.May, 1, 10, 10)),
		play("D", "track", at(2024, time.May, 1, 10, 15)),
		play("A", "track", at(2024, time.May, 2, 10, 5)),
		play("A", "track", at(2024, time.May, 2, 10, 10)),
		play("A", "track", at(2024, time.May, 2, 10, 15)),
	}

	report := AnalyzeDiversity(events, Day)
	require.Len(t, report.Timeline, 2)

	even := report.Timeline[0]
	assert.Equal(t, "2024-05-01", even.Period)
	assert.Equal(t, 4, even.TotalScrobbles)
	assert.Equal(t, 4, even.UniqueArtists)
	assert.Equal(t, 4, even.UniqueTracks)
	assert.InDelta(t, 2.0, even.ShannonEntropy, 1e-9)
	assert.InDelta(t, 0.0, even.GiniCoefficient, 1e-9)
	assert.InDelta(t, (2.0/entropyReference*0.6+0.4)*100, even.DiversityScore, 1e-9)

	single := report.Timeline[1]
	assert.Equal(t, "2024-05-02", single.Period)
	assert.Equal(t, 0.0, single.ShannonEntropy)
	assert.Equal(t, 0.0, single.GiniCoefficient)
	assert.InDelta(t, 10.0, single.DiversityScore, 1e-9)

	s := report.Summary
	assert.Equal(t, 8, s.TotalScrobbles)
	assert.Equal(t, 4, s.TotalUniqueArtists)
	assert.Equal(t, 4, s.TotalUniqueTracks)
	assert.InDelta(t, 1.0, s.AvgShannonEntropy, 1e-9)
	assert.InDelta(t, (even.DiversityScore+single.DiversityScore)/2, s.AvgDiversityScore, 1e-9)
	assert.Equal(t, "2024-05-01", s.MostDiversePeriod)
	assert.Equal(t, "2024-05-02", s.LeastDiversePeriod)
}

func TestAnalyzeDiversity_scoresStayInRange(t *testing.T) {
	var events []PlayEvent
	for i := 0; i < 300; i++ {
		events = append(events, play(string(rune('A'+i%40)), "t", at(2024, time.June, 1+i%20, i%24, 0)))
	}
	for _, p := range AnalyzeDiversity(events, Week).Timeline {
		assert.GreaterOrEqual(t, p.DiversityScore, 0.0)
		assert.LessOrEqual(t, p.DiversityScore, 100.0)
		assert.GreaterOrEqual(t, p.GiniCoefficient, 0.0)
		assert.LessOrEqual(t, p.GiniCoefficient, 1.0)
	}
}

func TestAnalyzeDiversity_empty(t *testing.T) {
	report := AnalyzeDiversity(nil, Month)
	assert.NotNil(t, report.Timeline)
	assert.Empty(t, report.Timeline)
	assert.Equal(t, DiversitySummary{}, report.Summary)
}
