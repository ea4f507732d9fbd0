package analysis

import (
	"math"
	"sort"
)

// entropyReference is roughly log2(100): the entropy of an even spread over
// 100 artists, treated as maximally diverse.
const entropyReference = 6.64

type DiversityPoint struct {
	Period          string  `json:"period" yaml:"period"`
	TotalScrobbles  int     `json:"total_scrobbles" yaml:"total_scrobbles"`
	UniqueArtists   int     `json:"unique_artists" yaml:"unique_artists"`
	UniqueTracks    int     `json:"unique_tracks" yaml:"unique_tracks"`
	ShannonEntropy  float64 `json:"shannon_entropy" yaml:"shannon_entropy"`
	GiniCoefficient float64 `json:"gini_coefficient" yaml:"gini_coefficient"`
	DiversityScore  float64 `json:"diversity_score" yaml:"diversity_score"`
}

type DiversitySummary struct {
	TotalScrobbles     int     `json:"total_scrobbles" yaml:"total_scrobbles"`
	TotalUniqueArtists int     `json:"total_unique_artists" yaml:"total_unique_artists"`
	TotalUniqueTracks  int     `json:"total_unique_tracks" yaml:"total_unique_tracks"`
	AvgDiversityScore  float64 `json:"avg_diversity_score" yaml:"avg_diversity_score"`
	AvgShannonEntropy  float64 `json:"avg_shannon_entropy" yaml:"avg_shannon_entropy"`
	AvgGiniCoefficient float64 `json:"avg_gini_coefficient" yaml:"avg_gini_coefficient"`
	MostDiversePeriod  string  `json:"most_diverse_period" yaml:"most_diverse_period"`
	LeastDiversePeriod string  `json:"least_diverse_period" yaml:"least_diverse_period"`
}

type DiversityReport struct {
	Timeline []DiversityPoint `json:"timeline" yaml:"timeline"`
	Summary  DiversitySummary `json:"summary" yaml:"summary"`
}

// ShannonEntropy returns the base-2 entropy of a play-count distribution.
func ShannonEntropy(counts []int) float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}

	var h float64
	for _, c := range counts {
		if c <= 0 {
			continue
		}
		p := float64(c) / float64(total)
		h -= p * math.Log2(p)
	}
	return h
}

// GiniCoefficient returns how unevenly plays are spread, from 0 (equal) to
// 1 (concentrated).
func GiniCoefficient(counts []int) float64 {
	n := len(counts)
	if n == 0 {
		return 0
	}

	sorted := make([]int, n)
	copy(sorted, counts)
	sort.Ints(sorted)

	var total, weighted float64
	for i, c := range sorted {
		total += float64(c)
		weighted += float64(i+1) * float64(c)
	}
	if total == 0 {
		return 0
	}

	g := 2*weighted/(float64(n)*total) - float64(n+1)/float64(n)
	return clamp(g, 0, 1)
}

// DiversityScore blends normalized entropy (60%) with the share of distinct
// artists (40%) into a 0-100 score.
func DiversityScore(entropy float64, uniqueArtists, total int) float64 {
	normalized := math.Min(entropy/entropyReference, 1)
	var uniqueRatio float64
	if total > 0 {
		uniqueRatio = float64(uniqueArtists) / float64(total)
	}
	return clamp((normalized*0.6+uniqueRatio*0.4)*100, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func diversityPoint(period string, events []PlayEvent) DiversityPoint {
	artists := newCounter[string]()
	tracks := make(map[trackKey]struct{})
	for _, e := range events {
		artists.add(e.Artist)
		tracks[trackKey{e.Artist, e.Track}] = struct{}{}
	}

	counts := make([]int, 0, artists.len())
	for _, a := range artists.order {
		counts = append(counts, artists.get(a))
	}

	entropy := ShannonEntropy(counts)
	return DiversityPoint{
		Period:          period,
		TotalScrobbles:  len(events),
		UniqueArtists:   artists.len(),
		UniqueTracks:    len(tracks),
		ShannonEntropy:  entropy,
		GiniCoefficient: GiniCoefficient(counts),
		DiversityScore:  DiversityScore(entropy, artists.len(), len(events)),
	}
}

// AnalyzeDiversity scores each period independently.
func AnalyzeDiversity(events []PlayEvent, g Granularity) DiversityReport {
	byPeriod := make(map[string][]PlayEvent)
	var periods []string
	allArtists := make(map[string]struct{})
	allTracks := make(map[trackKey]struct{})

	for _, e := range sortedByTime(events) {
		period := FormatPeriod(e.Timestamp, g)
		if _, ok := byPeriod[period]; !ok {
			periods = append(periods, period)
		}
		byPeriod[period] = append(byPeriod[period], e)
		allArtists[e.Artist] = struct{}{}
		allTracks[trackKey{e.Artist, e.Track}] = struct{}{}
	}
	sort.Strings(periods)

	timeline := make([]DiversityPoint, 0, len(periods))
	for _, p := range periods {
		timeline = append(timeline, diversityPoint(p, byPeriod[p]))
	}

	summary := DiversitySummary{
		TotalScrobbles:     len(events),
		TotalUniqueArtists: len(allArtists),
		TotalUniqueTracks:  len(allTracks),
	}
	if len(timeline) > 0 {
		most, least := timeline[0], timeline[0]
		var score, entropy, gini float64
		for _, p := range timeline {
			score += p.DiversityScore
			entropy += p.ShannonEntropy
			gini += p.GiniCoefficient
			if p.DiversityScore > most.DiversityScore {
				most = p
			}
			if p.DiversityScore < least.DiversityScore {
				least = p
			}
		}
		n := float64(len(timeline))
		summary.AvgDiversityScore = score / n
		summary.AvgShannonEntropy = entropy / n
		summary.AvgGiniCoefficient = gini / n
		summary.MostDiversePeriod = most.Period
		summary.LeastDiversePeriod = least.Period
	}

	return DiversityReport{Timeline: timeline, Summary: summary}
}
