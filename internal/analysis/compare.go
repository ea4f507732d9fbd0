package analysis

// comparisonTopN is how many top artists are compared between two years.
const comparisonTopN = 10

type YearComparison struct {
	CurrentYear            int      `json:"current_year" yaml:"current_year"`
	PreviousYear           int      `json:"previous_year" yaml:"previous_year"`
	ScrobblesChange        int      `json:"scrobbles_change" yaml:"scrobbles_change"`
	ScrobblesChangePercent float64  `json:"scrobbles_change_percent" yaml:"scrobbles_change_percent"`
	ArtistsChange          int      `json:"artists_change" yaml:"artists_change"`
	ArtistsChangePercent   float64  `json:"artists_change_percent" yaml:"artists_change_percent"`
	DiversityChange        float64  `json:"diversity_change" yaml:"diversity_change"`
	TopArtistsOverlap      []string `json:"top_artists_overlap" yaml:"top_artists_overlap"`
	NewFavorites           []string `json:"new_favorites" yaml:"new_favorites"`
}

// CompareYears reports how current differs from previous. Percent changes
// are 0 when previous has nothing to compare against.
func CompareYears(current, previous YearlyReport) YearComparison {
	c := YearComparison{
		CurrentYear:       current.Year,
		PreviousYear:      previous.Year,
		ScrobblesChange:   current.Overview.TotalScrobbles - previous.Overview.TotalScrobbles,
		ArtistsChange:     current.Overview.TotalArtists - previous.Overview.TotalArtists,
		DiversityChange:   current.Diversity.DiversityScore - previous.Diversity.DiversityScore,
		TopArtistsOverlap: []string{},
		NewFavorites:      []string{},
	}
	c.ScrobblesChangePercent = percentOf(c.ScrobblesChange, previous.Overview.TotalScrobbles)
	c.ArtistsChangePercent = percentOf(c.ArtistsChange, previous.Overview.TotalArtists)

	previousTop := make(map[string]struct{})
	for _, a := range limit(previous.TopContent.TopArtists, comparisonTopN) {
		previousTop[a.Artist] = struct{}{}
	}
	for _, a := range limit(current.TopContent.TopArtists, comparisonTopN) {
		if _, ok := previousTop[a.Artist]; ok {
			c.TopArtistsOverlap = append(c.TopArtistsOverlap, a.Artist)
		} else {
			c.NewFavorites = append(c.NewFavorites, a.Artist)
		}
	}
	return c
}
