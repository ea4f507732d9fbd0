package analysis

import "time"

// ComfortTrackLimit is how many of the most replayed tracks a novelty report
// lists.
const ComfortTrackLimit = 10

type NoveltyPoint struct {
	Period         string  `json:"period" yaml:"period"`
	TotalScrobbles int     `json:"total_scrobbles" yaml:"total_scrobbles"`
	NewTracks      int     `json:"new_tracks" yaml:"new_tracks"`
	RepeatTracks   int     `json:"repeat_tracks" yaml:"repeat_tracks"`
	NewArtists     int     `json:"new_artists" yaml:"new_artists"`
	RepeatArtists  int     `json:"repeat_artists" yaml:"repeat_artists"`
	NoveltyRatio   float64 `json:"novelty_ratio" yaml:"novelty_ratio"`
}

type NoveltySummary struct {
	TotalScrobbles         int     `json:"total_scrobbles" yaml:"total_scrobbles"`
	TotalUniqueTracks      int     `json:"total_unique_tracks" yaml:"total_unique_tracks"`
	TotalUniqueArtists     int     `json:"total_unique_artists" yaml:"total_unique_artists"`
	AvgNoveltyRatio        float64 `json:"avg_novelty_ratio" yaml:"avg_novelty_ratio"`
	MostExploratoryPeriod  string  `json:"most_exploratory_period" yaml:"most_exploratory_period"`
	LeastExploratoryPeriod string  `json:"least_exploratory_period" yaml:"least_exploratory_period"`
}

type ArtistDiscovery struct {
	Artist     string    `json:"artist" yaml:"artist"`
	FirstHeard time.Time `json:"first_heard" yaml:"first_heard"`
	Period     string    `json:"period" yaml:"period"`
	TotalPlays int       `json:"total_plays" yaml:"total_plays"`
}

type ComfortTrack struct {
	Artist     string    `json:"artist" yaml:"artist"`
	Track      string    `json:"track" yaml:"track"`
	PlayCount  int       `json:"play_count" yaml:"play_count"`
	FirstHeard time.Time `json:"first_heard" yaml:"first_heard"`
}

type NoveltyReport struct {
	Timeline             []NoveltyPoint    `json:"timeline" yaml:"timeline"`
	Summary              NoveltySummary    `json:"summary" yaml:"summary"`
	NewArtistsDiscovered []ArtistDiscovery `json:"new_artists_discovered" yaml:"new_artists_discovered"`
	TopComfortTracks     []ComfortTrack    `json:"top_comfort_tracks" yaml:"top_comfort_tracks"`
}

// noveltyState is everything seen so far in one chronological pass.
type noveltyState struct {
	seenTracks  map[trackKey]struct{}
	seenArtists map[string]struct{}
	discoveries []ArtistDiscovery
}

func newNoveltyState() *noveltyState {
	return &noveltyState{
		seenTracks:  make(map[trackKey]struct{}),
		seenArtists: make(map[string]struct{}),
	}
}

// observe folds one period's events into the state. Events must be in
// chronological order and belong to period.
func (s *noveltyState) observe(period string, events []PlayEvent) NoveltyPoint {
	point := NoveltyPoint{Period: period, TotalScrobbles: len(events)}
	periodArtists := make(map[string]struct{})

	for _, e := range events {
		periodArtists[e.Artist] = struct{}{}

		key := trackKey{e.Artist, e.Track}
		if _, ok := s.seenTracks[key]; !ok {
			s.seenTracks[key] = struct{}{}
			point.NewTracks++
		}

		if _, ok := s.seenArtists[e.Artist]; !ok {
			s.seenArtists[e.Artist] = struct{}{}
			point.NewArtists++
			s.discoveries = append(s.discoveries, ArtistDiscovery{
				Artist:     e.Artist,
				FirstHeard: e.Timestamp,
				Period:     period,
			})
		}
	}

	point.RepeatTracks = point.TotalScrobbles - point.NewTracks
	point.RepeatArtists = len(periodArtists) - point.NewArtists
	if point.TotalScrobbles > 0 {
		point.NoveltyRatio = float64(point.NewTracks) / float64(point.TotalScrobbles)
	}
	return point
}

// AnalyzeNovelty measures how much of each period's listening was new.
func AnalyzeNovelty(events []PlayEvent, g Granularity) NoveltyReport {
	sorted := sortedByTime(events)
	state := newNoveltyState()

	timeline := []NoveltyPoint{}
	for start := 0; start < len(sorted); {
		period := FormatPeriod(sorted[start].Timestamp, g)
		end := start + 1
		for end < len(sorted) && FormatPeriod(sorted[end].Timestamp, g) == period {
			end++
		}
		timeline = append(timeline, state.observe(period, sorted[start:end]))
		start = end
	}

	artistPlays := newCounter[string]()
	trackPlays := newCounter[trackKey]()
	firstHeard := make(map[trackKey]time.Time)
	for _, e := range sorted {
		artistPlays.add(e.Artist)
		key := trackKey{e.Artist, e.Track}
		trackPlays.add(key)
		if _, ok := firstHeard[key]; !ok {
			firstHeard[key] = e.Timestamp
		}
	}

	discoveries := make([]ArtistDiscovery, len(state.discoveries))
	for i, d := range state.discoveries {
		d.TotalPlays = artistPlays.get(d.Artist)
		discoveries[i] = d
	}

	comfort := []ComfortTrack{}
	for _, key := range trackPlays.ranked() {
		if len(comfort) == ComfortTrackLimit {
			break
		}
		comfort = append(comfort, ComfortTrack{
			Artist:     key.artist,
			Track:      key.track,
			PlayCount:  trackPlays.get(key),
			FirstHeard: firstHeard[key],
		})
	}

	return NoveltyReport{
		Timeline:             timeline,
		Summary:              summarizeNovelty(timeline, len(sorted), trackPlays.len(), artistPlays.len()),
		NewArtistsDiscovered: discoveries,
		TopComfortTracks:     comfort,
	}
}

func summarizeNovelty(timeline []NoveltyPoint, total, uniqueTracks, uniqueArtists int) NoveltySummary {
	summary := NoveltySummary{
		TotalScrobbles:     total,
		TotalUniqueTracks:  uniqueTracks,
		TotalUniqueArtists: uniqueArtists,
	}
	if len(timeline) == 0 {
		return summary
	}

	most, least := timeline[0], timeline[0]
	var sum float64
	for _, p := range timeline {
		sum += p.NoveltyRatio
		if p.NoveltyRatio > most.NoveltyRatio {
			most = p
		}
		if p.NoveltyRatio < least.NoveltyRatio {
			least = p
		}
	}
	summary.AvgNoveltyRatio = sum / float64(len(timeline))
	summary.MostExploratoryPeriod = most.Period
	summary.LeastExploratoryPeriod = least.Period
	return summary
}
