package analysis

import "time"

// PeriodReport is a plain top-list summary of one stretch of listening.
type PeriodReport struct {
	Period         string      `json:"period" yaml:"period"`
	StartDate      *time.Time  `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate        *time.Time  `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	TotalScrobbles int         `json:"total_scrobbles" yaml:"total_scrobbles"`
	TopArtists     []TopArtist `json:"top_artists" yaml:"top_artists"`
	TopTracks      []TopTrack  `json:"top_tracks" yaml:"top_tracks"`
	TopAlbums      []TopAlbum  `json:"top_albums" yaml:"top_albums"`
}

// Summarize ranks the artists, tracks and albums in events. r is nil for
// all-time reports.
func Summarize(period string, r *TimeRange, events []PlayEvent) PeriodReport {
	content := topContent(sortedByTime(events))
	report := PeriodReport{
		Period:         period,
		TotalScrobbles: len(events),
		TopArtists:     content.TopArtists,
		TopTracks:      content.TopTracks,
		TopAlbums:      content.TopAlbums,
	}
	if r != nil {
		start, end := r.Start, r.End
		report.StartDate = &start
		report.EndDate = &end
	}
	return report
}
