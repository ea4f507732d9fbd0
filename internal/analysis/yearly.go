package analysis

import (
	"fmt"
	"time"
)

const (
	// AverageTrackMinutes estimates listening time from play counts.
	AverageTrackMinutes = 3.5

	// YearlySessionGapMinutes is the default session gap for yearly
	// listening patterns. It is shorter than DefaultSessionGapMinutes.
	YearlySessionGapMinutes = 30

	TopContentLimit = 50

	// A night owl or early bird badge needs more than this share of plays.
	personalityBadgeThreshold = 60
	// A marathon badge needs a session longer than this many minutes.
	marathonSessionMinutes = 180
)

type YearlyOptions struct {
	// SessionGapMinutes <= 0 means YearlySessionGapMinutes.
	SessionGapMinutes int
}

func DefaultYearlyOptions() YearlyOptions {
	return YearlyOptions{SessionGapMinutes: YearlySessionGapMinutes}
}

type YearOverview struct {
	TotalScrobbles  int     `json:"total_scrobbles" yaml:"total_scrobbles"`
	TotalArtists    int     `json:"total_artists" yaml:"total_artists"`
	TotalTracks     int     `json:"total_tracks" yaml:"total_tracks"`
	TotalAlbums     int     `json:"total_albums" yaml:"total_albums"`
	TotalMinutes    int     `json:"total_minutes" yaml:"total_minutes"`
	AveragePerDay   float64 `json:"average_per_day" yaml:"average_per_day"`
	MostActiveMonth string  `json:"most_active_month" yaml:"most_active_month"`
	MostActiveDay   string  `json:"most_active_day" yaml:"most_active_day"`
}

type TopArtist struct {
	Artist     string  `json:"artist" yaml:"artist"`
	PlayCount  int     `json:"play_count" yaml:"play_count"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
	Rank       int     `json:"rank" yaml:"rank"`
}

type TopTrack struct {
	Artist    string `json:"artist" yaml:"artist"`
	Track     string `json:"track" yaml:"track"`
	PlayCount int    `json:"play_count" yaml:"play_count"`
	Rank      int    `json:"rank" yaml:"rank"`
}

type TopAlbum struct {
	Artist    string `json:"artist" yaml:"artist"`
	Album     string `json:"album" yaml:"album"`
	PlayCount int    `json:"play_count" yaml:"play_count"`
	Rank      int    `json:"rank" yaml:"rank"`
}

type TopContent struct {
	TopArtists []TopArtist `json:"top_artists" yaml:"top_artists"`
	TopTracks  []TopTrack  `json:"top_tracks" yaml:"top_tracks"`
	TopAlbums  []TopAlbum  `json:"top_albums" yaml:"top_albums"`
}

type ListeningPatterns struct {
	PeakHour              int     `json:"peak_hour" yaml:"peak_hour"`
	PeakDay               int     `json:"peak_day" yaml:"peak_day"`
	LongestSessionMinutes int     `json:"longest_session_minutes" yaml:"longest_session_minutes"`
	AvgSessionMinutes     float64 `json:"avg_session_minutes" yaml:"avg_session_minutes"`
	NightOwlScore         float64 `json:"night_owl_score" yaml:"night_owl_score"`
	EarlyBirdScore        float64 `json:"early_bird_score" yaml:"early_bird_score"`
	WeekendWarriorScore   float64 `json:"weekend_warrior_score" yaml:"weekend_warrior_score"`
}

type FirstPlay struct {
	Artist    string    `json:"artist" yaml:"artist"`
	Track     string    `json:"track" yaml:"track"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

type TopDiscovery struct {
	Artist        string    `json:"artist" yaml:"artist"`
	FirstHeard    time.Time `json:"first_heard" yaml:"first_heard"`
	PlaysThisYear int       `json:"plays_this_year" yaml:"plays_this_year"`
}

type Discoveries struct {
	NewArtists   int           `json:"new_artists" yaml:"new_artists"`
	NewTracks    int           `json:"new_tracks" yaml:"new_tracks"`
	FirstArtist  *FirstPlay    `json:"first_artist" yaml:"first_artist"`
	TopDiscovery *TopDiscovery `json:"top_discovery" yaml:"top_discovery"`
}

type DiversityStats struct {
	DiversityScore   float64 `json:"diversity_score" yaml:"diversity_score"`
	GenreCount       int     `json:"genre_count" yaml:"genre_count"`
	ArtistLoyalty    float64 `json:"artist_loyalty" yaml:"artist_loyalty"`
	ExplorationScore float64 `json:"exploration_score" yaml:"exploration_score"`
}

type Milestone struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Value       string `json:"value" yaml:"value"`
	Icon        string `json:"icon" yaml:"icon"`
}

type YearlyReport struct {
	Year              int               `json:"year" yaml:"year"`
	Overview          YearOverview      `json:"overview" yaml:"overview"`
	TopContent        TopContent        `json:"top_content" yaml:"top_content"`
	ListeningPatterns ListeningPatterns `json:"listening_patterns" yaml:"listening_patterns"`
	Discoveries       Discoveries       `json:"discoveries" yaml:"discoveries"`
	Diversity         DiversityStats    `json:"diversity" yaml:"diversity"`
	Milestones        []Milestone       `json:"milestones" yaml:"milestones"`
}

// AnalyzeYear builds the yearly report from the plays in year. history
// supplies earlier plays; only those before January 1 of year are used to
// decide what counts as a discovery. Events outside year are ignored.
func AnalyzeYear(year int, events, history []PlayEvent, opts YearlyOptions) (YearlyReport, error) {
	yr, err := YearRange(year)
	if err != nil {
		return YearlyReport{}, err
	}

	gap := opts.SessionGapMinutes
	if gap <= 0 {
		gap = YearlySessionGapMinutes
	}

	var plays []PlayEvent
	for _, e := range sortedByTime(events) {
		if e.Timestamp.Before(yr.Start) || !e.Timestamp.Before(yr.Start.AddDate(1, 0, 0)) {
			continue
		}
		plays = append(plays, e)
	}

	if len(plays) == 0 {
		return emptyYearlyReport(year), nil
	}

	report := YearlyReport{
		Year:              year,
		Overview:          yearOverview(year, plays),
		TopContent:        topContent(plays),
		ListeningPatterns: listeningPatterns(plays, gap),
		Discoveries:       discoveries(plays, history, yr.Start),
		Diversity:         diversityStats(plays),
	}
	report.Milestones = milestones(report)
	return report, nil
}

func emptyYearlyReport(year int) YearlyReport {
	return YearlyReport{
		Year: year,
		TopContent: TopContent{
			TopArtists: []TopArtist{},
			TopTracks:  []TopTrack{},
			TopAlbums:  []TopAlbum{},
		},
		Milestones: []Milestone{},
	}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func yearOverview(year int, plays []PlayEvent) YearOverview {
	artists := make(map[string]struct{})
	tracks := make(map[trackKey]struct{})
	albums := make(map[string]struct{})
	months := newCounter[string]()
	days := newCounter[string]()

	for _, e := range plays {
		artists[e.Artist] = struct{}{}
		tracks[trackKey{e.Artist, e.Track}] = struct{}{}
		if e.Album != "" {
			albums[e.Album] = struct{}{}
		}
		t := e.Timestamp.UTC()
		months.add(t.Format("2006-01"))
		days.add(t.Format("2006-01-02"))
	}

	daysInYear := 365
	if isLeapYear(year) {
		daysInYear = 366
	}

	mostActiveMonth, _, _ := months.top()
	mostActiveDay, _, _ := days.top()
	return YearOverview{
		TotalScrobbles:  len(plays),
		TotalArtists:    len(artists),
		TotalTracks:     len(tracks),
		TotalAlbums:     len(albums),
		TotalMinutes:    int(float64(len(plays)) * AverageTrackMinutes),
		AveragePerDay:   float64(len(plays)) / float64(daysInYear),
		MostActiveMonth: mostActiveMonth,
		MostActiveDay:   mostActiveDay,
	}
}

func topContent(plays []PlayEvent) TopContent {
	artists := newCounter[string]()
	tracks := newCounter[trackKey]()
	albums := newCounter[albumKey]()
	for _, e := range plays {
		artists.add(e.Artist)
		tracks.add(trackKey{e.Artist, e.Track})
		if e.Album != "" {
			albums.add(albumKey{e.Artist, e.Album})
		}
	}

	content := TopContent{
		TopArtists: []TopArtist{},
		TopTracks:  []TopTrack{},
		TopAlbums:  []TopAlbum{},
	}
	for i, a := range limit(artists.ranked(), TopContentLimit) {
		content.TopArtists = append(content.TopArtists, TopArtist{
			Artist:     a,
			PlayCount:  artists.get(a),
			Percentage: percentOf(artists.get(a), len(plays)),
			Rank:       i + 1,
		})
	}
	for i, t := range limit(tracks.ranked(), TopContentLimit) {
		content.TopTracks = append(content.TopTracks, TopTrack{
			Artist:    t.artist,
			Track:     t.track,
			PlayCount: tracks.get(t),
			Rank:      i + 1,
		})
	}
	for i, a := range limit(albums.ranked(), TopContentLimit) {
		content.TopAlbums = append(content.TopAlbums, TopAlbum{
			Artist:    a.artist,
			Album:     a.album,
			PlayCount: albums.get(a),
			Rank:      i + 1,
		})
	}
	return content
}

func limit[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func listeningPatterns(plays []PlayEvent, sessionGapMinutes int) ListeningPatterns {
	var hours [hoursPerDay]int
	var weekdays [daysPerWeek]int
	for _, e := range plays {
		t := e.Timestamp.UTC()
		hours[t.Hour()]++
		weekdays[mondayFirst(t.Weekday())]++
	}

	patterns := ListeningPatterns{
		PeakHour: argMax(hours[:]),
		PeakDay:  argMax(weekdays[:]),
	}

	sessions := DetectSessions(plays, sessionGapMinutes)
	total := 0
	for _, s := range sessions {
		total += s.DurationMinutes
		if s.DurationMinutes > patterns.LongestSessionMinutes {
			patterns.LongestSessionMinutes = s.DurationMinutes
		}
	}
	if len(sessions) > 0 {
		patterns.AvgSessionMinutes = float64(total) / float64(len(sessions))
	}

	night, morning := 0, 0
	for h, c := range hours {
		switch {
		case h >= 20 || h < 6:
			night += c
		case h < 12:
			morning += c
		}
	}
	patterns.NightOwlScore = percentOf(night, len(plays))
	patterns.EarlyBirdScore = percentOf(morning, len(plays))
	patterns.WeekendWarriorScore = percentOf(weekdays[5]+weekdays[6], len(plays))
	return patterns
}

// argMax returns the index of the largest value, lowest index on ties.
func argMax(values []int) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

func discoveries(plays, history []PlayEvent, yearStart time.Time) Discoveries {
	seenArtists := make(map[string]struct{})
	seenTracks := make(map[trackKey]struct{})
	for _, e := range history {
		if !e.Timestamp.Before(yearStart) {
			continue
		}
		seenArtists[e.Artist] = struct{}{}
		seenTracks[trackKey{e.Artist, e.Track}] = struct{}{}
	}

	var d Discoveries
	discovered := newCounter[string]()
	firstHeard := make(map[string]time.Time)
	for _, e := range plays {
		if _, ok := seenArtists[e.Artist]; !ok {
			seenArtists[e.Artist] = struct{}{}
			d.NewArtists++
			firstHeard[e.Artist] = e.Timestamp
			if d.FirstArtist == nil {
				d.FirstArtist = &FirstPlay{Artist: e.Artist, Track: e.Track, Timestamp: e.Timestamp}
			}
		}

		key := trackKey{e.Artist, e.Track}
		if _, ok := seenTracks[key]; !ok {
			seenTracks[key] = struct{}{}
			d.NewTracks++
		}

		if _, ok := firstHeard[e.Artist]; ok {
			discovered.add(e.Artist)
		}
	}

	if artist, count, ok := discovered.top(); ok {
		d.TopDiscovery = &TopDiscovery{
			Artist:        artist,
			FirstHeard:    firstHeard[artist],
			PlaysThisYear: count,
		}
	}
	return d
}

func diversityStats(plays []PlayEvent) DiversityStats {
	artists := newCounter[string]()
	for _, e := range plays {
		artists.add(e.Artist)
	}

	_, topPlays, _ := artists.top()
	loyalty := percentOf(topPlays, len(plays))
	return DiversityStats{
		DiversityScore:   clamp(percentOf(artists.len(), len(plays)), 0, 100),
		GenreCount:       0,
		ArtistLoyalty:    loyalty,
		ExplorationScore: 100 - loyalty,
	}
}

func milestones(r YearlyReport) []Milestone {
	hours := r.Overview.TotalMinutes / 60
	ms := []Milestone{{
		Title:       "Music Marathon",
		Description: fmt.Sprintf("You listened to %d hours of music", hours),
		Value:       fmt.Sprintf("%d hours", hours),
		Icon:        "⏱️",
	}}

	if len(r.TopContent.TopArtists) > 0 {
		top := r.TopContent.TopArtists[0]
		ms = append(ms, Milestone{
			Title:       "Your #1 Artist",
			Description: fmt.Sprintf("You played %d songs", top.PlayCount),
			Value:       top.Artist,
			Icon:        "🎤",
		})
	}

	ms = append(ms, Milestone{
		Title:       "Explorer",
		Description: fmt.Sprintf("You discovered %d new artists", r.Discoveries.NewArtists),
		Value:       fmt.Sprintf("%d artists", r.Discoveries.NewArtists),
		Icon:        "🗺️",
	})

	p := r.ListeningPatterns
	switch {
	case p.NightOwlScore > personalityBadgeThreshold:
		ms = append(ms, Milestone{
			Title:       "Night Owl",
			Description: "Most of your listening happens after 8 PM",
			Value:       fmt.Sprintf("%d%% night listening", int(p.NightOwlScore)),
			Icon:        "🦉",
		})
	case p.EarlyBirdScore > personalityBadgeThreshold:
		ms = append(ms, Milestone{
			Title:       "Early Bird",
			Description: "You love morning music sessions",
			Value:       fmt.Sprintf("%d%% morning listening", int(p.EarlyBirdScore)),
			Icon:        "🐦",
		})
	}

	if p.LongestSessionMinutes > marathonSessionMinutes {
		ms = append(ms, Milestone{
			Title:       "Marathon Listener",
			Description: "Your longest listening session",
			Value:       fmt.Sprintf("%d minutes", p.LongestSessionMinutes),
			Icon:        "🏃",
		})
	}
	return ms
}
