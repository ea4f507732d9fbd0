package analysis

import (
	"fmt"
	"time"
)

const DefaultSessionGapMinutes = 45

// SessionTrack is one play within a session. GapAfterMinutes is nil for the
// last play.
type SessionTrack struct {
	Artist          string    `json:"artist" yaml:"artist"`
	Album           string    `json:"album,omitempty" yaml:"album,omitempty"`
	Track           string    `json:"track" yaml:"track"`
	Timestamp       time.Time `json:"timestamp" yaml:"timestamp"`
	GapAfterMinutes *int      `json:"gap_after_minutes,omitempty" yaml:"gap_after_minutes,omitempty"`
}

type Session struct {
	ID              string         `json:"id" yaml:"id"`
	StartTime       time.Time      `json:"start_time" yaml:"start_time"`
	EndTime         time.Time      `json:"end_time" yaml:"end_time"`
	DurationMinutes int            `json:"duration_minutes" yaml:"duration_minutes"`
	TrackCount      int            `json:"track_count" yaml:"track_count"`
	UniqueArtists   int            `json:"unique_artists" yaml:"unique_artists"`
	Tracks          []SessionTrack `json:"tracks" yaml:"tracks"`
}

// DetectSessions groups events into sessions. A gap strictly greater than
// gapThresholdMinutes starts a new session.
func DetectSessions(events []PlayEvent, gapThresholdMinutes int) []Session {
	sessions := []Session{}
	if len(events) == 0 {
		return sessions
	}

	sorted := sortedByTime(events)
	threshold := time.Duration(gapThresholdMinutes) * time.Minute

	current := []PlayEvent{sorted[0]}
	for _, e := range sorted[1:] {
		if e.Timestamp.Sub(current[len(current)-1].Timestamp) > threshold {
			sessions = append(sessions, newSession(current))
			current = nil
		}
		current = append(current, e)
	}
	return append(sessions, newSession(current))
}

func newSession(events []PlayEvent) Session {
	start := events[0].Timestamp
	end := events[len(events)-1].Timestamp

	duration := int(end.Sub(start) / time.Minute)
	if duration < 0 {
		duration = 0
	}

	artists := make(map[string]struct{})
	tracks := make([]SessionTrack, len(events))
	for i, e := range events {
		artists[e.Artist] = struct{}{}
		tracks[i] = SessionTrack{
			Artist:    e.Artist,
			Album:     e.Album,
			Track:     e.Track,
			Timestamp: e.Timestamp,
		}
		if i+1 < len(events) {
			gap := int(events[i+1].Timestamp.Sub(e.Timestamp) / time.Minute)
			tracks[i].GapAfterMinutes = &gap
		}
	}

	return Session{
		ID:              fmt.Sprintf("session_%d", start.Unix()),
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: duration,
		TrackCount:      len(events),
		UniqueArtists:   len(artists),
		Tracks:          tracks,
	}
}

type SessionsOptions struct {
	GapMinutes int
	// Sessions with fewer plays than this are left out of the report.
	MinTracks int
}

func DefaultSessionsOptions() SessionsOptions {
	return SessionsOptions{GapMinutes: DefaultSessionGapMinutes, MinTracks: 1}
}

type SessionsSummary struct {
	TotalSessions         int     `json:"total_sessions" yaml:"total_sessions"`
	AvgDurationMinutes    float64 `json:"avg_duration_minutes" yaml:"avg_duration_minutes"`
	AvgTracksPerSession   float64 `json:"avg_tracks_per_session" yaml:"avg_tracks_per_session"`
	LongestSessionMinutes int     `json:"longest_session_minutes" yaml:"longest_session_minutes"`
	TotalListeningHours   float64 `json:"total_listening_hours" yaml:"total_listening_hours"`
}

type BucketCount struct {
	Bucket string `json:"bucket" yaml:"bucket"`
	Count  int    `json:"count" yaml:"count"`
}

type SessionDistribution struct {
	ByDuration   []BucketCount `json:"by_duration" yaml:"by_duration"`
	ByTrackCount []BucketCount `json:"by_track_count" yaml:"by_track_count"`
}

type DayCount struct {
	Date  string `json:"date" yaml:"date"`
	Count int    `json:"count" yaml:"count"`
}

type SessionsReport struct {
	Sessions       []Session           `json:"sessions" yaml:"sessions"`
	Summary        SessionsSummary     `json:"summary" yaml:"summary"`
	Distribution   SessionDistribution `json:"distribution" yaml:"distribution"`
	SessionsPerDay []DayCount          `json:"sessions_per_day" yaml:"sessions_per_day"`
}

type bucket struct {
	label string
	upper int // exclusive; 0 means unbounded
}

var durationBuckets = []bucket{
	{"0-30", 30},
	{"30-60", 60},
	{"60-120", 120},
	{"120-180", 180},
	{"180+", 0},
}

var trackCountBuckets = []bucket{
	{"2-10", 10},
	{"10-20", 20},
	{"20-30", 30},
	{"30-50", 50},
	{"50+", 0},
}

func bucketIndex(buckets []bucket, v int) int {
	for i, b := range buckets {
		if b.upper == 0 || v < b.upper {
			return i
		}
	}
	return len(buckets) - 1
}

func newDistribution(buckets []bucket) []BucketCount {
	dist := make([]BucketCount, len(buckets))
	for i, b := range buckets {
		dist[i].Bucket = b.label
	}
	return dist
}

// AnalyzeSessions detects sessions and summarizes their lengths.
func AnalyzeSessions(events []PlayEvent, opts SessionsOptions) SessionsReport {
	report := SessionsReport{
		Sessions: []Session{},
		Distribution: SessionDistribution{
			ByDuration:   newDistribution(durationBuckets),
			ByTrackCount: newDistribution(trackCountBuckets),
		},
		SessionsPerDay: []DayCount{},
	}

	totalDuration := 0
	totalTracks := 0
	for _, s := range DetectSessions(events, opts.GapMinutes) {
		if s.TrackCount < opts.MinTracks {
			continue
		}
		report.Sessions = append(report.Sessions, s)

		totalDuration += s.DurationMinutes
		totalTracks += s.TrackCount
		if s.DurationMinutes > report.Summary.LongestSessionMinutes {
			report.Summary.LongestSessionMinutes = s.DurationMinutes
		}
		report.Distribution.ByDuration[bucketIndex(durationBuckets, s.DurationMinutes)].Count++
		report.Distribution.ByTrackCount[bucketIndex(trackCountBuckets, s.TrackCount)].Count++

		day := s.StartTime.UTC().Format("2006-01-02")
		if n := len(report.SessionsPerDay); n > 0 && report.SessionsPerDay[n-1].Date == day {
			report.SessionsPerDay[n-1].Count++
		} else {
			report.SessionsPerDay = append(report.SessionsPerDay, DayCount{Date: day, Count: 1})
		}
	}

	n := len(report.Sessions)
	report.Summary.TotalSessions = n
	report.Summary.TotalListeningHours = float64(totalDuration) / 60
	if n > 0 {
		report.Summary.AvgDurationMinutes = float64(totalDuration) / float64(n)
		report.Summary.AvgTracksPerSession = float64(totalTracks) / float64(n)
	}
	return report
}
