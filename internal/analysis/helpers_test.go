package analysis

import "time"

func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func play(artist, track string, ts time.Time) PlayEvent {
	return PlayEvent{Artist: artist, Track: track, Timestamp: ts, Source: "lastfm"}
}

func artistsOf(events ...string) []PlayEvent {
	start := at(2024, time.January, 1, 10, 0)
	plays := make([]PlayEvent, len(events))
	for i, a := range events {
		plays[i] = play(a, "track", start.Add(time.Duration(i)*time.Minute))
	}
	return plays
}
