package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/ademuri/footprints/internal/analysis"
	"github.com/ademuri/footprints/internal/logging"
)

// now is replaced in tests.
var now = time.Now

func (s *Store) GetLastUpdated(user string) (time.Time, error) {
	row := s.db.QueryRow("SELECT last_updated FROM User WHERE name = ?", user)
	var t sql.NullTime
	err := row.Scan(&t)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("getting last updated: %w", err)
	}
	return t.Time, nil
}

// GetLatestListen returns the newest stored play, or the zero time when there
// are none.
func (s *Store) GetLatestListen() (time.Time, error) {
	row := s.db.QueryRow("SELECT timestamp FROM Scrobble ORDER BY CAST(timestamp AS INTEGER) DESC LIMIT 1")
	var dateStr string
	err := row.Scan(&dateStr)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("scanning latest listen: %w", err)
	}
	return parseDate(dateStr)
}

func (s *Store) CountEvents() (int64, error) {
	var count int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM Scrobble").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting scrobbles: %w", err)
	}
	return count, nil
}

// GetAvailableYears lists the years with any plays, newest first.
func (s *Store) GetAvailableYears() ([]int, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT CAST(strftime('%Y', timestamp, 'unixepoch') AS INTEGER) AS year
		FROM Scrobble
		ORDER BY year DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// GetEvents returns plays between start and end inclusive, oldest first. A
// nil bound is open.
func (s *Store) GetEvents(start, end *time.Time) ([]analysis.PlayEvent, error) {
	query := "SELECT artist, album, track, timestamp, source, source_id FROM Scrobble WHERE 1 = 1"
	var args []interface{}
	if start != nil {
		query += " AND timestamp >= ?"
		args = append(args, start.Unix())
	}
	if end != nil {
		query += " AND timestamp <= ?"
		args = append(args, end.Unix())
	}
	query += " ORDER BY timestamp ASC, id ASC"
	return s.queryEvents(query, args...)
}

// GetEventsBefore returns every play strictly before t, oldest first.
func (s *Store) GetEventsBefore(t time.Time) ([]analysis.PlayEvent, error) {
	return s.queryEvents(`
		SELECT artist, album, track, timestamp, source, source_id
		FROM Scrobble
		WHERE timestamp < ?
		ORDER BY timestamp ASC, id ASC`, t.Unix())
}

func (s *Store) queryEvents(query string, args ...interface{}) ([]analysis.PlayEvent, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying scrobbles: %w", err)
	}
	defer rows.Close()

	events := []analysis.PlayEvent{}
	for rows.Next() {
		var e analysis.PlayEvent
		var album, sourceID sql.NullString
		var dateStr string
		if err := rows.Scan(&e.Artist, &album, &e.Track, &dateStr, &e.Source, &sourceID); err != nil {
			return nil, fmt.Errorf("scanning scrobble: %w", err)
		}
		e.Album = album.String
		e.SourceID = sourceID.String

		e.Timestamp, err = parseDate(dateStr)
		if err != nil {
			e.Timestamp = now().UTC()
			logging.Warn().Err(err).Str("artist", e.Artist).Str("track", e.Track).
				Msg("unreadable scrobble timestamp, using current time")
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func parseDate(dateStr string) (time.Time, error) {
	// Unix seconds, or RFC3339 for rows written by other tools.
	dateInt, err := strconv.ParseInt(dateStr, 10, 64)
	if err == nil {
		return time.Unix(dateInt, 0).UTC(), nil
	}

	t, err := time.Parse(time.RFC3339, dateStr)
	if err == nil {
		return t.UTC(), nil
	}

	return time.Time{}, fmt.Errorf("parsing date %q: %w", dateStr, err)
}
