/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ademuri/footprints/internal/analysis"
	"github.com/ademuri/footprints/internal/store"
)

func play(artist, album, track string, ts time.Time) analysis.PlayEvent {
	return analysis.PlayEvent{
		Artist:    artist,
		Album:     album,
		Track:     track,
		Timestamp: ts.UTC(),
		Source:    lastFmSource,
	}
}

// createTestStore writes events to a fresh database and returns it, open.
func createTestStore(t *testing.T, events ...analysis.PlayEvent) (*store.Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "footprints.db")
	db, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New(%s): %v", dbPath, err)
	}
	t.Cleanup(func() { db.Close() })

	if len(events) > 0 {
		if _, err := db.AddScrobbles(events); err != nil {
			t.Fatalf("AddScrobbles: %v", err)
		}
	}
	return db, dbPath
}

// januarySession is one evening of listening in January 2023.
func januarySession() []analysis.PlayEvent {
	base := time.Date(2023, 1, 15, 20, 0, 0, 0, time.UTC)
	return []analysis.PlayEvent{
		play("Test Artist", "Test Album", "One", base),
		play("Test Artist", "Test Album", "Two", base.Add(4*time.Minute)),
		play("Other Artist", "", "Three", base.Add(8*time.Minute)),
		play("Test Artist", "Test Album", "One", base.Add(12*time.Minute)),
		play("Other Artist", "", "Three", base.Add(16*time.Minute)),
	}
}
