package migration

// Create builds an empty database. A database holds one listener's history;
// User only tracks sync state.
const Create = `
CREATE TABLE IF NOT EXISTS User (
  name TEXT PRIMARY KEY,
  last_updated DATETIME
);

CREATE TABLE IF NOT EXISTS Scrobble (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  artist TEXT NOT NULL,
  album TEXT,
  track TEXT NOT NULL,
  timestamp INTEGER NOT NULL,
  source TEXT NOT NULL,
  source_id TEXT,
  UNIQUE(artist, track, timestamp, source)
);

CREATE INDEX IF NOT EXISTS idx_scrobble_timestamp ON Scrobble(timestamp);
CREATE INDEX IF NOT EXISTS idx_scrobble_artist ON Scrobble(artist);
`
