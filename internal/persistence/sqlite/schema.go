package sqlite

// seq provides the insertion order; listings read it descending so the most
// recently inserted record comes first.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS events (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		id         TEXT    NOT NULL UNIQUE,
		title      TEXT    NOT NULL,
		event_date TEXT    NOT NULL,
		event_time TEXT    NOT NULL,
		category   TEXT    NOT NULL,
		location   TEXT    NOT NULL,
		image      TEXT    NOT NULL,
		attendance INTEGER NOT NULL CHECK (attendance >= 0),
		rating     REAL    CHECK (rating IS NULL OR (rating >= 0 AND rating <= 5)),
		created_at TEXT    NOT NULL,
		updated_at TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_category ON events (category)`,
}
