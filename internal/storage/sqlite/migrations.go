package sqlite

import "database/sql"

// schema sets up the day-slot table. It runs on startup and is safe to
// re-run. The UNIQUE constraint on date is what arbitrates concurrent
// claims for the same day.
const schema = `
CREATE TABLE IF NOT EXISTS reservation_days (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    group_id TEXT NOT NULL,
    name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT NOT NULL,
    date TEXT NOT NULL UNIQUE
);

CREATE INDEX IF NOT EXISTS idx_reservation_days_group_id ON reservation_days(group_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
