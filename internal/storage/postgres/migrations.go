package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS reservation_days (
    id BIGSERIAL PRIMARY KEY,
    group_id TEXT NOT NULL,
    name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT NOT NULL,
    date DATE NOT NULL UNIQUE
);

CREATE INDEX IF NOT EXISTS idx_reservation_days_group_id ON reservation_days(group_id);
`

func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
