package postgres

import (
	"catalogconsole/domain"
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS catalog_activity (
	id          TEXT PRIMARY KEY,
	event       TEXT NOT NULL,
	resource_id TEXT NOT NULL DEFAULT '',
	summary     TEXT NOT NULL DEFAULT '',
	actor       TEXT NOT NULL DEFAULT '',
	trace_id    TEXT NOT NULL DEFAULT '',
	occurred_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS catalog_activity_occurred_at_idx ON catalog_activity (occurred_at DESC);
`

type PgRepository struct {
	db *sqlx.DB
}

func NewPgRepository(host, database, user, password, port, sslmode string) (*PgRepository, error) {
	if sslmode == "" {
		sslmode = "disable"
	}

	db, err := sqlx.Connect("postgres", fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode,
	))
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	// The console writes one row per catalog change; a small pool is plenty.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return &PgRepository{db: db}, nil
}

// NewPgRepositoryFromDB wraps an existing connection.
func NewPgRepositoryFromDB(db *sqlx.DB) *PgRepository {
	return &PgRepository{db: db}
}

func (r *PgRepository) Close() error {
	return r.db.Close()
}

func (r *PgRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// GetPoolStats returns current connection pool statistics
func (r *PgRepository) GetPoolStats() map[string]interface{} {
	stats := r.db.Stats()
	return map[string]interface{}{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}
}

// SaveActivity inserts the activity once; a redelivered event with the same id is a no-op.
func (r *PgRepository) SaveActivity(ctx context.Context, activity domain.Activity) error {
	query := `
		INSERT INTO catalog_activity (
			id, event, resource_id, summary, actor, trace_id, occurred_at
		) VALUES (
			:id, :event, :resource_id, :summary, :actor, :trace_id, :occurred_at
		) ON CONFLICT (id) DO NOTHING`

	_, err := r.db.NamedExecContext(ctx, query, activity)
	return err
}

func (r *PgRepository) GetActivities(ctx context.Context, limit, offset int) ([]domain.Activity, error) {
	activities := make([]domain.Activity, 0)
	query := `SELECT id, event, resource_id, summary, actor, trace_id, occurred_at
		FROM catalog_activity ORDER BY occurred_at DESC LIMIT $1 OFFSET $2`

	err := r.db.SelectContext(ctx, &activities, query, limit, offset)
	if err != nil {
		return nil, err
	}

	return activities, nil
}

func (r *PgRepository) CountActivities(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM catalog_activity`

	err := r.db.GetContext(ctx, &count, query)
	if err != nil {
		return 0, err
	}

	return count, nil
}
