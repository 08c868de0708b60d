package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/college-portal-api/internal/models"
)

// VisitorRepository persists visitor intake records in PostgreSQL.
type VisitorRepository struct {
	db *sqlx.DB
}

// NewVisitorRepository constructs the repository.
func NewVisitorRepository(db *sqlx.DB) *VisitorRepository {
	return &VisitorRepository{db: db}
}

// UpsertVisitor inserts or refreshes the visitor row keyed by device. An empty purpose or
// principal keeps the stored value, matching the Firestore merge.
func (r *VisitorRepository) UpsertVisitor(ctx context.Context, record models.VisitorRecord) error {
	const query = `INSERT INTO visitors (device_id, principal_id, name, phone, purpose, updated_at)
VALUES (:device_id, :principal_id, :name, :phone, :purpose, :updated_at)
ON CONFLICT (device_id)
DO UPDATE SET principal_id = COALESCE(NULLIF(EXCLUDED.principal_id, ''), visitors.principal_id),
              name = EXCLUDED.name, phone = EXCLUDED.phone,
              purpose = COALESCE(NULLIF(EXCLUDED.purpose, ''), visitors.purpose),
              updated_at = EXCLUDED.updated_at`
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now().UTC()
	}
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("upsert visitor: %w", err)
	}
	return nil
}

// EnsureSchema creates the visitors table when it is missing.
func (r *VisitorRepository) EnsureSchema(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS visitors (
    device_id    TEXT PRIMARY KEY,
    principal_id TEXT NOT NULL DEFAULT '',
    name         TEXT NOT NULL,
    phone        TEXT NOT NULL,
    purpose      TEXT NOT NULL DEFAULT '',
    updated_at   TIMESTAMPTZ NOT NULL
)`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure visitors schema: %w", err)
	}
	return nil
}

// Ping checks the database connection.
func (r *VisitorRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
