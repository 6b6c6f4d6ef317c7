package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"antaria-go/models"
)

// SnapshotMirror keeps a copy of the ledger snapshot in Postgres so a lost
// data file can be restored. The engine stays fully functional without it;
// when DATABASE_URL is unset nothing here runs.
type SnapshotMirror struct {
	pool *pgxpool.Pool
}

// NewSnapshotMirror connects to databaseURL and ensures the snapshot table
// exists. Returns (nil, nil) when databaseURL is empty.
func NewSnapshotMirror(ctx context.Context, databaseURL string) (*SnapshotMirror, error) {
	if databaseURL == "" {
		return nil, nil
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	config.MaxConns = 4
	config.MaxConnLifetime = 45 * time.Minute
	config.ConnConfig.RuntimeParams = map[string]string{
		"application_name": "antaria-ledger",
		"timezone":         "UTC",
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS casino_snapshots (
			id       INT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			data     JSONB NOT NULL,
			saved_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create snapshot table: %w", err)
	}

	log.Printf("[mirror] postgres snapshot mirror connected")
	return &SnapshotMirror{pool: pool}, nil
}

// SaveSnapshot upserts the single snapshot row.
func (m *SnapshotMirror) SaveSnapshot(snap *models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err = m.pool.Exec(ctx, `
		INSERT INTO casino_snapshots (id, data, saved_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET data = $1, saved_at = now()`, data)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the mirrored snapshot and when it was saved, or
// (nil, zero, nil) when no snapshot has been written yet.
func (m *SnapshotMirror) LoadSnapshot(ctx context.Context) (*models.Snapshot, time.Time, error) {
	var data []byte
	var savedAt time.Time
	err := m.pool.QueryRow(ctx,
		`SELECT data, saved_at FROM casino_snapshots WHERE id = 1`).Scan(&data, &savedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, savedAt, nil
}

// Close releases the connection pool.
func (m *SnapshotMirror) Close() {
	if m != nil && m.pool != nil {
		m.pool.Close()
	}
}
