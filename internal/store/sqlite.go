package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore returns a ViolationStore backed by the violations table.
func NewSQLiteStore(db *sql.DB) ViolationStore {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) Get(ctx context.Context, ns Namespace, key string) (*Record, error) {
	query := `
		SELECT namespace, key, count, reason, source, created_at, expires_at
		FROM violations WHERE namespace = ? AND key = ?`

	var rec Record
	var createdAt, expiresAt int64
	err := s.db.QueryRowContext(ctx, query, string(ns), key).Scan(
		&rec.Namespace, &rec.Key, &rec.Count, &rec.Reason, &rec.Source,
		&createdAt, &expiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get violation record: %w", err)
	}

	rec.CreatedAt = time.Unix(createdAt, 0).UTC()
	if expiresAt != 0 {
		rec.ExpiresAt = time.Unix(expiresAt, 0).UTC()
	}

	// Lapsed records are indistinguishable from absent ones to callers.
	if rec.Expired(time.Now()) {
		return nil, ErrNotFound
	}

	return &rec, nil
}

func (s *sqliteStore) Put(ctx context.Context, rec Record) error {
	if rec.Namespace == "" || rec.Key == "" {
		return fmt.Errorf("violation record requires a namespace and a key")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	var expiresAt int64
	if !rec.ExpiresAt.IsZero() {
		expiresAt = rec.ExpiresAt.Unix()
	}

	query := `
		INSERT INTO violations (namespace, key, count, reason, source, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (namespace, key) DO UPDATE SET
			count = excluded.count,
			reason = excluded.reason,
			source = excluded.source,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at`

	_, err := s.db.ExecContext(ctx, query,
		string(rec.Namespace), rec.Key, rec.Count, rec.Reason, rec.Source,
		rec.CreatedAt.Unix(), expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to put violation record: %w", err)
	}

	return nil
}

func (s *sqliteStore) Delete(ctx context.Context, ns Namespace, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM violations WHERE namespace = ? AND key = ?`, string(ns), key)
	if err != nil {
		return fmt.Errorf("failed to delete violation record: %w", err)
	}

	// Zero rows affected is success: deleting an absent key is a no-op.
	return nil
}

func (s *sqliteStore) List(ctx context.Context, ns Namespace, offset, limit int) ([]Record, int, error) {
	now := time.Now().Unix()

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM violations
		 WHERE namespace = ? AND (expires_at = 0 OR expires_at > ?)`,
		string(ns), now,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count violation records: %w", err)
	}

	query := `
		SELECT namespace, key, count, reason, source, created_at, expires_at
		FROM violations
		WHERE namespace = ? AND (expires_at = 0 OR expires_at > ?)
		ORDER BY created_at DESC, key
		LIMIT ? OFFSET ?`

	rows, err := s.db.QueryContext(ctx, query, string(ns), now, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list violation records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var createdAt, expiresAt int64
		if err := rows.Scan(
			&rec.Namespace, &rec.Key, &rec.Count, &rec.Reason, &rec.Source,
			&createdAt, &expiresAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan violation row: %w", err)
		}
		rec.CreatedAt = time.Unix(createdAt, 0).UTC()
		if expiresAt != 0 {
			rec.ExpiresAt = time.Unix(expiresAt, 0).UTC()
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating violation rows: %w", err)
	}

	return records, total, nil
}

func (s *sqliteStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM violations WHERE expires_at != 0 AND expires_at <= ?`, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired records: %w", err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return purged, nil
}
