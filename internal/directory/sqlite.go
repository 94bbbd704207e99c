package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type sqliteDirectory struct {
	db *sql.DB
}

// NewSQLiteDirectory returns a UserDirectory backed by the users table.
func NewSQLiteDirectory(db *sql.DB) UserDirectory {
	return &sqliteDirectory{db: db}
}

func (d *sqliteDirectory) FindByEmail(ctx context.Context, email string) (*User, error) {
	// BINARY collation keeps the match case-sensitive; oldest row is the
	// first match.
	query := `
		SELECT id, email, username, created_at
		FROM users WHERE email = ?
		ORDER BY created_at, id
		LIMIT 1`

	user := &User{}
	var createdAt int64
	err := d.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Username, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	user.CreatedAt = time.Unix(createdAt, 0).UTC()
	return user, nil
}

func (d *sqliteDirectory) Create(ctx context.Context, user *User) error {
	if user.ID == "" || user.Email == "" {
		return fmt.Errorf("user requires an id and an email")
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	_, err := d.db.ExecContext(ctx,
		`INSERT INTO users (id, email, username, created_at) VALUES (?, ?, ?, ?)`,
		user.ID, user.Email, user.Username, user.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}
