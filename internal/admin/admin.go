// Package admin implements the single-shot administrative operations over
// the user directory and the violation store.
//
// Every operation is sequential and terminal on error: validate input,
// resolve the user, touch the store once. Nothing is retried and there is
// no partial-success state. Dependencies are injected through NewService;
// the package holds no ambient store handles.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"banctl/internal/directory"
	"banctl/internal/logging"
	"banctl/internal/store"
)

var (
	// ErrInvalidEmail marks malformed input, detected before any I/O.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrUserNotFound marks an email with no directory match.
	ErrUserNotFound = errors.New("user not found")
)

// StoreError wraps a violation store failure with the operation that hit it.
// Store failures are fatal to the run; no retry is attempted.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("violation store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Service bundles the collaborators the administrative operations need.
type Service struct {
	users  directory.UserDirectory
	bans   store.ViolationStore
	logger *logging.AppLogger
}

// NewService creates an administrative service over the given directory and
// violation store.
func NewService(users directory.UserDirectory, bans store.ViolationStore, logger *logging.AppLogger) *Service {
	return &Service{
		users:  users,
		bans:   bans,
		logger: logger,
	}
}

// UnbanResult reports which user was resolved and which store entry was
// cleared.
type UnbanResult struct {
	User       directory.User  `json:"user"`
	Namespace  store.Namespace `json:"namespace"`
	ClearedKey string          `json:"cleared_key"`
}

// BanStatus reports whether a user is currently banned and, if so, the
// active record.
type BanStatus struct {
	User   directory.User `json:"user"`
	Banned bool           `json:"banned"`
	Record *store.Record  `json:"record,omitempty"`
}

// BanPage is one page of ban records plus pagination metadata.
type BanPage struct {
	Records    []store.Record `json:"records"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalItems int            `json:"total_items"`
	TotalPages int            `json:"total_pages"`
}

// validateEmail rejects input that cannot be an email address. The check is
// deliberately minimal: anything without an @ fails before any I/O happens.
func validateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: %q contains no '@'", ErrInvalidEmail, email)
	}
	return nil
}

// resolve maps an email to its directory entry, translating a directory
// miss into ErrUserNotFound.
func (s *Service) resolve(ctx context.Context, email string) (*directory.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, directory.ErrNotFound) {
		return nil, fmt.Errorf("%w: no account with email %q", ErrUserNotFound, email)
	}
	if err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	return user, nil
}

// Unban resolves the email to a user and removes that user's entry from the
// bans namespace. The delete is unconditional and idempotent: it succeeds
// whether or not a ban entry exists.
//
// Only the identifier-keyed entry is removed. Ban entries keyed by network
// address cannot be cleared here because the tool has no record of the
// user's historical addresses; those entries lapse on their own expiry.
func (s *Service) Unban(ctx context.Context, email string) (*UnbanResult, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	user, err := s.resolve(ctx, email)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Clearing ban entry", "user_id", user.ID, "email", user.Email)

	if err := s.bans.Delete(ctx, store.NamespaceBans, user.ID); err != nil {
		return nil, &StoreError{Op: "delete", Err: err}
	}

	return &UnbanResult{
		User:       *user,
		Namespace:  store.NamespaceBans,
		ClearedKey: user.ID,
	}, nil
}

// Ban resolves the email to a user and writes a ban record keyed by the
// user identifier. A zero duration makes the ban permanent.
func (s *Service) Ban(ctx context.Context, email string, duration time.Duration, reason string) (*store.Record, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	user, err := s.resolve(ctx, email)
	if err != nil {
		return nil, err
	}

	rec := store.Record{
		Namespace: store.NamespaceBans,
		Key:       user.ID,
		Count:     1,
		Reason:    reason,
		Source:    "admin",
		CreatedAt: time.Now(),
	}
	if duration > 0 {
		rec.ExpiresAt = rec.CreatedAt.Add(duration)
	}

	s.logger.Debug("Writing ban entry",
		"user_id", user.ID,
		"email", user.Email,
		"permanent", rec.Permanent(),
	)

	if err := s.bans.Put(ctx, rec); err != nil {
		return nil, &StoreError{Op: "put", Err: err}
	}

	return &rec, nil
}

// Status resolves the email to a user and reports the live ban record, if
// any. Absence of a record means the user is not banned.
func (s *Service) Status(ctx context.Context, email string) (*BanStatus, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	user, err := s.resolve(ctx, email)
	if err != nil {
		return nil, err
	}

	rec, err := s.bans.Get(ctx, store.NamespaceBans, user.ID)
	if errors.Is(err, store.ErrNotFound) {
		return &BanStatus{User: *user, Banned: false}, nil
	}
	if err != nil {
		return nil, &StoreError{Op: "get", Err: err}
	}

	return &BanStatus{User: *user, Banned: true, Record: rec}, nil
}

// ListBans returns one page of live records in the given namespace. Pages
// are 1-based; page and pageSize are clamped to sane minimums.
func (s *Service) ListBans(ctx context.Context, ns store.Namespace, page, pageSize int) (*BanPage, error) {
	if !ns.IsValid() {
		return nil, fmt.Errorf("unknown violation namespace %q", ns)
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 100
	}

	records, total, err := s.bans.List(ctx, ns, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}

	return &BanPage{
		Records:    records,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

// Purge removes expired records across all namespaces.
func (s *Service) Purge(ctx context.Context) (int64, error) {
	purged, err := s.bans.PurgeExpired(ctx, time.Now())
	if err != nil {
		return 0, &StoreError{Op: "purge", Err: err}
	}
	return purged, nil
}

// CreateUser seeds the directory with a new user. Email validation matches
// the other operations; the caller supplies the identifier.
func (s *Service) CreateUser(ctx context.Context, id, email, username string) (*directory.User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("user id cannot be empty")
	}

	user := &directory.User{
		ID:       id,
		Email:    email,
		Username: username,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
