// Package store defines the violation store: keyed abuse/ban records,
// namespaced by violation category.
//
// Records are keyed either by a user identifier (stable) or by a client
// network address (ephemeral). A record's absence is equivalent to "not
// banned", and deletion of an absent key is not an error. Expired records
// are treated as absent on read.
package store

import (
	"context"
	"errors"
	"time"
)

// Namespace identifies an independent violation category. Each namespace is
// its own keyspace; the same key may carry records in several namespaces.
type Namespace string

const (
	// NamespaceBans holds active ban entries. Presence of a record means
	// the subject is currently denied access.
	NamespaceBans Namespace = "bans"

	NamespaceConcurrent    Namespace = "concurrent_violations"
	NamespaceMessageLimit  Namespace = "message_limit_violations"
	NamespaceNonBrowser    Namespace = "non_browser_violations"
	NamespaceLogins        Namespace = "login_violations"
	NamespaceRegistrations Namespace = "registration_violations"
)

// Namespaces returns all known violation categories.
func Namespaces() []Namespace {
	return []Namespace{
		NamespaceBans,
		NamespaceConcurrent,
		NamespaceMessageLimit,
		NamespaceNonBrowser,
		NamespaceLogins,
		NamespaceRegistrations,
	}
}

// String returns the string representation of the namespace.
func (n Namespace) String() string {
	return string(n)
}

// IsValid checks whether the namespace is a known violation category.
func (n Namespace) IsValid() bool {
	for _, known := range Namespaces() {
		if n == known {
			return true
		}
	}
	return false
}

// ErrNotFound is returned by Get when no live record exists for the key.
var ErrNotFound = errors.New("violation record not found")

// Record is a single violation/ban entry.
type Record struct {
	Namespace Namespace `json:"namespace"`
	Key       string    `json:"key"` // user identifier or network address
	Count     int       `json:"count"`
	Reason    string    `json:"reason,omitempty"`
	Source    string    `json:"source,omitempty"` // e.g. "admin", "runtime"
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at,omitzero"` // zero = permanent
}

// Permanent reports whether the record never expires.
func (r Record) Permanent() bool {
	return r.ExpiresAt.IsZero()
}

// Expired reports whether the record has lapsed as of now.
func (r Record) Expired(now time.Time) bool {
	return !r.Permanent() && !r.ExpiresAt.After(now)
}

// ViolationStore is the keyed storage contract consumed by the
// administrative operations. Implementations must treat Delete of an
// absent key as success.
type ViolationStore interface {
	// Get returns the live record for (ns, key), or ErrNotFound when the
	// key is absent or the record has expired.
	Get(ctx context.Context, ns Namespace, key string) (*Record, error)

	// Put inserts or replaces the record for (rec.Namespace, rec.Key).
	Put(ctx context.Context, rec Record) error

	// Delete removes the record if present. Idempotent: deleting a
	// non-existent key returns nil.
	Delete(ctx context.Context, ns Namespace, key string) error

	// List returns a newest-first page of live records in ns along with the
	// total number of live records in that namespace.
	List(ctx context.Context, ns Namespace, offset, limit int) ([]Record, int, error)

	// PurgeExpired deletes records whose expiry is at or before now and
	// returns how many were removed.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
