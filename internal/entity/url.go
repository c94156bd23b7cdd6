// Package entity defines the entities and errors used in the application.
// It includes the URL struct, which represents a shortened URL together with
// its administrative secret and lifecycle state, and the error taxonomy shared
// by the use case and adapter layers.
package entity

import (
	"errors"
	"time"
)

var (
	// ErrKeyExists is returned when a generated key or secret key collides with an existing record.
	ErrKeyExists = errors.New("key exists")
	// ErrURLNotFound is returned when no active URL matches the requested key or secret key.
	ErrURLNotFound = errors.New("url not found")
	// ErrInvalidURL is returned when the target URL is not a valid URL.
	ErrInvalidURL = errors.New("invalid url")
	// ErrMaxRetriesExceeded is returned when no unique key could be generated within the retry budget.
	ErrMaxRetriesExceeded = errors.New("maximum retries exceeded for generating key")
	// ErrStorageUnavailable is returned when the persistence layer fails.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// State is the lifecycle state of a shortened URL.
type State int

const (
	// StateActive means the URL can be resolved and administered.
	StateActive State = iota
	// StateDeactivated means the URL was soft-deleted and is hidden from every lookup.
	StateDeactivated
)

// StateFromActive maps the persisted active flag to a State.
func StateFromActive(active bool) State {
	if active {
		return StateActive
	}
	return StateDeactivated
}

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateDeactivated:
		return "deactivated"
	default:
		return "unknown"
	}
}

// URL represents a shortened URL.
type URL struct {
	ID        int64     // ID is the unique identifier of the URL in the database.
	TargetURL string    // TargetURL is the destination the key redirects to.
	Key       string    // Key is the public short identifier.
	SecretKey string    // SecretKey grants administrative access to the URL.
	State     State     // State is the lifecycle state of the URL.
	Clicks    int64     // Clicks is the number of successful redirects.
	CreatedAt time.Time // CreatedAt is the timestamp when the URL was created.
	UpdatedAt time.Time // UpdatedAt is the timestamp when the URL was last updated.
}

// IsActive reports whether the URL is still resolvable.
func (u *URL) IsActive() bool {
	return u.State == StateActive
}
