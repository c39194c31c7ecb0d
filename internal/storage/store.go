// Package storage provides abstractions for persistent group storage.
package storage

import (
	"context"
	"errors"

	"github.com/DjangoClawd/superbowl-boxes/internal/models"
)

// ErrNotFound is returned when no group matches the given id or invite code.
// Callers branch on it with errors.Is rather than parsing messages.
var ErrNotFound = errors.New("group not found")

// Store defines the persistence operations the pool engine depends on.
// Each call is atomic on its own; the engine performs read-modify-write
// cycles on whole group records with no optimistic concurrency control, so
// concurrent writers to the same group are last-write-wins.
type Store interface {
	// CreateGroup persists a new group. Missing ID and CreatedAt fields are
	// populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by id, fully hydrated (squares, number
	// assignments, quarter results). Returns ErrNotFound if absent.
	GetGroup(ctx context.Context, id string) (*models.Group, error)

	// GetGroupByInviteCode retrieves a private group by its invite code.
	// Matching is case-insensitive. Returns ErrNotFound if absent.
	GetGroupByInviteCode(ctx context.Context, code string) (*models.Group, error)

	// ListPublicGroups returns public groups that are not yet completed,
	// newest first.
	ListPublicGroups(ctx context.Context) ([]*models.Group, error)

	// PutGroup replaces the stored record for group.ID with the given
	// snapshot. Returns ErrNotFound if the group was never created.
	PutGroup(ctx context.Context, group *models.Group) error

	// DeleteGroup removes a group and everything attached to it, reporting
	// whether a record existed to remove.
	DeleteGroup(ctx context.Context, id string) (bool, error)

	// Close releases any resources held by the store.
	Close() error
}
