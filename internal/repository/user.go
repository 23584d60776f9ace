package repository

import (
	"context"
	"errors"

	"user-account-service/internal/models"
)

// ErrNotFound is returned when an update or delete target does not
// exist. Lookups report absence as (nil, nil) instead.
var ErrNotFound = errors.New("record not found")

// UserRepository is the storage seam for user and role records. All
// lookups that return a user preload its roles and their permissions.
type UserRepository interface {
	// FindByID returns the user with the given id, or (nil, nil) when
	// no row matches.
	FindByID(ctx context.Context, id uint) (*models.User, error)
	// FindByEmail returns the user with the exact email, or (nil, nil)
	// when no row matches.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// FindPage returns a slice of users with the password column
	// excluded at the query level.
	FindPage(ctx context.Context, offset, limit int) ([]models.User, error)
	// FindAll returns every user, password excluded, ordered by id.
	FindAll(ctx context.Context) ([]models.User, error)
	// Count returns the total number of users.
	Count(ctx context.Context) (int64, error)
	// Create inserts a new user row.
	Create(ctx context.Context, u *models.User) error
	// UpdateWithRoles updates the user's scalar fields and replaces its
	// role assignments with roleIDs inside a single transaction.
	// Returns ErrNotFound when the base update affects no row.
	UpdateWithRoles(ctx context.Context, u *models.User, roleIDs []uint) error
	// Delete removes the user row by id.
	Delete(ctx context.Context, id uint) error
	// ListRoles returns all roles with their permissions.
	ListRoles(ctx context.Context) ([]models.Role, error)
}
