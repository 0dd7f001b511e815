package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for account persistence
type UserRepository interface {
	// Create creates a new account
	Create(ctx context.Context, user *User) error

	// Update updates an existing account
	Update(ctx context.Context, user *User) error

	// FindByID finds an account by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername finds an account by username
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByEmail finds an account by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByUsername checks if a username already exists
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail checks if an email already exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Count returns the total number of accounts
	Count(ctx context.Context) (int64, error)
}
