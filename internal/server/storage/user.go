package storage

import (
	"context"

	"github.com/iudanet/learnhub/internal/models"
	"github.com/iudanet/learnhub/internal/server/patch"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns ErrAlreadyExists (column email or username) on duplicates
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves user by ID
	// Returns ErrNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// GetUserByEmail retrieves user by lowercase email
	// Returns ErrNotFound if user doesn't exist
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// CreateFirstUser creates the user only if no users exist yet, atomically
	// Returns ErrNotFirstUser otherwise
	CreateFirstUser(ctx context.Context, user *models.User) error

	// ListUsers returns all users ordered by registration time
	ListUsers(ctx context.Context) ([]*models.User, error)

	// UpdateUser applies a partial update and returns the updated row
	// Returns patch.ErrNoChanges for an empty update, ErrNotFound if user doesn't exist
	UpdateUser(ctx context.Context, userID string, upd *patch.Update) (*models.User, error)

	// SetUserPhoto stores the avatar URL
	SetUserPhoto(ctx context.Context, userID, photoURL string) (*models.User, error)

	// DeleteUser deletes user by ID together with enrollments, progress, attempts and skills
	// Returns ErrNotFound if user doesn't exist
	DeleteUser(ctx context.Context, userID string) error
}
