package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iudanet/learnhub/internal/models"
	"github.com/iudanet/learnhub/internal/server/patch"
	"github.com/iudanet/learnhub/internal/server/storage"
)

const userColumns = `user_id, email, username, hashed_pass, fullname, xp, rank, streak, personal_photo, role, created_at`

func scanUser(row scanner) (*models.User, error) {
	user := &models.User{}
	var photo sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.HashedPass,
		&user.Fullname,
		&user.XP,
		&user.Rank,
		&user.Streak,
		&photo,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.PersonalPhoto = nullString(photo)
	return user, nil
}

// CreateUser creates a new user in the storage
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.insertUser(ctx, s.db, user)
}

// CreateFirstUser creates user only while the users table is empty
func (s *Store) CreateFirstUser(ctx context.Context, user *models.User) error {
	return s.withTx(ctx, func(ctx context.Context, tx execer) error {
		// SQLite сериализует запись одним соединением; PostgreSQL держит блокировку до commit
		if s.dialect == Postgres {
			if _, err := tx.ExecContext(ctx, `LOCK TABLE users IN SHARE ROW EXCLUSIVE MODE`); err != nil {
				return fmt.Errorf("failed to lock users: %w", err)
			}
		}

		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users)`).Scan(&exists); err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		if exists {
			return storage.ErrNotFirstUser
		}

		return s.insertUser(ctx, tx, user)
	})
}

func (s *Store) insertUser(ctx context.Context, db execer, user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.ExecContext(ctx, s.rebind(query),
		user.ID,
		user.Email,
		user.Username,
		user.HashedPass,
		user.Fullname,
		user.XP,
		user.Rank,
		user.Streak,
		stringOrNil(user.PersonalPhoto),
		user.Role,
		user.CreatedAt,
	)
	if err != nil {
		return s.wrap(err, "failed to insert user")
	}

	return nil
}

// GetUserByID retrieves user by ID
func (s *Store) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = ?`

	user, err := scanUser(s.db.QueryRowContext(ctx, s.rebind(query), userID))
	if err != nil {
		return nil, s.wrap(err, "failed to get user")
	}

	return user, nil
}

// GetUserByEmail retrieves user by email
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`

	user, err := scanUser(s.db.QueryRowContext(ctx, s.rebind(query), email))
	if err != nil {
		return nil, s.wrap(err, "failed to get user")
	}

	return user, nil
}

// ListUsers returns all users
func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at, user_id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// UpdateUser applies a partial update
func (s *Store) UpdateUser(ctx context.Context, userID string, upd *patch.Update) (*models.User, error) {
	query, args, err := s.updateQuery("users", "user_id", userColumns, upd, userID)
	if err != nil {
		return nil, err
	}

	user, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, s.wrap(err, "failed to update user")
	}

	return user, nil
}

// SetUserPhoto stores the avatar URL
func (s *Store) SetUserPhoto(ctx context.Context, userID, photoURL string) (*models.User, error) {
	query := `UPDATE users SET personal_photo = ? WHERE user_id = ? RETURNING ` + userColumns

	user, err := scanUser(s.db.QueryRowContext(ctx, s.rebind(query), photoURL, userID))
	if err != nil {
		return nil, s.wrap(err, "failed to set user photo")
	}

	return user, nil
}

// DeleteUser deletes user by ID
func (s *Store) DeleteUser(ctx context.Context, userID string) error {
	return s.execAffectingOne(ctx, `DELETE FROM users WHERE user_id = ?`, storage.ErrNotFound, userID)
}
