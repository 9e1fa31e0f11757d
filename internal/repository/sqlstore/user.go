package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

// compile-time check that *UserDB implements repository.UserRepository
var _ repository.UserRepository = (*UserDB)(nil)

// UserDB handles all user-related database operations.
type UserDB struct {
	db *DB
}

// CreateUser inserts a user and sets u.ID from the generated key.
//
// UNIQUENESS IS THE DATABASE'S JOB:
// There is no "SELECT ... WHERE email = ?" before the insert. Two requests
// racing with the same email would both pass such a check. Instead the
// UNIQUE index on users.email rejects the second insert, and we translate
// the driver error into a Conflict.
//
// created_at is filled by the column default; callers re-read the row
// when they need it.
func (u *UserDB) CreateUser(ctx context.Context, user *model.User) error {
	err := u.db.conn.QueryRowContext(ctx,
		u.db.rebind(`INSERT INTO users (name, email) VALUES (?, ?) RETURNING id`),
		user.Name,
		user.Email,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("Email already exists")
		}
		return fmt.Errorf("sqlstore: creating user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by id.
// Returns apperror.ErrNotFound if no user exists with that id.
func (u *UserDB) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User

	err := u.db.conn.QueryRowContext(ctx,
		u.db.rebind(`SELECT id, name, email, created_at FROM users WHERE id = ?`),
		id,
	).Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("User")
		}
		return nil, fmt.Errorf("sqlstore: getting user %d: %w", id, err)
	}

	return &user, nil
}

// ListUsers returns one page of users in id order.
func (u *UserDB) ListUsers(ctx context.Context, opts repository.ListOptions) ([]model.User, error) {
	rows, err := u.db.conn.QueryContext(ctx,
		u.db.rebind(`SELECT id, name, email, created_at
		 FROM users
		 ORDER BY id
		 LIMIT ? OFFSET ?`),
		opts.Limit,
		opts.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0, opts.Limit)
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlstore: scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterating user rows: %w", err)
	}

	return users, nil
}

func (u *UserDB) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := u.db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlstore: counting users: %w", err)
	}
	return n, nil
}

// UpdateUser overwrites name and email in one statement.
// A taken email is a Conflict; zero affected rows means the user is gone.
func (u *UserDB) UpdateUser(ctx context.Context, user *model.User) error {
	result, err := u.db.conn.ExecContext(ctx,
		u.db.rebind(`UPDATE users SET name = ?, email = ? WHERE id = ?`),
		user.Name,
		user.Email,
		user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("Email already exists")
		}
		return fmt.Errorf("sqlstore: updating user %d: %w", user.ID, err)
	}

	return expectAffected(result, "User")
}

// DeleteUser removes a user. Their articles are left in place.
func (u *UserDB) DeleteUser(ctx context.Context, id int64) error {
	result, err := u.db.conn.ExecContext(ctx,
		u.db.rebind(`DELETE FROM users WHERE id = ?`),
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlstore: deleting user %d: %w", id, err)
	}

	return expectAffected(result, "User")
}

// expectAffected turns "0 rows affected" into NotFound(resource).
func expectAffected(result sql.Result, resource string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlstore: reading rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound(resource)
	}
	return nil
}
