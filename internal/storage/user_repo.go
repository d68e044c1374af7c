// internal/storage/user_repo.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/modesq/dynamic-form-fullstack-app/internal/core"
	"github.com/modesq/dynamic-form-fullstack-app/internal/domain"
)

const userColumns = `id, full_name, email, gender, love_react_flag, created_at, updated_at`

// CreateUser stores a submission. A duplicate email yields ErrEmailExists.
func CreateUser(ctx context.Context, db *sql.DB, user *domain.User) (*domain.User, error) {
	sqlStatement := `INSERT INTO users (full_name, email, gender, love_react_flag) VALUES (?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, sqlStatement, user.FullName, user.Email, user.Gender, user.LoveReactFlag)
	if err != nil {
		if cerr := userConstraintError(err); cerr != nil {
			return nil, cerr
		}
		customLog.Warnf("Storage: Failed to insert user %s: %v", user.Email, err)
		return nil, fmt.Errorf("database error during user creation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		customLog.Warnf("Storage: Failed to get last insert ID for user %s: %v", user.Email, err)
		return nil, fmt.Errorf("failed to retrieve user ID after creation: %w", err)
	}
	return GetUser(ctx, db, id)
}

// ListUsers returns submissions ordered by creation time, newest first
// unless opts says otherwise.
func ListUsers(ctx context.Context, db *sql.DB, opts *core.ListQueryOptions) ([]domain.User, error) {
	if opts == nil {
		opts = &core.ListQueryOptions{Limit: core.DefaultLimit, SortOrder: core.DefaultOrder}
	}
	order := "DESC"
	if opts.SortOrder == "asc" {
		order = "ASC"
	}

	// nolint:gosec // order is one of two fixed keywords
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at %s, id %s LIMIT ? OFFSET ?`, userColumns, order, order)
	rows, err := db.QueryContext(ctx, query, opts.Limit, opts.Offset)
	if err != nil {
		customLog.Warnf("Storage: Error listing users: %v", err)
		return nil, fmt.Errorf("database error listing users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			customLog.Warnf("Storage: Error scanning user row: %v", err)
			return nil, fmt.Errorf("failed processing user list: %w", err)
		}
		users = append(users, *user)
	}
	if err = rows.Err(); err != nil {
		customLog.Warnf("Storage: Error iterating user rows: %v", err)
		return nil, fmt.Errorf("failed reading user list: %w", err)
	}
	return users, nil
}

// GetUser loads one submission.
func GetUser(ctx context.Context, db *sql.DB, id int64) (*domain.User, error) {
	row := db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		customLog.Warnf("Storage: Failed to find user %d: %v", id, err)
		return nil, fmt.Errorf("database error finding user: %w", err)
	}
	return user, nil
}

// UpdateUser overwrites the mutable columns of user.ID.
func UpdateUser(ctx context.Context, db *sql.DB, user *domain.User) (*domain.User, error) {
	sqlStatement := `UPDATE users
		SET full_name = ?, email = ?, gender = ?, love_react_flag = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`
	result, err := db.ExecContext(ctx, sqlStatement, user.FullName, user.Email, user.Gender, user.LoveReactFlag, user.ID)
	if err != nil {
		if cerr := userConstraintError(err); cerr != nil {
			return nil, cerr
		}
		customLog.Warnf("Storage: Failed to update user %d: %v", user.ID, err)
		return nil, fmt.Errorf("database error during user update: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil, ErrUserNotFound
	}
	return GetUser(ctx, db, user.ID)
}

// DeleteUser removes a submission.
func DeleteUser(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		customLog.Warnf("Storage: Failed to delete user %d: %v", id, err)
		return fmt.Errorf("database error deleting user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to confirm user deletion: %w", err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// userConstraintError maps a unique violation on users.email to
// ErrEmailExists and any other constraint failure to its ConstraintError.
func userConstraintError(err error) error {
	ce := asConstraintError(err)
	if ce == nil {
		return nil
	}
	if ce.On(ConstraintUnique, "users", "email") {
		return ErrEmailExists
	}
	customLog.Warnf("Storage: Constraint violation on users: %v", ce)
	return ce
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.Gender, &user.LoveReactFlag, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
