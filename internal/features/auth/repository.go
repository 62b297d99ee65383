// Package auth: repository.go works with the users and login_attempts tables.
package auth

import (
	"context"
	"fmt"
	"time"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/db/postgres"
)

// Repository stores accounts and login attempts.
type Repository struct {
	db postgres.DB
}

// NewRepository creates the auth repository.
func NewRepository(db postgres.DB) *Repository {
	return &Repository{db: db}
}

const userColumns = `id, first_name, last_name, username, password_hash, role, department, employee_id, created_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*User, error) {
	var u User
	var role, dept string
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.PasswordHash,
		&role, &dept, &u.EmployeeID, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.Role, u.Department = Role(role), Department(dept)
	return &u, nil
}

// GetByUsername returns ErrUserNotFound when nobody has that username.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if postgres.IsNoRows(err) {
		return nil, common.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// UsernameExists is used while generating usernames inside a hire.
func (r *Repository) UsernameExists(ctx context.Context, q postgres.Querier, username string) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return exists, nil
}

// Create inserts u and fills its ID. A duplicate username returns ErrUsernameTaken.
func (r *Repository) Create(ctx context.Context, q postgres.Querier, u *User) error {
	err := q.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, username, password_hash, role, department, employee_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, u.FirstName, u.LastName, u.Username, u.PasswordHash, string(u.Role), string(u.Department), u.EmployeeID).Scan(&u.ID)
	if postgres.IsUniqueViolation(err) {
		return common.ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// DeleteByEmployee removes the account linked to an employee. Returns the
// number of removed rows.
func (r *Repository) DeleteByEmployee(ctx context.Context, q postgres.Querier, employeeID int64) (int64, error) {
	tag, err := q.Exec(ctx, `DELETE FROM users WHERE employee_id = $1`, employeeID)
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UpdatePassword replaces the hash of one user.
func (r *Repository) UpdatePassword(ctx context.Context, userID int64, hash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, userID, hash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrUserNotFound
	}
	return nil
}

// List returns every account ordered by department then username.
func (r *Repository) List(ctx context.Context) ([]*User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY department, username`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// LogAttempt records a login attempt.
func (r *Repository) LogAttempt(ctx context.Context, username string, success bool) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO login_attempts (username, success) VALUES ($1, $2)`, username, success)
	return err
}

// RecentFailures counts failed attempts for username since the given time.
// A successful login clears the count.
func (r *Repository) RecentFailures(ctx context.Context, username string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM login_attempts
		WHERE username = $1 AND success = FALSE AND attempted_at >= $2
		  AND attempted_at > COALESCE(
			(SELECT MAX(attempted_at) FROM login_attempts WHERE username = $1 AND success),
			'-infinity'::timestamptz)
	`, username, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count login attempts: %w", err)
	}
	return count, nil
}
