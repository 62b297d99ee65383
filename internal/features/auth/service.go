// Package auth: service.go holds login with brute-force lockout, the seed
// administrator and account management.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/config"
	"busline.mx/erp/internal/db/postgres"
)

// GeneratedPasswordLength is the length of passwords created for new
// employee accounts.
const GeneratedPasswordLength = 8

// Service authenticates operators.
type Service struct {
	repo *Repository
	cfg  *config.Config
	now  func() time.Time
}

// NewService creates the auth service.
func NewService(repo *Repository, cfg *config.Config) *Service {
	return &Service{repo: repo, cfg: cfg, now: common.Clock(cfg.Location())}
}

// Login verifies credentials and opens a session. After LoginMaxAttempts
// failures inside LoginLockoutWindow the username is locked out.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	failures, err := s.repo.RecentFailures(ctx, username, s.now().Add(-s.cfg.LoginLockoutWindow))
	if err != nil {
		return nil, err
	}
	if failures >= s.cfg.LoginMaxAttempts {
		log.WithField("username", username).Warn("Login refused, account locked out")
		return nil, common.ErrTooManyAttempts
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, common.ErrUserNotFound) {
		return nil, err
	}
	match := user != nil && VerifyPassword(password, user.PasswordHash)

	if err := s.repo.LogAttempt(ctx, username, match); err != nil {
		log.WithError(err).Warn("Failed to record login attempt")
	}
	if !match {
		log.WithField("username", username).Info("Login failed")
		return nil, common.ErrWrongCredentials
	}

	log.WithFields(log.Fields{
		"user_id":    user.ID,
		"username":   user.Username,
		"department": user.Department,
	}).Info("Login")
	return &Session{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		Username:   user.Username,
		FullName:   common.FullName(user.FirstName, user.LastName),
		Role:       user.Role,
		Department: user.Department,
		ExpiresAt:  s.now().Add(s.cfg.SessionTTL),
	}, nil
}

// EnsureAdmin creates the configured administrator when absent.
func (s *Service) EnsureAdmin(ctx context.Context) error {
	_, err := s.repo.GetByUsername(ctx, s.cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrUserNotFound) {
		return err
	}
	u := &User{
		FirstName:    "Administrator",
		Username:     s.cfg.AdminUsername,
		PasswordHash: s.cfg.AdminPasswordHash,
		Role:         RoleAdmin,
		Department:   DeptAll,
	}
	if err := s.repo.Create(ctx, s.repo.db, u); err != nil {
		return err
	}
	log.WithField("username", u.Username).Info("Seed administrator created")
	return nil
}

// CreateHead adds a department head account. Only administrators may do it.
func (s *Service) CreateHead(ctx context.Context, sess *Session, req HeadRequest) (*User, error) {
	if !sess.IsAdmin() {
		return nil, common.ErrForbidden
	}
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	if _, ok := ParseDepartment(string(req.Department)); !ok {
		return nil, &common.ValidationError{Fields: []string{"department (oneof)"}}
	}
	if err := CheckNewPassword(req.Password, req.Password); err != nil {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := &User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		PasswordHash: hash,
		Role:         RoleHead,
		Department:   req.Department,
	}
	if err := s.repo.Create(ctx, s.repo.db, u); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"user_id":    u.ID,
		"department": u.Department,
		"by":         sess.Username,
	}).Info("Department head created")
	return u, nil
}

// CreateEmployeeAccount generates credentials for a new employee and stores
// the account through q, normally the hire transaction.
func (s *Service) CreateEmployeeAccount(ctx context.Context, q postgres.Querier, employeeID int64, first, last string, dept Department) (Credentials, error) {
	username, err := GenerateUsername(first, last, func(name string) (bool, error) {
		return s.repo.UsernameExists(ctx, q, name)
	})
	if err != nil {
		return Credentials{}, err
	}
	password, err := GeneratePassword(GeneratedPasswordLength)
	if err != nil {
		return Credentials{}, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return Credentials{}, err
	}

	u := &User{
		FirstName:    first,
		LastName:     last,
		Username:     username,
		PasswordHash: hash,
		Role:         RoleEmployee,
		Department:   dept,
		EmployeeID:   &employeeID,
	}
	if err := s.repo.Create(ctx, q, u); err != nil {
		return Credentials{}, err
	}
	return Credentials{Username: username, Password: password}, nil
}

// DeleteEmployeeAccount removes the account linked to an employee, if any.
func (s *Service) DeleteEmployeeAccount(ctx context.Context, q postgres.Querier, employeeID int64) error {
	_, err := s.repo.DeleteByEmployee(ctx, q, employeeID)
	return err
}

// ResetPassword sets a new password. Administrators may reset anyone;
// other users only themselves.
func (s *Service) ResetPassword(ctx context.Context, sess *Session, userID int64, password, confirm string) error {
	if !sess.IsAdmin() && sess.UserID != userID {
		return common.ErrForbidden
	}
	if err := CheckNewPassword(password, confirm); err != nil {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	log.WithFields(log.Fields{"user_id": userID, "by": sess.Username}).Info("Password reset")
	return nil
}

// Users lists every account. Administrators only.
func (s *Service) Users(ctx context.Context, sess *Session) ([]*User, error) {
	if !sess.IsAdmin() {
		return nil, common.ErrForbidden
	}
	return s.repo.List(ctx)
}

// GeneratePassword suggests a strong password for a reset.
func (s *Service) GeneratePassword() (string, error) {
	return GeneratePassword(10)
}
