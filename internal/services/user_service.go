package services

import (
	"errors"
	"fmt"

	"github.com/taskbridge/taskbridge-api/internal/logging"
	"github.com/taskbridge/taskbridge-api/internal/models"
	"github.com/taskbridge/taskbridge-api/internal/repository"
	"gorm.io/gorm"
)

// UserService covers directory reads and the admin-only mutations, each of
// which leaves an audit trail.
type UserService struct {
	userRepo  repository.UserRepository
	auditRepo repository.AuditLogRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, auditRepo repository.AuditLogRepository) *UserService {
	return &UserService{userRepo: userRepo, auditRepo: auditRepo}
}

// List returns users, optionally filtered to one role.
func (s *UserService) List(role *models.Role) ([]models.User, error) {
	users, err := s.userRepo.List(role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Delete removes a user. Admin accounts cannot be deleted.
func (s *UserService) Delete(performedBy string, id uint64) error {
	user, err := s.loadUser(id)
	if err != nil {
		return err
	}
	if user.Role == models.RoleAdmin {
		return ErrNotPermitted
	}

	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.audit(models.AuditDeleteUser, performedBy, fmt.Sprintf("Deleted user %s", user.Email))
	return nil
}

// ToggleSuspension flips the suspended flag and audits the change.
func (s *UserService) ToggleSuspension(performedBy string, id uint64) (*models.User, error) {
	user, err := s.loadUser(id)
	if err != nil {
		return nil, err
	}

	user.Suspended = !user.Suspended
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	action := models.AuditActivateUser
	verb := "Activated"
	if user.Suspended {
		action = models.AuditSuspendUser
		verb = "Suspended"
	}
	s.audit(action, performedBy, fmt.Sprintf("%s user %s", verb, user.Email))

	return user, nil
}

// ChangeRole sets a user's role and audits the change.
func (s *UserService) ChangeRole(performedBy string, id uint64, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, validationErrorf("invalid role %q", role)
	}

	user, err := s.loadUser(id)
	if err != nil {
		return nil, err
	}

	oldRole := user.Role
	user.Role = role
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.audit(models.AuditUpdateRole, performedBy,
		fmt.Sprintf("Updated user %s from %s to %s", user.Email, oldRole, role))

	return user, nil
}

// SetAvailability updates the actor's own availability flag and free-text
// status. Meaningful for managers; harmless for everyone else.
func (s *UserService) SetAvailability(actorID uint64, available *bool, status *string) (*models.User, error) {
	user, err := s.loadUser(actorID)
	if err != nil {
		return nil, err
	}

	if available != nil {
		user.Available = *available
	}
	if status != nil {
		user.AvailabilityStatus = *status
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update availability: %w", err)
	}

	return user, nil
}

func (s *UserService) loadUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *UserService) audit(action, performedBy, details string) {
	entry := &models.AuditLogEntry{
		Action:      action,
		PerformedBy: performedBy,
		Details:     details,
	}
	if err := s.auditRepo.Append(entry); err != nil {
		logging.Logger.WithError(err).WithField("action", action).Error("audit append failed")
	}
}
