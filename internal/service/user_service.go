package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lianruiying/Language-Tutor/internal/apperrors"
	"github.com/lianruiying/Language-Tutor/internal/auth"
	"github.com/lianruiying/Language-Tutor/internal/models"
	"github.com/lianruiying/Language-Tutor/internal/storage"
	"github.com/lianruiying/Language-Tutor/internal/validation"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

type UserService struct {
	store *storage.Store
	log   *logrus.Logger
}

func NewUserService(store *storage.Store, log *logrus.Logger) *UserService {
	return &UserService{store: store, log: log}
}

// Create registers a new active account.
func (s *UserService) Create(ctx context.Context, in models.UserCreate) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	if err := s.checkUsernameFree(ctx, s.store, in.Username, 0); err != nil {
		return nil, err
	}
	if err := s.checkEmailFree(ctx, s.store, in.Email, 0); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &models.User{
		Username:       in.Username,
		Email:          in.Email,
		HashedPassword: hash,
		IsActive:       true,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			// lost a race with a concurrent registration
			return nil, s.duplicateError(ctx, s.store, in.Username, 0)
		}
		s.log.WithError(err).Error("create user failed")
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "Failed to create user, please try again later")
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user created")
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.lookup(s.store.GetUserByID(ctx, id))
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.lookup(s.store.GetUserByUsername(ctx, username))
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.lookup(s.store.GetUserByEmail(ctx, email))
}

func (s *UserService) lookup(u *models.User, err error) (*models.User, error) {
	if err == nil {
		return u, nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	return nil, apperrors.Internal(err)
}

// Authenticate checks a username/password pair. Inactive accounts are refused
// even when the password matches.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.ErrIncorrectCredentials
		}
		return nil, apperrors.Internal(err)
	}
	if !auth.VerifyPassword(password, user.HashedPassword) {
		s.log.WithField("user_id", user.ID).Info("login rejected: wrong password")
		return nil, apperrors.ErrIncorrectCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrInactiveUser
	}
	return user, nil
}

// Update applies a partial update to user and returns the stored result.
// user itself is only modified on success.
func (s *UserService) Update(ctx context.Context, user *models.User, in models.UserUpdate) (*models.User, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	updated := *user
	if err := s.applyIdentity(ctx, s.store, &updated, in.Username, in.Email); err != nil {
		return nil, err
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		updated.HashedPassword = hash
	}
	if in.Avatar != nil {
		updated.Avatar = strings.TrimSpace(*in.Avatar)
	}
	if in.IsActive != nil {
		updated.IsActive = *in.IsActive
	}

	if err := s.store.SaveUser(ctx, &updated); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, s.duplicateError(ctx, s.store, updated.Username, updated.ID)
		}
		return nil, apperrors.Internal(err)
	}
	*user = updated
	return user, nil
}

// List pages through all users ordered by id. limit 0 means the default page size.
func (s *UserService) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}
	if skip < 0 {
		return nil, apperrors.BadRequest("skip must not be negative")
	}
	if limit < 1 || limit > MaxListLimit {
		return nil, apperrors.BadRequest("limit must be between 1 and 1000")
	}
	users, err := s.store.ListUsers(ctx, skip, limit)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return users, nil
}

// applyIdentity sets new username/email on u after checking nobody else holds them.
func (s *UserService) applyIdentity(ctx context.Context, store *storage.Store, u *models.User, username, email *string) error {
	if username != nil {
		name := strings.TrimSpace(*username)
		if name == "" {
			return apperrors.BadRequest("Username must not be empty")
		}
		if name != u.Username {
			if err := s.checkUsernameFree(ctx, store, name, u.ID); err != nil {
				return err
			}
			u.Username = name
		}
	}
	if email != nil {
		addr := strings.TrimSpace(*email)
		if addr == "" {
			return apperrors.BadRequest("Email must not be empty")
		}
		if addr != u.Email {
			if err := s.checkEmailFree(ctx, store, addr, u.ID); err != nil {
				return err
			}
			u.Email = addr
		}
	}
	return nil
}

func (s *UserService) checkUsernameFree(ctx context.Context, store *storage.Store, username string, self uint) error {
	existing, err := store.GetUserByUsername(ctx, username)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil
	case err != nil:
		return apperrors.Internal(err)
	case existing.ID != self:
		return apperrors.ErrUsernameTaken
	}
	return nil
}

func (s *UserService) checkEmailFree(ctx context.Context, store *storage.Store, email string, self uint) error {
	existing, err := store.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil
	case err != nil:
		return apperrors.Internal(err)
	case existing.ID != self:
		return apperrors.ErrEmailTaken
	}
	return nil
}

// duplicateError works out which unique column a failed write collided on.
func (s *UserService) duplicateError(ctx context.Context, store *storage.Store, username string, self uint) error {
	if existing, err := store.GetUserByUsername(ctx, username); err == nil && existing.ID != self {
		return apperrors.ErrUsernameTaken
	}
	return apperrors.ErrEmailTaken
}
