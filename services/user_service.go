package services

import (
	"context"
	goerrors "errors"
	"fmt"
	"strings"
	"time"

	"rento/constants"
	"rento/errors"
	"rento/models"
	"rento/services/logger"
	"rento/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const DefaultSessionTTL = 72 * time.Hour

type UserService struct {
	users    *storage.Collection[models.User]
	sessions SessionStore
	clock    Clock
	logger   logger.Logger

	hashCost   int
	sessionTTL time.Duration
}

type UserServiceOptions struct {
	Store      storage.Store
	Sessions   SessionStore
	Clock      Clock
	Logger     logger.Logger
	HashCost   int
	SessionTTL time.Duration
}

func NewUserService(opts UserServiceOptions) *UserService {
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	if opts.HashCost == 0 {
		opts.HashCost = bcrypt.DefaultCost
	}
	if opts.SessionTTL == 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	if opts.Sessions == nil {
		opts.Sessions = NewMemorySessionStore(10000, opts.Clock)
	}
	return &UserService{
		users:      storage.NewCollection[models.User](opts.Store, constants.KeyUsers),
		sessions:   opts.Sessions,
		clock:      opts.Clock,
		logger:     opts.Logger,
		hashCost:   opts.HashCost,
		sessionTTL: opts.SessionTTL,
	}
}

func (s *UserService) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func findByEmail(users []models.User, email string) int {
	for i := range users {
		if users[i].Email == email {
			return i
		}
	}
	return -1
}

// EnsureDefaultUser seeds the default account when its email is not registered
func (s *UserService) EnsureDefaultUser(ctx context.Context, email, password string) error {
	users, err := s.List(ctx)
	if err != nil {
		return err
	}
	if findByEmail(users, email) >= 0 {
		return nil
	}
	hashed, err := s.hashPassword(password)
	if err != nil {
		return err
	}
	_, err = s.users.Mutate(ctx, func(users []models.User) ([]models.User, error) {
		if findByEmail(users, email) >= 0 {
			return users, nil
		}
		return append(users, models.User{
			ID:        constants.DefaultUserID,
			Name:      constants.DefaultUserName,
			Email:     email,
			Password:  hashed,
			CreatedAt: s.clock.Now(),
		}), nil
	})
	if err != nil {
		return fmt.Errorf("seed default user: %w", err)
	}
	s.logger.Info("default user %s created", email)
	return nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	users, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, errors.ErrUserNotFound
}

// Signup registers a new account; an email already in use is rejected
func (s *UserService) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, errors.NewAppError(errors.ErrCodeRequiredField, "email and password are required", errors.ErrMissingRequired)
	}
	hashed, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     email,
		Password:  hashed,
		CreatedAt: s.clock.Now(),
	}
	_, err = s.users.Mutate(ctx, func(users []models.User) ([]models.User, error) {
		if findByEmail(users, email) >= 0 {
			return nil, errors.ErrUserAlreadyExists
		}
		return append(users, user), nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user %s signed up", user.ID)
	return &user, nil
}

// Authenticate checks credentials and opens a session
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, *models.Session, error) {
	users, err := s.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	idx := findByEmail(users, strings.TrimSpace(email))
	if idx < 0 {
		return nil, nil, errors.ErrInvalidCredentials
	}
	user := users[idx]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, errors.ErrInvalidCredentials
	}

	now := s.clock.Now()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("open session: %w", err)
	}
	s.logger.Info("user %s logged in", user.ID)
	return &user, session, nil
}

// CurrentUser resolves a session id to its session and user
func (s *UserService) CurrentUser(ctx context.Context, sessionID string) (*models.User, *models.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if goerrors.Is(err, errors.ErrSessionNotFound) || goerrors.Is(err, errors.ErrSessionExpired) {
			return nil, nil, errors.ErrUnauthorized
		}
		return nil, nil, err
	}
	user, err := s.Get(ctx, session.UserID)
	if goerrors.Is(err, errors.ErrUserNotFound) {
		return nil, nil, errors.ErrUnauthorized
	}
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *UserService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// Update edits the profile in place; an email held by another user is rejected
func (s *UserService) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	var hashed string
	if patch.Password != nil {
		h, err := s.hashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		hashed = h
	}

	var updated models.User
	_, err := s.users.Mutate(ctx, func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].ID != id {
				continue
			}
			if patch.Email != nil {
				email := strings.TrimSpace(*patch.Email)
				if other := findByEmail(users, email); other >= 0 && other != i {
					return nil, errors.ErrUserAlreadyExists
				}
				users[i].Email = email
			}
			if patch.Name != nil {
				users[i].Name = strings.TrimSpace(*patch.Name)
			}
			if patch.Password != nil {
				users[i].Password = hashed
			}
			updated = users[i]
			return users, nil
		}
		return nil, errors.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
