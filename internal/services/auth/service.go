package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/gameportal/internal/dependencies/clock"
	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrAccountNotFound    = errors.New("account not found")
)

// DemoAccount is a username/password pair seeded into an empty portal
type DemoAccount struct {
	ID       model.UserID
	Username string
	Password string
}

// DemoAccounts are seeded when no account list exists yet
var DemoAccounts = []DemoAccount{
	{ID: "1", Username: "admin", Password: "admin"},
	{ID: "2", Username: "guest", Password: "guest"},
	{ID: "3", Username: "player1", Password: "demo"},
}

// Config holds configuration for the auth service
type Config struct {
	BcryptCost       int
	SeedDemoAccounts bool
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		BcryptCost:       bcrypt.DefaultCost,
		SeedDemoAccounts: true,
	}
}

// Service manages accounts and the single active session of one portal
type Service struct {
	credentials *CredentialStore
	storage     storage.Storage
	clock       clock.Clock
	logger      *slog.Logger
	cfg         Config

	mu       sync.RWMutex
	current  *model.Session
	onSwitch func()
}

// New creates a new auth Service
func New(s storage.Storage, clock clock.Clock, logger *slog.Logger, cfg Config) *Service {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = DefaultConfig().BcryptCost
	}
	logger = logger.With(slog.String("component", "auth"))
	return &Service{
		credentials: NewCredentialStore(s, logger),
		storage:     s,
		clock:       clock,
		logger:      logger,
		cfg:         cfg,
	}
}

// OnSessionChange sets a hook that runs before the active session is
// replaced or ended, while the outgoing session is still current
func (s *Service) OnSessionChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSwitch = fn
}

// Credentials exposes the underlying account store
func (s *Service) Credentials() *CredentialStore {
	return s.credentials
}

// SeedDemoAccounts writes the demo accounts if the portal has never stored any,
// and does nothing when seeding is disabled
func (s *Service) SeedDemoAccounts(ctx context.Context) error {
	if !s.cfg.SeedDemoAccounts {
		return nil
	}
	seeded, err := s.credentials.SeedIfAbsent(ctx, s.demoAccounts)
	if err != nil {
		return err
	}
	if seeded {
		s.logger.Info("seeded demo accounts", slog.Int("count", len(DemoAccounts)))
	}
	return nil
}

func (s *Service) demoAccounts() ([]model.Account, error) {
	accounts := make([]model.Account, 0, len(DemoAccounts))
	for _, demo := range DemoAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(demo.Password), s.cfg.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash demo password: %w", err)
		}
		accounts = append(accounts, model.Account{
			ID:           demo.ID,
			Username:     demo.Username,
			PasswordHash: string(hash),
			CreatedAt:    s.clock.Now().UTC(),
		})
	}
	return accounts, nil
}

// Register creates an account and logs it in
func (s *Service) Register(ctx context.Context, username, password string) (*model.Session, error) {
	username = NormalizeUsername(username)
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	account := model.Account{
		ID:           model.UserID(uuid.NewString()),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now().UTC(),
	}
	if err := s.credentials.Add(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account registered",
		slog.String("user_id", string(account.ID)),
		slog.String("username", username),
	)
	return s.establish(ctx, &account)
}

// Login authenticates an existing account and makes it the active session
func (s *Service) Login(ctx context.Context, username, password string) (*model.Session, error) {
	account, err := s.credentials.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.verify(ctx, account, password) {
		return nil, ErrInvalidCredentials
	}
	return s.establish(ctx, account)
}

// Logout ends the active session. The in-memory session is always cleared,
// even when removing the persisted copy fails.
func (s *Service) Logout(ctx context.Context) error {
	s.notifySwitch()

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	return s.storage.Remove(ctx, storage.SessionKey)
}

// RestoreSession loads the persisted session, if any, and makes it active.
// Corrupt session data is discarded.
func (s *Service) RestoreSession(ctx context.Context) *model.Session {
	session, err := storage.GetJSON[model.Session](ctx, s.storage, storage.SessionKey)
	if err == nil && session.UserID == "" {
		err = fmt.Errorf("%w: session has no user", storage.ErrMalformed)
	}
	if err != nil {
		if errors.Is(err, storage.ErrMalformed) {
			s.logger.Warn("discarding unreadable session", slog.Any("error", err))
			_ = s.storage.Remove(ctx, storage.SessionKey)
		}
		return nil
	}

	s.mu.Lock()
	s.current = &session
	s.mu.Unlock()

	restored := session
	return &restored
}

// Current returns the active session, or nil when logged out
func (s *Service) Current() *model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	session := *s.current
	return &session
}

// CurrentUserID returns the active user's ID, or "" when logged out
func (s *Service) CurrentUserID() model.UserID {
	if session := s.Current(); session != nil {
		return session.UserID
	}
	return ""
}

func (s *Service) verify(ctx context.Context, account *model.Account, password string) bool {
	if account.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) == nil
	}
	if account.Password == "" || subtle.ConstantTimeCompare([]byte(account.Password), []byte(password)) != 1 {
		return false
	}

	// Plaintext record: replace the secret with a hash now that we know it
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		s.logger.Warn("could not hash legacy password", slog.Any("error", err))
		return true
	}
	upgraded := *account
	upgraded.PasswordHash = string(hash)
	upgraded.Password = ""
	if err := s.credentials.Update(ctx, upgraded); err != nil {
		s.logger.Warn("could not upgrade legacy password", slog.Any("error", err))
	} else {
		s.logger.Info("upgraded legacy password", slog.String("user_id", string(account.ID)))
	}
	return true
}

func (s *Service) notifySwitch() {
	s.mu.RLock()
	fn := s.onSwitch
	s.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

func (s *Service) establish(ctx context.Context, account *model.Account) (*model.Session, error) {
	s.notifySwitch()

	session := model.Session{
		UserID:    account.ID,
		Username:  account.Username,
		LoginTime: s.clock.Now().UTC(),
	}
	if err := storage.SetJSON(ctx, s.storage, storage.SessionKey, session); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = &session
	s.mu.Unlock()

	s.logger.Info("session started",
		slog.String("user_id", string(session.UserID)),
		slog.String("username", session.Username),
	)
	out := session
	return &out, nil
}
