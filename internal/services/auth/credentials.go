package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/storage"
)

// CredentialStore persists the account list under storage.UsersKey.
// Read-modify-write sequences are serialized per store.
type CredentialStore struct {
	storage storage.Storage
	logger  *slog.Logger

	mu sync.Mutex
}

// NewCredentialStore creates a CredentialStore over s
func NewCredentialStore(s storage.Storage, logger *slog.Logger) *CredentialStore {
	return &CredentialStore{storage: s, logger: logger}
}

// All returns every account. A missing or unreadable list is empty.
func (c *CredentialStore) All(ctx context.Context) ([]model.Account, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked(ctx)
}

// FindByUsername returns the account with exactly this username
func (c *CredentialStore) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	accounts, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Username == username {
			return &accounts[i], nil
		}
	}
	return nil, ErrAccountNotFound
}

// Add appends an account, rejecting a username that is already taken
func (c *CredentialStore) Add(ctx context.Context, account model.Account) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	accounts, err := c.loadLocked(ctx)
	if err != nil {
		return err
	}
	for _, existing := range accounts {
		if existing.Username == account.Username {
			return ErrUsernameTaken
		}
	}
	return storage.SetJSON(ctx, c.storage, storage.UsersKey, append(accounts, account))
}

// Update replaces the stored account with the same ID
func (c *CredentialStore) Update(ctx context.Context, account model.Account) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	accounts, err := c.loadLocked(ctx)
	if err != nil {
		return err
	}
	for i := range accounts {
		if accounts[i].ID == account.ID {
			accounts[i] = account
			return storage.SetJSON(ctx, c.storage, storage.UsersKey, accounts)
		}
	}
	return ErrAccountNotFound
}

// SeedIfAbsent writes the accounts returned by build only when no account
// list has ever been stored. build is not called otherwise. It reports
// whether the seed was written.
func (c *CredentialStore) SeedIfAbsent(ctx context.Context, build func() ([]model.Account, error)) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.storage.Get(ctx, storage.UsersKey)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return false, err
	}
	accounts, err := build()
	if err != nil {
		return false, err
	}
	if err := storage.SetJSON(ctx, c.storage, storage.UsersKey, accounts); err != nil {
		return false, err
	}
	return true, nil
}

func (c *CredentialStore) loadLocked(ctx context.Context) ([]model.Account, error) {
	accounts, err := storage.GetJSON[[]model.Account](ctx, c.storage, storage.UsersKey)
	switch {
	case err == nil:
		return accounts, nil
	case errors.Is(err, storage.ErrNotFound):
		return nil, nil
	case errors.Is(err, storage.ErrMalformed):
		c.logger.Warn("ignoring unreadable account list", slog.Any("error", err))
		return nil, nil
	default:
		return nil, err
	}
}
