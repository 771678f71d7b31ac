package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	domainErrors "github.com/polkiloo/profilecard/internal/domain/errors"
	"github.com/polkiloo/profilecard/internal/domain/model"
	"github.com/polkiloo/profilecard/internal/domain/repository"
	pkgAuth "github.com/polkiloo/profilecard/internal/pkg/auth"
)

// AssetStore stores profile images outside the service.
type AssetStore interface {
	Upload(ctx context.Context, upload model.Upload) (*model.Asset, error)
	Delete(ctx context.Context, publicID string) error
}

// AccountUseCase registers accounts and checks their credentials.
type AccountUseCase struct {
	users  repository.UserRepository
	assets AssetStore
	hasher pkgAuth.PasswordHasher
	logger *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAccountUseCase constructs AccountUseCase.
func NewAccountUseCase(users repository.UserRepository, assets AssetStore, hasher pkgAuth.PasswordHasher, logger *slog.Logger) *AccountUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountUseCase{users: users, assets: assets, hasher: hasher, logger: logger}
}

// Register uploads the profile image and stores a new account.
func (u *AccountUseCase) Register(ctx context.Context, reg model.Registration) (*model.User, error) {
	if reg.Upload == nil {
		return nil, domainErrors.ErrMissingFile
	}
	name := strings.TrimSpace(reg.Name)
	email := normalizeEmail(reg.Email)
	if name == "" || email == "" || reg.Password == "" {
		return nil, domainErrors.ErrMissingFields
	}

	_, err := u.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domainErrors.ErrAlreadyExists
	case !errors.Is(err, domainErrors.ErrNotFound):
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := u.hasher.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	asset, err := u.assets.Upload(ctx, *reg.Upload)
	if err != nil {
		return nil, fmt.Errorf("upload profile image: %w", err)
	}

	usr, err := u.users.Create(ctx, &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Filename:     reg.Upload.OriginalName,
		PublicID:     asset.PublicID,
		ImageURL:     asset.SecureURL,
	})
	if err != nil {
		u.discardAsset(ctx, asset.PublicID)
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return usr, nil
}

// Login returns the account matching email when password is correct.
func (u *AccountUseCase) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domainErrors.ErrMissingFields
	}

	usr, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			u.compareDummy(password)
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, domainErrors.ErrInvalidCredentials
	}
	return usr, nil
}

// discardAsset removes an uploaded image whose account was never stored.
func (u *AccountUseCase) discardAsset(ctx context.Context, publicID string) {
	if err := u.assets.Delete(context.WithoutCancel(ctx), publicID); err != nil {
		u.logger.Warn("failed to discard orphaned asset",
			slog.String("public_id", publicID),
			slog.String("error", err.Error()),
		)
	}
}

// compareDummy spends a hash comparison on unknown emails so both failures take similar time.
func (u *AccountUseCase) compareDummy(password string) {
	u.dummyOnce.Do(func() {
		hash, err := u.hasher.Hash("profilecard-unknown-account")
		if err == nil {
			u.dummyHash = hash
		}
	})
	if u.dummyHash != "" {
		_ = u.hasher.Compare(u.dummyHash, password)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
