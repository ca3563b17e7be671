package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/authkeeper/internal/domain/errors"
	"github.com/polkiloo/authkeeper/internal/domain/model"
	"github.com/polkiloo/authkeeper/internal/domain/repository"
	pkgAuth "github.com/polkiloo/authkeeper/internal/pkg/auth"
)

// AuthUseCase handles registration, credential checks and token management.
type AuthUseCase struct {
	users    repository.UserRepository
	hasher   pkgAuth.PasswordHasher
	tokens   pkgAuth.Strategy
	denylist pkgAuth.Denylist
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, denylist pkgAuth.Denylist) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy, denylist: denylist}
}

// Register stores a new non-admin user. Duplicates are detected by the store
// on insert, never by a prior lookup.
func (u *AuthUseCase) Register(ctx context.Context, email, password string, profile model.Profile) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domainErrors.ErrInvalidInput
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	usr, err := u.users.Create(ctx, model.NewUser(email, profile, hash))
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return usr, nil
}

// Authenticate validates credentials and returns a freshly issued token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	usr, err := u.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrNotFound
		}
		return nil, "", err
	}

	if !u.hasher.Matches(usr.PasswordHash, password) {
		return nil, "", domainErrors.ErrIncorrectPassword
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return usr, token, nil
}

// ParseToken verifies token and rejects revoked ones.
func (u *AuthUseCase) ParseToken(ctx context.Context, token string) (*pkgAuth.Claims, error) {
	if token == "" {
		return nil, domainErrors.ErrTokenMissing
	}
	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil, domainErrors.ErrTokenInvalid
	}
	if claims.ID == "" {
		return claims, nil
	}

	revoked, err := u.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check denylist: %w", err)
	}
	if revoked {
		return nil, domainErrors.ErrTokenInvalid
	}
	return claims, nil
}

// Revoke denylists the token described by claims until it expires.
func (u *AuthUseCase) Revoke(ctx context.Context, claims *pkgAuth.Claims) error {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return domainErrors.ErrTokenInvalid
	}
	return u.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// PurgeRevoked drops denylist entries whose tokens expired before now.
func (u *AuthUseCase) PurgeRevoked(ctx context.Context, now time.Time) (int, error) {
	return u.denylist.Purge(ctx, now)
}
