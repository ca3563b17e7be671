package app

import (
	"context"
	"time"

	"github.com/polkiloo/authkeeper/internal/domain/model"
	pkgAuth "github.com/polkiloo/authkeeper/internal/pkg/auth"
	"github.com/polkiloo/authkeeper/internal/usecase"
)

// AuthFacade exposes use cases to the HTTP layer and background workers.
type AuthFacade struct {
	auth *usecase.AuthUseCase
}

func NewAuthFacade(auth *usecase.AuthUseCase) *AuthFacade {
	return &AuthFacade{auth: auth}
}

func (f *AuthFacade) Register(ctx context.Context, email, password string, profile model.Profile) (*model.User, error) {
	return f.auth.Register(ctx, email, password, profile)
}

func (f *AuthFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *AuthFacade) ParseToken(ctx context.Context, token string) (*pkgAuth.Claims, error) {
	return f.auth.ParseToken(ctx, token)
}

func (f *AuthFacade) Revoke(ctx context.Context, claims *pkgAuth.Claims) error {
	return f.auth.Revoke(ctx, claims)
}

func (f *AuthFacade) PurgeRevoked(ctx context.Context, now time.Time) (int, error) {
	return f.auth.PurgeRevoked(ctx, now)
}
