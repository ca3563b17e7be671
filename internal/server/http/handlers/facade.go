package handlers

import (
	"context"

	"github.com/polkiloo/authkeeper/internal/domain/model"
	pkgAuth "github.com/polkiloo/authkeeper/internal/pkg/auth"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password string, profile model.Profile) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(ctx context.Context, token string) (*pkgAuth.Claims, error)
	Revoke(ctx context.Context, claims *pkgAuth.Claims) error
}

// EventRecorder counts auth operations by outcome.
type EventRecorder interface {
	AuthEvent(event string, err error)
}
