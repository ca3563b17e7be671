package test

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/polkiloo/authkeeper/internal/domain/model"
	pkgAuth "github.com/polkiloo/authkeeper/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	MatchesFn func(string, string) bool
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Matches validates password against stored hash.
func (h HasherStub) Matches(hash string, password string) bool {
	if h.MatchesFn != nil {
		return h.MatchesFn(hash, password)
	}
	return hash == "hash:"+password
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(string) (string, error)
	ParseFn func(string) (*pkgAuth.Claims, error)
}

// IssueToken returns "token-<userID>" unless overridden.
func (s StrategyStub) IssueToken(userID string) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID)
	}
	return "token-" + userID, nil
}

// ParseToken accepts tokens in the format produced by IssueToken.
func (s StrategyStub) ParseToken(token string) (*pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	const prefix = "token-"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return nil, pkgAuth.ErrInvalidToken
	}
	return NewClaims(token[len(prefix):], "jti-"+token[len(prefix):], time.Now().Add(time.Hour)), nil
}

// NewClaims builds claims carrying the given user, token id and expiry.
func NewClaims(userID, tokenID string, expiresAt time.Time) *pkgAuth.Claims {
	return &pkgAuth.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
}

// DenylistStub records revocations in memory and can be forced to fail.
type DenylistStub struct {
	mu      sync.Mutex
	Revoked map[string]time.Time
	Purged  []time.Time
	Err     error
}

// Revoke stores token id unless Err is set.
func (d *DenylistStub) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return d.Err
	}
	if d.Revoked == nil {
		d.Revoked = make(map[string]time.Time)
	}
	d.Revoked[tokenID] = expiresAt
	return nil
}

// IsRevoked reports whether token id was revoked.
func (d *DenylistStub) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return false, d.Err
	}
	_, ok := d.Revoked[tokenID]
	return ok, nil
}

// Purge records the call and removes nothing.
func (d *DenylistStub) Purge(_ context.Context, now time.Time) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return 0, d.Err
	}
	d.Purged = append(d.Purged, now)
	return 0, nil
}

// PurgeCount returns number of recorded purge calls.
func (d *DenylistStub) PurgeCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Purged)
}

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, model.Profile) (*model.User, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(context.Context, string) (*pkgAuth.Claims, error)
	RevokeFn       func(context.Context, *pkgAuth.Claims) error
}

// Register returns a stored user for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, email, password string, profile model.Profile) (*model.User, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, password, profile)
	}
	return model.NewUser(email, profile, "hash:"+password), nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

// ParseToken returns claims for user "1" unless overridden.
func (s AuthFacadeStub) ParseToken(ctx context.Context, token string) (*pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(ctx, token)
	}
	return NewClaims("1", "jti", time.Now().Add(time.Hour)), nil
}

// Revoke accepts any claims unless overridden.
func (s AuthFacadeStub) Revoke(ctx context.Context, claims *pkgAuth.Claims) error {
	if s.RevokeFn != nil {
		return s.RevokeFn(ctx, claims)
	}
	return nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
var _ pkgAuth.Denylist = (*DenylistStub)(nil)
