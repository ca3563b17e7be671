package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every reason a token is rejected: bad signature,
// malformed input, wrong algorithm or expiry.
var ErrInvalidToken = errors.New("invalid auth token")

// Claims is the payload carried by issued tokens.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type Strategy interface {
	IssueToken(userID string) (string, error)
	ParseToken(token string) (*Claims, error)
}

type Options struct {
	TTL time.Duration
	// Now overrides the clock used for iat/exp; defaults to time.Now.
	Now func() time.Time
}
