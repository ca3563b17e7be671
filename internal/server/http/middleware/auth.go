package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/authkeeper/internal/domain/errors"
	pkgAuth "github.com/polkiloo/authkeeper/internal/pkg/auth"
	"github.com/polkiloo/authkeeper/internal/server/http/dto"
)

const (
	// ClaimsContextKey is a gin context key for verified token claims.
	ClaimsContextKey = "claims"
	// The token travels as the raw header value, without a "Bearer " prefix.
	authHeaderName = "authorization"
)

// TokenParser verifies a token and returns its claims.
type TokenParser interface {
	ParseToken(ctx context.Context, token string) (*pkgAuth.Claims, error)
}

// VerifyToken rejects requests without a valid token with 403.
func VerifyToken(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parser.ParseToken(c.Request.Context(), c.GetHeader(authHeaderName))
		if err != nil {
			switch domainErrors.KindOf(err) {
			case domainErrors.KindTokenMissing, domainErrors.KindTokenInvalid:
				c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(err, ""))
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(err, "error verifying token: "+err.Error()))
			}
			return
		}

		c.Set(ClaimsContextKey, claims)
		c.Next()
	}
}

// CurrentClaims returns claims stored by VerifyToken, or nil.
func CurrentClaims(c *gin.Context) *pkgAuth.Claims {
	val, ok := c.Get(ClaimsContextKey)
	if !ok {
		return nil
	}
	claims, _ := val.(*pkgAuth.Claims)
	return claims
}
