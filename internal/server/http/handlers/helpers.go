package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/authkeeper/internal/domain/errors"
	"github.com/polkiloo/authkeeper/internal/server/http/dto"
)

func statusFor(kind domainErrors.Kind) int {
	switch kind {
	case domainErrors.KindInvalidInput,
		domainErrors.KindDuplicateEmail,
		domainErrors.KindUserNotFound,
		domainErrors.KindIncorrectPassword:
		return http.StatusBadRequest
	case domainErrors.KindTokenMissing, domainErrors.KindTokenInvalid:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeError echoes the cause of internal failures behind prefix.
func writeError(c *gin.Context, err error, prefix string) {
	kind := domainErrors.KindOf(err)
	message := ""
	if kind == domainErrors.KindInternal {
		message = prefix + err.Error()
	}
	c.JSON(statusFor(kind), dto.NewErrorResponse(err, message))
}
