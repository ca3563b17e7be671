package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/authkeeper/internal/domain/errors"
	"github.com/polkiloo/authkeeper/internal/server/http/dto"
)

// gzipBody closes the decompressor together with the wire body.
type gzipBody struct {
	*gzip.Reader
	wire io.ReadCloser
}

func (b *gzipBody) Close() error {
	gzErr := b.Reader.Close()
	if err := b.wire.Close(); err != nil {
		return err
	}
	return gzErr
}

func isGzipEncoded(header string) bool {
	for _, enc := range strings.Split(header, ",") {
		if strings.EqualFold(strings.TrimSpace(enc), "gzip") {
			return true
		}
	}
	return false
}

// DecompressRequest unpacks gzip request bodies before binding.
// Response compression is handled by gin-contrib/gzip.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isGzipEncoded(c.GetHeader("Content-Encoding")) {
			c.Next()
			return
		}

		zr, err := gzip.NewReader(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(domainErrors.ErrInvalidInput, "malformed gzip body"))
			return
		}

		c.Request.Body = &gzipBody{Reader: zr, wire: c.Request.Body}
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}
