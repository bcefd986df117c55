package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/geo-region-service/pkg/response"
)

// maxCapturedBody bounds how much of a body is kept for error logs.
const maxCapturedBody = 64 << 10

type replayBody struct {
	io.Reader
	io.Closer
}

// CaptureBody keeps the first maxCapturedBody bytes of the request body in
// the context so server-side failures can be logged with it. Handlers still
// read the full body.
func CaptureBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		body := c.Request.Body
		if body == nil || body == http.NoBody {
			c.Next()
			return
		}
		buf, err := io.ReadAll(io.LimitReader(body, maxCapturedBody))
		c.Request.Body = replayBody{Reader: io.MultiReader(bytes.NewReader(buf), body), Closer: body}
		if err == nil {
			c.Set(response.CtxRequestBodyKey, buf)
		}
		c.Next()
	}
}
