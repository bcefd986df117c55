package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ResponseStore is the subset of the redis cache the response cache needs.
type ResponseStore interface {
	Get(ctx context.Context, key string) []byte
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// ResponseCache serves GET responses from store, keyed by the request URI.
// Only 200 responses are stored. Writes do not invalidate entries, so reads
// can lag by up to ttl.
func ResponseCache(store ResponseStore, ttl time.Duration) gin.HandlerFunc {
	if store == nil || ttl <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		key := "http:" + c.Request.URL.RequestURI()
		if body := store.Get(c.Request.Context(), key); body != nil {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			c.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Header("X-Cache", "MISS")
		c.Next()

		if rec.Status() == http.StatusOK && rec.buf.Len() > 0 {
			store.Set(c.Request.Context(), key, rec.buf.Bytes(), ttl)
		}
	}
}
