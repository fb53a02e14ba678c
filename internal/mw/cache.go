package mw

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// snapshot is a stored copy of a successful GET response.
type snapshot struct {
	status int
	header http.Header
	body   []byte
}

// teeWriter copies everything written to the client into buf.
type teeWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *teeWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *teeWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func (w *teeWriter) snapshot() snapshot {
	return snapshot{
		status: w.Status(),
		header: w.Header().Clone(),
		body:   bytes.Clone(w.buf.Bytes()),
	}
}

func replay(c *gin.Context, s snapshot) {
	h := c.Writer.Header()
	for k, v := range s.header {
		h[k] = v
	}
	h.Set("X-Cache", "HIT")
	c.Writer.WriteHeader(s.status)
	c.Writer.Write(s.body)
	c.Abort()
}

// Cache is a middleware for short-lived in-memory caching of GET requests.
// It keeps page reloads from spending the vendor's request quota.
func Cache(store *cache.Cache, duration time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || duration <= 0 {
			c.Next()
			return
		}

		key := c.Request.RequestURI
		if v, found := store.Get(key); found {
			replay(c, v.(snapshot))
			return
		}

		tee := &teeWriter{ResponseWriter: c.Writer}
		c.Writer = tee
		c.Next()

		// Errors and outage pages are never reused.
		if s := tee.Status(); s >= 200 && s < 300 {
			store.Set(key, tee.snapshot(), duration)
		}
	}
}

// Invalidate flushes the cache after a successful request so the next read
// reflects the change it made.
func Invalidate(store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if s := c.Writer.Status(); s >= 200 && s < 300 {
			store.Flush()
		}
	}
}
