package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"remo-dashboard/internal/notification"
	"remo-dashboard/internal/remo"
	"remo-dashboard/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	client      *remo.Client
	history     store.Store
	pool        *notification.WorkerPool
	settleDelay time.Duration
}

// NewHandler creates a new API handler. pool may be nil when events are not
// published.
func NewHandler(client *remo.Client, history store.Store, pool *notification.WorkerPool, settleDelay time.Duration) *Handler {
	return &Handler{
		client:      client,
		history:     history,
		pool:        pool,
		settleDelay: settleDelay,
	}
}

// abortWithError writes the JSON envelope for a failed vendor call.
func abortWithError(c *gin.Context, err error) {
	if errors.Is(err, remo.ErrMissingAPIKey) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("Nature Remo API error: %v", err)
	body := gin.H{
		"error":   "Internal server error",
		"details": err.Error(),
	}
	var reqErr *remo.RequestError
	if errors.As(err, &reqErr) {
		body["status"] = reqErr.StatusCode
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, body)
}

// recordCommand remembers a successful control action and publishes it.
func (h *Handler) recordCommand(applianceID, kind, button string, params map[string]string) {
	now := time.Now().UTC()
	if h.history != nil && kind != "signal" {
		h.history.RecordButton(store.ButtonRecord{
			ApplianceID: applianceID,
			Button:      button,
			Params:      params,
			SentAt:      now,
		})
	}
	if h.pool != nil {
		h.pool.TryDispatch(notification.Event{
			Kind:        notification.EventCommand,
			ApplianceID: applianceID,
			Type:        kind,
			Button:      button,
			Params:      params,
			Timestamp:   now,
		})
	}
}
