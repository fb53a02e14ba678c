package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Debug handles GET /api/debug. The key itself is never exposed.
func (h *Handler) Debug(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"hasApiKey": h.client.Configured(),
		"keyLength": h.client.KeyLength(),
	})
}

type applianceSummary struct {
	ID          string   `json:"id"`
	Nickname    string   `json:"nickname"`
	Type        string   `json:"type"`
	SignalCount int      `json:"signalCount"`
	Signals     []string `json:"signals"`
}

// DebugAppliances handles GET /api/debug/appliances.
func (h *Handler) DebugAppliances(c *gin.Context) {
	appliances, err := h.client.ListAppliances(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	summaries := make([]applianceSummary, 0, len(appliances))
	for _, a := range appliances {
		names := make([]string, 0, len(a.Signals))
		for _, s := range a.Signals {
			names = append(names, s.Name)
		}
		summaries = append(summaries, applianceSummary{
			ID:          a.ID,
			Nickname:    a.Nickname,
			Type:        string(a.Type),
			SignalCount: len(a.Signals),
			Signals:     names,
		})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(summaries), "appliances": summaries})
}
