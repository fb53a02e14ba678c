package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"remo-dashboard/internal/view"
)

// Index renders the dashboard. Without a key, or when the vendor cannot be
// reached, the page shows its help panel. A vendor failure is served as 503
// so the read cache does not keep it.
func (h *Handler) Index(c *gin.Context) {
	page := view.Page{SettleDelayMillis: h.settleDelay.Milliseconds()}
	if !h.client.Configured() {
		c.HTML(http.StatusOK, view.PageTemplate, page)
		return
	}

	appliances, err := h.client.ListAppliances(c.Request.Context())
	if err != nil {
		log.Printf("Failed to load appliances for the dashboard: %v", err)
		page.HasAPIKey = true
		page.Error = err.Error()
		c.HTML(http.StatusServiceUnavailable, view.PageTemplate, page)
		return
	}

	c.HTML(http.StatusOK, view.PageTemplate, view.NewPage(appliances, h.history, h.settleDelay))
}

// Panels handles GET /api/panels with the panel model of every appliance.
func (h *Handler) Panels(c *gin.Context) {
	appliances, err := h.client.ListAppliances(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.BuildAll(appliances, h.history))
}
