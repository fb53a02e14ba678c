package api

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"remo-dashboard/internal/parse"
	"remo-dashboard/internal/remo"
)

// RequireAPIKey rejects vendor routes before any network call when no access
// token is configured.
func (h *Handler) RequireAPIKey(c *gin.Context) {
	if !h.client.Configured() {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": remo.ErrMissingAPIKey.Error()})
		return
	}
	c.Next()
}

// ListAppliances handles GET /api/remo and /api/remo/appliances. The vendor's
// payload is forwarded unchanged.
func (h *Handler) ListAppliances(c *gin.Context) {
	body, err := h.client.ListAppliancesRaw(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// ListDevices handles GET /api/remo/devices.
func (h *Handler) ListDevices(c *gin.Context) {
	body, err := h.client.ListDevicesRaw(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// UpdateAirCon handles POST /api/remo/appliances/:id/aircon_settings.
func (h *Handler) UpdateAirCon(c *gin.Context) {
	params, ok := bindParams(c)
	if !ok {
		return
	}
	id := c.Param("id")
	log.Printf("Air conditioner command: appliance=%s params=%v", id, params)

	updated, err := h.client.SetAirCon(c.Request.Context(), id, params)
	if err != nil {
		abortWithError(c, err)
		return
	}
	h.recordCommand(id, "aircon", params["button"], params)

	resp := gin.H{"success": true}
	if updated != nil {
		resp["state"] = updated
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateLight handles POST /api/remo/appliances/:id/light.
func (h *Handler) UpdateLight(c *gin.Context) {
	params, ok := bindParams(c)
	if !ok {
		return
	}
	id := c.Param("id")
	button := params["button"]
	log.Printf("Light command: appliance=%s button=%s", id, button)

	state, err := h.client.SetLight(c.Request.Context(), id, button)
	if err != nil {
		abortWithError(c, err)
		return
	}
	h.recordCommand(id, "light", button, map[string]string{"button": button})

	resp := gin.H{"success": true}
	if state != nil {
		resp["state"] = state
	}
	c.JSON(http.StatusOK, resp)
}

// SendSignal handles POST /api/remo/signals/:id/send.
func (h *Handler) SendSignal(c *gin.Context) {
	id := c.Param("id")
	log.Printf("Signal send: signal=%s", id)

	if err := h.client.FireSignal(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	h.recordCommand(id, "signal", "", nil)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// NotFound answers unknown routes. Paths under /api/remo get the vendor
// route envelope, after the key check every vendor route performs.
func (h *Handler) NotFound(c *gin.Context) {
	if !strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	if strings.HasPrefix(c.Request.URL.Path, "/api/remo") && !h.client.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": remo.ErrMissingAPIKey.Error()})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}

func bindParams(c *gin.Context) (map[string]string, bool) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return nil, false
	}
	params, err := parse.Body(c.GetHeader("Content-Type"), raw)
	if err != nil {
		msg := "invalid request"
		if errors.Is(err, parse.ErrUnsupportedContentType) {
			msg = "Unsupported content type"
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg, "details": err.Error()})
		return nil, false
	}
	return params, true
}
