package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"remo-dashboard/internal/mw"
	"remo-dashboard/internal/view"
)

// NewRouter creates and configures a new Gin router. cacheTTL bounds how long
// vendor reads are reused; zero disables the read cache.
func NewRouter(handler *Handler, gatherer prometheus.Gatherer, cacheTTL time.Duration) (*gin.Engine, error) {
	r := gin.Default()

	tmpl, err := view.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", view.Static())

	// Cleaned up every minute; flushed by every successful command.
	cacheStore := cache.New(cacheTTL, time.Minute)
	caching := mw.Cache(cacheStore, cacheTTL)
	invalidate := mw.Invalidate(cacheStore)

	r.GET("/", caching, handler.Index)
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		api.GET("/panels", handler.RequireAPIKey, caching, handler.Panels)
		api.GET("/debug", handler.Debug)
		api.GET("/debug/appliances", handler.RequireAPIKey, handler.DebugAppliances)
	}

	remoAPI := api.Group("/remo")
	remoAPI.Use(handler.RequireAPIKey)
	{
		remoAPI.GET("", caching, handler.ListAppliances)
		remoAPI.GET("/appliances", caching, handler.ListAppliances)
		remoAPI.GET("/devices", caching, handler.ListDevices)

		remoAPI.POST("/appliances/:id/aircon_settings", invalidate, handler.UpdateAirCon)
		remoAPI.POST("/appliances/:id/light", invalidate, handler.UpdateLight)
		remoAPI.POST("/signals/:id/send", invalidate, handler.SendSignal)
	}

	r.NoRoute(handler.NotFound)

	return r, nil
}
