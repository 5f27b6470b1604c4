package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"CryptoDash/internal/dashboard"
	"CryptoDash/internal/display"
	"CryptoDash/internal/metrics"
	"CryptoDash/internal/model"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/adaptor"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

var log = logrus.WithField("component", "web")

// Source is the read side of the dashboard used by the handlers.
type Source interface {
	Views(cfg model.ChartConfig) []display.View
	Panel(symbol string) *dashboard.Panel
}

// pageData is the data bound to dashboard.html.
type pageData struct {
	Views      []display.View
	RefreshSec int
}

// RegisterRoutes mounts the dashboard page, its JSON API, health and metrics on h.
// refresh sets how often the page reloads itself; it should match the poll interval.
func RegisterRoutes(h *server.Hertz, src Source, cfg model.ChartConfig, refresh time.Duration) {
	tmpl := template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
	h.SetHTMLTemplate(tmpl)

	refreshSec := int(refresh / time.Second)
	if refreshSec < 1 {
		refreshSec = 60
	}

	h.GET("/", func(_ context.Context, c *app.RequestContext) {
		c.HTML(http.StatusOK, "dashboard.html", pageData{
			Views:      src.Views(cfg),
			RefreshSec: refreshSec,
		})
	})

	h.GET("/healthz", func(_ context.Context, c *app.RequestContext) {
		c.JSON(http.StatusOK, map[string]bool{"ok": true})
	})

	h.GET("/api/v1/panels", func(_ context.Context, c *app.RequestContext) {
		c.JSON(http.StatusOK, map[string]any{
			"ok":     true,
			"panels": src.Views(cfg),
		})
	})

	h.GET("/api/v1/panels/:symbol", func(_ context.Context, c *app.RequestContext) {
		symbol := c.Param("symbol")
		p := src.Panel(symbol)
		if p == nil {
			c.JSON(http.StatusNotFound, map[string]any{
				"ok":    false,
				"error": "unknown symbol: " + symbol,
			})
			return
		}
		c.JSON(http.StatusOK, map[string]any{
			"ok":    true,
			"panel": p.View(cfg),
		})
	})

	h.GET("/metrics", adaptor.HertzHandler(metrics.Handler()))
}

// NewServer builds a Hertz server listening on addr with all routes registered.
func NewServer(addr string, src Source, cfg model.ChartConfig, refresh time.Duration) *server.Hertz {
	h := server.Default(server.WithHostPorts(addr))
	RegisterRoutes(h, src, cfg, refresh)
	log.Infof("http server configured on %s", addr)
	return h
}
