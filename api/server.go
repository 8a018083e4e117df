// Package api is the main api web server
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/a-h/templ"
	"github.com/aouyang1/errorparty/api/models"
	"github.com/aouyang1/errorparty/assets"
	"github.com/aouyang1/errorparty/celebrate"
	"github.com/aouyang1/errorparty/panel"
	"github.com/aouyang1/errorparty/util"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// Celebrator is the part of the sequencer the server drives.
type Celebrator interface {
	Trigger(ctx context.Context)
	State() celebrate.Snapshot
}

type WebServer struct {
	router  *gin.Engine
	rotator *assets.Rotator
	surface *panel.Surface
	seq     Celebrator

	// errors reports the last observed error total, if a watcher is running
	errors func() int
}

type Option func(*WebServer)

// WithErrorCount exposes the watcher's error total in /state.
func WithErrorCount(f func() int) Option {
	return func(ws *WebServer) {
		ws.errors = f
	}
}

func NewWebServer(rotator *assets.Rotator, surface *panel.Surface, seq Celebrator, opts ...Option) *WebServer {
	ws := &WebServer{
		router:  gin.Default(),
		rotator: rotator,
		surface: surface,
		seq:     seq,
	}
	for _, opt := range opts {
		opt(ws)
	}

	// Setup routes
	ws.setupRoutes()

	return ws
}

func (ws *WebServer) setupRoutes() {
	ws.router.GET("/", ws.handlePage)
	ws.router.GET("/panel/content", ws.handlePanelContent)
	ws.router.GET("/panel", ws.handleGetPanel)
	ws.router.PUT("/panel/:state", ws.handleUpdatePanel)

	ws.router.GET("/assets/:category", ws.handleListAssets)
	ws.router.GET("/assets/:category/:name", ws.handleAsset)

	ws.router.POST("/celebrate", ws.handleCelebrate)
	ws.router.GET("/state", ws.handleGetState)
}

func (ws *WebServer) Handler() http.Handler {
	return ws.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (ws *WebServer) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: ws.router,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting web server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("web server stopped: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down web server: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func render(c *gin.Context, component templ.Component) {
	c.Header("Cache-Control", "no-store")
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		slog.Error("failed to render component", "path", c.FullPath(), "error", err)
	}
}

func (ws *WebServer) handlePage(c *gin.Context) {
	render(c, panel.Page())
}

func (ws *WebServer) handlePanelContent(c *gin.Context) {
	render(c, panel.Content(ws.surface.Frame()))
}

func (ws *WebServer) handleGetPanel(c *gin.Context) {
	c.JSON(http.StatusOK, models.PanelStateResponse{Open: ws.surface.Available()})
}

func (ws *WebServer) handleUpdatePanel(c *gin.Context) {
	switch state := c.Param("state"); state {
	case "open":
		ws.surface.Open()
	case "closed", "close":
		ws.surface.Close()
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: fmt.Sprintf("invalid panel state %q, must be open or closed", state)})
		return
	}
	c.JSON(http.StatusOK, models.PanelStateResponse{Open: ws.surface.Available()})
}

func (ws *WebServer) handleListAssets(c *gin.Context) {
	category, err := assets.ParseCategory(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	names, err := ws.rotator.Pool(category)
	if err != nil && !errors.Is(err, assets.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, models.PoolResponse{Category: category.String(), Assets: names})
}

func (ws *WebServer) handleAsset(c *gin.Context) {
	category, err := assets.ParseCategory(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	name := c.Param("name")
	if name == "" || name == "." || name == ".." || name != filepath.Base(name) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid asset name"})
		return
	}
	if !util.HasExt(category.Extensions(), name) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: fmt.Sprintf("Unsupported file extension: %s", filepath.Ext(name))})
		return
	}

	filePath := filepath.Join(ws.rotator.Dir(category), name)
	info, err := os.Stat(filePath)
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: fmt.Sprintf("Asset not found: %s", name)})
		return
	}

	c.File(filePath)
}

func (ws *WebServer) handleCelebrate(c *gin.Context) {
	ws.seq.Trigger(c.Request.Context())
	c.JSON(http.StatusOK, ws.state())
}

func (ws *WebServer) handleGetState(c *gin.Context) {
	c.JSON(http.StatusOK, ws.state())
}

func (ws *WebServer) state() models.StateResponse {
	resp := models.StateResponse{
		Celebration: ws.seq.State(),
		PanelOpen:   ws.surface.Available(),
		Frame:       ws.surface.Frame(),
	}
	if ws.errors != nil {
		resp.Errors = ws.errors()
	}
	return resp
}
