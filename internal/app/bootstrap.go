package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"resume-analyzer/internal/config"
	"resume-analyzer/internal/delivery/http/handler"
	"resume-analyzer/internal/delivery/http/middleware"
	"resume-analyzer/internal/delivery/http/routes"
	"resume-analyzer/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// multipartOverhead leaves room for boundaries and headers around the file
// part so the upload cap is enforced by the usecase, not by fasthttp.
const multipartOverhead = 1 << 20

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	cfg := c.Config
	f := fiber.New(fiber.Config{
		AppName:      cfg.App.AppName,
		BodyLimit:    int(cfg.Upload.MaxBytes) + multipartOverhead,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container and the HTTP app. The returned cleanup
// stops the websocket hub and releases the container's connections.
func Bootstrap(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return New(c), cleanup, nil
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (a *App) Serve(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Fiber.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger, "/health").Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	deps := map[string]handler.Pinger{"database": nil, "cache": nil}
	if c.DB != nil {
		deps["database"] = c.DB
	}
	if c.Config.Redis.Enabled() {
		deps["cache"] = c.Cache
	}

	reg := &routes.Registry{
		Health:   handler.NewHealthHandler(c.Scorer, deps),
		Form:     handler.NewFormHandler(c.Resume),
		Analysis: handler.NewAnalysisHandler(c.Resume),
		Lexicon:  handler.NewLexiconHandler(c.Extractor),
		Auth:     middleware.NewAuthMiddleware(c.JWT),
		WS:       ws.NewHandler(c.Hub, c.Logger),
	}
	reg.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
