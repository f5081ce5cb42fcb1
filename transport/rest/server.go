package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/battleships-bot/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type statusProvider interface {
	Status() usecase.Status
}

type Server struct {
	logger *slog.Logger
	port   string
	echo   *echo.Echo
}

func New(logger *slog.Logger, port string, bot statusProvider) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 10 * time.Second
	e.Server.IdleTimeout = 30 * time.Second

	h := NewHandlers(bot)
	e.GET("/ping", h.Ping)
	e.GET("/status", h.Status)

	return &Server{
		logger: logger.With("component", "rest"),
		port:   port,
		echo:   e,
	}
}

// Handler exposes the router, mainly for tests.
func (that *Server) Handler() http.Handler {
	return that.echo
}

// Start - serves until ctx is cancelled.
func (that *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := that.echo.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("could not shut down HTTP server", "error", err)
		}
	}()

	that.logger.Info("Starting HTTP server", "port", that.port)

	if err := that.echo.Start(":" + that.port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
