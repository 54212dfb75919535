package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/fleetops/rosterd/internal/pkg/logger"
)

// GracefulServer wraps the Echo server with signal-driven shutdown.
type GracefulServer struct {
	echo   *echo.Echo
	log    *logger.AppLogger
	port   int
	sdTime time.Duration
}

// NewGracefulServer creates a new server with graceful shutdown
func NewGracefulServer(e *echo.Echo, log *logger.AppLogger, port int, shutdownTimeout time.Duration) *GracefulServer {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	return &GracefulServer{
		echo:   e,
		log:    log,
		port:   port,
		sdTime: shutdownTimeout,
	}
}

// Start runs the server and blocks until an interrupt or SIGTERM arrives,
// then shuts down gracefully.
func (s *GracefulServer) Start() error {
	go func() {
		addr := fmt.Sprintf(":%d", s.port)
		s.log.WithFields(logrus.Fields{"address": addr}).Info("Starting HTTP server")

		if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
			s.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	sig := <-quit
	s.log.WithFields(logrus.Fields{"signal": sig.String()}).Info("Received shutdown signal")

	return s.Shutdown()
}

// Shutdown gracefully shuts down the server
func (s *GracefulServer) Shutdown() error {
	s.log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), s.sdTime)
	defer cancel()

	if err := s.echo.Shutdown(ctx); err != nil {
		s.log.WithError(err).Error("Server forced to shutdown")
		return err
	}

	s.log.Info("Server shutdown completed")
	return nil
}
