package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/david-mangena/e-commerce-site/internal/config"
	"github.com/david-mangena/e-commerce-site/internal/observability"
)

// ServerDependencies holds all dependencies needed for the sandbox servers
type ServerDependencies struct {
	ServerConfig      config.ServerConfig
	StorefrontHandler http.Handler
	BookerHandler     http.Handler
	Logger            *zap.Logger
}

// Servers is the running storefront and booker pair
type Servers struct {
	Storefront         *http.Server
	Booker             *http.Server
	StorefrontListener net.Listener
	BookerListener     net.Listener
}

// All returns both servers
func (s *Servers) All() []*http.Server {
	return []*http.Server{s.Storefront, s.Booker}
}

// Close stops both servers immediately
func (s *Servers) Close() {
	s.Storefront.Close()
	s.Booker.Close()
}

// RunServe starts the sandbox servers and blocks until a shutdown signal
func RunServe(deps ServerDependencies) error {
	servers, err := StartServers(deps)
	if err != nil {
		return err
	}
	defer servers.StorefrontListener.Close()
	defer servers.BookerListener.Close()

	return WaitForShutdown(nil, deps.Logger, servers.All()...)
}

// StartServers starts the storefront and the booker on their configured ports
func StartServers(deps ServerDependencies) (*Servers, error) {
	logger := observability.OrNop(deps.Logger)

	storefrontListener, storefront, err := StartServer(deps.ServerConfig.Port, deps.StorefrontHandler, logger.Named("storefront"))
	if err != nil {
		return nil, fmt.Errorf("failed to start storefront: %w", err)
	}

	bookerListener, booker, err := StartServer(deps.ServerConfig.BookerPort, deps.BookerHandler, logger.Named("booker"))
	if err != nil {
		storefront.Close()
		return nil, fmt.Errorf("failed to start booker: %w", err)
	}

	return &Servers{
		Storefront:         storefront,
		Booker:             booker,
		StorefrontListener: storefrontListener,
		BookerListener:     bookerListener,
	}, nil
}

// StartServer creates and starts an HTTP server, returning the listener and server
func StartServer(port string, handler http.Handler, logger *zap.Logger) (net.Listener, *http.Server, error) {
	logger = observability.OrNop(logger)

	// Create listener
	addr := fmt.Sprintf(":%s", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server listening", zap.String("addr", listener.Addr().String()))
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", zap.Error(err))
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the servers.
// If shutdown channel is nil, a new channel will be created and registered with signal.Notify
func WaitForShutdown(shutdown chan os.Signal, logger *zap.Logger, servers ...*http.Server) error {
	return WaitForShutdownWithTimeout(shutdown, 30*time.Second, logger, servers...)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(shutdown chan os.Signal, shutdownTimeout time.Duration, logger *zap.Logger, servers ...*http.Server) error {
	logger = observability.OrNop(logger)

	// Channel to listen for interrupt or terminate signals
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(shutdown)
	}

	sig := <-shutdown
	logger.Info("Received signal, shutting down servers", zap.String("signal", sig.String()))

	// Give outstanding requests time to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	for _, server := range servers {
		if err := server.Shutdown(ctx); err != nil {
			// Force close the server after timeout
			if err := server.Close(); err != nil {
				errs = append(errs, fmt.Errorf("could not stop server gracefully: %w", err))
			}
		}
	}

	logger.Info("Servers stopped")
	return errors.Join(errs...)
}
