package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"laptop-price-api/logger"
)

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to grace. Request contexts derive from ctx, so long-lived websocket
// handlers also see the cancellation.
func Run(ctx context.Context, ln net.Listener, handler http.Handler, grace time.Duration, log *logger.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", "grace", grace.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func ListenAndRun(ctx context.Context, addr string, handler http.Handler, grace time.Duration, log *logger.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return Run(ctx, ln, handler, grace, log)
}
