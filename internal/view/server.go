package view

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"
)

// Handler serves a scanned build directory: dataset files at the root and
// narrative files under /narratives/.
func Handler(b *Build) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(b.DatasetDir)))
	mux.Handle("/narratives/", http.StripPrefix("/narratives/", http.FileServer(http.Dir(b.NarrativeDir))))
	return mux
}

// Serve listens on host:port and serves the build until ctx is cancelled,
// then shuts the server down gracefully.
func Serve(ctx context.Context, host string, port int, b *Build) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(host, strconv.Itoa(port)),
		Handler:           Handler(b),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
