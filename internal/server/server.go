// Package server assembles the REST, GraphQL and SOAP facades over a single
// store and runs them behind one HTTP listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"musicstream/internal/app/playlists"
	"musicstream/internal/app/tracks"
	"musicstream/internal/app/users"
	"musicstream/internal/graphqlapi"
	"musicstream/internal/http/middleware"
	"musicstream/internal/httpapi"
	"musicstream/internal/soapapi"
)

// Backend is the persistence surface shared by every facade.
type Backend interface {
	Ping(ctx context.Context) error
	users.Store
	tracks.Store
	playlists.Store
}

const shutdownTimeout = 30 * time.Second

// NewHandler builds the HTTP handler serving all three facades.
func NewHandler(backend Backend, allowedOrigins []string) (http.Handler, error) {
	userSvc := users.New(backend)
	trackSvc := tracks.New(backend)
	playlistSvc := playlists.New(backend)

	router := mux.NewRouter()
	httpapi.New(userSvc, trackSvc, playlistSvc).WithPinger(backend).Register(router)

	graphqlHandler, err := graphqlapi.NewHandler(userSvc, trackSvc, playlistSvc)
	if err != nil {
		return nil, fmt.Errorf("build graphql handler: %w", err)
	}
	router.Handle("/graphql", graphqlHandler).Methods(http.MethodGet, http.MethodPost)

	soap := soapapi.New(userSvc, trackSvc, playlistSvc)
	router.Handle("/ws", soap).Methods(http.MethodPost)
	router.HandleFunc("/ws/musicStreaming.wsdl", soap.ServeWSDL).Methods(http.MethodGet)

	return withMiddleware(router, allowedOrigins), nil
}

// withMiddleware wraps next so that every request, including one that
// panics, is logged once with its request id. CORS sits outside the router
// so preflight requests never reach the method matcher.
func withMiddleware(next http.Handler, allowedOrigins []string) http.Handler {
	handler := middleware.CORS(allowedOrigins)(next)
	handler = middleware.Recovery()(handler)
	return middleware.RequestLogging()(handler)
}

// Serve runs srv until ctx is cancelled, then drains in-flight requests.
func Serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("HTTP server stopped")
	return nil
}
