package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"musicstream/internal/logging"
	"musicstream/internal/models"
)

// UserService captures the user operations needed by the HTTP handlers.
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, name string, age int) (models.User, error)
}

// TrackService captures the track catalogue operations.
type TrackService interface {
	List(ctx context.Context) ([]models.Track, error)
	Create(ctx context.Context, title, artist string) (models.Track, error)
}

// PlaylistService coordinates playlist-related operations.
type PlaylistService interface {
	ListByUser(ctx context.Context, userID int64) ([]models.PlaylistSummary, error)
	ListByTrack(ctx context.Context, trackID int64) ([]models.PlaylistSummary, error)
	GetWithTracks(ctx context.Context, playlistID int64) (models.PlaylistDetail, error)
	Create(ctx context.Context, ownerID int64, name string, trackIDs []int64) (models.PlaylistSummary, error)
}

// Pinger reports whether the backing store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	users     UserService
	tracks    TrackService
	playlists PlaylistService
	pinger    Pinger
}

// New configures a Server with the given services.
func New(users UserService, tracks TrackService, playlists PlaylistService) *Server {
	return &Server{
		users:     users,
		tracks:    tracks,
		playlists: playlists,
	}
}

// WithPinger makes /health report 503 while p fails to answer.
func (s *Server) WithPinger(p Pinger) *Server {
	s.pinger = p
	return s
}

// Routes returns a router serving only the REST endpoints.
func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()
	s.Register(router)
	return router
}

// Register mounts the REST endpoints on router.
func (s *Server) Register(router *mux.Router) {
	router.HandleFunc("/health", s.health).Methods(http.MethodGet)

	router.HandleFunc("/users", s.listUsers).Methods(http.MethodGet)
	router.HandleFunc("/users", s.createUser).Methods(http.MethodPost)

	router.HandleFunc("/tracks", s.listTracks).Methods(http.MethodGet)
	router.HandleFunc("/tracks", s.createTrack).Methods(http.MethodPost)
	router.HandleFunc("/tracks/{trackId}/playlists", s.listPlaylistsByTrack).Methods(http.MethodGet)

	router.HandleFunc("/playlists", s.createPlaylist).Methods(http.MethodPost)
	router.HandleFunc("/playlists/user/{userId}", s.listPlaylistsByUser).Methods(http.MethodGet)
	router.HandleFunc("/playlists/{playlistId}/tracks", s.getPlaylistTracks).Methods(http.MethodGet)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			logging.WithContext(r.Context()).Warn().Err(err).Msg("health check failed")
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// writeError maps service errors onto status codes. Unexpected errors are
// logged and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error()})
	case errors.Is(err, models.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		logging.WithContext(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	idStr := mux.Vars(r)[name]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + name})
		return 0, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
