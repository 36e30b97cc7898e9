// Package soapapi serves the catalogue as a SOAP 1.1 document/literal service.
package soapapi

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/xml"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"musicstream/internal/logging"
	"musicstream/internal/models"
)

//go:embed musicStreaming.wsdl
var wsdlTemplate []byte

// UserService lists and creates users.
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, name string, age int) (models.User, error)
}

// TrackService lists and creates tracks.
type TrackService interface {
	List(ctx context.Context) ([]models.Track, error)
	Create(ctx context.Context, title, artist string) (models.Track, error)
}

// PlaylistService exposes playlist navigation and creation.
type PlaylistService interface {
	ListByUser(ctx context.Context, userID int64) ([]models.PlaylistSummary, error)
	ListByTrack(ctx context.Context, trackID int64) ([]models.PlaylistSummary, error)
	GetWithTracks(ctx context.Context, playlistID int64) (models.PlaylistDetail, error)
	Create(ctx context.Context, ownerID int64, name string, trackIDs []int64) (models.PlaylistSummary, error)
}

type operation func(ctx context.Context, dec *xml.Decoder, start xml.StartElement) (any, error)

// Server dispatches SOAP requests by payload element name.
type Server struct {
	users      UserService
	tracks     TrackService
	playlists  PlaylistService
	operations map[string]operation
}

// New builds a Server over the given services.
func New(users UserService, tracks TrackService, playlists PlaylistService) *Server {
	s := &Server{users: users, tracks: tracks, playlists: playlists}
	s.operations = map[string]operation{
		"listarUsuariosRequest":            s.listUsers,
		"criarUsuarioRequest":              s.createUser,
		"listarMusicasRequest":             s.listTracks,
		"criarMusicaRequest":               s.createTrack,
		"listarPlaylistsPorUsuarioRequest": s.playlistsByUser,
		"listarMusicasDaPlaylistRequest":   s.playlistTracks,
		"listarPlaylistsPorMusicaRequest":  s.playlistsByTrack,
		"criarPlaylistRequest":             s.createPlaylist,
	}
	return s
}

// ServeHTTP handles a single SOAP call.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	dec := xml.NewDecoder(r.Body)
	start, err := readPayload(dec)
	if err != nil {
		writeFault(w, "Client", err.Error())
		return
	}
	if start.Name.Space != Namespace {
		writeFault(w, "Client", "unexpected namespace "+strconv.Quote(start.Name.Space))
		return
	}

	op, ok := s.operations[start.Name.Local]
	if !ok {
		writeFault(w, "Client", "unknown operation "+start.Name.Local)
		return
	}

	payload, err := op(r.Context(), dec, start)
	if err != nil {
		s.writeError(w, r, start.Name.Local, err)
		return
	}
	writeEnvelope(w, http.StatusOK, responseBody{Payload: payload})
}

// ServeWSDL returns the service description with the endpoint address of
// the current host.
func (s *Server) ServeWSDL(w http.ResponseWriter, r *http.Request) {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	address := scheme + "://" + r.Host + strings.TrimSuffix(r.URL.Path, "/musicStreaming.wsdl")

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	_, _ = w.Write(bytes.ReplaceAll(wsdlTemplate, []byte("{{ADDRESS}}"), []byte(address)))
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeFault(w, "Client", verr.Error())
	case errors.Is(err, models.ErrValidation), errors.Is(err, errMalformedRequest):
		writeFault(w, "Client", err.Error())
	default:
		logging.WithContext(r.Context()).Error().Err(err).Str("operation", opName).Msg("soap operation failed")
		writeFault(w, "Server", "internal error")
	}
}

func decodeRequest(dec *xml.Decoder, start xml.StartElement, dst any) error {
	if err := dec.DecodeElement(dst, &start); err != nil {
		return errMalformedRequest
	}
	return nil
}

func parseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, models.Invalid(field, "must be a numeric id")
	}
	return id, nil
}

func (s *Server) listUsers(ctx context.Context, _ *xml.Decoder, _ xml.StartElement) (any, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return listUsersResponse{Users: users}, nil
}

func (s *Server) createUser(ctx context.Context, dec *xml.Decoder, start xml.StartElement) (any, error) {
	var req createUserRequest
	if err := decodeRequest(dec, start, &req); err != nil {
		return nil, err
	}
	age, err := strconv.Atoi(strings.TrimSpace(req.Age))
	if err != nil {
		return nil, models.Invalid("age", "must be a number")
	}

	user, err := s.users.Create(ctx, req.Name, age)
	if err != nil {
		return nil, err
	}
	return createUserResponse{User: user}, nil
}

func (s *Server) listTracks(ctx context.Context, _ *xml.Decoder, _ xml.StartElement) (any, error) {
	tracks, err := s.tracks.List(ctx)
	if err != nil {
		return nil, err
	}
	return listTracksResponse{Tracks: tracks}, nil
}

func (s *Server) createTrack(ctx context.Context, dec *xml.Decoder, start xml.StartElement) (any, error) {
	var req createTrackRequest
	if err := decodeRequest(dec, start, &req); err != nil {
		return nil, err
	}

	track, err := s.tracks.Create(ctx, req.Title, req.Artist)
	if err != nil {
		return nil, err
	}
	return createTrackResponse{Track: track}, nil
}

func (s *Server) playlistsByUser(ctx context.Context, dec *xml.Decoder, start xml.StartElement) (any, error) {
	var req playlistsByUserRequest
	if err := decodeRequest(dec, start, &req); err != nil {
		return nil, err
	}
	userID, err := parseID("usuarioId", req.UserID)
	if err != nil {
		return nil, err
	}

	playlists, err := s.playlists.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return playlistsByUserResponse{Playlists: playlists}, nil
}

func (s *Server) playlistsByTrack(ctx context.Context, dec *xml.Decoder, start xml.StartElement) (any, error) {
	var req playlistsByTrackRequest
	if err := decodeRequest(dec, start, &req); err != nil {
		return nil, err
	}
	trackID, err := parseID("musicaId", req.TrackID)
	if err != nil {
		return nil, err
	}

	playlists, err := s.playlists.ListByTrack(ctx, trackID)
	if err != nil {
		return nil, err
	}
	return playlistsByTrackResponse{Playlists: playlists}, nil
}

// playlistTracks answers with an empty response element when the playlist
// does not exist.
func (s *Server) playlistTracks(ctx context.Context, dec *xml.Decoder, start xml.StartElement) (any, error) {
	var req playlistTracksRequest
	if err := decodeRequest(dec, start, &req); err != nil {
		return nil, err
	}
	playlistID, err := parseID("playlistId", req.PlaylistID)
	if err != nil {
		return nil, err
	}

	detail, err := s.playlists.GetWithTracks(ctx, playlistID)
	switch {
	case errors.Is(err, models.ErrNotFound):
		return playlistTracksResponse{}, nil
	case err != nil:
		return nil, err
	}
	return playlistTracksResponse{Playlist: &detail}, nil
}

func (s *Server) createPlaylist(ctx context.Context, dec *xml.Decoder, start xml.StartElement) (any, error) {
	var req createPlaylistRequest
	if err := decodeRequest(dec, start, &req); err != nil {
		return nil, err
	}
	ownerID, err := parseID("usuarioId", req.UserID)
	if err != nil {
		return nil, err
	}
	trackIDs := make([]int64, 0, len(req.TrackIDs))
	for _, raw := range req.TrackIDs {
		id, err := parseID("trackIds", raw)
		if err != nil {
			return nil, err
		}
		trackIDs = append(trackIDs, id)
	}

	created, err := s.playlists.Create(ctx, ownerID, req.Name, trackIDs)
	if err != nil {
		return nil, err
	}
	return createPlaylistResponse{Playlist: created}, nil
}
