package httpapi

import "net/http"

type trackRequest struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

func (s *Server) listTracks(w http.ResponseWriter, r *http.Request) {
	tracks, err := s.tracks.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tracks)
}

func (s *Server) createTrack(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	track, err := s.tracks.Create(r.Context(), req.Title, req.Artist)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, track)
}

func (s *Server) listPlaylistsByTrack(w http.ResponseWriter, r *http.Request) {
	trackID, ok := parseIDParam(w, r, "trackId")
	if !ok {
		return
	}

	playlists, err := s.playlists.ListByTrack(r.Context(), trackID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playlists)
}
