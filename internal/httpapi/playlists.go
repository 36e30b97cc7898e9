package httpapi

import "net/http"

type playlistRequest struct {
	OwnerID  int64   `json:"ownerId"`
	Name     string  `json:"name"`
	TrackIDs []int64 `json:"trackIds"`
}

func (s *Server) listPlaylistsByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r, "userId")
	if !ok {
		return
	}

	playlists, err := s.playlists.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playlists)
}

func (s *Server) getPlaylistTracks(w http.ResponseWriter, r *http.Request) {
	playlistID, ok := parseIDParam(w, r, "playlistId")
	if !ok {
		return
	}

	detail, err := s.playlists.GetWithTracks(r.Context(), playlistID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) createPlaylist(w http.ResponseWriter, r *http.Request) {
	var req playlistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := s.playlists.Create(r.Context(), req.OwnerID, req.Name, req.TrackIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
