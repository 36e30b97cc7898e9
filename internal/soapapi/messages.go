package soapapi

import (
	"encoding/xml"

	"musicstream/internal/models"
)

type playlistsByUserRequest struct {
	UserID string `xml:"usuarioId"`
}

type playlistTracksRequest struct {
	PlaylistID string `xml:"playlistId"`
}

type playlistsByTrackRequest struct {
	TrackID string `xml:"musicaId"`
}

type createUserRequest struct {
	Name string `xml:"name"`
	Age  string `xml:"age"`
}

type createTrackRequest struct {
	Title  string `xml:"title"`
	Artist string `xml:"artist"`
}

type createPlaylistRequest struct {
	UserID   string   `xml:"usuarioId"`
	Name     string   `xml:"name"`
	TrackIDs []string `xml:"trackIds"`
}

type listUsersResponse struct {
	XMLName xml.Name      `xml:"http://streaming.com/music/soap listarUsuariosResponse"`
	Users   []models.User `xml:"users"`
}

type createUserResponse struct {
	XMLName xml.Name    `xml:"http://streaming.com/music/soap criarUsuarioResponse"`
	User    models.User `xml:"user"`
}

type listTracksResponse struct {
	XMLName xml.Name       `xml:"http://streaming.com/music/soap listarMusicasResponse"`
	Tracks  []models.Track `xml:"tracks"`
}

type createTrackResponse struct {
	XMLName xml.Name     `xml:"http://streaming.com/music/soap criarMusicaResponse"`
	Track   models.Track `xml:"track"`
}

type playlistsByUserResponse struct {
	XMLName   xml.Name                 `xml:"http://streaming.com/music/soap listarPlaylistsPorUsuarioResponse"`
	Playlists []models.PlaylistSummary `xml:"playlists"`
}

type playlistsByTrackResponse struct {
	XMLName   xml.Name                 `xml:"http://streaming.com/music/soap listarPlaylistsPorMusicaResponse"`
	Playlists []models.PlaylistSummary `xml:"playlists"`
}

type playlistTracksResponse struct {
	XMLName  xml.Name               `xml:"http://streaming.com/music/soap listarMusicasDaPlaylistResponse"`
	Playlist *models.PlaylistDetail `xml:"playlist,omitempty"`
}

type createPlaylistResponse struct {
	XMLName  xml.Name               `xml:"http://streaming.com/music/soap criarPlaylistResponse"`
	Playlist models.PlaylistSummary `xml:"playlist"`
}
