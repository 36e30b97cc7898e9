package soapapi

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"musicstream/internal/app/playlists"
	"musicstream/internal/app/tracks"
	"musicstream/internal/app/users"
	"musicstream/internal/models"
	"musicstream/internal/store"
)

type responseDoc struct {
	Body struct {
		Fault *struct {
			Code   string `xml:"faultcode"`
			String string `xml:"faultstring"`
		} `xml:"Fault"`
		Users struct {
			Users []models.User `xml:"users"`
		} `xml:"listarUsuariosResponse"`
		Tracks struct {
			Tracks []models.Track `xml:"tracks"`
		} `xml:"listarMusicasResponse"`
		CreatedTrack struct {
			Track models.Track `xml:"track"`
		} `xml:"criarMusicaResponse"`
		ByUser struct {
			Playlists []models.PlaylistSummary `xml:"playlists"`
		} `xml:"listarPlaylistsPorUsuarioResponse"`
		Detail *struct {
			Playlist *models.PlaylistDetail `xml:"playlist"`
		} `xml:"listarMusicasDaPlaylistResponse"`
		CreatedPlaylist struct {
			Playlist models.PlaylistSummary `xml:"playlist"`
		} `xml:"criarPlaylistResponse"`
	} `xml:"Body"`
}

func newTestServer(mem *store.Memory) *Server {
	return New(users.New(mem), tracks.New(mem), playlists.New(mem))
}

func call(t *testing.T, h http.Handler, payload string) (*httptest.ResponseRecorder, responseDoc) {
	t.Helper()
	body := `<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:mus="http://streaming.com/music/soap">
  <soapenv:Header/>
  <soapenv:Body>` + payload + `</soapenv:Body>
</soapenv:Envelope>`

	req := httptest.NewRequest(http.MethodPost, "/ws", strings.NewReader(body))
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var doc responseDoc
	if err := xml.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, doc
}

func seeded(t *testing.T) *store.Memory {
	t.Helper()
	ctx := context.Background()
	mem := store.NewMemory()
	owner, _ := mem.CreateUser(ctx, "Carla Oliveira", 31)
	first, _ := mem.CreateTrack(ctx, "Back in Black", "AC/DC")
	second, _ := mem.CreateTrack(ctx, "November Rain", "Guns N' Roses")
	if _, err := mem.CreatePlaylist(ctx, models.NewPlaylist{
		OwnerID:  owner.ID,
		Name:     "Para Treinar - Carla",
		TrackIDs: []int64{second.ID, first.ID},
	}); err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}
	return mem
}

func TestListOperations(t *testing.T) {
	h := newTestServer(seeded(t))

	rec, doc := call(t, h, `<mus:listarUsuariosRequest/>`)
	if rec.Code != http.StatusOK || len(doc.Body.Users.Users) != 1 || doc.Body.Users.Users[0].Age != 31 {
		t.Fatalf("listarUsuarios: %d %+v", rec.Code, doc.Body.Users)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/xml") {
		t.Fatalf("unexpected content type %q", ct)
	}

	_, doc = call(t, h, `<mus:listarMusicasRequest/>`)
	if len(doc.Body.Tracks.Tracks) != 2 || doc.Body.Tracks.Tracks[1].Title != "November Rain" {
		t.Fatalf("listarMusicas: %+v", doc.Body.Tracks)
	}

	_, doc = call(t, h, `<mus:listarPlaylistsPorUsuarioRequest><mus:usuarioId>1</mus:usuarioId></mus:listarPlaylistsPorUsuarioRequest>`)
	if len(doc.Body.ByUser.Playlists) != 1 || doc.Body.ByUser.Playlists[0].OwnerName != "Carla Oliveira" {
		t.Fatalf("listarPlaylistsPorUsuario: %+v", doc.Body.ByUser)
	}

	_, doc = call(t, h, `<mus:listarMusicasDaPlaylistRequest><playlistId>1</playlistId></mus:listarMusicasDaPlaylistRequest>`)
	if doc.Body.Detail == nil || doc.Body.Detail.Playlist == nil {
		t.Fatalf("expected playlist detail")
	}
	if got := doc.Body.Detail.Playlist.Tracks; len(got) != 2 || got[0].Title != "November Rain" {
		t.Fatalf("expected tracks in insertion order, got %+v", got)
	}
}

func TestMissingPlaylistOmitsElement(t *testing.T) {
	rec, doc := call(t, newTestServer(store.NewMemory()),
		`<mus:listarMusicasDaPlaylistRequest><mus:playlistId>12345</mus:playlistId></mus:listarMusicasDaPlaylistRequest>`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if doc.Body.Detail == nil {
		t.Fatalf("expected a response element, got %s", rec.Body.String())
	}
	if doc.Body.Detail.Playlist != nil {
		t.Fatalf("expected no playlist child, got %+v", doc.Body.Detail.Playlist)
	}
}

func TestCreateOperations(t *testing.T) {
	mem := seeded(t)
	h := newTestServer(mem)

	_, doc := call(t, h, `<mus:criarMusicaRequest><mus:title>Africa</mus:title><mus:artist>Toto</mus:artist></mus:criarMusicaRequest>`)
	if doc.Body.CreatedTrack.Track.ID != 3 || doc.Body.CreatedTrack.Track.Artist != "Toto" {
		t.Fatalf("criarMusica: %+v", doc.Body.CreatedTrack)
	}

	_, doc = call(t, h, `<mus:criarPlaylistRequest>
		<mus:usuarioId>1</mus:usuarioId>
		<mus:name>Mix</mus:name>
		<mus:trackIds>3</mus:trackIds>
		<mus:trackIds>1</mus:trackIds>
	</mus:criarPlaylistRequest>`)
	if doc.Body.CreatedPlaylist.Playlist.ID != 2 {
		t.Fatalf("criarPlaylist: %+v", doc.Body.CreatedPlaylist)
	}

	byTrack, _ := mem.ListPlaylistsByTrack(context.Background(), 3)
	if len(byTrack) != 1 || byTrack[0].Name != "Mix" {
		t.Fatalf("expected new playlist to contain track 3, got %+v", byTrack)
	}
}

func TestClientFaults(t *testing.T) {
	h := newTestServer(seeded(t))

	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{name: "validation", payload: `<mus:criarUsuarioRequest><mus:name> </mus:name><mus:age>30</mus:age></mus:criarUsuarioRequest>`, want: "name is required"},
		{name: "bad id", payload: `<mus:listarPlaylistsPorUsuarioRequest><mus:usuarioId>abc</mus:usuarioId></mus:listarPlaylistsPorUsuarioRequest>`, want: "usuarioId must be a numeric id"},
		{name: "unknown operation", payload: `<mus:apagarTudoRequest/>`, want: "unknown operation apagarTudoRequest"},
		{name: "wrong namespace", payload: `<listarMusicasRequest xmlns="urn:other"/>`, want: "unexpected namespace"},
		{name: "empty body", payload: ``, want: "empty SOAP body"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec, doc := call(t, h, tc.payload)
			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("expected status 500, got %d", rec.Code)
			}
			if doc.Body.Fault == nil {
				t.Fatalf("expected fault, got %s", rec.Body.String())
			}
			if doc.Body.Fault.Code != "soapenv:Client" || !strings.Contains(doc.Body.Fault.String, tc.want) {
				t.Fatalf("unexpected fault %+v", doc.Body.Fault)
			}
		})
	}
}

func TestMalformedEnvelope(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/ws", strings.NewReader(`<notsoap/>`))
	rec := httptest.NewRecorder()
	newTestServer(store.NewMemory()).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), "soapenv:Client") {
		t.Fatalf("expected client fault, got %d %s", rec.Code, rec.Body.String())
	}
}

type brokenTracks struct{}

func (brokenTracks) List(context.Context) ([]models.Track, error) {
	return nil, fmt.Errorf("list tracks: %w: %w", models.ErrStoreUnavailable, errors.New("connection reset"))
}

func (brokenTracks) Create(context.Context, string, string) (models.Track, error) {
	return models.Track{}, errors.New("unreachable")
}

func TestServerFaultHidesCause(t *testing.T) {
	mem := store.NewMemory()
	h := New(users.New(mem), brokenTracks{}, playlists.New(mem))

	rec, doc := call(t, h, `<mus:listarMusicasRequest/>`)
	if doc.Body.Fault == nil || doc.Body.Fault.Code != "soapenv:Server" || doc.Body.Fault.String != "internal error" {
		t.Fatalf("unexpected response %s", rec.Body.String())
	}
}

func TestServeWSDL(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://music.test/ws/musicStreaming.wsdl", nil)
	rec := httptest.NewRecorder()
	newTestServer(store.NewMemory()).ServeWSDL(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, `location="http://music.test/ws"`) {
		t.Fatalf("expected endpoint address in WSDL, got %s", body)
	}
	for _, op := range []string{"listarMusicasDaPlaylistRequest", "criarPlaylistRequest", "listarPlaylistsPorMusicaResponse"} {
		if !strings.Contains(body, op) {
			t.Fatalf("WSDL is missing %s", op)
		}
	}
}

func TestDispatchIgnoresSOAPAction(t *testing.T) {
	h := newTestServer(seeded(t))
	envelope := `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:mus="http://streaming.com/music/soap">` +
		`<soapenv:Body><mus:listarUsuariosRequest/></soapenv:Body></soapenv:Envelope>`

	tests := []struct {
		name   string
		action *string
	}{
		{name: "no header"},
		{name: "empty", action: ptr("")},
		{name: "quoted empty", action: ptr(`""`)},
		{name: "operation name", action: ptr(`"http://streaming.com/music/soap/listarUsuarios"`)},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/ws", strings.NewReader(envelope))
			if tc.action != nil {
				req.Header.Set("SOAPAction", *tc.action)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			var doc responseDoc
			if err := xml.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if rec.Code != http.StatusOK || len(doc.Body.Users.Users) != 1 {
				t.Fatalf("expected dispatch by payload element, got %d %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func ptr(s string) *string {
	return &s
}
