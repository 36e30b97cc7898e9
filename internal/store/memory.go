package store

import (
	"context"
	"fmt"
	"sync"

	"musicstream/internal/models"
)

// Memory keeps the catalogue in process memory. It offers the same read and
// write surface as Store and is used for local runs and tests.
type Memory struct {
	mu    sync.RWMutex
	state *memoryState
}

type memoryState struct {
	users     []models.User
	tracks    []models.Track
	playlists []memoryPlaylist
}

type memoryPlaylist struct {
	id       int64
	name     string
	ownerID  int64
	trackIDs []int64
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{state: &memoryState{}}
}

// Exclusive runs fn against a private copy of the catalogue while holding the
// write lock. The copy replaces the live state only when fn succeeds.
func (m *Memory) Exclusive(ctx context.Context, fn func(w Writer) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	draft := m.state.clone()
	if err := fn(draft); err != nil {
		return err
	}
	m.state = draft
	return nil
}

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error {
	return nil
}

// CountUsers returns the number of stored users.
func (m *Memory) CountUsers(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.CountUsers(ctx)
}

// CreateUser stores a user and returns it with its assigned id.
func (m *Memory) CreateUser(ctx context.Context, name string, age int) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.CreateUser(ctx, name, age)
}

// ListUsers returns every user ordered by id.
func (m *Memory) ListUsers(context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]models.User, len(m.state.users))
	copy(users, m.state.users)
	return users, nil
}

// CreateTrack stores a track and returns it with its assigned id.
func (m *Memory) CreateTrack(ctx context.Context, title, artist string) (models.Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.CreateTrack(ctx, title, artist)
}

// ListTracks returns the whole catalogue ordered by id.
func (m *Memory) ListTracks(context.Context) ([]models.Track, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tracks := make([]models.Track, len(m.state.tracks))
	copy(tracks, m.state.tracks)
	return tracks, nil
}

// CreatePlaylist validates references and stores the playlist.
func (m *Memory) CreatePlaylist(ctx context.Context, playlist models.NewPlaylist) (models.PlaylistSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.CreatePlaylist(ctx, playlist)
}

// ListPlaylistsByUser returns the playlists owned by userID.
func (m *Memory) ListPlaylistsByUser(_ context.Context, userID int64) ([]models.PlaylistSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	playlists := make([]models.PlaylistSummary, 0)
	for _, p := range m.state.playlists {
		if p.ownerID == userID {
			playlists = append(playlists, m.state.summary(p))
		}
	}
	return playlists, nil
}

// ListPlaylistsByTrack returns every playlist that contains trackID.
func (m *Memory) ListPlaylistsByTrack(_ context.Context, trackID int64) ([]models.PlaylistSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	playlists := make([]models.PlaylistSummary, 0)
	for _, p := range m.state.playlists {
		for _, id := range p.trackIDs {
			if id == trackID {
				playlists = append(playlists, m.state.summary(p))
				break
			}
		}
	}
	return playlists, nil
}

// GetPlaylistWithTracks returns a playlist and its tracks in insertion order.
func (m *Memory) GetPlaylistWithTracks(_ context.Context, playlistID int64) (models.PlaylistDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if playlistID < 1 || playlistID > int64(len(m.state.playlists)) {
		return models.PlaylistDetail{}, fmt.Errorf("playlist %d: %w", playlistID, models.ErrNotFound)
	}
	p := m.state.playlists[playlistID-1]

	detail := models.PlaylistDetail{
		ID:     p.id,
		Name:   p.name,
		Tracks: make([]models.Track, 0, len(p.trackIDs)),
	}
	for _, id := range p.trackIDs {
		detail.Tracks = append(detail.Tracks, m.state.tracks[id-1])
	}
	return detail, nil
}

// memoryState methods assume the caller holds the appropriate lock. Ids are
// dense, so the record with id n lives at index n-1.

func (s *memoryState) CountUsers(context.Context) (int64, error) {
	return int64(len(s.users)), nil
}

func (s *memoryState) CreateUser(_ context.Context, name string, age int) (models.User, error) {
	user := models.User{ID: int64(len(s.users)) + 1, Name: name, Age: age}
	s.users = append(s.users, user)
	return user, nil
}

func (s *memoryState) CreateTrack(_ context.Context, title, artist string) (models.Track, error) {
	track := models.Track{ID: int64(len(s.tracks)) + 1, Title: title, Artist: artist}
	s.tracks = append(s.tracks, track)
	return track, nil
}

func (s *memoryState) CreatePlaylist(_ context.Context, playlist models.NewPlaylist) (models.PlaylistSummary, error) {
	if playlist.OwnerID < 1 || playlist.OwnerID > int64(len(s.users)) {
		return models.PlaylistSummary{}, models.Invalid("ownerId", "does not reference an existing user")
	}

	trackIDs := uniqueIDs(playlist.TrackIDs)
	for _, id := range trackIDs {
		if id < 1 || id > int64(len(s.tracks)) {
			return models.PlaylistSummary{}, models.Invalid("trackIds", "references unknown tracks")
		}
	}

	p := memoryPlaylist{
		id:       int64(len(s.playlists)) + 1,
		name:     playlist.Name,
		ownerID:  playlist.OwnerID,
		trackIDs: trackIDs,
	}
	s.playlists = append(s.playlists, p)
	return s.summary(p), nil
}

func (s *memoryState) summary(p memoryPlaylist) models.PlaylistSummary {
	return models.PlaylistSummary{
		ID:        p.id,
		Name:      p.name,
		OwnerID:   p.ownerID,
		OwnerName: s.users[p.ownerID-1].Name,
	}
}

// clone copies the slices so a draft can be discarded without touching the
// original. Playlist track slices are never mutated after creation and are
// shared.
func (s *memoryState) clone() *memoryState {
	return &memoryState{
		users:     append([]models.User(nil), s.users...),
		tracks:    append([]models.Track(nil), s.tracks...),
		playlists: append([]memoryPlaylist(nil), s.playlists...),
	}
}
