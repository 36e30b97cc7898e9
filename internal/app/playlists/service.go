package playlists

import (
	"context"
	"strings"

	"musicstream/internal/models"
)

// Store captures the persistence needs for playlist workflows.
type Store interface {
	ListPlaylistsByUser(ctx context.Context, userID int64) ([]models.PlaylistSummary, error)
	ListPlaylistsByTrack(ctx context.Context, trackID int64) ([]models.PlaylistSummary, error)
	GetPlaylistWithTracks(ctx context.Context, playlistID int64) (models.PlaylistDetail, error)
	CreatePlaylist(ctx context.Context, playlist models.NewPlaylist) (models.PlaylistSummary, error)
}

// Service coordinates playlist-related operations.
type Service interface {
	ListByUser(ctx context.Context, userID int64) ([]models.PlaylistSummary, error)
	ListByTrack(ctx context.Context, trackID int64) ([]models.PlaylistSummary, error)
	GetWithTracks(ctx context.Context, playlistID int64) (models.PlaylistDetail, error)
	Create(ctx context.Context, ownerID int64, name string, trackIDs []int64) (models.PlaylistSummary, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) ListByUser(ctx context.Context, userID int64) ([]models.PlaylistSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPlaylistsByUser(ctx, userID)
}

func (s *service) ListByTrack(ctx context.Context, trackID int64) ([]models.PlaylistSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPlaylistsByTrack(ctx, trackID)
}

func (s *service) GetWithTracks(ctx context.Context, playlistID int64) (models.PlaylistDetail, error) {
	if err := ctx.Err(); err != nil {
		return models.PlaylistDetail{}, err
	}
	return s.store.GetPlaylistWithTracks(ctx, playlistID)
}

// Create stores a playlist owned by ownerID. Owner and track references are
// checked by the store inside the same transaction that writes the rows.
func (s *service) Create(ctx context.Context, ownerID int64, name string, trackIDs []int64) (models.PlaylistSummary, error) {
	if err := ctx.Err(); err != nil {
		return models.PlaylistSummary{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return models.PlaylistSummary{}, models.Invalid("name", "is required")
	}
	if ownerID <= 0 {
		return models.PlaylistSummary{}, models.Invalid("ownerId", "must be positive")
	}
	return s.store.CreatePlaylist(ctx, models.NewPlaylist{
		OwnerID:  ownerID,
		Name:     name,
		TrackIDs: trackIDs,
	})
}
