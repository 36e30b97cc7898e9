package tracks

import (
	"context"
	"strings"

	"musicstream/internal/models"
)

// Store captures the persistence needs for the track catalogue.
type Store interface {
	ListTracks(ctx context.Context) ([]models.Track, error)
	CreateTrack(ctx context.Context, title, artist string) (models.Track, error)
}

// Service exposes track-centric operations.
type Service interface {
	List(ctx context.Context) ([]models.Track, error)
	Create(ctx context.Context, title, artist string) (models.Track, error)
}

type service struct {
	store Store
}

// New constructs a track Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context) ([]models.Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListTracks(ctx)
}

func (s *service) Create(ctx context.Context, title, artist string) (models.Track, error) {
	if err := ctx.Err(); err != nil {
		return models.Track{}, err
	}

	title = strings.TrimSpace(title)
	artist = strings.TrimSpace(artist)
	switch {
	case title == "":
		return models.Track{}, models.Invalid("title", "is required")
	case artist == "":
		return models.Track{}, models.Invalid("artist", "is required")
	}
	return s.store.CreateTrack(ctx, title, artist)
}
