package store

import (
	"context"
	"errors"
	"testing"

	"musicstream/internal/models"
)

func TestMemoryPlaylistLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	owner, _ := m.CreateUser(ctx, "Carla Souza", 41)
	first, _ := m.CreateTrack(ctx, "Imagine", "John Lennon")
	second, _ := m.CreateTrack(ctx, "Yesterday", "The Beatles")

	created, err := m.CreatePlaylist(ctx, models.NewPlaylist{
		OwnerID:  owner.ID,
		Name:     "Favorites - Carla",
		TrackIDs: []int64{second.ID, first.ID, second.ID},
	})
	if err != nil {
		t.Fatalf("CreatePlaylist returned error: %v", err)
	}
	if created.ID != 1 || created.OwnerName != "Carla Souza" {
		t.Fatalf("unexpected summary: %+v", created)
	}

	detail, err := m.GetPlaylistWithTracks(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetPlaylistWithTracks returned error: %v", err)
	}
	if len(detail.Tracks) != 2 || detail.Tracks[0].ID != second.ID || detail.Tracks[1].ID != first.ID {
		t.Fatalf("expected deduplicated tracks in insertion order, got %+v", detail.Tracks)
	}

	byTrack, _ := m.ListPlaylistsByTrack(ctx, first.ID)
	if len(byTrack) != 1 || byTrack[0].ID != created.ID {
		t.Fatalf("unexpected playlists by track: %+v", byTrack)
	}

	byUser, _ := m.ListPlaylistsByUser(ctx, 999)
	if byUser == nil || len(byUser) != 0 {
		t.Fatalf("expected empty non-nil slice for unknown user, got %#v", byUser)
	}
}

func TestMemoryRejectsDanglingReferences(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	owner, _ := m.CreateUser(ctx, "Diego Lima", 22)

	if _, err := m.CreatePlaylist(ctx, models.NewPlaylist{OwnerID: 42, Name: "x"}); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error for unknown owner, got %v", err)
	}
	if _, err := m.CreatePlaylist(ctx, models.NewPlaylist{OwnerID: owner.ID, Name: "x", TrackIDs: []int64{1}}); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error for unknown track, got %v", err)
	}
	if _, err := m.GetPlaylistWithTracks(ctx, 1); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryExclusiveDiscardsFailedWork(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	boom := errors.New("boom")
	err := m.Exclusive(ctx, func(w Writer) error {
		if _, err := w.CreateUser(ctx, "Elena Santos", 35); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if count, _ := m.CountUsers(ctx); count != 0 {
		t.Fatalf("expected rollback to leave 0 users, got %d", count)
	}

	if err := m.Exclusive(ctx, func(w Writer) error {
		_, err := w.CreateUser(ctx, "Elena Santos", 35)
		return err
	}); err != nil {
		t.Fatalf("Exclusive returned error: %v", err)
	}
	if count, _ := m.CountUsers(ctx); count != 1 {
		t.Fatalf("expected committed user, got %d", count)
	}
}
