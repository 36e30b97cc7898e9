package seed

import (
	"context"
	"errors"
	"strings"
	"testing"

	"musicstream/internal/models"
	"musicstream/internal/store"
)

func TestRunSeedsDefaultCatalogue(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	cfg := DefaultConfig()
	cfg.Seed = 42
	res, err := Run(ctx, mem, cfg)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if res.State != Done {
		t.Fatalf("expected state done, got %s", res.State)
	}
	if res.Users != 200 || res.Tracks != 1000 || res.Playlists != 400 {
		t.Fatalf("unexpected result: %+v", res)
	}

	users, _ := mem.ListUsers(ctx)
	total := 0
	for _, user := range users {
		playlists, err := mem.ListPlaylistsByUser(ctx, user.ID)
		if err != nil {
			t.Fatalf("ListPlaylistsByUser returned error: %v", err)
		}
		if len(playlists) != 2 {
			t.Fatalf("user %d owns %d playlists, want 2", user.ID, len(playlists))
		}
		total += len(playlists)

		first := strings.SplitN(user.Name, " ", 2)[0]
		for _, p := range playlists {
			if !strings.Contains(p.Name, " - "+first) {
				t.Fatalf("playlist %q does not carry owner first name %q", p.Name, first)
			}

			detail, err := mem.GetPlaylistWithTracks(ctx, p.ID)
			if err != nil {
				t.Fatalf("GetPlaylistWithTracks returned error: %v", err)
			}
			if n := len(detail.Tracks); n < 90 || n > 110 {
				t.Fatalf("playlist %d has %d tracks", p.ID, n)
			}
			seen := make(map[int64]bool, len(detail.Tracks))
			for _, track := range detail.Tracks {
				if seen[track.ID] {
					t.Fatalf("playlist %d repeats track %d", p.ID, track.ID)
				}
				seen[track.ID] = true
			}
		}
		if playlists[0].Name == playlists[1].Name {
			t.Fatalf("user %d has two playlists named %q", user.ID, playlists[0].Name)
		}
	}
	if total != 2*len(users) {
		t.Fatalf("expected %d playlists, got %d", 2*len(users), total)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	cfg := Config{Users: 5, Tracks: 20, PlaylistsPerUser: 2, MinTracks: 3, MaxTracks: 6, Seed: 7}

	if _, err := Run(ctx, mem, cfg); err != nil {
		t.Fatalf("first Run returned error: %v", err)
	}
	before, _ := mem.CountUsers(ctx)

	res, err := Run(ctx, mem, cfg)
	if err != nil {
		t.Fatalf("second Run returned error: %v", err)
	}
	if res.State != Skipped {
		t.Fatalf("expected skipped, got %s", res.State)
	}
	after, _ := mem.CountUsers(ctx)
	if before != after {
		t.Fatalf("user count changed from %d to %d", before, after)
	}
}

func TestRunSkipsStoreWithUsers(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	if _, err := mem.CreateUser(ctx, "Existing User", 40); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	res, err := Run(ctx, mem, DefaultConfig())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if res.State != Skipped || res.Users != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	tracks, _ := mem.ListTracks(ctx)
	if len(tracks) != 0 {
		t.Fatalf("expected no tracks to be generated, got %d", len(tracks))
	}
}

func TestUserNamesAndAges(t *testing.T) {
	for _, n := range []int{37, 100, 200} {
		ctx := context.Background()
		mem := store.NewMemory()
		if _, err := Run(ctx, mem, Config{Users: n, Tracks: 5, MinTracks: 1, MaxTracks: 2, Seed: 3}); err != nil {
			t.Fatalf("Run returned error: %v", err)
		}

		users, _ := mem.ListUsers(ctx)
		if len(users) != n {
			t.Fatalf("expected %d users, got %d", n, len(users))
		}
		names := make(map[string]bool)
		for _, user := range users {
			names[user.Name] = true
			if user.Age < 18 || user.Age >= 65 {
				t.Fatalf("user %d has age %d", user.ID, user.Age)
			}
		}
		want := min(n, len(firstNames)*len(surnames))
		if len(names) != want {
			t.Fatalf("N=%d: expected %d distinct names, got %d", n, want, len(names))
		}
	}
}

func TestTrackTitleBands(t *testing.T) {
	const total = 70
	curated := len(curatedTitles)

	if got := trackTitle(0, total); got != curatedTitles[0] {
		t.Fatalf("expected first curated title, got %q", got)
	}
	// 40 synthetic slots split into bands of 10.
	tests := map[int]string{
		curated:      "Rock Song #1",
		curated + 10: "Golden Rock #11",
		curated + 20: "Track #21 - Rock",
		curated + 39: "Original Song #40",
	}
	for i, want := range tests {
		if got := trackTitle(i, total); got != want {
			t.Fatalf("trackTitle(%d) = %q, want %q", i, got, want)
		}
	}
	if got := trackTitle(2, 3); got != curatedTitles[2] {
		t.Fatalf("small catalogues use curated titles only, got %q", got)
	}
}

func TestRunClampsPlaylistSize(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	if _, err := Run(ctx, mem, Config{Users: 1, Tracks: 4, PlaylistsPerUser: 1, MinTracks: 90, MaxTracks: 110, Seed: 1}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	detail, err := mem.GetPlaylistWithTracks(ctx, 1)
	if err != nil {
		t.Fatalf("GetPlaylistWithTracks returned error: %v", err)
	}
	if len(detail.Tracks) != 4 {
		t.Fatalf("expected playlist clamped to 4 tracks, got %d", len(detail.Tracks))
	}
}

type failingStore struct {
	*store.Memory
	failAfter int
}

type failingWriter struct {
	store.Writer
	remaining *int
}

func (f failingWriter) CreateTrack(ctx context.Context, title, artist string) (models.Track, error) {
	if *f.remaining == 0 {
		return models.Track{}, errors.New("disk full")
	}
	*f.remaining--
	return f.Writer.CreateTrack(ctx, title, artist)
}

func (f *failingStore) Exclusive(ctx context.Context, fn func(w store.Writer) error) error {
	return f.Memory.Exclusive(ctx, func(w store.Writer) error {
		return fn(failingWriter{Writer: w, remaining: &f.failAfter})
	})
}

func TestRunLeavesStoreUntouchedOnFailure(t *testing.T) {
	ctx := context.Background()
	fs := &failingStore{Memory: store.NewMemory(), failAfter: 3}

	if _, err := Run(ctx, fs, Config{Users: 4, Tracks: 10, MinTracks: 1, MaxTracks: 2, Seed: 9}); err == nil {
		t.Fatalf("expected error from failing writer")
	}
	if count, _ := fs.CountUsers(ctx); count != 0 {
		t.Fatalf("expected no users after failed seed, got %d", count)
	}
}

func TestConfigValidation(t *testing.T) {
	if _, err := Run(context.Background(), store.NewMemory(), Config{MinTracks: 5, MaxTracks: 1}); err == nil {
		t.Fatalf("expected invalid range to be rejected")
	}
}
