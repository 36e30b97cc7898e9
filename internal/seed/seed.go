// Package seed populates an empty catalogue with synthetic users, tracks and
// playlists. Seeding happens at most once per store: a store that already
// holds users is left alone.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"

	"musicstream/internal/models"
	"musicstream/internal/store"
)

// State is the position of a seeding run.
type State int

const (
	Unchecked State = iota
	EmptyDetected
	NonEmptyDetected
	Populating
	Done
	Skipped
)

func (s State) String() string {
	switch s {
	case Unchecked:
		return "unchecked"
	case EmptyDetected:
		return "empty-detected"
	case NonEmptyDetected:
		return "non-empty-detected"
	case Populating:
		return "populating"
	case Done:
		return "done"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Store is the exclusive-writer surface the generator needs.
type Store interface {
	Exclusive(ctx context.Context, fn func(w store.Writer) error) error
}

// Config sizes the generated catalogue.
type Config struct {
	Users            int
	Tracks           int
	PlaylistsPerUser int
	MinTracks        int
	MaxTracks        int
	// Seed fixes the random source. Zero seeds from the clock.
	Seed int64
}

// DefaultConfig returns the catalogue shape used at startup.
func DefaultConfig() Config {
	return Config{
		Users:            200,
		Tracks:           1000,
		PlaylistsPerUser: 2,
		MinTracks:        90,
		MaxTracks:        110,
	}
}

func (c Config) validate() error {
	switch {
	case c.Users < 0, c.Tracks < 0, c.PlaylistsPerUser < 0:
		return fmt.Errorf("seed: counts must not be negative")
	case c.MinTracks < 0 || c.MaxTracks < c.MinTracks:
		return fmt.Errorf("seed: invalid playlist size range [%d, %d]", c.MinTracks, c.MaxTracks)
	}
	return nil
}

// Result summarises a seeding run.
type Result struct {
	State     State
	Users     int
	Tracks    int
	Playlists int
}

const (
	minAge = 18
	maxAge = 65
)

var (
	firstNames = []string{
		"Ana", "Bruno", "Carla", "Diego", "Elena",
		"Felipe", "Gabriela", "Hugo", "Isabela", "João",
	}
	surnames = []string{
		"Silva", "Santos", "Oliveira", "Souza", "Rodrigues",
		"Ferreira", "Alves", "Pereira", "Lima", "Gomes",
	}

	curatedTitles = []string{
		"Bohemian Rhapsody", "Stairway to Heaven", "Hotel California",
		"Smells Like Teen Spirit", "Sweet Child O' Mine", "Back in Black",
		"Comfortably Numb", "November Rain", "Imagine", "Hey Jude",
		"Like a Rolling Stone", "Billie Jean", "Purple Rain", "Wonderwall",
		"Yesterday", "Let It Be", "Hallelujah", "Dream On", "Creep",
		"Under Pressure", "Paranoid Android", "Africa", "Take On Me",
		"Livin' on a Prayer", "Black", "Wish You Were Here", "Losing My Religion",
		"Born to Run", "Every Breath You Take", "With or Without You",
	}
	artists = []string{
		"Queen", "Led Zeppelin", "Eagles", "Nirvana", "Guns N' Roses",
		"AC/DC", "Pink Floyd", "The Beatles", "Radiohead", "U2",
		"Pearl Jam", "Oasis", "Toto", "a-ha", "Bon Jovi",
		"R.E.M.", "Bruce Springsteen", "The Police", "Aerosmith", "Metallica",
	}
	genres = []string{
		"Rock", "Pop", "Jazz", "Blues", "Funk",
		"Soul", "Indie", "Electronic", "Samba", "Reggae",
	}
	adjectives = []string{
		"Midnight", "Golden", "Electric", "Silent", "Wild",
		"Broken", "Endless", "Neon", "Velvet", "Lonely",
	}
	playlistTemplates = []string{
		"Rock Clássico", "Anos 90", "Favoritas", "Para Treinar", "Road Trip",
		"Chill Vibes", "Workout Mix", "Late Night", "Sunday Morning", "Party Hits",
	}
)

// Run seeds st when it holds no users. The emptiness check and every insert
// share one exclusive transaction, so a failure leaves the store untouched
// and concurrent runs seed at most once.
func Run(ctx context.Context, st Store, cfg Config) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))

	res := Result{State: Unchecked}
	err := st.Exclusive(ctx, func(w store.Writer) error {
		count, err := w.CountUsers(ctx)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		if count > 0 {
			res.State = NonEmptyDetected
			return nil
		}
		res.State = EmptyDetected

		gen := generator{w: w, rng: rng, cfg: cfg}
		res.State = Populating
		return gen.populate(ctx, &res)
	})
	if err != nil {
		return Result{State: Unchecked}, err
	}

	switch res.State {
	case NonEmptyDetected:
		res.State = Skipped
		log.Info().Msg("catalogue already populated, skipping seed")
	case Populating:
		res.State = Done
		log.Info().
			Int("users", res.Users).
			Int("tracks", res.Tracks).
			Int("playlists", res.Playlists).
			Msg("catalogue seeded")
	}
	return res, nil
}

type generator struct {
	w   store.Writer
	rng *rand.Rand
	cfg Config
}

func (g generator) populate(ctx context.Context, res *Result) error {
	users := make([]models.User, 0, g.cfg.Users)
	for i := 0; i < g.cfg.Users; i++ {
		age := minAge + g.rng.IntN(maxAge-minAge)
		user, err := g.w.CreateUser(ctx, userName(i), age)
		if err != nil {
			return fmt.Errorf("create user %d: %w", i, err)
		}
		users = append(users, user)
	}
	res.Users = len(users)

	trackIDs := make([]int64, 0, g.cfg.Tracks)
	for i := 0; i < g.cfg.Tracks; i++ {
		artist := artists[g.rng.IntN(len(artists))]
		track, err := g.w.CreateTrack(ctx, trackTitle(i, g.cfg.Tracks), artist)
		if err != nil {
			return fmt.Errorf("create track %d: %w", i, err)
		}
		trackIDs = append(trackIDs, track.ID)
	}
	res.Tracks = len(trackIDs)

	for i, user := range users {
		first := firstNames[i%len(firstNames)]
		for n := 1; n <= g.cfg.PlaylistsPerUser; n++ {
			name := playlistTemplates[g.rng.IntN(len(playlistTemplates))] + " - " + first
			if n > 1 {
				name = fmt.Sprintf("%s %d", name, n)
			}
			if _, err := g.w.CreatePlaylist(ctx, models.NewPlaylist{
				OwnerID:  user.ID,
				Name:     name,
				TrackIDs: g.pickTracks(trackIDs),
			}); err != nil {
				return fmt.Errorf("create playlist for user %d: %w", user.ID, err)
			}
			res.Playlists++
		}
	}
	return nil
}

// pickTracks returns a random prefix of a random permutation of ids. The
// prefix length is drawn from [MinTracks, MaxTracks] and clamped to len(ids).
func (g generator) pickTracks(ids []int64) []int64 {
	size := g.cfg.MinTracks + g.rng.IntN(g.cfg.MaxTracks-g.cfg.MinTracks+1)
	if size > len(ids) {
		size = len(ids)
	}

	picked := make([]int64, size)
	for i, idx := range g.rng.Perm(len(ids))[:size] {
		picked[i] = ids[idx]
	}
	return picked
}

// userName walks the first-name list fastest, so the first
// len(firstNames)*len(surnames) users all get distinct names.
func userName(i int) string {
	first := firstNames[i%len(firstNames)]
	last := surnames[(i/len(firstNames))%len(surnames)]
	return first + " " + last
}

// trackTitle names the i-th of total tracks. Curated titles come first; the
// remaining slots are split into four equal bands, each with its own pattern.
func trackTitle(i, total int) string {
	curated := min(total, len(curatedTitles))
	if i < curated {
		return curatedTitles[i]
	}

	j := i - curated
	band := (total - curated + 3) / 4
	n := j + 1
	genre := genres[j%len(genres)]
	switch j / band {
	case 0:
		return fmt.Sprintf("%s Song #%d", genre, n)
	case 1:
		return fmt.Sprintf("%s %s #%d", adjectives[(j/len(genres))%len(adjectives)], genre, n)
	case 2:
		return fmt.Sprintf("Track #%d - %s", n, genre)
	default:
		return fmt.Sprintf("Original Song #%d", n)
	}
}
