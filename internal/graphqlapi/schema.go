// Package graphqlapi serves the catalogue over GraphQL.
package graphqlapi

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"

	"musicstream/internal/logging"
	"musicstream/internal/models"
)

// UserService lists and creates users.
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, name string, age int) (models.User, error)
}

// TrackService lists and creates tracks.
type TrackService interface {
	List(ctx context.Context) ([]models.Track, error)
	Create(ctx context.Context, title, artist string) (models.Track, error)
}

// PlaylistService exposes playlist navigation and creation.
type PlaylistService interface {
	ListByUser(ctx context.Context, userID int64) ([]models.PlaylistSummary, error)
	ListByTrack(ctx context.Context, trackID int64) ([]models.PlaylistSummary, error)
	GetWithTracks(ctx context.Context, playlistID int64) (models.PlaylistDetail, error)
	Create(ctx context.Context, ownerID int64, name string, trackIDs []int64) (models.PlaylistSummary, error)
}

var errInternal = errors.New("internal error")

var (
	userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"age":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	trackType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Track",
		Fields: graphql.Fields{
			"id":     &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"artist": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	playlistType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Playlist",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"ownerId":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"ownerName": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	playlistDetailType = graphql.NewObject(graphql.ObjectConfig{
		Name: "PlaylistWithTracks",
		Fields: graphql.Fields{
			"id":     &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"tracks": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(trackType)))},
		},
	})
)

type resolver struct {
	users     UserService
	tracks    TrackService
	playlists PlaylistService
}

// NewSchema builds the executable schema over the given services.
func NewSchema(users UserService, tracks TrackService, playlists PlaylistService) (graphql.Schema, error) {
	r := &resolver{users: users, tracks: tracks, playlists: playlists}

	idArg := func(name string) graphql.FieldConfigArgument {
		return graphql.FieldConfigArgument{
			name: &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
		}
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"usuarios": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Resolve: r.listUsers,
			},
			"musicas": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(trackType))),
				Resolve: r.listTracks,
			},
			"playlistsPorUsuario": &graphql.Field{
				Type:    graphql.NewList(graphql.NewNonNull(playlistType)),
				Args:    idArg("usuarioId"),
				Resolve: r.playlistsByUser,
			},
			"musicasDaPlaylist": &graphql.Field{
				Type:    playlistDetailType,
				Args:    idArg("playlistId"),
				Resolve: r.playlistTracks,
			},
			"playlistsPorMusica": &graphql.Field{
				Type:    graphql.NewList(graphql.NewNonNull(playlistType)),
				Args:    idArg("musicaId"),
				Resolve: r.playlistsByTrack,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"criarUsuario": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"age":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.createUser,
			},
			"criarMusica": &graphql.Field{
				Type: trackType,
				Args: graphql.FieldConfigArgument{
					"title":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"artist": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.createTrack,
			},
			"criarPlaylist": &graphql.Field{
				Type: playlistType,
				Args: graphql.FieldConfigArgument{
					"usuarioId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"name":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"trackIds": &graphql.ArgumentConfig{
						Type:         graphql.NewList(graphql.NewNonNull(graphql.ID)),
						DefaultValue: []any{},
					},
				},
				Resolve: r.createPlaylist,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}

// NewHandler serves the schema on POST and GET, with GraphiQL for browsers.
func NewHandler(users UserService, tracks TrackService, playlists PlaylistService) (http.Handler, error) {
	schema, err := NewSchema(users, tracks, playlists)
	if err != nil {
		return nil, fmt.Errorf("build graphql schema: %w", err)
	}
	return handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	}), nil
}

// resolveErr translates service errors into what the client sees. Not-found
// resolves to null without an error entry.
func resolveErr(ctx context.Context, field string, err error) (any, error) {
	var verr *models.ValidationError
	switch {
	case errors.Is(err, models.ErrNotFound):
		return nil, nil
	case errors.As(err, &verr):
		return nil, verr
	case errors.Is(err, models.ErrValidation):
		return nil, err
	default:
		logging.WithContext(ctx).Error().Err(err).Str("field", field).Msg("graphql resolver failed")
		return nil, errInternal
	}
}

// parseID reads an ID argument. Numeric variables reach resolvers already
// stringified by the ID scalar, which renders large values in exponent form
// ("1e+06"), so integral floats are accepted too.
func parseID(args map[string]any, name string) (int64, error) {
	raw, _ := args[name].(string)
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id, nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, models.Invalid(name, "must be a numeric id")
	}
	return int64(f), nil
}
