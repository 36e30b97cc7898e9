package graphqlapi

import "github.com/graphql-go/graphql"

func (r *resolver) listUsers(p graphql.ResolveParams) (any, error) {
	users, err := r.users.List(p.Context)
	if err != nil {
		return resolveErr(p.Context, "usuarios", err)
	}
	return users, nil
}

func (r *resolver) listTracks(p graphql.ResolveParams) (any, error) {
	tracks, err := r.tracks.List(p.Context)
	if err != nil {
		return resolveErr(p.Context, "musicas", err)
	}
	return tracks, nil
}

func (r *resolver) playlistsByUser(p graphql.ResolveParams) (any, error) {
	userID, err := parseID(p.Args, "usuarioId")
	if err != nil {
		return nil, err
	}
	playlists, err := r.playlists.ListByUser(p.Context, userID)
	if err != nil {
		return resolveErr(p.Context, "playlistsPorUsuario", err)
	}
	return playlists, nil
}

func (r *resolver) playlistsByTrack(p graphql.ResolveParams) (any, error) {
	trackID, err := parseID(p.Args, "musicaId")
	if err != nil {
		return nil, err
	}
	playlists, err := r.playlists.ListByTrack(p.Context, trackID)
	if err != nil {
		return resolveErr(p.Context, "playlistsPorMusica", err)
	}
	return playlists, nil
}

func (r *resolver) playlistTracks(p graphql.ResolveParams) (any, error) {
	playlistID, err := parseID(p.Args, "playlistId")
	if err != nil {
		return nil, err
	}
	detail, err := r.playlists.GetWithTracks(p.Context, playlistID)
	if err != nil {
		return resolveErr(p.Context, "musicasDaPlaylist", err)
	}
	return detail, nil
}

func (r *resolver) createUser(p graphql.ResolveParams) (any, error) {
	name, _ := p.Args["name"].(string)
	age, _ := p.Args["age"].(int)

	user, err := r.users.Create(p.Context, name, age)
	if err != nil {
		return resolveErr(p.Context, "criarUsuario", err)
	}
	return user, nil
}

func (r *resolver) createTrack(p graphql.ResolveParams) (any, error) {
	title, _ := p.Args["title"].(string)
	artist, _ := p.Args["artist"].(string)

	track, err := r.tracks.Create(p.Context, title, artist)
	if err != nil {
		return resolveErr(p.Context, "criarMusica", err)
	}
	return track, nil
}

func (r *resolver) createPlaylist(p graphql.ResolveParams) (any, error) {
	ownerID, err := parseID(p.Args, "usuarioId")
	if err != nil {
		return nil, err
	}
	name, _ := p.Args["name"].(string)

	rawIDs, _ := p.Args["trackIds"].([]any)
	trackIDs := make([]int64, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := parseID(map[string]any{"trackIds": raw}, "trackIds")
		if err != nil {
			return nil, err
		}
		trackIDs = append(trackIDs, id)
	}

	created, err := r.playlists.Create(p.Context, ownerID, name, trackIDs)
	if err != nil {
		return resolveErr(p.Context, "criarPlaylist", err)
	}
	return created, nil
}
