package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"musicstream/internal/models"
)

// CreatePlaylist inserts a playlist and its membership rows using the
// receiver's connection. Callers outside a transaction should use
// Store.CreatePlaylist instead.
func (q *Queries) CreatePlaylist(ctx context.Context, playlist models.NewPlaylist) (models.PlaylistSummary, error) {
	var ownerName string
	err := q.db.QueryRowContext(ctx, `SELECT name FROM users WHERE id = $1`, playlist.OwnerID).Scan(&ownerName)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PlaylistSummary{}, models.Invalid("ownerId", "does not reference an existing user")
	}
	if err != nil {
		return models.PlaylistSummary{}, wrapErr("lookup playlist owner", err)
	}

	trackIDs := uniqueIDs(playlist.TrackIDs)
	if len(trackIDs) > 0 {
		var known int
		if err := q.db.QueryRowContext(ctx, `
			SELECT COUNT(*)
			FROM tracks
			WHERE id = ANY($1::bigint[])
		`, pq.Array(trackIDs)).Scan(&known); err != nil {
			return models.PlaylistSummary{}, wrapErr("check playlist tracks", err)
		}
		if known != len(trackIDs) {
			return models.PlaylistSummary{}, models.Invalid("trackIds", "references unknown tracks")
		}
	}

	created := models.PlaylistSummary{
		Name:      playlist.Name,
		OwnerID:   playlist.OwnerID,
		OwnerName: ownerName,
	}
	err = q.db.QueryRowContext(ctx, `
		INSERT INTO playlists (name, user_id)
		VALUES ($1, $2)
		RETURNING id
	`, playlist.Name, playlist.OwnerID).Scan(&created.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.PlaylistSummary{}, models.Invalid("ownerId", "does not reference an existing user")
		}
		return models.PlaylistSummary{}, wrapErr("insert playlist", err)
	}

	if len(trackIDs) == 0 {
		return created, nil
	}

	if _, err := q.db.ExecContext(ctx, `
		INSERT INTO playlist_track (playlist_id, track_id, position)
		SELECT $1, m.track_id, m.position
		FROM unnest($2::bigint[]) WITH ORDINALITY AS m(track_id, position)
	`, created.ID, pq.Array(trackIDs)); err != nil {
		if isForeignKeyViolation(err) {
			return models.PlaylistSummary{}, models.Invalid("trackIds", "references unknown tracks")
		}
		return models.PlaylistSummary{}, wrapErr("insert playlist tracks", err)
	}

	return created, nil
}

// ListPlaylistsByUser returns the playlists owned by userID. Unknown users
// yield an empty slice.
func (q *Queries) ListPlaylistsByUser(ctx context.Context, userID int64) ([]models.PlaylistSummary, error) {
	return q.listSummaries(ctx, "list playlists by user", `
		SELECT p.id, p.name, p.user_id, u.name
		FROM playlists p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
		ORDER BY p.id ASC
	`, userID)
}

// ListPlaylistsByTrack returns every playlist that contains trackID.
func (q *Queries) ListPlaylistsByTrack(ctx context.Context, trackID int64) ([]models.PlaylistSummary, error) {
	return q.listSummaries(ctx, "list playlists by track", `
		SELECT p.id, p.name, p.user_id, u.name
		FROM playlists p
		JOIN users u ON u.id = p.user_id
		JOIN playlist_track pt ON pt.playlist_id = p.id
		WHERE pt.track_id = $1
		ORDER BY p.id ASC
	`, trackID)
}

// GetPlaylistWithTracks loads a playlist and its member tracks in insertion order.
func (q *Queries) GetPlaylistWithTracks(ctx context.Context, playlistID int64) (models.PlaylistDetail, error) {
	var detail models.PlaylistDetail
	err := q.db.QueryRowContext(ctx, `
		SELECT id, name
		FROM playlists
		WHERE id = $1
	`, playlistID).Scan(&detail.ID, &detail.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PlaylistDetail{}, fmt.Errorf("playlist %d: %w", playlistID, models.ErrNotFound)
	}
	if err != nil {
		return models.PlaylistDetail{}, wrapErr("get playlist", err)
	}

	rows, err := q.db.QueryContext(ctx, `
		SELECT t.id, t.title, t.artist
		FROM playlist_track pt
		JOIN tracks t ON t.id = pt.track_id
		WHERE pt.playlist_id = $1
		ORDER BY pt.position ASC, t.id ASC
	`, playlistID)
	if err != nil {
		return models.PlaylistDetail{}, wrapErr("list playlist tracks", err)
	}
	defer rows.Close()

	detail.Tracks = make([]models.Track, 0)
	for rows.Next() {
		var track models.Track
		if err := rows.Scan(&track.ID, &track.Title, &track.Artist); err != nil {
			return models.PlaylistDetail{}, wrapErr("scan playlist track", err)
		}
		detail.Tracks = append(detail.Tracks, track)
	}
	if err := rows.Err(); err != nil {
		return models.PlaylistDetail{}, wrapErr("iterate playlist tracks", err)
	}
	return detail, nil
}

func (q *Queries) listSummaries(ctx context.Context, op, query string, id int64) ([]models.PlaylistSummary, error) {
	rows, err := q.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	playlists := make([]models.PlaylistSummary, 0)
	for rows.Next() {
		var playlist models.PlaylistSummary
		if err := rows.Scan(&playlist.ID, &playlist.Name, &playlist.OwnerID, &playlist.OwnerName); err != nil {
			return nil, wrapErr("scan playlist", err)
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("iterate playlists", err)
	}
	return playlists, nil
}

// uniqueIDs drops repeated ids, keeping the first occurrence.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
