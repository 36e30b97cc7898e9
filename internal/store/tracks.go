package store

import (
	"context"

	"musicstream/internal/models"
)

// CreateTrack inserts a track and returns it with its assigned id.
func (q *Queries) CreateTrack(ctx context.Context, title, artist string) (models.Track, error) {
	track := models.Track{Title: title, Artist: artist}
	err := q.db.QueryRowContext(ctx, `
		INSERT INTO tracks (title, artist)
		VALUES ($1, $2)
		RETURNING id
	`, title, artist).Scan(&track.ID)
	if err != nil {
		return models.Track{}, wrapErr("insert track", err)
	}
	return track, nil
}

// ListTracks returns the whole catalogue ordered by id.
func (q *Queries) ListTracks(ctx context.Context) ([]models.Track, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, title, artist
		FROM tracks
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, wrapErr("list tracks", err)
	}
	defer rows.Close()

	tracks := make([]models.Track, 0)
	for rows.Next() {
		var track models.Track
		if err := rows.Scan(&track.ID, &track.Title, &track.Artist); err != nil {
			return nil, wrapErr("scan track", err)
		}
		tracks = append(tracks, track)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("iterate tracks", err)
	}
	return tracks, nil
}
