package models

// PlaylistSummary describes a playlist together with its owner.
type PlaylistSummary struct {
	ID        int64  `json:"id" xml:"id" db:"id"`
	Name      string `json:"name" xml:"name" db:"name"`
	OwnerID   int64  `json:"ownerId" xml:"ownerId" db:"user_id"`
	OwnerName string `json:"ownerName" xml:"ownerName" db:"owner_name"`
}

// PlaylistDetail is a playlist with its member tracks resolved, in the
// order they were added.
type PlaylistDetail struct {
	ID     int64   `json:"id" xml:"id" db:"id"`
	Name   string  `json:"name" xml:"name" db:"name"`
	Tracks []Track `json:"tracks" xml:"tracks"`
}

// NewPlaylist is the input for creating a playlist with its initial members.
type NewPlaylist struct {
	OwnerID  int64
	Name     string
	TrackIDs []int64
}
