package models

// Track is a single catalogue entry.
type Track struct {
	ID     int64  `json:"id" xml:"id" db:"id"`
	Title  string `json:"title" xml:"title" db:"title"`
	Artist string `json:"artist" xml:"artist" db:"artist"`
}
