package models

// User is a listener account that owns playlists.
type User struct {
	ID   int64  `json:"id" xml:"id" db:"id"`
	Name string `json:"name" xml:"name" db:"name"`
	Age  int    `json:"age" xml:"age" db:"age"`
}
