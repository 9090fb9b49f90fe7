package model

import "time"

// Postagem represents a blog post.
//
// The `json:"..."` tags tell Go's encoding/json package how to serialize this
// struct to/from JSON. Data is always set server-side on create and refreshed
// on every update — whatever the client sends in that field is ignored, so
// the timestamp can be trusted.
type Postagem struct {
	ID     int64     `json:"id"`
	Titulo string    `json:"titulo"` // 5–100 characters
	Texto  string    `json:"texto"`  // 10–1000 characters
	Data   time.Time `json:"data"`   // last write time, server-assigned
}
