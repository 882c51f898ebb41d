// internal/models/query.go
package models

import "weatherchat/internal/entities"

// Query is the immutable per-request input: raw text plus an optional
// explicit coordinate pair from geolocation. Created per request and
// discarded once the reply is produced; nothing is persisted.
type Query struct {
	Text        string
	Coordinates *entities.Coordinates
}

// Reply is the single user-facing answer. Produced once, never mutated.
type Reply struct {
	Text string
}
