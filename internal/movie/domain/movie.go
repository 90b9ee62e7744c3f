package domain

import "time"

type ID int64

type Movie struct {
	ID        ID
	Title     string
	Poster    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type EventType string

const (
	EventMovieCreated EventType = "movie.created"
	EventMovieUpdated EventType = "movie.updated"
	EventMovieDeleted EventType = "movie.deleted"
)

// Event describes a committed change to the watchlist.
type Event struct {
	Type  EventType
	Movie Movie
}
