package events

import (
	"encoding/json"
	"time"

	"github.com/AlibekovAA/movie-watchlist/internal/movie/domain"
)

type movieMessage struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Poster    string    `json:"poster"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WSMessage is the frame sent to subscribers.
type WSMessage struct {
	Type  string        `json:"type"`
	Movie *movieMessage `json:"movie,omitempty"`
}

func encodeEvent(event domain.Event) ([]byte, error) {
	m := event.Movie
	return json.Marshal(WSMessage{
		Type: string(event.Type),
		Movie: &movieMessage{
			ID:        int64(m.ID),
			Title:     m.Title,
			Poster:    m.Poster,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	})
}
