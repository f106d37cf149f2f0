// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

import "fmt"

// MovieViewedEvent is published after a movie detail page has been
// rendered.  It carries what a downstream consumer needs to log or count
// views without calling the catalog API again.
type MovieViewedEvent struct {
	MovieID      string `json:"movie_id"`
	Title        string `json:"title"`
	BackdropPath string `json:"backdrop_path,omitempty"`
	CastShown    int    `json:"cast_shown"`
	RequestID    string `json:"request_id,omitempty"`
	ViewedAt     string `json:"viewed_at"` // RFC 3339, UTC
}

// LogLine formats the event as one line of the view log.
func (ev MovieViewedEvent) LogLine() string {
	return fmt.Sprintf("[%s] Movie viewed | movie_id=%s | title=%q | backdrop=%q | cast_shown=%d | request_id=%s\n",
		ev.ViewedAt, ev.MovieID, ev.Title, ev.BackdropPath, ev.CastShown, ev.RequestID)
}
