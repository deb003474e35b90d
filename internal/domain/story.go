package domain

import "time"

// StoryItem is a single active story frame.
type StoryItem struct {
	ID        string    `json:"id"`
	MediaID   int64     `json:"media_id"`
	Username  string    `json:"username"`
	MediaURL  string    `json:"media_url"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	IsVideo   bool      `json:"is_video"`
	TakenAt   time.Time `json:"taken_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Highlight is a named, persistent story collection.
type Highlight struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Username   string      `json:"username"`
	MediaCount int         `json:"media_count"`
	CoverURL   string      `json:"cover_url,omitempty"`
	Items      []StoryItem `json:"items"`
}
