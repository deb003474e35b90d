package domain

import "time"

// Media type labels used in Post.MediaType.
const (
	MediaImage    = "image"
	MediaVideo    = "video"
	MediaCarousel = "carousel"
)

// MediaVersion is a single downloadable rendition of a post.
type MediaVersion struct {
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
	IsVideo   bool   `json:"is_video"`
}

// Post is a single Instagram post with its downloadable media.
type Post struct {
	Shortcode     string         `json:"shortcode"`
	MediaID       int64          `json:"media_id"`
	Username      string         `json:"username"`
	Caption       string         `json:"caption,omitempty"`
	MediaType     string         `json:"media_type"`
	Media         []MediaVersion `json:"media"`
	LikeCount     int            `json:"like_count"`
	CommentCount  int            `json:"comment_count"`
	ViewCount     int            `json:"view_count,omitempty"`
	VideoDuration float64        `json:"video_duration,omitempty"`
	IsVideo       bool           `json:"is_video"`
	TakenAt       time.Time      `json:"taken_at"`
}
