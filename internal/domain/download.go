package domain

import "time"

// Download kinds recorded in history.
const (
	DownloadKindPost           = "post"
	DownloadKindProfilePicture = "profile_picture"
)

// DownloadRecord is one completed download operation.
type DownloadRecord struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	Target    string    `json:"target"`
	Files     []string  `json:"files"`
	CreatedAt time.Time `json:"created_at"`
}
