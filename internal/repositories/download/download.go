package download

import (
	"context"
	"time"

	"github.com/orgball2608/insta-rest-api/internal/domain"
)

type Repository interface {
	// Create records a completed download and returns its id.
	Create(ctx context.Context, record domain.DownloadRecord) (int64, error)

	// ListRecent returns the most recent downloads, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.DownloadRecord, error)

	// DeleteOlderThan removes records created before cutoff and returns how
	// many were dropped.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
