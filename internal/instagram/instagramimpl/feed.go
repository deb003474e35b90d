package instagramimpl

import (
	"context"

	"github.com/orgball2608/insta-rest-api/internal/domain"
)

func (ig *IgImpl) GetTimeline(ctx context.Context, limit int) ([]domain.Post, error) {
	client, account, err := ig.activeClient()
	if err != nil {
		return nil, err
	}

	ig.Logger.Debug("Fetching timeline", "account", account, "limit", limit)
	timeline := client.Timeline
	posts := make([]domain.Post, 0, limit)
	seen := make(map[int64]bool)
	for len(posts) < limit {
		if err := ig.pace(ctx, account); err != nil {
			return nil, err
		}
		if !timeline.Next() {
			break
		}
		for _, item := range timeline.Items {
			if seen[item.Pk] {
				continue
			}
			seen[item.Pk] = true
			posts = append(posts, toPost(item))
			if len(posts) >= limit {
				break
			}
		}
	}
	return posts, nil
}
