package instagramimpl

import (
	"context"

	"github.com/Davincible/goinsta/v3"
	"github.com/orgball2608/insta-rest-api/internal/domain"
)

func (ig *IgImpl) GetProfile(ctx context.Context, username string) (*domain.Profile, error) {
	client, account, err := ig.activeClient()
	if err != nil {
		return nil, err
	}
	if err := ig.pace(ctx, account); err != nil {
		return nil, err
	}

	ig.Logger.Debug("Fetching profile", "username", username)
	user, err := client.Profiles.ByName(username)
	if err != nil {
		return nil, classifyError(err, "profile "+username, "PROFILE_NOT_FOUND")
	}
	return toProfile(user), nil
}

func (ig *IgImpl) GetFollowers(ctx context.Context, username string, limit int) ([]domain.ProfileSummary, error) {
	return ig.collectConnections(ctx, username, limit, func(u *goinsta.User) *goinsta.Users {
		return u.Followers("")
	})
}

func (ig *IgImpl) GetFollowing(ctx context.Context, username string, limit int) ([]domain.ProfileSummary, error) {
	return ig.collectConnections(ctx, username, limit, func(u *goinsta.User) *goinsta.Users {
		return u.Following("", goinsta.DefaultOrder)
	})
}

func (ig *IgImpl) collectConnections(
	ctx context.Context,
	username string,
	limit int,
	fetch func(*goinsta.User) *goinsta.Users,
) ([]domain.ProfileSummary, error) {
	client, account, err := ig.activeClient()
	if err != nil {
		return nil, err
	}
	if err := ig.pace(ctx, account); err != nil {
		return nil, err
	}

	user, err := client.Profiles.ByName(username)
	if err != nil {
		return nil, classifyError(err, "profile "+username, "PROFILE_NOT_FOUND")
	}

	users := fetch(user)
	summaries := make([]domain.ProfileSummary, 0, limit)
	for len(summaries) < limit {
		if err := ig.pace(ctx, account); err != nil {
			return nil, err
		}
		if !users.Next() {
			break
		}
		for _, u := range users.Users {
			summaries = append(summaries, toProfileSummary(u))
			if len(summaries) >= limit {
				break
			}
		}
	}
	return summaries, nil
}
