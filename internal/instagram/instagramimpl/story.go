package instagramimpl

import (
	"context"

	"github.com/orgball2608/insta-rest-api/internal/domain"
)

func (ig *IgImpl) GetUserStories(ctx context.Context, username string) ([]domain.StoryItem, error) {
	client, account, err := ig.activeClient()
	if err != nil {
		return nil, err
	}
	if err := ig.pace(ctx, account); err != nil {
		return nil, err
	}

	ig.Logger.Debug("Fetching stories", "username", username)
	profile, err := client.VisitProfile(username)
	if err != nil {
		return nil, classifyError(err, "profile "+username, "PROFILE_NOT_FOUND")
	}

	stories := make([]domain.StoryItem, 0)
	if profile.Stories == nil {
		return stories, nil
	}
	for _, item := range profile.Stories.Reel.Items {
		stories = append(stories, toStoryItem(item, username))
	}
	return stories, nil
}

func (ig *IgImpl) GetUserHighlights(ctx context.Context, username string) ([]domain.Highlight, error) {
	client, account, err := ig.activeClient()
	if err != nil {
		return nil, err
	}
	if err := ig.pace(ctx, account); err != nil {
		return nil, err
	}

	ig.Logger.Debug("Fetching highlights", "username", username)
	profile, err := client.VisitProfile(username)
	if err != nil {
		return nil, classifyError(err, "profile "+username, "PROFILE_NOT_FOUND")
	}

	highlights := make([]domain.Highlight, 0, len(profile.Highlights))
	for _, reel := range profile.Highlights {
		highlights = append(highlights, toHighlight(reel, username))
	}
	return highlights, nil
}
