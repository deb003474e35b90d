package instagramimpl

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/orgball2608/insta-rest-api/internal/domain"
	"github.com/orgball2608/insta-rest-api/pkg/apierrors"
)

func (ig *IgImpl) GetPost(ctx context.Context, shortcode string) (*domain.Post, error) {
	client, account, err := ig.activeClient()
	if err != nil {
		return nil, err
	}

	mediaID, err := MediaIDFromShortcode(shortcode)
	if err != nil {
		return nil, apierrors.Ef(apierrors.ErrValidation, "VALIDATION_ERROR",
			"invalid shortcode %q", shortcode)
	}

	if err := ig.pace(ctx, account); err != nil {
		return nil, err
	}

	ig.Logger.Debug("Fetching post", "shortcode", shortcode, "media_id", mediaID)
	media, err := client.GetMedia(mediaID)
	if err != nil {
		return nil, classifyError(err, "post "+shortcode, "POST_NOT_FOUND")
	}
	if media == nil || len(media.Items) == 0 {
		return nil, apierrors.Ef(apierrors.ErrNotFound, "POST_NOT_FOUND",
			"post %q not found", shortcode)
	}

	post := toPost(media.Items[0])
	return &post, nil
}

func (ig *IgImpl) GetUserPosts(ctx context.Context, username string, limit int) ([]domain.Post, error) {
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

	feed := user.Feed()
	posts := make([]domain.Post, 0, limit)
	seen := make(map[int64]bool)
	for len(posts) < limit {
		if err := ig.pace(ctx, account); err != nil {
			return nil, err
		}
		if !feed.Next() {
			break
		}
		for _, item := range feed.Items {
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

func (ig *IgImpl) GetHashtagPosts(ctx context.Context, tag string, limit int) ([]domain.Post, error) {
	client, account, err := ig.activeClient()
	if err != nil {
		return nil, err
	}

	ig.Logger.Debug("Fetching hashtag posts", "tag", tag)
	hashtag := client.NewHashtag(tag)
	posts := make([]domain.Post, 0, limit)
	seen := make(map[int64]bool)
	for len(posts) < limit {
		if err := ig.pace(ctx, account); err != nil {
			return nil, err
		}
		if !hashtag.Next() {
			break
		}
		for _, item := range hashtag.Items {
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

const shortcodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// MediaIDFromShortcode converts a post shortcode to the numeric media ID the
// upstream API expects. Shortcodes are the media ID written base 64 with a
// URL-safe alphabet.
func MediaIDFromShortcode(shortcode string) (int64, error) {
	if shortcode == "" {
		return 0, fmt.Errorf("empty shortcode")
	}
	var id int64
	for _, c := range shortcode {
		idx := strings.IndexRune(shortcodeAlphabet, c)
		if idx < 0 {
			return 0, fmt.Errorf("invalid shortcode character %q", c)
		}
		if id > (math.MaxInt64-int64(idx))/64 {
			return 0, fmt.Errorf("shortcode %q overflows media id", shortcode)
		}
		id = id*64 + int64(idx)
	}
	return id, nil
}

// ShortcodeFromMediaID is the inverse of MediaIDFromShortcode.
func ShortcodeFromMediaID(id int64) string {
	if id <= 0 {
		return ""
	}
	var b []byte
	for id > 0 {
		b = append([]byte{shortcodeAlphabet[id%64]}, b...)
		id /= 64
	}
	return string(b)
}
