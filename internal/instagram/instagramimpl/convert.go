package instagramimpl

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Davincible/goinsta/v3"
	"github.com/orgball2608/insta-rest-api/internal/domain"
)

const carouselMediaType = 8

func toProfile(u *goinsta.User) *domain.Profile {
	return &domain.Profile{
		Username:      u.Username,
		UserID:        u.ID,
		FullName:      u.FullName,
		Biography:     u.Biography,
		ProfilePicURL: u.ProfilePicURL,
		ExternalURL:   u.ExternalURL,
		IsPrivate:     u.IsPrivate,
		IsVerified:    u.IsVerified,
		IsBusiness:    u.IsBusiness,
		Followers:     u.FollowerCount,
		Following:     u.FollowingCount,
		MediaCount:    u.MediaCount,
	}
}

func toProfileSummary(u *goinsta.User) domain.ProfileSummary {
	return domain.ProfileSummary{
		Username:   u.Username,
		UserID:     u.ID,
		FullName:   u.FullName,
		IsPrivate:  u.IsPrivate,
		IsVerified: u.IsVerified,
	}
}

func toPost(item *goinsta.Item) domain.Post {
	post := domain.Post{
		Shortcode:     item.Code,
		MediaID:       item.Pk,
		Username:      item.User.Username,
		Caption:       item.Caption.Text,
		LikeCount:     item.Likes,
		CommentCount:  item.CommentCount,
		ViewCount:     int(item.ViewCount),
		VideoDuration: float64(item.VideoDuration),
		TakenAt:       time.Unix(item.TakenAt, 0).UTC(),
	}

	switch {
	case item.MediaType == carouselMediaType && len(item.CarouselMedia) > 0:
		post.MediaType = domain.MediaCarousel
		for i := range item.CarouselMedia {
			post.Media = append(post.Media, toMediaVersion(&item.CarouselMedia[i]))
		}
	case len(item.Videos) > 0:
		post.MediaType = domain.MediaVideo
		post.IsVideo = true
		post.Media = []domain.MediaVersion{toMediaVersion(item)}
	default:
		post.MediaType = domain.MediaImage
		post.Media = []domain.MediaVersion{toMediaVersion(item)}
	}
	return post
}

func toMediaVersion(item *goinsta.Item) domain.MediaVersion {
	if len(item.Videos) > 0 {
		return domain.MediaVersion{
			URL:       item.Videos[0].URL,
			Thumbnail: item.Images.GetBest(),
			IsVideo:   true,
		}
	}
	return domain.MediaVersion{URL: item.Images.GetBest()}
}

func toStoryItem(item *goinsta.Item, username string) domain.StoryItem {
	// Story payloads usually carry the ID as "<pk>_<owner>", but some
	// surfaces return a bare number instead.
	id, ok := item.ID.(string)
	if !ok {
		id = strconv.FormatInt(item.Pk, 10)
	}
	story := domain.StoryItem{
		ID:       id,
		MediaID:  item.Pk,
		Username: username,
		IsVideo:  len(item.Videos) > 0,
		TakenAt:  time.Unix(item.TakenAt, 0).UTC(),
	}
	if item.ExpiringAt != 0 {
		story.ExpiresAt = time.Unix(item.ExpiringAt, 0).UTC()
	}
	if story.IsVideo {
		story.MediaURL = item.Videos[0].URL
		story.Thumbnail = item.Images.GetBest()
	} else {
		story.MediaURL = item.Images.GetBest()
	}
	return story
}

func toHighlight(reel *goinsta.Reel, username string) domain.Highlight {
	h := domain.Highlight{
		ID:         fmt.Sprint(reel.ID),
		Title:      reel.Title,
		Username:   username,
		MediaCount: reel.MediaCount,
	}
	for _, item := range reel.Items {
		h.Items = append(h.Items, toStoryItem(item, username))
	}
	// The first frame stands in for the cover; the cover_media blob is not
	// worth the extra API surface.
	if len(h.Items) > 0 {
		h.CoverURL = h.Items[0].Thumbnail
		if h.CoverURL == "" {
			h.CoverURL = h.Items[0].MediaURL
		}
	}
	return h
}
