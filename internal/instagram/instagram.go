package instagram

import (
	"context"

	"github.com/orgball2608/insta-rest-api/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=instagram.go -destination=mocks/mock.go -package=mocks
type Client interface {
	// Login authenticates with username/password, completing the two factor
	// challenge with code when one is demanded. On success the session is
	// exported to the store and this account becomes the active one.
	Login(ctx context.Context, username, password, code string) error

	// LoginFromSession restores a previously saved session for username and
	// makes it the active account.
	LoginFromSession(ctx context.Context, username string) error

	// Logout drops the active account. The saved session file is kept.
	Logout(ctx context.Context) error

	// ActiveUser returns the username backing upstream calls, if any.
	ActiveUser() (string, bool)

	// SaveActiveSession re-exports the active session to the store.
	SaveActiveSession() error

	GetProfile(ctx context.Context, username string) (*domain.Profile, error)
	GetFollowers(ctx context.Context, username string, limit int) ([]domain.ProfileSummary, error)
	GetFollowing(ctx context.Context, username string, limit int) ([]domain.ProfileSummary, error)

	GetPost(ctx context.Context, shortcode string) (*domain.Post, error)
	GetUserPosts(ctx context.Context, username string, limit int) ([]domain.Post, error)
	GetHashtagPosts(ctx context.Context, tag string, limit int) ([]domain.Post, error)

	GetUserStories(ctx context.Context, username string) ([]domain.StoryItem, error)
	GetUserHighlights(ctx context.Context, username string) ([]domain.Highlight, error)

	// GetTimeline returns the active account's own home feed.
	GetTimeline(ctx context.Context, limit int) ([]domain.Post, error)
}
