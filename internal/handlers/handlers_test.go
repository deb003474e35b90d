package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/orgball2608/insta-rest-api/internal/cache"
	"github.com/orgball2608/insta-rest-api/internal/domain"
	"github.com/orgball2608/insta-rest-api/internal/downloader"
	"github.com/orgball2608/insta-rest-api/internal/instagram/mocks"
	"github.com/orgball2608/insta-rest-api/internal/ratelimit"
	"github.com/orgball2608/insta-rest-api/internal/server"
	"github.com/orgball2608/insta-rest-api/internal/sessionstore"
	"github.com/orgball2608/insta-rest-api/pkg/apierrors"
	"github.com/orgball2608/insta-rest-api/pkg/config"
	"github.com/orgball2608/insta-rest-api/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type fakeHistory struct {
	mu      sync.Mutex
	records []domain.DownloadRecord
	nextID  int64
	fail    error
}

func (f *fakeHistory) Create(_ context.Context, record domain.DownloadRecord) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return 0, f.fail
	}
	f.nextID++
	record.ID = f.nextID
	record.CreatedAt = time.Now().UTC()
	f.records = append(f.records, record)
	return record.ID, nil
}

func (f *fakeHistory) ListRecent(_ context.Context, limit int) ([]*domain.DownloadRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.DownloadRecord, 0, limit)
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		record := f.records[i]
		out = append(out, &record)
	}
	return out, nil
}

func (f *fakeHistory) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.records[:0]
	var dropped int64
	for _, record := range f.records {
		if record.CreatedAt.Before(cutoff) {
			dropped++
			continue
		}
		kept = append(kept, record)
	}
	f.records = kept
	return dropped, nil
}

type testEnv struct {
	app      *fiber.App
	ig       *mocks.MockClient
	cfg      *config.Config
	history  *fakeHistory
	sessions sessionstore.Store
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "insta-rest-api"
	cfg.App.Version = "test"
	cfg.App.Prefix = "/api/v1"
	cfg.App.CorsOrigins = "*"
	cfg.Session.Dir = t.TempDir()
	cfg.Download.Dir = t.TempDir()
	cfg.Download.MaxConcurrent = 2
	cfg.Download.Timeout = 5 * time.Second
	cfg.Cache.ProfileTTL = time.Minute
	cfg.Cache.PostsTTL = time.Minute
	cfg.Cache.StoriesTTL = time.Minute
	cfg.RateLimit.Requests = 100
	cfg.RateLimit.Window = time.Minute
	for _, fn := range mutate {
		fn(cfg)
	}

	log := logger.New(logger.Opts{Env: "production", Level: "error"})
	ig := mocks.NewMockClient(gomock.NewController(t))

	sessions, err := sessionstore.New(sessionstore.Opts{Config: cfg, Logger: log})
	require.NoError(t, err)

	store, err := cache.New(cache.Opts{Config: cfg, Logger: log})
	require.NoError(t, err)

	dl, err := downloader.New(downloader.Opts{Config: cfg, Logger: log})
	require.NoError(t, err)

	history := &fakeHistory{}

	h := New(Opts{
		Instagram:  ig,
		Sessions:   sessions,
		Cache:      store,
		Downloader: dl,
		History:    history,
		Config:     cfg,
		Logger:     log,
	})

	app := server.NewApp(cfg, log)
	h.Register(app, ratelimit.NewWindow(cfg.RateLimit.Requests, cfg.RateLimit.Window))

	return &testEnv{app: app, ig: ig, cfg: cfg, history: history, sessions: sessions}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, header map[string]string) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	require.NoError(t, resp.Body.Close())
	return resp, decoded
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, map[string]any) {
	return e.do(t, http.MethodGet, path, nil, nil)
}

func (e *testEnv) post(t *testing.T, path string, body any) (*http.Response, map[string]any) {
	return e.do(t, http.MethodPost, path, body, nil)
}

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.ig.EXPECT().Login(gomock.Any(), "alice", "secret", "").Return(nil)

	resp, body := env.post(t, "/api/v1/auth/login", fiber.Map{
		"username": "alice",
		"password": "secret",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, false, body["requires_2fa"])
}

func TestLoginRequiresTwoFactor(t *testing.T) {
	env := newTestEnv(t)
	env.ig.EXPECT().Login(gomock.Any(), "alice", "secret", "").
		Return(apierrors.E(apierrors.ErrTwoFactorRequired, "TWO_FACTOR_REQUIRED", "two factor code required"))

	resp, body := env.post(t, "/api/v1/auth/login", fiber.Map{
		"username": "alice",
		"password": "secret",
	})

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "TWO_FACTOR_REQUIRED", body["error_code"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.ig.EXPECT().Login(gomock.Any(), "alice", "wrong", "").
		Return(apierrors.E(apierrors.ErrBadCredentials, "INVALID_CREDENTIALS", "invalid username or password"))

	resp, body := env.post(t, "/api/v1/auth/login", fiber.Map{
		"username": "alice",
		"password": "wrong",
	})

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", body["error_code"])
}

func TestLoginValidatesRequest(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.post(t, "/api/v1/auth/login", fiber.Map{"username": "alice"})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["error_code"])
}

func TestAuthStatus(t *testing.T) {
	env := newTestEnv(t)
	env.ig.EXPECT().ActiveUser().Return("", false)

	resp, body := env.get(t, "/api/v1/auth/status")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["is_logged_in"])
	assert.Equal(t, false, body["session_valid"])
	assert.NotContains(t, body, "username")

	env.ig.EXPECT().ActiveUser().Return("alice", true)
	_, body = env.get(t, "/api/v1/auth/status")
	assert.Equal(t, true, body["is_logged_in"])
	assert.Equal(t, "alice", body["username"])
}

func TestListSessionsEmpty(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/api/v1/auth/sessions")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(0), body["count"])
	assert.Empty(t, body["sessions"])
}

func TestDeleteSession(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.sessions.Save("alice", []byte("session-blob")))

	resp, body := env.do(t, http.MethodDelete, "/api/v1/auth/sessions/alice", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, body = env.do(t, http.MethodDelete, "/api/v1/auth/sessions/alice", nil, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "SESSION_NOT_FOUND", body["error_code"])
}

func TestLoadSessionUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	env.ig.EXPECT().LoginFromSession(gomock.Any(), "ghost").
		Return(apierrors.Ef(apierrors.ErrNotFound, "SESSION_NOT_FOUND", "no saved session for %q", "ghost"))

	resp, body := env.post(t, "/api/v1/auth/load-session", fiber.Map{"username": "ghost"})

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "SESSION_NOT_FOUND", body["error_code"])
}

func TestGetProfileCachesSecondRead(t *testing.T) {
	env := newTestEnv(t)
	env.ig.EXPECT().GetProfile(gomock.Any(), "alice").
		Return(&domain.Profile{Username: "alice", UserID: 7, Followers: 42}, nil).
		Times(1)

	for i := 0; i < 2; i++ {
		resp, body := env.get(t, "/api/v1/profiles/alice")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		data, ok := body["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "alice", data["username"])
		assert.Equal(t, float64(42), data["followers"])
	}
}

func TestGetProfileNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.ig.EXPECT().GetProfile(gomock.Any(), "ghost").
		Return(nil, apierrors.Ef(apierrors.ErrNotFound, "PROFILE_NOT_FOUND", "profile %q not found", "ghost"))

	resp, body := env.get(t, "/api/v1/profiles/ghost")

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "PROFILE_NOT_FOUND", body["error_code"])
}

func TestGetProfileRejectsBadUsername(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/api/v1/profiles/bad!name")

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["error_code"])
}

func TestFollowersRequireLogin(t *testing.T) {
	env := newTestEnv(t)
	env.ig.EXPECT().ActiveUser().Return("", false)

	resp, body := env.get(t, "/api/v1/profiles/alice/followers")

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "LOGIN_REQUIRED", body["error_code"])
}

func TestFollowersHonorLimit(t *testing.T) {
	env := newTestEnv(t)
	env.ig.EXPECT().ActiveUser().Return("alice", true)
	env.ig.EXPECT().GetFollowers(gomock.Any(), "bob", 5).
		Return([]domain.ProfileSummary{{Username: "carol"}, {Username: "dave"}}, nil)

	resp, body := env.get(t, "/api/v1/profiles/bob/followers?limit=5")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["count"])
}

func TestGetPostNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.ig.EXPECT().GetPost(gomock.Any(), "BBBBBBB").
		Return(nil, apierrors.Ef(apierrors.ErrNotFound, "POST_NOT_FOUND", "post %q not found", "BBBBBBB"))

	resp, body := env.get(t, "/api/v1/posts/BBBBBBB")

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "POST_NOT_FOUND", body["error_code"])
}

func TestGetPostRejectsBadShortcode(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/api/v1/posts/no%20good")

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["error_code"])
}

func TestUserPostsLimitValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		query string
	}{
		{name: "not a number", query: "limit=abc"},
		{name: "too large", query: "limit=999"},
		{name: "zero", query: "limit=0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := env.get(t, "/api/v1/posts/profile/alice?"+tc.query)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "VALIDATION_ERROR", body["error_code"])
		})
	}
}

func TestHashtagPosts(t *testing.T) {
	env := newTestEnv(t)
	env.ig.EXPECT().GetHashtagPosts(gomock.Any(), "sunset", 12).
		Return([]domain.Post{{Shortcode: "AAA"}, {Shortcode: "BBB"}}, nil)

	resp, body := env.get(t, "/api/v1/posts/hashtag/sunset")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["count"])
}

func TestStoriesRequireLogin(t *testing.T) {
	env := newTestEnv(t)
	env.ig.EXPECT().ActiveUser().Return("", false)

	resp, body := env.get(t, "/api/v1/stories/user/alice")

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "LOGIN_REQUIRED", body["error_code"])
}

func TestStoriesEmptyIsOK(t *testing.T) {
	env := newTestEnv(t)
	env.ig.EXPECT().ActiveUser().Return("alice", true)
	env.ig.EXPECT().GetUserStories(gomock.Any(), "bob").Return([]domain.StoryItem{}, nil)

	resp, body := env.get(t, "/api/v1/stories/user/bob")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["count"])
}

func TestFeedRequiresLogin(t *testing.T) {
	env := newTestEnv(t)
	env.ig.EXPECT().ActiveUser().Return("", false)

	resp, body := env.get(t, "/api/v1/feed")

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "LOGIN_REQUIRED", body["error_code"])
}

func TestDownloadPost(t *testing.T) {
	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("media-bytes"))
	}))
	defer media.Close()

	env := newTestEnv(t)
	env.ig.EXPECT().ActiveUser().Return("alice", true)
	env.ig.EXPECT().GetPost(gomock.Any(), "CdE12ab").Return(&domain.Post{
		Shortcode: "CdE12ab",
		Media: []domain.MediaVersion{
			{URL: media.URL + "/one.jpg"},
			{URL: media.URL + "/two.mp4", IsVideo: true},
		},
	}, nil)

	resp, body := env.post(t, "/api/v1/download/post/CdE12ab", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "post", body["kind"])
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, float64(1), body["download_id"])

	files, ok := body["files"].([]any)
	require.True(t, ok)
	require.Len(t, files, 2)
	assert.Equal(t, "CdE12ab_1.jpg", filepath.Base(files[0].(string)))
	assert.Equal(t, "CdE12ab_2.mp4", filepath.Base(files[1].(string)))

	saved, err := os.ReadFile(files[0].(string))
	require.NoError(t, err)
	assert.Equal(t, "media-bytes", string(saved))
}

func TestDownloadSurvivesHistoryFailure(t *testing.T) {
	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pic"))
	}))
	defer media.Close()

	env := newTestEnv(t)
	env.history.fail = assert.AnError
	env.ig.EXPECT().GetProfile(gomock.Any(), "alice").
		Return(&domain.Profile{Username: "alice", ProfilePicURL: media.URL + "/pic.jpg"}, nil)

	resp, body := env.post(t, "/api/v1/download/profile-picture/alice", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "download_id")
}

func TestDownloadHistory(t *testing.T) {
	env := newTestEnv(t)
	for _, target := range []string{"AAA", "BBB", "CCC"} {
		_, err := env.history.Create(context.Background(), domain.DownloadRecord{
			Kind:   domain.DownloadKindPost,
			Target: target,
			Files:  []string{target + "_1.jpg"},
		})
		require.NoError(t, err)
	}

	resp, body := env.get(t, "/api/v1/download/history?limit=2")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["count"])

	data, ok := body["data"].([]any)
	require.True(t, ok)
	newest, ok := data[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "CCC", newest["target"])
}

func TestExtractPostURL(t *testing.T) {
	env := newTestEnv(t)
	env.ig.EXPECT().GetPost(gomock.Any(), "CdE12ab").Return(&domain.Post{
		Shortcode: "CdE12ab",
		Media: []domain.MediaVersion{
			{URL: "https://cdn.example/a.jpg"},
			{URL: "https://cdn.example/b.mp4", Thumbnail: "https://cdn.example/b.jpg", IsVideo: true},
		},
	}, nil)

	resp, body := env.get(t, "/api/v1/extract?url=https%3A%2F%2Fwww.instagram.com%2Fp%2FCdE12ab%2F%3Figshid%3Dxyz")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", body["status"])

	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 2)

	second, ok := data[1].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, second["is_video"])
	assert.Equal(t, "https://cdn.example/b.jpg", second["thumbnail"])
}

func TestExtractProfileURL(t *testing.T) {
	env := newTestEnv(t)
	env.ig.EXPECT().GetProfile(gomock.Any(), "alice").
		Return(&domain.Profile{Username: "alice", ProfilePicURL: "https://cdn.example/alice.jpg"}, nil)
	env.ig.EXPECT().GetUserPosts(gomock.Any(), "alice", 12).
		Return([]domain.Post{{Media: []domain.MediaVersion{{URL: "https://cdn.example/p1.jpg"}}}}, nil)

	resp, body := env.get(t, "/api/v1/extract?url=https%3A%2F%2Finstagram.com%2Falice")

	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, ok := body["data"].([]any)
	require.True(t, ok)
	assert.Len(t, data, 2)
}

func TestExtractStoryByID(t *testing.T) {
	env := newTestEnv(t)
	env.ig.EXPECT().ActiveUser().Return("alice", true)
	env.ig.EXPECT().GetUserStories(gomock.Any(), "bob").Return([]domain.StoryItem{
		{MediaID: 111, MediaURL: "https://cdn.example/a.jpg"},
		{MediaID: 222, MediaURL: "https://cdn.example/b.mp4", IsVideo: true},
	}, nil)

	resp, body := env.get(t, "/api/v1/extract?url=https%3A%2F%2Finstagram.com%2Fstories%2Fbob%2F222")

	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)

	item, ok := data[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example/b.mp4", item["url"])
	assert.Equal(t, true, item["is_video"])
}

func TestExtractExpiredStoryIs404(t *testing.T) {
	env := newTestEnv(t)
	env.ig.EXPECT().ActiveUser().Return("alice", true)
	env.ig.EXPECT().GetUserStories(gomock.Any(), "bob").
		Return([]domain.StoryItem{{MediaID: 111}}, nil)

	resp, body := env.get(t, "/api/v1/extract?url=https%3A%2F%2Finstagram.com%2Fstories%2Fbob%2F999")

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "STORY_NOT_FOUND", body["error_code"])
}

func TestExtractRejectsNonInstagramURL(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/api/v1/extract?url=https%3A%2F%2Fexample.com%2Fp%2Fabc")

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["error_code"])
}

func TestHealthSkipsGuards(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.Security.ApiKey = "sekret"
	})
	env.ig.EXPECT().ActiveUser().Return("alice", true).AnyTimes()

	for _, path := range []string{"/health", "/api/v1/health"} {
		resp, body := env.get(t, path)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, true, body["instagram_session_active"])
		assert.Equal(t, "alice", body["logged_in_user"])
		assert.NotEmpty(t, body["version"])
	}
}

func TestApiKeyGuardsApiRoutes(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.Security.ApiKey = "sekret"
	})
	env.ig.EXPECT().ActiveUser().Return("", false).AnyTimes()

	resp, body := env.get(t, "/api/v1/auth/status")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "API_KEY_REQUIRED", body["error_code"])

	resp, body = env.do(t, http.MethodGet, "/api/v1/auth/status", nil, map[string]string{"X-API-Key": "sekret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["is_logged_in"])
}

func TestRateLimitAcrossStack(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.RateLimit.Requests = 2
	})
	env.ig.EXPECT().ActiveUser().Return("", false).AnyTimes()

	for i := 0; i < 2; i++ {
		resp, _ := env.get(t, "/api/v1/auth/status")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Limit"))
	}

	resp, body := env.get(t, "/api/v1/auth/status")
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", body["error_code"])
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	// Health stays reachable once the budget is gone.
	resp, _ = env.get(t, "/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRootDescribesService(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "running", body["status"])
	assert.Equal(t, "/api/v1", body["prefix"])
}

func TestCacheStats(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/cache/stats")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats, ok := body["stats"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "memory", stats["backend"])
}

func TestUnknownRouteIs404(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/api/v1/nope/nothing")

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["error_code"])
}
