package downloader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/orgball2608/insta-rest-api/pkg/config"
	"github.com/orgball2608/insta-rest-api/pkg/logger"
	"github.com/stretchr/testify/require"
)

func newTestDownloader(t *testing.T) *Downloader {
	t.Helper()

	cfg := &config.Config{}
	cfg.Download.Dir = t.TempDir()
	cfg.Download.MaxConcurrent = 2
	cfg.Download.Timeout = 5 * time.Second

	log := logger.New(logger.Opts{Env: "development", Level: "error"})

	d, err := New(Opts{Config: cfg, Logger: log})
	require.NoError(t, err)
	return d
}

func TestFetchSavesFiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("media-bytes-" + r.URL.Path))
	}))
	defer server.Close()

	d := newTestDownloader(t)
	paths, err := d.Fetch(context.Background(), []File{
		{Name: "ABC123_1.jpg", URL: server.URL + "/1"},
		{Name: "ABC123_2.mp4", URL: server.URL + "/2"},
	})
	require.NoError(t, err)
	require.Len(t, paths, 2)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	require.Equal(t, "media-bytes-/1", string(data))
	require.Equal(t, "ABC123_1.jpg", filepath.Base(paths[0]))
}

func TestFetchFailsBatchOnBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	d := newTestDownloader(t)
	_, err := d.Fetch(context.Background(), []File{
		{Name: "good.jpg", URL: server.URL + "/good"},
		{Name: "bad.jpg", URL: server.URL + "/missing"},
	})
	require.Error(t, err)
}

func TestFetchLeavesNoTempFiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	d := newTestDownloader(t)
	_, err := d.Fetch(context.Background(), []File{{Name: "broken.jpg", URL: server.URL}})
	require.Error(t, err)

	entries, err := os.ReadDir(d.cfg.Download.Dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestFetchRejectsEmptyBatch(t *testing.T) {
	d := newTestDownloader(t)
	_, err := d.Fetch(context.Background(), nil)
	require.Error(t, err)
}
