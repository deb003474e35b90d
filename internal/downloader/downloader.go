package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/orgball2608/insta-rest-api/pkg/apierrors"
	"github.com/orgball2608/insta-rest-api/pkg/config"
	"github.com/orgball2608/insta-rest-api/pkg/logger"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
)

// File is one media URL to fetch, saved under Name in the download directory.
type File struct {
	Name string
	URL  string
}

type Downloader struct {
	cfg    *config.Config
	logger logger.Logger
	client *http.Client
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

func New(opts Opts) (*Downloader, error) {
	if err := os.MkdirAll(opts.Config.Download.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create download dir: %w", err)
	}

	return &Downloader{
		cfg:    opts.Config,
		logger: opts.Logger.WithComponent("Downloader"),
		client: &http.Client{Timeout: opts.Config.Download.Timeout},
	}, nil
}

// Fetch downloads every file and returns the saved paths in input order. Any
// failed file fails the whole batch.
func (d *Downloader) Fetch(ctx context.Context, files []File) ([]string, error) {
	if len(files) == 0 {
		return nil, apierrors.E(apierrors.ErrInternal, "DOWNLOAD_ERROR", "no media to download")
	}

	pool, _ := ants.NewPool(d.cfg.Download.MaxConcurrent, ants.WithPreAlloc(true))
	defer pool.Release()

	var wg sync.WaitGroup
	paths := make([]string, len(files))
	errs := make([]error, len(files))

	for i, file := range files {
		wg.Add(1)
		i, file := i, file

		err := pool.Submit(func() {
			defer wg.Done()
			select {
			case <-ctx.Done():
				errs[i] = ctx.Err()
			default:
				paths[i], errs[i] = d.fetchOne(ctx, file)
			}
		})
		if err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			d.logger.Error("Download failed", "file", files[i].Name, "error", err)
			return nil, apierrors.Wrap(err, apierrors.ErrInternal, "DOWNLOAD_ERROR",
				fmt.Sprintf("failed to download %s", files[i].Name))
		}
	}

	d.logger.Info("Downloaded files", "count", len(paths))
	return paths, nil
}

func (d *Downloader) fetchOne(ctx context.Context, file File) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, file.URL)
	}

	target := filepath.Join(d.cfg.Download.Dir, file.Name)
	tmp := target + ".tmp"

	out, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", tmp, err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("failed to write %s: %w", file.Name, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}

	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return "", err
	}

	return target, nil
}
