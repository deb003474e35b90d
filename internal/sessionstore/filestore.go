package sessionstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/orgball2608/insta-rest-api/pkg/config"
	"github.com/orgball2608/insta-rest-api/pkg/logger"
	"go.uber.org/fx"
)

const filePrefix = "session-"

// FileStore keeps sessions as session-<username> files under a single
// directory.
type FileStore struct {
	dir    string
	logger logger.Logger
	mu     sync.Mutex
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

func New(opts Opts) (*FileStore, error) {
	dir := opts.Config.Session.Dir
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	return &FileStore{
		dir:    dir,
		logger: opts.Logger.WithComponent("SessionStore"),
	}, nil
}

var _ Store = (*FileStore)(nil)

func (s *FileStore) Path(username string) string {
	return filepath.Join(s.dir, filePrefix+username)
}

func (s *FileStore) Save(username string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.Path(username) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, s.Path(username)); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}

	s.logger.Info("Session saved", "username", username)
	return nil
}

func (s *FileStore) Load(username string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(username))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	return data, nil
}

// List returns saved sessions, newest first.
func (s *FileStore) List() ([]Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read session directory: %w", err)
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || strings.HasSuffix(name, ".tmp") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		records = append(records, Record{
			Username:  strings.TrimPrefix(name, filePrefix),
			CreatedAt: info.ModTime(),
			Size:      info.Size(),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (s *FileStore) Delete(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.Path(username))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}
