package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"media_watch/internal/domain"
)

// Saver is an environment collaborator that persists or forwards a rendered
// digest.
type Saver interface {
	Save(ctx context.Context, file File, d *domain.Digest) error
}

// DirSaver writes exported files into a directory.
type DirSaver struct {
	dir string
}

func NewDirSaver(dir string) *DirSaver {
	return &DirSaver{dir: dir}
}

func (s *DirSaver) Save(_ context.Context, file File, _ *domain.Digest) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(s.dir, filepath.Base(file.Name))
	if err := os.WriteFile(path, file.Body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Fanout delivers to every saver. A failing saver does not prevent the
// others from running; all failures are joined.
type Fanout struct {
	savers []Saver
	logger *slog.Logger
}

func NewFanout(logger *slog.Logger, savers ...Saver) *Fanout {
	return &Fanout{savers: savers, logger: logger}
}

func (f *Fanout) Save(ctx context.Context, file File, d *domain.Digest) error {
	var errs []error
	for _, s := range f.savers {
		if err := s.Save(ctx, file, d); err != nil {
			f.logger.Warn("digest delivery failed",
				"file", file.Name,
				"saver", fmt.Sprintf("%T", s),
				"error", err,
			)
			errs = append(errs, err)
			continue
		}
		f.logger.Debug("digest delivered", "file", file.Name, "saver", fmt.Sprintf("%T", s))
	}
	return errors.Join(errs...)
}
