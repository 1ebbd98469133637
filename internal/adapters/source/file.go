package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain/project"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/ports"
)

// Compile-time interface check.
var _ ports.ProjectSource = (*FileSource)(nil)

// FileSource reads the projects document from the local filesystem.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// NewFileSource creates a FileSource for the document at path.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	return &FileSource{path: path, logger: logger}
}

// Load reads and decodes the document. The context is checked before the
// read; local file I/O is not interruptible.
func (s *FileSource) Load(ctx context.Context) ([]project.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("loading projects document %s: %w", s.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.WarnContext(ctx, "failed to close projects document",
				slog.String("path", s.path),
				slog.String("error", cerr.Error()),
			)
		}
	}()

	data, err := readDocument(f)
	if err != nil {
		return nil, fmt.Errorf("loading projects document %s: %w", s.path, err)
	}

	projects, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("loading projects document %s: %w", s.path, err)
	}

	s.logger.InfoContext(ctx, "projects document loaded",
		slog.String("source", "file"),
		slog.String("path", s.path),
		slog.Int("projects", len(projects)),
	)
	return projects, nil
}
