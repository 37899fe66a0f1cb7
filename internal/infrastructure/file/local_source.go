package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	domain "github.com/YaRavva/Fiction-Library-sub007/internal/domain/library"
)

var ErrInvalidRef = errors.New("invalid source ref")

const maxDescriptionSize = 64 << 10

// LocalSource reads descriptions from "<BaseDir>/<ref>.txt". It serves as an
// offline stand-in for the metadata service.
type LocalSource struct {
	BaseDir string
}

func NewLocalSource(baseDir string) *LocalSource {
	if baseDir == "" {
		baseDir = "."
	}
	return &LocalSource{BaseDir: baseDir}
}

func (s *LocalSource) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	_ = ctx

	ref = strings.TrimSpace(ref)
	if ref == "" || ref != filepath.Base(ref) || ref == "." || ref == ".." {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}

	path := filepath.Join(s.BaseDir, ref+".txt")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", path, err)
	}
	return file, nil
}

func (s *LocalSource) Fetch(ctx context.Context, item domain.WorkItem) (string, error) {
	reader, err := s.Open(ctx, item.SourceRef)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, maxDescriptionSize))
	if err != nil {
		return "", fmt.Errorf("read description %s: %w", item.SourceRef, err)
	}
	return strings.TrimSpace(string(data)), nil
}
