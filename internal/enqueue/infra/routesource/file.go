package routesource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/domain/route"
)

// FileSource reads a routing document from the local filesystem.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return "file:" + s.path
}

func (s *FileSource) Load(_ context.Context) (route.Table, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return route.Table{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, s.path)
		}

		return route.Table{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	data, err := readDocument(f)
	if err != nil {
		return route.Table{}, err
	}

	return route.ParseDocument(data)
}
