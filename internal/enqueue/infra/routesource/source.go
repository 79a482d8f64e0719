package routesource

import (
	"context"
	"fmt"
	"io"

	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/domain/route"
)

//go:generate mockgen -source=source.go -destination=mock_source.go -package=routesource

// Source produces a complete routing table or an error; it never returns a
// partial table.
type Source interface {
	Load(ctx context.Context) (route.Table, error)
	Name() string
}

const maxDocumentBytes = 1 << 20

func readDocument(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	if len(data) > maxDocumentBytes {
		return nil, ErrDocumentTooLarge
	}

	return data, nil
}
