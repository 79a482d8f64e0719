package routesource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"cloud.google.com/go/storage"
	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/domain/route"
	"google.golang.org/api/option"
)

type objectOpener func(ctx context.Context, bucket, object string) (io.ReadCloser, error)

// GCSSource reads the routing document from a Cloud Storage object.
type GCSSource struct {
	client *storage.Client
	bucket string
	object string
	open   objectOpener
	logger *slog.Logger
}

func NewGCSSource(ctx context.Context, bucket, object string, opts ...option.ClientOption) (*GCSSource, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	s := newGCSSource(bucket, object, func(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
		return client.Bucket(bucket).Object(object).NewReader(ctx)
	})
	s.client = client

	return s, nil
}

func newGCSSource(bucket, object string, open objectOpener) *GCSSource {
	return &GCSSource{
		bucket: bucket,
		object: object,
		open:   open,
		logger: slog.Default().WithGroup("enqueue").WithGroup("routesource"),
	}
}

func (s *GCSSource) Name() string {
	return "gs://" + s.bucket + "/" + s.object
}

func (s *GCSSource) Load(ctx context.Context) (route.Table, error) {
	r, err := s.open(ctx, s.bucket, s.object)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return route.Table{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, s.Name())
		}

		return route.Table{}, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, s.Name(), err)
	}

	defer func() {
		if err := r.Close(); err != nil {
			s.logger.Warn("failed to close object reader", slog.String("error", err.Error()))
		}
	}()

	data, err := readDocument(r)
	if err != nil {
		return route.Table{}, err
	}

	s.logger.DebugContext(ctx, "routing document fetched",
		slog.String("source", s.Name()),
		slog.Int("bytes", len(data)),
	)

	return route.ParseDocument(data)
}

// Close releases the underlying storage client.
func (s *GCSSource) Close() error {
	if s.client == nil {
		return nil
	}

	return s.client.Close()
}
