package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"netviz/core/graph"
	"netviz/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Storage loads snapshot documents from a bucket.
type Storage struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
	group  singleflight.Group
}

// NewStorage creates a storage source. prefix restricts List.
func NewStorage(client storage.Client, bucket, prefix string, logger *zap.Logger) *Storage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Storage{client: client, bucket: bucket, prefix: prefix, logger: logger}
}

// Load downloads and decodes object.
func (s *Storage) Load(ctx context.Context, object string) (graph.Snapshot, error) {
	v, err, shared := s.group.Do(object, func() (any, error) {
		return s.fetch(ctx, object)
	})
	if err != nil {
		return graph.Snapshot{}, err
	}
	if shared {
		s.logger.Debug("Shared snapshot download", zap.String("object", object))
	}
	return v.(graph.Snapshot).Clone(), nil
}

func (s *Storage) fetch(ctx context.Context, object string) (graph.Snapshot, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return graph.Snapshot{}, fmt.Errorf("get %s/%s: %w", s.bucket, object, err)
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return graph.Snapshot{}, fmt.Errorf("read %s/%s: %w", s.bucket, object, err)
	}
	snap, err := Decode(data)
	if err != nil {
		return graph.Snapshot{}, fmt.Errorf("%s/%s: %w", s.bucket, object, err)
	}
	s.logger.Info("Loaded snapshot from storage",
		zap.String("object", object),
		zap.Int("nodes", snap.Nodes.Len()),
		zap.Int("edges", snap.Edges.Len()))
	return snap, nil
}

// List returns the .json objects under the prefix, sorted.
func (s *Storage) List(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var out []string
	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: s.prefix, Recursive: true})
	for obj := range objects {
		if obj.Err != nil {
			// Stop the lister and wait for it to close the channel.
			cancel()
			for range objects {
			}
			return nil, fmt.Errorf("list %s/%s: %w", s.bucket, s.prefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, ".json") {
			out = append(out, obj.Key)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Save uploads snap as object.
func (s *Storage) Save(ctx context.Context, object string, snap graph.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.client.PutObject(ctx, s.bucket, object, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", s.bucket, object, err)
	}
	return nil
}
