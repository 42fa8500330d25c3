// Package storage wraps the MinIO client for snapshot documents kept in an
// S3 compatible bucket.
//
// The Client interface is the part of the MinIO API the snapshot source
// needs, which keeps it mockable (see core/storage/mocks).
//
//	client, err := storage.NewClient(cfg.Storage)
//	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket); err != nil { ... }
package storage
