package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/mwantia/fileio/backend"
	"github.com/mwantia/fileio/data"
)

// S3Backend stores objects in an S3-compatible bucket.
// Reads stream directly from GetObject; writes are staged in memory and
// uploaded as a whole object on sync or close, since S3 has no partial write.
type S3Backend struct {
	mu sync.RWMutex

	client     *minio.Client
	bucketName string
}

// NewS3Backend creates a new S3-backed object storage backend.
func NewS3Backend(endpoint, bucketName, accessKey, secretKey string, useSsl bool) (*S3Backend, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSsl,
	})
	if err != nil {
		return nil, err
	}

	return &S3Backend{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// Name returns the identifier name defined for this backend.
func (*S3Backend) Name() string {
	return "s3"
}

// OpenObject opens the object at key under the given mode.
func (sb *S3Backend) OpenObject(ctx context.Context, key string, mode data.AccessMode) (backend.ObjectHandle, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	switch {
	case mode.HasRead():
		info, err := sb.client.StatObject(ctx, sb.bucketName, key, minio.StatObjectOptions{})
		if err != nil {
			return nil, mapS3Error(err)
		}

		object, err := sb.client.GetObject(ctx, sb.bucketName, key, minio.GetObjectOptions{})
		if err != nil {
			return nil, mapS3Error(err)
		}

		return &s3ReadHandle{object: object, size: info.Size}, nil

	case mode.HasWrite():
		return backend.NewWriterHandle(ctx, nil, true, sb.commitFunc(key)), nil

	case mode.HasAppend():
		initial, exists, err := sb.loadContent(ctx, key)
		if err != nil {
			return nil, err
		}

		return backend.NewWriterHandle(ctx, initial, !exists, sb.commitFunc(key)), nil
	}

	return nil, data.ErrInvalidMode
}

func (sb *S3Backend) loadContent(ctx context.Context, key string) ([]byte, bool, error) {
	object, err := sb.client.GetObject(ctx, sb.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, false, mapS3Error(err)
	}
	defer object.Close()

	content, err := io.ReadAll(object)
	if err != nil {
		if errors.Is(mapS3Error(err), data.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return content, true, nil
}

func (sb *S3Backend) commitFunc(key string) backend.CommitFunc {
	return func(ctx context.Context, content []byte) error {
		sb.mu.Lock()
		defer sb.mu.Unlock()

		_, err := sb.client.PutObject(ctx, sb.bucketName, key,
			bytes.NewReader(content), int64(len(content)),
			minio.PutObjectOptions{ContentType: "application/octet-stream"})

		return err
	}
}

// StatObject returns size and timestamps for the object at key.
func (sb *S3Backend) StatObject(ctx context.Context, key string) (*data.FileStat, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	info, err := sb.client.StatObject(ctx, sb.bucketName, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, mapS3Error(err)
	}

	return &data.FileStat{
		Key:        key,
		Size:       info.Size,
		CreateTime: info.LastModified,
		ModifyTime: info.LastModified,
	}, nil
}

// LookupObject checks if an object exists at the given key.
func (sb *S3Backend) LookupObject(ctx context.Context, key string) (bool, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	if _, err := sb.client.StatObject(ctx, sb.bucketName, key, minio.StatObjectOptions{}); err != nil {
		if errors.Is(mapS3Error(err), data.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// RemoveObject deletes the object at key.
func (sb *S3Backend) RemoveObject(ctx context.Context, key string) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	return sb.client.RemoveObject(ctx, sb.bucketName, key, minio.RemoveObjectOptions{})
}

func mapS3Error(err error) error {
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NoSuchBucket":
		return data.ErrNotExist
	case "AccessDenied":
		return data.ErrPermission
	}

	return err
}

// s3ReadHandle streams object content from the bucket.
type s3ReadHandle struct {
	object *minio.Object
	size   int64
}

func (sh *s3ReadHandle) Read(p []byte) (int, error) {
	return sh.object.Read(p)
}

func (sh *s3ReadHandle) Write(p []byte) (int, error) {
	return 0, data.ErrInvalidOperation
}

func (sh *s3ReadHandle) Seek(offset int64, whence int) (int64, error) {
	return sh.object.Seek(offset, whence)
}

func (sh *s3ReadHandle) Size() (int64, error) {
	return sh.size, nil
}

func (sh *s3ReadHandle) Sync() error {
	return nil
}

func (sh *s3ReadHandle) Close() error {
	return sh.object.Close()
}
