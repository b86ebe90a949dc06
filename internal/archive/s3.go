// Package archive stores exported documents outside the database.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/kingrain94/clinic-admin-api/pkg/logger"
)

// ObjectPutter is the slice of the S3 client the archiver uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3ReportArchiver struct {
	client ObjectPutter
	bucket string
	logger *logger.Logger
}

func NewS3ReportArchiver(client ObjectPutter, bucket string, logger *logger.Logger) *S3ReportArchiver {
	return &S3ReportArchiver{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

func (a *S3ReportArchiver) Put(ctx context.Context, key string, body []byte, metadata map[string]string) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
		Metadata:    metadata,
	})
	if err != nil {
		return fmt.Errorf("failed to upload s3://%s/%s: %w", a.bucket, key, err)
	}

	a.logger.Infof("Uploaded report to s3://%s/%s", a.bucket, key)
	return nil
}

// MemoryArchive keeps objects in process. It backs APP_STORAGE=memory.
type MemoryArchive struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{objects: make(map[string][]byte)}
}

func (a *MemoryArchive) Put(_ context.Context, key string, body []byte, _ map[string]string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.objects[key] = bytes.Clone(body)
	return nil
}

func (a *MemoryArchive) Get(key string) ([]byte, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	b, ok := a.objects[key]
	return b, ok
}
