package aws

import (
	"catalogconsole/pkg/config"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/s3/v2"
)

type S3 struct {
	bucket *s3.Storage
}

func NewS3Bucket(cfg *config.AppConfig) *S3 {
	bucket := s3.New(s3.Config{
		Endpoint: cfg.AWSEndpoint,
		Bucket:   cfg.AWSBucket,
		Region:   cfg.AWSDefaultRegion,
		Credentials: s3.Credentials{
			AccessKey:       cfg.AWSAccessKey,
			SecretAccessKey: cfg.AWSSecretKey,
		},
		MaxAttempts:    3,
		RequestTimeout: time.Second * 10,
		Reset:          false,
	})

	return &S3{
		bucket: bucket,
	}
}

// SessionStorage exposes the bucket as the session store. The s3 driver writes
// objects without expiry, so each session carries its own deadline.
func (s *S3) SessionStorage() fiber.Storage {
	return newExpiringStorage(s.bucket)
}

// Upload archives an exported file. Objects stay until a bucket lifecycle rule removes them.
func (s *S3) Upload(key string, data []byte) error {
	return s.bucket.Set(key, data, 0)
}

func (s *S3) Close() error {
	return s.bucket.Close()
}
