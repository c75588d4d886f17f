package backup

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tikaboopeak/weather-monitor/internal/logging"
	sc "github.com/tikaboopeak/weather-monitor/internal/server/config"
)

// S3Trigger uploads the two JSON collections to an S3-compatible bucket
// (e.g. MinIO) under timestamped keys. Selected when a bucket is configured.
type S3Trigger struct {
	config *sc.Config
	files  []string
	logger logging.Logger
}

func NewS3Trigger(cfg *sc.Config, logger logging.Logger) *S3Trigger {
	return &S3Trigger{
		config: cfg,
		files:  []string{cfg.DatabaseFile, cfg.UsersFile},
		logger: logger.With("module", "backup"),
	}
}

func (t *S3Trigger) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(t.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			t.config.S3RootUser,
			t.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(t.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

func storageKey(file string, now time.Time) string {
	return fmt.Sprintf("backups/%s/%s", now.Format("2006/01/02/150405"), path.Base(file))
}

func (t *S3Trigger) Fire(ctx context.Context) {
	client, err := t.getClient(ctx)
	if err != nil {
		t.logger.Error(ctx, "backup s3 client init failed", "error", err.Error())
		return
	}

	now := time.Now()
	for _, file := range t.files {
		data, err := os.ReadFile(file)
		if err != nil {
			// A collection that was never written yet is not an error worth
			// surfacing; everything else is logged and skipped.
			t.logger.Warn(ctx, "backup skipped file", "file", file, "error", err.Error())
			continue
		}

		key := storageKey(file, now)
		_, err = client.PutObject(ctx, &s3.PutObjectInput{
			Bucket: aws.String(t.config.S3Bucket),
			Key:    aws.String(key),
			Body:   bytes.NewReader(data),
		})
		if err != nil {
			t.logger.Error(ctx, "backup upload failed", "file", file, "key", key, "error", err.Error())
			continue
		}
		t.logger.Info(ctx, "backup uploaded", "file", file, "key", key, "bytes", len(data))
	}
}
