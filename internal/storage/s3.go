package storage

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

// S3API defines the S3 client operations used for report artifacts.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Bucket stores report artifacts in an S3 bucket.
type Bucket struct {
	client S3API
	name   string
}

// NewBucket creates an S3-backed artifact store.
func NewBucket(cfg aws.Config, name string) *Bucket {
	return &Bucket{
		client: s3.NewFromConfig(cfg),
		name:   name,
	}
}

// Upload stores the file at localPath under key.
func (b *Bucket) Upload(ctx context.Context, key string, localPath string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("opening artifact %s: %w", localPath, err)
	}
	defer file.Close()

	_, err = b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.name),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return fmt.Errorf("uploading %s to bucket %s: %w", key, b.name, err)
	}

	logrus.WithFields(logrus.Fields{
		"bucket": b.name,
		"key":    key,
	}).Info("📦 Report uploaded")
	return nil
}

// Fetch retrieves an object's contents from the bucket.
func (b *Bucket) Fetch(ctx context.Context, key string) ([]byte, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("fetching %s from bucket %s: %w", key, b.name, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s from bucket %s: %w", key, b.name, err)
	}
	return data, nil
}
