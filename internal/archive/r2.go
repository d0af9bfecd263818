package archive

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader pushes monthly report files to Cloudflare R2
type Uploader struct {
	client *s3.Client
	bucket string
}

type Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// NewUploader builds an R2-backed uploader. Returns nil when the archive
// is not configured; callers treat a nil uploader as disabled.
func NewUploader(opts Options) *Uploader {
	if opts.Endpoint == "" || opts.Bucket == "" || opts.AccessKey == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)),
		awsconfig.WithRegion(opts.Region),
	)
	if err != nil {
		log.Printf("[Archive] Failed to configure R2 client: %v", err)
		return nil
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.Endpoint)
	})

	return &Uploader{client: client, bucket: opts.Bucket}
}

// Upload stores one object under reports/
func (u *Uploader) Upload(ctx context.Context, key, contentType string, body []byte) error {
	if u == nil {
		return fmt.Errorf("archive not configured")
	}

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String("reports/" + key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	log.Printf("[Archive] Uploaded reports/%s (%d bytes)", key, len(body))
	return nil
}
