package archive

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"resume-analyzer/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 copies uploaded résumés to an S3-compatible bucket.
type S3 struct {
	client ObjectPutter
	bucket string
	logger *log.Logger
}

func NewS3(ctx context.Context, cfg config.ArchiveConfig, logger *log.Logger) (*S3, error) {
	if !cfg.Enabled() {
		return nil, errors.New("archive bucket not configured")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if ep := strings.TrimSpace(cfg.Endpoint); ep != "" {
			o.BaseEndpoint = aws.String(ep)
			o.UsePathStyle = true
		}
	})
	return NewS3WithClient(client, cfg.Bucket, logger), nil
}

func NewS3WithClient(client ObjectPutter, bucket string, logger *log.Logger) *S3 {
	return &S3{client: client, bucket: bucket, logger: logger}
}

// Archive uploads the file at path under key.
func (a *S3) Archive(ctx context.Context, key string, path string) error {
	if a == nil || a.client == nil {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open archive source: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String("application/pdf"),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	if a.logger != nil {
		a.logger.Printf("[Archive] stored bucket=%s key=%s bytes=%d", a.bucket, key, info.Size())
	}
	return nil
}
