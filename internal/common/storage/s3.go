// Package storage wraps the S3-compatible object store that holds uploaded
// resume PDFs. Deployments run MinIO, so the client takes a custom endpoint
// and path-style addressing.
package storage

import (
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"resume-workers/internal/common/config"
	stderrors "resume-workers/internal/common/errors"
)

// Client fetches objects from one bucket.
type Client struct {
	s3     *s3.Client
	bucket string
}

// NewClient builds an object store client from storage configuration.
func NewClient(ctx context.Context, cfg config.StorageConfig) (*Client, error) {
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	endpoint := scheme + "://" + cfg.Endpoint

	resolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{URL: endpoint, HostnameImmutable: true}, nil
		})

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// MinIO serves buckets under the path, not the hostname.
		o.UsePathStyle = true
	})

	return &Client{s3: client, bucket: cfg.Bucket}, nil
}

// Get returns the object's bytes, or an OBJECT_NOT_FOUND error on a miss.
func (c *Client) Get(ctx context.Context, objectKey string) ([]byte, error) {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, stderrors.NewNotFoundError(objectKey)
		}
		return nil, stderrors.NewStorageError(objectKey, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, stderrors.NewStorageError(objectKey, err)
	}
	return data, nil
}
