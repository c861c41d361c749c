// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config configures the S3-compatible driver.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	// PublicURL is an optional CDN or custom domain serving the bucket.
	PublicURL string
	// Folder prefixes every key; Cloudinary uses it as the asset folder.
	Folder string
}

// S3 uploads images to a public bucket with path-style addressing, which
// CEPH and MinIO style endpoints require.
type S3 struct {
	s3        *s3.Client
	bucket    string
	endpoint  string
	publicURL string
}

// NewS3 creates the client. Returns (nil, nil) if the endpoint or
// credentials are empty so the app starts without uploads.
func NewS3(cfg S3Config) (*S3, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, nil
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: S3 bucket is required")
	}
	endpoint := strings.TrimRight(cfg.Endpoint, "/")

	client := s3.New(s3.Options{
		Region:       cfg.Region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	})

	return &S3{
		s3:        client,
		bucket:    cfg.Bucket,
		endpoint:  endpoint,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// Upload stores img with a public-read ACL and returns its URL.
func (c *S3) Upload(ctx context.Context, img Image) (string, error) {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(img.Key),
		Body:          img.reader(),
		ContentLength: aws.Int64(int64(len(img.Data))),
		ContentType:   aws.String(img.ContentType),
		ACL:           s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %s/%s: %w", c.bucket, img.Key, err)
	}
	return c.FileURL(img.Key), nil
}

// Delete removes the object behind url. URLs that do not belong to this
// bucket are ignored.
func (c *S3) Delete(ctx context.Context, url string) error {
	key, ok := c.ExtractKey(url)
	if !ok {
		return nil
	}
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// FileURL returns the public URL for key.
// Uses the configured public URL if set, otherwise builds a path-style URL.
func (c *S3) FileURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.bucket + "/" + key
}

// ExtractKey extracts the object key from a public file URL.
// Returns the key and true if the URL matches the storage URL pattern,
// or ("", false) if it doesn't belong to this storage.
func (c *S3) ExtractKey(rawURL string) (string, bool) {
	if c.publicURL != "" {
		prefix := c.publicURL + "/"
		if strings.HasPrefix(rawURL, prefix) {
			return rawURL[len(prefix):], true
		}
	}

	prefix := c.endpoint + "/" + c.bucket + "/"
	if strings.HasPrefix(rawURL, prefix) {
		return rawURL[len(prefix):], true
	}

	return "", false
}
