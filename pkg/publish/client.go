// Package publish uploads sweep reports to S3.
package publish

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// putter is the subset of the S3 API used for uploads.
type putter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Client uploads report files to a bucket.
type Client struct {
	s3Client putter
}

// NewClient creates a new S3 client using default AWS configuration.
func NewClient(ctx context.Context) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Client{
		s3Client: s3.NewFromConfig(cfg),
	}, nil
}

// Upload writes data to s3://bucket/key and returns its file entry.
func (c *Client) Upload(ctx context.Context, bucket, key, contentType string, data []byte) (File, error) {
	sum := md5.Sum(data)
	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return File{}, fmt.Errorf("put object s3://%s/%s: %w", bucket, key, err)
	}
	return File{
		Key:         key,
		Size:        int64(len(data)),
		MD5Checksum: hex.EncodeToString(sum[:]),
		ContentType: contentType,
	}, nil
}

// ParseURI splits "s3://bucket/prefix" into bucket and prefix.
func ParseURI(uri string) (bucket, prefix string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("invalid S3 URI %q: missing s3:// scheme", uri)
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("invalid S3 URI %q: empty bucket", uri)
	}
	return bucket, strings.Trim(prefix, "/"), nil
}

// Key joins a prefix, run ID and file name into an object key.
func Key(prefix, runID, name string) string {
	parts := make([]string, 0, 3)
	if prefix != "" {
		parts = append(parts, strings.Trim(prefix, "/"))
	}
	return strings.Join(append(parts, runID, name), "/")
}
