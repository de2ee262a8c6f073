// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage uploads Deity media to an S3-compatible bucket (DigitalOcean
Spaces in production) and removes objects that are no longer referenced.

Objects are written with a public-read ACL and addressed through the CDN base
URL. Records store only the URL path, so [KeyFromPath] maps a stored path back
to its object key.
*/
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Config describes the bucket and its public CDN.
type Config struct {
	Endpoint   string
	Region     string
	AccessKey  string
	SecretKey  string
	Bucket     string
	CDNBaseURL string
}

// objectAPI is the part of [*s3.Client] used here.
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage stores media objects in a single bucket.
type S3Storage struct {
	client   objectAPI
	bucket   string
	cdnBase  string
	basePath string
	now      func() time.Time
	logger   *slog.Logger
}

// NewS3 builds a client for the configured endpoint with static credentials.
func NewS3(ctx context.Context, cfg Config, logger *slog.Logger) (*S3Storage, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return newS3(client, cfg.Bucket, cfg.CDNBaseURL, logger)
}

func newS3(client objectAPI, bucket, cdnBaseURL string, logger *slog.Logger) (*S3Storage, error) {
	base, err := url.Parse(strings.TrimSuffix(cdnBaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("storage: CDN base URL %q must be absolute", cdnBaseURL)
	}

	return &S3Storage{
		client:   client,
		bucket:   bucket,
		cdnBase:  base.String(),
		basePath: base.Path + "/",
		now:      time.Now,
		logger:   logger.With(slog.String("component", "s3_storage")),
	}, nil
}

// Upload stores body under "<unix-ms>-<filename>" and returns its public CDN URL.
func (s *S3Storage) Upload(ctx context.Context, filename, contentType string, body io.ReadSeeker, size int64) (string, error) {
	key := ObjectKey(s.now(), filename)

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ACL:           types.ObjectCannedACLPublicRead,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("storage: upload %s: %w", key, err)
	}

	s.logger.InfoContext(ctx, "media_uploaded", slog.String("key", key), slog.Int64("size", size))
	return s.cdnBase + "/" + key, nil
}

// Delete removes the object addressed by a stored media path.
//
// Paths outside the CDN base (e.g. imported from elsewhere) are skipped.
func (s *S3Storage) Delete(ctx context.Context, storedPath string) error {
	key, ok := KeyFromPath(s.basePath, storedPath)
	if !ok {
		s.logger.DebugContext(ctx, "media_delete_skipped", slog.String("path", storedPath))
		return nil
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}

	s.logger.InfoContext(ctx, "media_deleted", slog.String("key", key))
	return nil
}

// ObjectKey builds the bucket key of an upload.
func ObjectKey(now time.Time, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if name == "." || name == "/" {
		name = "upload"
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + name
}

// KeyFromPath returns the object key of a stored path under basePath.
func KeyFromPath(basePath, storedPath string) (string, bool) {
	key, ok := strings.CutPrefix(storedPath, basePath)
	if !ok || key == "" || strings.Contains(key, "/") {
		return "", false
	}
	return key, true
}
