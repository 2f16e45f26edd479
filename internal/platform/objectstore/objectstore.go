// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package objectstore resolves media storage keys into URLs clients can fetch.

Two implementations satisfy [URLResolver]:

  - [Store]: presigned GET URLs from an S3-compatible bucket (MinIO, R2, S3).
  - [StaticURLs]: a fixed base URL prefix, used when no bucket is configured.

The media library itself is managed elsewhere; this package never uploads.
*/
package objectstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// URLResolver turns a storage key into a client-facing URL.
type URLResolver interface {
	URL(context context.Context, key string) (string, error)
}

// # S3-compatible storage

// Options configures a [Store].
type Options struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	URLTTL    time.Duration
}

// Store presigns object URLs in a single bucket.
type Store struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
}

// New builds a [Store]. No network call is made; presigning with a known
// region is computed locally.
func New(options Options) (*Store, error) {
	if options.Endpoint == "" || options.Bucket == "" {
		return nil, fmt.Errorf("objectstore: endpoint and bucket are required")
	}

	client, err := minio.New(options.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(options.AccessKey, options.SecretKey, ""),
		Secure: options.UseSSL,
		Region: options.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("objectstore: failed to create client: %w", err)
	}

	ttl := options.URLTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &Store{client: client, bucket: options.Bucket, ttl: ttl}, nil
}

// URL returns a presigned GET URL for key, valid for the configured TTL.
func (store *Store) URL(context context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	presigned, err := store.client.PresignedGetObject(context, store.bucket, key, store.ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("objectstore: presign %s: %w", key, err)
	}
	return presigned.String(), nil
}

// Ping checks that the bucket is reachable.
func (store *Store) Ping(context context.Context) error {
	exists, err := store.client.BucketExists(context, store.bucket)
	if err != nil {
		return fmt.Errorf("objectstore: bucket check failed: %w", err)
	}
	if !exists {
		return fmt.Errorf("objectstore: bucket %q does not exist", store.bucket)
	}
	return nil
}

// # Static prefix

// StaticURLs joins a base URL and the storage key.
type StaticURLs struct {
	BaseURL string
}

// URL implements [URLResolver].
func (static StaticURLs) URL(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	return strings.TrimSuffix(static.BaseURL, "/") + "/" + strings.TrimPrefix(key, "/"), nil
}
