// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	puts    []*s3.PutObjectInput
	deletes []string
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func newTestStorage(t *testing.T) (*S3Storage, *fakeObjects) {
	t.Helper()

	objects := &fakeObjects{}
	store, err := newS3(objects, "b2b", "https://cdn.example.com/temple/", slog.New(slog.NewJSONHandler(io.Discard, nil)))
	require.NoError(t, err)
	store.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return store, objects
}

/*
TestUpload writes a public object and returns its CDN URL.
*/
func TestUpload(t *testing.T) {
	store, objects := newTestStorage(t)

	url, err := store.Upload(context.Background(), "shiva.png", "image/png", strings.NewReader("png"), 3)
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/temple/1700000000000-shiva.png", url)
	require.Len(t, objects.puts, 1)
	assert.Equal(t, "b2b", *objects.puts[0].Bucket)
	assert.Equal(t, "1700000000000-shiva.png", *objects.puts[0].Key)
	assert.Equal(t, types.ObjectCannedACLPublicRead, objects.puts[0].ACL)
}

/*
TestDelete maps stored paths back to keys and skips foreign paths.
*/
func TestDelete(t *testing.T) {
	store, objects := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Delete(ctx, "/temple/1700000000000-shiva.png"))
	require.NoError(t, store.Delete(ctx, "/elsewhere/a.png"))
	require.NoError(t, store.Delete(ctx, "/temple/nested/a.png"))

	assert.Equal(t, []string{"1700000000000-shiva.png"}, objects.deletes)
}

/*
TestObjectKey strips directories from client supplied names.
*/
func TestObjectKey(t *testing.T) {
	now := time.UnixMilli(42)

	assert.Equal(t, "42-a.png", ObjectKey(now, "a.png"))
	assert.Equal(t, "42-a.png", ObjectKey(now, "../../etc/a.png"))
	assert.Equal(t, "42-a.png", ObjectKey(now, `C:\Users\me\a.png`))
	assert.Equal(t, "42-upload", ObjectKey(now, ""))
}

/*
TestNewS3_RejectsRelativeBase requires an absolute CDN base URL.
*/
func TestNewS3_RejectsRelativeBase(t *testing.T) {
	_, err := newS3(&fakeObjects{}, "b2b", "/temple", slog.Default())
	assert.Error(t, err)
}
