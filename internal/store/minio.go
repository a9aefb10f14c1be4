package store

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// AvatarStore wraps a MinIO client for profile image storage.
type AvatarStore struct {
	client *minio.Client
	bucket string
}

func NewAvatarStore(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (*AvatarStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	// Ensure bucket exists
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}

	return &AvatarStore{client: client, bucket: bucket}, nil
}

func avatarKey(userID string) string {
	return "avatars/" + userID
}

// Upload stores the avatar bytes for a user.
func (s *AvatarStore) Upload(ctx context.Context, userID string, data []byte, contentType string) error {
	reader := bytes.NewReader(data)
	_, err := s.client.PutObject(ctx, s.bucket, avatarKey(userID), reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// Download retrieves the avatar bytes and content type for a user.
func (s *AvatarStore) Download(ctx context.Context, userID string) ([]byte, string, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, avatarKey(userID), minio.GetObjectOptions{})
	if err != nil {
		return nil, "", err
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		return nil, "", err
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, "", err
	}
	return data, info.ContentType, nil
}

// Remove deletes a user's avatar.
func (s *AvatarStore) Remove(ctx context.Context, userID string) error {
	return s.client.RemoveObject(ctx, s.bucket, avatarKey(userID), minio.RemoveObjectOptions{})
}
