// Package media stores and serves synthesized voice messages.
package media

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"samakicash_backend/platform/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const presignedURLTTL = 15 * time.Minute

// VoiceStorage keeps synthesized audio in a MinIO bucket.
type VoiceStorage struct {
	client *minio.Client
	bucket string
}

// NewVoiceStorage creates the storage client and ensures the voice
// bucket exists.
func NewVoiceStorage(ctx context.Context, cfg config.MinIOConfig) (*VoiceStorage, error) {
	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	s := &VoiceStorage{
		client: client,
		bucket: cfg.GetMinioBucketVoiceMessages(),
	}

	exists, err := client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("check voice bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create voice bucket %s: %w", s.bucket, err)
		}
	}

	return s, nil
}

// SaveVoiceMessage stores one MP3 under the given filename.
func (s *VoiceStorage) SaveVoiceMessage(ctx context.Context, filename string, audio []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, filename, bytes.NewReader(audio), int64(len(audio)), minio.PutObjectOptions{
		ContentType: "audio/mpeg",
	})
	if err != nil {
		return fmt.Errorf("store voice message %s: %w", filename, err)
	}
	return nil
}

// DownloadURL returns a short-lived presigned GET URL for a stored
// voice message.
func (s *VoiceStorage) DownloadURL(ctx context.Context, filename string) (string, error) {
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, filename, presignedURLTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign voice message %s: %w", filename, err)
	}
	return presigned.String(), nil
}
