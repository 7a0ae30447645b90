package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"time"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageService stores submission attachments and generated report files
// in an S3-compatible bucket.
type StorageService struct {
	client     *minio.Client
	bucketName string
}

// NewStorageService connects to MinIO and ensures the supervision bucket exists
func NewStorageService() (*StorageService, error) {
	cfg := config.GetConfig()

	// Parse endpoint URL to get host
	parsedURL, err := url.Parse(cfg.MinIOServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid MinIO endpoint: %v", err)
	}

	endpoint := parsedURL.Host
	useSSL := cfg.MinIOUseSSL

	log.Printf("🔗 Connecting to MinIO: %s (SSL: %v)", endpoint, useSSL)

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIORootUser, cfg.MinIORootPassword, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %v", err)
	}

	service := &StorageService{
		client:     minioClient,
		bucketName: cfg.MinIOBucketName,
	}

	if err := service.initializeBucket(); err != nil {
		return nil, err
	}

	return service, nil
}

func (s *StorageService) initializeBucket() error {
	ctx := context.Background()

	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %v", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %v", err)
		}
		log.Printf("✅ MinIO bucket '%s' created successfully", s.bucketName)
	} else {
		log.Printf("✅ MinIO bucket '%s' already exists", s.bucketName)
	}

	return nil
}

// AttachmentKey builds the object key for a submission attachment
func AttachmentKey(submissionID uuid.UUID, fileName string) string {
	return fmt.Sprintf("submissions/%s/%s", submissionID, fileName)
}

// ReportKey builds the object key for a generated supervision report
func ReportKey(reportID uuid.UUID, fileName string) string {
	return fmt.Sprintf("reports/%s/%s", reportID, fileName)
}

// UploadObject stores one object under the given key
func (s *StorageService) UploadObject(ctx context.Context, key string, file io.Reader, fileSize int64, contentType string) error {
	log.Printf("⬆️ Uploading object: %s/%s (size: %d bytes)", s.bucketName, key, fileSize)

	_, err := s.client.PutObject(ctx, s.bucketName, key, file, fileSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %v", err)
	}

	return nil
}

// PresignedDownloadURL returns a time-limited download URL for an object
func (s *StorageService) PresignedDownloadURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	presigned, err := s.client.PresignedGetObject(ctx, s.bucketName, key, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign object: %v", err)
	}
	return presigned.String(), nil
}

// RemoveObject deletes one object
func (s *StorageService) RemoveObject(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %v", err)
	}
	return nil
}

// TestConnection verifies MinIO is reachable
func (s *StorageService) TestConnection() error {
	ctx := context.Background()

	if _, err := s.client.ListBuckets(ctx); err != nil {
		return fmt.Errorf("failed to connect to MinIO: %v", err)
	}

	return nil
}
