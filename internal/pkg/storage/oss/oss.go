package oss

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"mango/internal/pkg/storage"
)

// OSSStorage 阿里云OSS存储
type OSSStorage struct {
	bucket        *oss.Bucket
	bucketName    string
	presignExpiry int // 预签名URL过期时间（秒）
}

// NewOSSStorage 创建阿里云OSS存储
func NewOSSStorage(endpoint, bucketName, accessKeyID, accessKeySecret string, presignExpiry int) (*OSSStorage, error) {
	// 创建OSS客户端
	client, err := oss.New(endpoint, accessKeyID, accessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create OSS client: %w", err)
	}

	// 获取Bucket
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	return &OSSStorage{
		bucket:        bucket,
		bucketName:    bucketName,
		presignExpiry: presignExpiry,
	}, nil
}

// Upload 上传文件（服务端上传）
func (s *OSSStorage) Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	options := []oss.Option{
		oss.ContentType(contentType),
	}

	err := s.bucket.PutObject(key, data, options...)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	// 返回文件URL
	url := fmt.Sprintf("https://%s.%s/%s", s.bucketName, s.bucket.Client.Config.Endpoint, key)
	return url, nil
}

// GetPresignedDownloadURL 获取预签名下载URL
func (s *OSSStorage) GetPresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	// 如果配置的过期时间小于请求的过期时间，使用配置的过期时间
	expiry := expiresIn
	if time.Duration(s.presignExpiry)*time.Second < expiresIn {
		expiry = time.Duration(s.presignExpiry) * time.Second
	}

	url, err := s.bucket.SignURL(key, oss.HTTPGet, int64(expiry.Seconds()))
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned download URL: %w", err)
	}

	return url, nil
}

// Delete 删除文件
func (s *OSSStorage) Delete(ctx context.Context, key string) error {
	err := s.bucket.DeleteObject(key)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists 检查文件是否存在
func (s *OSSStorage) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := s.bucket.IsObjectExist(key)
	if err != nil {
		return false, fmt.Errorf("failed to check file existence: %w", err)
	}
	return exists, nil
}

// GetStorageType 获取存储类型
func (s *OSSStorage) GetStorageType() string {
	return string(storage.StorageTypeOSS)
}
