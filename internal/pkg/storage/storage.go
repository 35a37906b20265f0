package storage

import (
	"context"
	"io"
	"time"
)

// Storage 存储接口
// 渲染产物（MP4）落到这里后对外发布访问地址
type Storage interface {
	// Upload 上传文件（服务端上传），返回可访问的URL
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)

	// GetPresignedDownloadURL 获取预签名下载URL
	GetPresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// Delete 删除文件
	Delete(ctx context.Context, key string) error

	// Exists 检查文件是否存在
	Exists(ctx context.Context, key string) (bool, error)

	// GetStorageType 获取存储类型
	GetStorageType() string
}

// StorageType 存储类型
type StorageType string

const (
	StorageTypeLocal StorageType = "local" // 本地文件系统
	StorageTypeOSS   StorageType = "oss"   // 阿里云OSS
)
