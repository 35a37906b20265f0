package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mango/internal/pkg/storage"
)

// LocalStorage 本地文件系统存储
// 文件写到 basePath 下，访问URL 为 baseURL + key（由服务器静态路由提供）
type LocalStorage struct {
	basePath      string // 基础路径
	baseURL       string // 基础URL（用于生成访问URL）
	presignExpiry int    // 预签名URL过期时间（秒），本地存储仅保留字段对齐配置
}

// NewLocalStorage 创建本地文件系统存储
func NewLocalStorage(basePath, baseURL string, presignExpiry int) (*LocalStorage, error) {
	// 确保基础路径存在
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base path: %w", err)
	}

	return &LocalStorage{
		basePath:      basePath,
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		presignExpiry: presignExpiry,
	}, nil
}

// Upload 上传文件（服务端上传）
func (s *LocalStorage) Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	fullPath := filepath.Join(s.basePath, key)

	// 确保目录存在
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	// 创建文件
	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	// 写入数据
	if _, err := io.Copy(file, data); err != nil {
		os.Remove(fullPath) // 删除失败的文件
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	// 返回文件URL
	return s.getFileURL(key), nil
}

// GetPresignedDownloadURL 获取预签名下载URL
// 本地文件走服务器的静态路由，直接返回文件URL
func (s *LocalStorage) GetPresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	return s.getFileURL(key), nil
}

// Delete 删除文件
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	fullPath := filepath.Join(s.basePath, key)
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil // 文件不存在，认为删除成功
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists 检查文件是否存在
func (s *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	fullPath := filepath.Join(s.basePath, key)
	_, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetStorageType 获取存储类型
func (s *LocalStorage) GetStorageType() string {
	return string(storage.StorageTypeLocal)
}

// getFileURL 获取文件URL
func (s *LocalStorage) getFileURL(key string) string {
	// 将路径中的反斜杠替换为正斜杠
	urlKey := strings.ReplaceAll(key, "\\", "/")
	return fmt.Sprintf("%s/%s", s.baseURL, urlKey)
}
