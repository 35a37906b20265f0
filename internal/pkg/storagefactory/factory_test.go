package storagefactory

import (
	"context"
	"strings"
	"testing"

	"mango/internal/config"
)

func TestNewStorage(t *testing.T) {
	tmpDir := t.TempDir()
	baseURL := "http://localhost:8080/files"

	tests := []struct {
		name    string
		cfg     *config.StorageConfig
		wantErr bool
	}{
		{
			name: "valid local storage config",
			cfg: &config.StorageConfig{
				Type: "local",
				Local: &config.LocalConfig{
					BasePath:      tmpDir,
					BaseURL:       baseURL,
					PresignExpiry: 3600,
				},
			},
			wantErr: false,
		},
		{
			name: "missing local config",
			cfg: &config.StorageConfig{
				Type:  "local",
				Local: nil,
			},
			wantErr: true,
		},
		{
			name: "missing oss config",
			cfg: &config.StorageConfig{
				Type: "oss",
				OSS:  nil,
			},
			wantErr: true,
		},
		{
			name: "unsupported storage type",
			cfg: &config.StorageConfig{
				Type: "invalid",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, err := NewStorage(ctx, tt.cfg)

			if tt.wantErr {
				if err == nil {
					t.Errorf("NewStorage() expected error, got nil")
				}
				if store != nil {
					t.Errorf("NewStorage() expected nil storage, got %v", store)
				}
				return
			}

			if err != nil {
				t.Errorf("NewStorage() unexpected error: %v", err)
				return
			}
			if store == nil {
				t.Errorf("NewStorage() expected storage instance, got nil")
			}
		})
	}
}

func TestLocalStorage_UploadAndServe(t *testing.T) {
	tmpDir := t.TempDir()
	baseURL := "http://localhost:8080/files"

	cfg := &config.StorageConfig{
		Type: "local",
		Local: &config.LocalConfig{
			BasePath:      tmpDir,
			BaseURL:       baseURL,
			PresignExpiry: 3600,
		},
	}

	ctx := context.Background()
	store, err := NewStorage(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	if store.GetStorageType() != "local" {
		t.Errorf("GetStorageType() = %v, want local", store.GetStorageType())
	}

	// 上传
	testKey := "videos/test-job.mp4"
	testContent := "fake mp4 bytes"

	url, err := store.Upload(ctx, testKey, strings.NewReader(testContent), "video/mp4")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	expectedURL := baseURL + "/" + testKey
	if url != expectedURL {
		t.Errorf("Upload() url = %v, want %v", url, expectedURL)
	}

	// 上传后文件可见
	exists, err := store.Exists(ctx, testKey)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Errorf("Exists() = false, want true")
	}

	// 预签名URL（本地实现即文件URL）
	presignedURL, err := store.GetPresignedDownloadURL(ctx, testKey, 0)
	if err != nil {
		t.Fatalf("GetPresignedDownloadURL() error = %v", err)
	}
	if presignedURL != expectedURL {
		t.Errorf("GetPresignedDownloadURL() url = %v, want %v", presignedURL, expectedURL)
	}

	// 删除后不可见，重复删除不报错
	if err := store.Delete(ctx, testKey); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	exists, err = store.Exists(ctx, testKey)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Errorf("Exists() = true, want false (file should be deleted)")
	}
	if err := store.Delete(ctx, testKey); err != nil {
		t.Errorf("Delete() error = %v, should succeed for non-existent file", err)
	}
}
