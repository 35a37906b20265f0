package config

import (
	"errors"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	AI      AIConfig      `mapstructure:"ai"`
	Render  RenderConfig  `mapstructure:"render"`
	Log     LogConfig     `mapstructure:"log"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Storage StorageConfig `mapstructure:"storage"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// AIConfig AI 服务配置
type AIConfig struct {
	Provider string          `mapstructure:"provider"`
	APIKey   string          `mapstructure:"api_key"`
	Model    string          `mapstructure:"model"`
	BaseURL  string          `mapstructure:"base_url"`
	Timeout  time.Duration   `mapstructure:"timeout"` // 单次模型调用的上限等待时间
	Options  AIOptionsConfig `mapstructure:"options"`
}

// AIOptionsConfig AI 模型参数
type AIOptionsConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	TopP        float64 `mapstructure:"top_p"`
}

// RenderConfig Remotion 渲染配置
type RenderConfig struct {
	NpxPath       string        `mapstructure:"npx_path"`       // npx 可执行文件路径
	WorkDir       string        `mapstructure:"work_dir"`       // 渲染任务工作目录
	OutputDir     string        `mapstructure:"output_dir"`     // 视频输出目录
	MaxConcurrent int           `mapstructure:"max_concurrent"` // 并发渲染上限
	Timeout       time.Duration `mapstructure:"timeout"`        // 单个渲染任务超时
	KeepWorkspace bool          `mapstructure:"keep_workspace"` // 渲染后保留工作目录（调试用）
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// MongoConfig MongoDB 配置
type MongoConfig struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
	MinPoolSize uint64 `mapstructure:"min_pool_size"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StorageConfig 存储配置
type StorageConfig struct {
	Type  string       `mapstructure:"type"` // local, oss
	Local *LocalConfig `mapstructure:"local,omitempty"`
	OSS   *OSSConfig   `mapstructure:"oss,omitempty"`
}

// LocalConfig 本地文件系统配置
type LocalConfig struct {
	BasePath      string `mapstructure:"base_path"`      // 基础路径
	BaseURL       string `mapstructure:"base_url"`       // 基础URL（用于生成访问URL）
	PresignExpiry int    `mapstructure:"presign_expiry"` // 预签名URL过期时间（秒）
}

// OSSConfig 阿里云OSS配置
type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`          // OSS端点
	Bucket          string `mapstructure:"bucket"`            // Bucket名称
	AccessKeyID     string `mapstructure:"access_key_id"`     // AccessKey ID
	AccessKeySecret string `mapstructure:"access_key_secret"` // AccessKey Secret
	PresignExpiry   int    `mapstructure:"presign_expiry"`    // 预签名URL过期时间（秒）
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	if c.AI.Timeout <= 0 {
		return errors.New("ai.timeout must be positive")
	}

	if c.Render.WorkDir == "" || c.Render.OutputDir == "" {
		return errors.New("render.work_dir and render.output_dir are required")
	}
	if c.Render.MaxConcurrent < 1 {
		return errors.New("render.max_concurrent must be at least 1")
	}

	return nil
}
