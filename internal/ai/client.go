package ai

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"mango/internal/ai/component"
	"mango/internal/config"
	"mango/internal/pkg/ark"
)

// Client 模型服务客户端
// 职责: 会话生命周期管理与模型清单；每次 StartSession 建立独立后端连接
type Client struct {
	cfg *config.AIConfig
}

// NewClient 创建模型服务客户端
// 配置里没有密钥时不报错：本地导出过 OPENAI_API_KEY / ARK_API_KEY 的环境照常可用
func NewClient(cfg *config.AIConfig) (*Client, error) {
	if cfg.APIKey == "" && ambientAPIKey(cfg.Provider) == "" {
		log.Warn().Str("provider", cfg.Provider).Msg("AI API key not configured, relying on provider-local credentials")
	}
	return &Client{cfg: cfg}, nil
}

// StartSession 启动一个新会话
//
// Args:
//   - ctx: 上下文
//   - modelID: 本会话使用的模型，空串回落到配置的默认模型
//
// Returns:
//   - session: 新会话，调用方负责 Close
//   - err: 后端初始化失败
func (c *Client) StartSession(ctx context.Context, modelID string) (*Session, error) {
	if modelID == "" {
		modelID = c.cfg.Model
	}

	backend, err := c.newBackend(ctx, modelID)
	if err != nil {
		return nil, fmt.Errorf("start session for model %q: %w", modelID, err)
	}

	return &Session{
		modelID: modelID,
		backend: backend,
		timeout: c.cfg.Timeout,
	}, nil
}

// newBackend 按 provider 选择后端实现
// ark-sdk 直连火山官方 SDK，其余走 Eino 组件层
func (c *Client) newBackend(ctx context.Context, modelID string) (chatBackend, error) {
	sessCfg := *c.cfg
	sessCfg.Model = modelID
	if sessCfg.APIKey == "" {
		sessCfg.APIKey = ambientAPIKey(sessCfg.Provider)
	}

	if sessCfg.Provider == "ark-sdk" {
		client, err := ark.NewClient(&sessCfg)
		if err != nil {
			return nil, err
		}
		return &arkBackend{client: client, modelID: modelID}, nil
	}

	chatModel, err := component.NewChatModel(ctx, &sessCfg)
	if err != nil {
		return nil, err
	}
	return &einoBackend{chatModel: chatModel}, nil
}

// ambientAPIKey 从环境变量兜底取密钥
func ambientAPIKey(provider string) string {
	switch provider {
	case "ark", "ark-sdk":
		return os.Getenv("ARK_API_KEY")
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}
