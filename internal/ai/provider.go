package ai

import (
	"context"
	"fmt"
	"strings"
)

// SessionProvider 把会话客户端适配成"单发提示词"形态的提供者
// 每次 Generate 独立走一遍 会话创建 → 发送 → 关闭，关闭必达（defer），
// 并发调用互不共享会话历史
type SessionProvider struct {
	client  *Client
	modelID string
}

// NewSessionProvider 创建会话提供者
// modelID 为空时使用配置的默认模型
func NewSessionProvider(client *Client, modelID string) *SessionProvider {
	return &SessionProvider{
		client:  client,
		modelID: modelID,
	}
}

// Generate 单次提示词调用
//
// Args:
//   - ctx: 上下文
//   - prompt: 完整提示词
//
// Returns:
//   - content: 模型回复文本；回复为空串时翻会话历史取最后一条助手消息兜底
//   - err: 会话创建或发送失败，或兜底后仍为空
func (p *SessionProvider) Generate(ctx context.Context, prompt string) (string, error) {
	session, err := p.client.StartSession(ctx, p.modelID)
	if err != nil {
		return "", err
	}
	defer session.Close()

	content, err := session.SendPrompt(ctx, prompt)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(content) == "" {
		content = lastAssistantMessage(session.Messages())
	}
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("model %q returned empty response", session.ModelID())
	}
	return content, nil
}

// lastAssistantMessage 从历史里取最后一条非空的助手消息
func lastAssistantMessage(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleAssistant && strings.TrimSpace(messages[i].Content) != "" {
			return messages[i].Content
		}
	}
	return ""
}
