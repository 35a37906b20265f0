package ai

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"mango/internal/pkg/ark"
)

// 消息角色
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message 会话内的一条消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatBackend 各提供方的最小聊天后端
// 输入整段会话历史，输出本轮助手回复
type chatBackend interface {
	generate(ctx context.Context, history []Message) (string, error)
	close() error
}

// Session 一次模型会话
// SendPrompt 串行调用，内部维护会话历史；用完必须 Close，Close 幂等
type Session struct {
	modelID string
	backend chatBackend
	timeout time.Duration

	mu      sync.Mutex
	history []Message
	closed  bool
}

// ModelID 本会话绑定的模型
func (s *Session) ModelID() string {
	return s.modelID
}

// SendPrompt 发送一条用户消息并等待回复
// 每次调用受固定超时约束（来自 ai.timeout 配置），超时按错误返回；
// 回复为空串不算错误，调用方可用 Messages 翻历史兜底
func (s *Session) SendPrompt(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", fmt.Errorf("session is closed")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.history = append(s.history, Message{Role: RoleUser, Content: text})

	content, err := s.backend.generate(ctx, s.history)
	if err != nil {
		return "", fmt.Errorf("send prompt to model %q: %w", s.modelID, err)
	}

	s.history = append(s.history, Message{Role: RoleAssistant, Content: content})
	return content, nil
}

// Messages 返回会话内的完整消息历史（拷贝）
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.history))
	copy(out, s.history)
	return out
}

// Close 关闭会话并释放底层连接
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.backend.close()
}

// einoBackend 走 Eino ChatModel 的后端（openai / azure / ark）
type einoBackend struct {
	chatModel model.ChatModel
}

func (b *einoBackend) generate(ctx context.Context, history []Message) (string, error) {
	messages := make([]*schema.Message, 0, len(history))
	for _, m := range history {
		switch m.Role {
		case RoleAssistant:
			messages = append(messages, schema.AssistantMessage(m.Content, nil))
		default:
			messages = append(messages, schema.UserMessage(m.Content))
		}
	}

	response, err := b.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", err
	}
	return response.Content, nil
}

func (b *einoBackend) close() error {
	return nil
}

// arkBackend 走火山引擎官方 SDK 的后端（provider=ark-sdk）
type arkBackend struct {
	client  *ark.Client
	modelID string
}

func (b *arkBackend) generate(ctx context.Context, history []Message) (string, error) {
	messages := make([]ark.Message, len(history))
	for i, m := range history {
		messages[i] = ark.Message{Role: m.Role, Content: m.Content}
	}

	resp, err := b.client.CreateChatCompletion(ctx, &ark.ChatCompletionRequest{
		Model:    b.modelID,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (b *arkBackend) close() error {
	return nil
}
