package ark

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/volcengine/volcengine-go-sdk/service/arkruntime"
	"github.com/volcengine/volcengine-go-sdk/service/arkruntime/model"

	"mango/internal/config"
)

// 默认接入点与模型
const (
	defaultBaseURL = "https://ark.cn-beijing.volces.com/api/v3"
	defaultModel   = "doubao-seed-1-6-flash-250615"
)

// Client Ark 客户端封装
// 用于调用火山引擎的 Ark API（豆包大模型），走官方 volcengine-go-sdk
// 参考: https://github.com/volcengine/volcengine-go-sdk
type Client struct {
	client *arkruntime.Client
	model  string
	opts   config.AIOptionsConfig
}

// NewClient 创建 Ark 客户端（使用官方 SDK）
// cfg.Options 作为客户端级默认参数，单次请求未指定时生效
func NewClient(cfg *config.AIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Ark API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	modelID := cfg.Model
	if modelID == "" {
		modelID = defaultModel
	}

	arkClient := arkruntime.NewClientWithApiKey(cfg.APIKey, arkruntime.WithBaseUrl(baseURL))

	return &Client{
		client: arkClient,
		model:  modelID,
		opts:   cfg.Options,
	}, nil
}

// ChatCompletionRequest 聊天完成请求
type ChatCompletionRequest struct {
	Model       string    `json:"model"`                 // 模型名称
	Messages    []Message `json:"messages"`              // 消息列表
	MaxTokens   *int      `json:"max_tokens,omitempty"`  // 最大token数
	Temperature *float64  `json:"temperature,omitempty"` // 温度参数
	TopP        *float64  `json:"top_p,omitempty"`       // TopP参数
}

// Message 消息结构
type Message struct {
	Role    string `json:"role"`    // user, assistant, system
	Content string `json:"content"` // 消息内容
}

// ChatCompletionResponse 聊天完成响应
type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

// Choice 选择结果
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage Token使用统计
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CreateChatCompletion 创建聊天完成
// 这是主要的 API 调用方法，用于生成文本
func (c *Client) CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	// 如果没有指定模型，使用客户端默认模型
	if req.Model == "" {
		req.Model = c.model
	}

	// 构建请求参数
	input := &model.ChatCompletionRequest{
		Model:    req.Model,
		Messages: convertMessages(req.Messages),
	}

	// 请求级参数优先，否则回退到客户端级默认值
	if req.MaxTokens != nil {
		input.MaxTokens = *req.MaxTokens
	} else if c.opts.MaxTokens > 0 {
		input.MaxTokens = c.opts.MaxTokens
	}

	if req.Temperature != nil {
		input.Temperature = float32(*req.Temperature)
	} else if c.opts.Temperature > 0 {
		input.Temperature = float32(c.opts.Temperature)
	}

	if req.TopP != nil {
		input.TopP = float32(*req.TopP)
	} else if c.opts.TopP > 0 {
		input.TopP = float32(c.opts.TopP)
	}

	// 调用 API
	output, err := c.client.CreateChatCompletion(ctx, input)
	if err != nil {
		log.Error().Err(err).Str("model", req.Model).Msg("failed to call Ark ChatCompletion API")
		return nil, fmt.Errorf("Ark API call failed: %w", err)
	}

	// 转换响应
	return convertChatCompletionResponse(&output), nil
}

// convertMessages 转换消息格式
func convertMessages(messages []Message) []*model.ChatCompletionMessage {
	result := make([]*model.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		content := &model.ChatCompletionMessageContent{
			StringValue: &msg.Content,
		}
		result[i] = &model.ChatCompletionMessage{
			Role:    msg.Role,
			Content: content,
		}
	}
	return result
}

// convertChatCompletionResponse 转换响应格式
func convertChatCompletionResponse(output *model.ChatCompletionResponse) *ChatCompletionResponse {
	resp := &ChatCompletionResponse{
		ID:      output.ID,
		Choices: make([]Choice, len(output.Choices)),
	}

	for i, choice := range output.Choices {
		// 提取消息内容
		var content string
		if choice.Message.Content != nil && choice.Message.Content.StringValue != nil {
			content = *choice.Message.Content.StringValue
		}

		resp.Choices[i] = Choice{
			Index: choice.Index,
			Message: Message{
				Role:    choice.Message.Role,
				Content: content,
			},
			FinishReason: string(choice.FinishReason),
		}
	}

	// 转换 Usage
	resp.Usage = &Usage{
		PromptTokens:     output.Usage.PromptTokens,
		CompletionTokens: output.Usage.CompletionTokens,
		TotalTokens:      output.Usage.TotalTokens,
	}

	return resp
}
