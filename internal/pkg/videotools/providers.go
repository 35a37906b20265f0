package videotools

import (
	"context"
)

// LLMProvider 定义了调用大模型的接口
// 具体的「如何调用大模型」由调用方通过实现此接口注入，方便单测和替换实现；
// 每次 Generate 调用对应一次独立的会话获取与释放，由实现方保证释放
type LLMProvider interface {
	// Generate 根据提示词生成文本
	//
	// Args:
	//   - ctx: 上下文
	//   - prompt: 提示词
	//
	// Returns:
	//   - text: 生成的文本
	//   - err: 错误信息
	Generate(ctx context.Context, prompt string) (string, error)
}
