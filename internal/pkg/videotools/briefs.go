package videotools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"mango/internal/model/video"
)

// 简报字段的长度上限（字符数）
// 超限视为结构性失败：简报便宜，重新生成好过带病进入后续扇出
const (
	maxStyleNameLength  = 80
	maxStyleBriefLength = 1200
)

// BriefGenerator 风格简报生成器
//
// 设计原则：
//   - 不负责落库 / 不依赖 HTTP，只负责组装 prompt、调用注入的 LLM 并做结构校验
//   - 本阶段没有部分成功：任何一个元素不合格都判整批失败
type BriefGenerator struct {
	llmProvider LLMProvider // 调用大模型的提供者（由上层注入，便于在不同环境下切换实现）
}

// NewBriefGenerator 创建风格简报生成器实例
//
// Args:
//   - llmProvider: 调用大模型的提供者
//
// Returns:
//   - *BriefGenerator: 生成器实例
func NewBriefGenerator(llmProvider LLMProvider) *BriefGenerator {
	return &BriefGenerator{
		llmProvider: llmProvider,
	}
}

// rawStyleBrief 解析模型 JSON 的临时结构
type rawStyleBrief struct {
	StyleName  string `json:"styleName"`  // 风格名称
	StyleBrief string `json:"styleBrief"` // 创意方向描述
}

// Generate 为提示词生成恰好 count 个风格简报
//
// Args:
//   - ctx: 上下文
//   - prompt: 用户的视频创意提示词
//   - count: 要求的风格数量
//   - imageAttached: 是否附带参考图（影响提示词内容）
//
// Returns:
//   - briefs: 风格简报列表，variant_id 按位置分配为 style-1..style-N
//   - err: 模型调用失败、JSON 不可恢复、数量不符或任一元素不合格
func (bg *BriefGenerator) Generate(ctx context.Context, prompt string, count int, imageAttached bool) ([]video.StyleBrief, error) {
	if bg.llmProvider == nil {
		return nil, fmt.Errorf("llmProvider is required")
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("prompt is empty")
	}
	if count <= 0 {
		return nil, fmt.Errorf("invalid style count: %d", count)
	}

	instruction := BuildStyleBriefsPrompt(prompt, count, imageAttached)
	content, err := bg.llmProvider.Generate(ctx, instruction)
	if err != nil {
		return nil, fmt.Errorf("call model service: %w", err)
	}

	raw, err := ExtractJSON(content)
	if err != nil {
		return nil, fmt.Errorf("extract styles JSON: %w", err)
	}

	items, err := decodeStyleList(raw)
	if err != nil {
		return nil, err
	}
	if len(items) != count {
		return nil, fmt.Errorf("model returned %d styles, expected %d", len(items), count)
	}

	names := make([]string, len(items))
	briefs := make([]video.StyleBrief, len(items))
	for i, item := range items {
		name := strings.TrimSpace(item.StyleName)
		brief := strings.TrimSpace(item.StyleBrief)
		if name == "" || brief == "" {
			return nil, fmt.Errorf("style %d is missing styleName or styleBrief", i+1)
		}
		if utf8.RuneCountInString(name) > maxStyleNameLength {
			return nil, fmt.Errorf("style %d: styleName exceeds %d characters", i+1, maxStyleNameLength)
		}
		if utf8.RuneCountInString(brief) > maxStyleBriefLength {
			return nil, fmt.Errorf("style %d: styleBrief exceeds %d characters", i+1, maxStyleBriefLength)
		}
		names[i] = name
		briefs[i] = video.StyleBrief{
			VariantID:  fmt.Sprintf("style-%d", i+1),
			StyleBrief: brief,
		}
	}

	for i, name := range DedupeStyleNames(names) {
		briefs[i].StyleName = name
	}
	return briefs, nil
}

// decodeStyleList 解析风格列表，接受顶层数组或带 styles 字段的对象两种形态
func decodeStyleList(raw json.RawMessage) ([]rawStyleBrief, error) {
	var list []rawStyleBrief
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var wrapper struct {
		Styles []rawStyleBrief `json:"styles"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil && wrapper.Styles != nil {
		return wrapper.Styles, nil
	}

	return nil, fmt.Errorf("styles payload is neither a JSON array nor an object with a styles array")
}
