package videotools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"mango/internal/model/video"
)

// ImagePropKey 附加参考图在 inputProps 中的固定键名
// 真实上传的数据永远覆盖模型在该键上臆造的值
const ImagePropKey = "imageDataUrl"

// defaultExportPattern 组件源码必须携带的默认导出标记
var defaultExportPattern = regexp.MustCompile(`\bexport\s+default\b`)

// HasDefaultExport 组件源码是否带有默认导出标记
func HasDefaultExport(code string) bool {
	return defaultExportPattern.MatchString(code)
}

// SpecGenerator 视频规格生成器
// 对单个风格简报发起一次模型调用，产出完整的可渲染规格；
// 结构不合格（含缺失默认导出）直接判该风格失败，错误信息带上风格名便于定位
type SpecGenerator struct {
	llmProvider LLMProvider // 调用大模型的提供者（由上层注入，便于在不同环境下切换实现）
}

// NewSpecGenerator 创建视频规格生成器实例
func NewSpecGenerator(llmProvider LLMProvider) *SpecGenerator {
	return &SpecGenerator{
		llmProvider: llmProvider,
	}
}

// rawVideoSpec 解析模型 JSON 的临时结构
// 数值按 JSON number 宽松接收（模型偶尔给出 29.97 这类帧率），取整后再归一化
type rawVideoSpec struct {
	Title            string         `json:"title"`
	Width            float64        `json:"width"`
	Height           float64        `json:"height"`
	FPS              float64        `json:"fps"`
	DurationInFrames float64        `json:"durationInFrames"`
	InputProps       map[string]any `json:"inputProps"`
	ComponentCode    string         `json:"componentCode"`
}

// Generate 为单个风格生成并归一化一份视频规格
//
// Args:
//   - ctx: 上下文
//   - prompt: 用户的视频创意提示词
//   - style: 该变体的风格简报
//   - imageDataURL: 参考图 data URL（可为空）
//
// Returns:
//   - spec: 归一化后的规格；附图时 inputProps 中的固定键已被真实数据覆盖
//   - err: 模型调用失败、JSON 不可恢复、形状不符或组件缺失默认导出
func (sg *SpecGenerator) Generate(ctx context.Context, prompt string, style video.StyleBrief, imageDataURL string) (video.VideoSpec, error) {
	if sg.llmProvider == nil {
		return video.VideoSpec{}, fmt.Errorf("llmProvider is required")
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return video.VideoSpec{}, fmt.Errorf("prompt is empty")
	}

	instruction := BuildVideoSpecPrompt(prompt, style, imageDataURL != "")
	content, err := sg.llmProvider.Generate(ctx, instruction)
	if err != nil {
		return video.VideoSpec{}, fmt.Errorf("call model service for style %q: %w", style.StyleName, err)
	}

	raw, err := ExtractJSON(content)
	if err != nil {
		return video.VideoSpec{}, fmt.Errorf("extract spec JSON for style %q: %w", style.StyleName, err)
	}

	spec, err := decodeVideoSpec(raw)
	if err != nil {
		return video.VideoSpec{}, fmt.Errorf("decode spec for style %q: %w", style.StyleName, err)
	}

	if !HasDefaultExport(spec.ComponentCode) {
		return video.VideoSpec{}, fmt.Errorf("component for style %q has no default export", style.StyleName)
	}

	spec = NormalizeSpec(spec)

	if imageDataURL != "" {
		spec.InputProps[ImagePropKey] = imageDataURL
	}
	return spec, nil
}

// SpecOutcome 单个风格的规格生成结果（成功或失败二选一）
type SpecOutcome struct {
	Style video.StyleBrief
	Spec  video.VideoSpec
	Err   error
}

// GenerateForStyles 并发地为所有风格生成规格
// settle 语义：每个风格的失败只记录在自己的结果槽里，绝不中断兄弟风格；
// 返回的结果与 styles 顺序一一对应
func (sg *SpecGenerator) GenerateForStyles(ctx context.Context, prompt string, styles []video.StyleBrief, imageDataURL string) []SpecOutcome {
	outcomes := make([]SpecOutcome, len(styles))

	var g errgroup.Group
	for i, style := range styles {
		g.Go(func() error {
			spec, err := sg.Generate(ctx, prompt, style, imageDataURL)
			outcomes[i] = SpecOutcome{Style: style, Spec: spec, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// decodeVideoSpec 将恢复出的 JSON 解码为规格实体（本层只管形状，范围由归一化处理）
func decodeVideoSpec(raw json.RawMessage) (video.VideoSpec, error) {
	var rs rawVideoSpec
	if err := json.Unmarshal(raw, &rs); err != nil {
		return video.VideoSpec{}, err
	}
	return video.VideoSpec{
		Title:            rs.Title,
		Width:            int(math.Round(rs.Width)),
		Height:           int(math.Round(rs.Height)),
		FPS:              int(math.Round(rs.FPS)),
		DurationInFrames: int(math.Round(rs.DurationInFrames)),
		InputProps:       rs.InputProps,
		ComponentCode:    rs.ComponentCode,
	}, nil
}
