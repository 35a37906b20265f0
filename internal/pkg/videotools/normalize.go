package videotools

import (
	"math"
	"strings"

	"mango/internal/model/video"
)

// 规格数值的安全范围与缺省值
// 超出范围的值一律钳制而不拒绝：模型给出的轻微失真只是观感问题，不应让整条流水线崩掉
const (
	MinFPS            = 12
	MaxFPS            = 60
	MinDurationFrames = 45
	MaxDurationFrames = 1800
	MinWidth          = 320
	MaxWidth          = 3840
	MinHeight         = 240
	MaxHeight         = 2160

	DefaultFPS            = 30
	DefaultDurationFrames = 300
	DefaultWidth          = 1920
	DefaultHeight         = 1080
	DefaultTitle          = "Untitled Video"

	// MinDurationSeconds 成片内容时长下限（秒），对应帧数下限为 ceil(fps*6)
	MinDurationSeconds = 6
)

// NormalizeSpec 将未受信的模型规格钳制到安全范围
// 全函数且幂等：任何输入都得到合法规格，重复归一化结果不变；
// component_code 原样透传，其有效性由生成阶段单独校验
func NormalizeSpec(spec video.VideoSpec) video.VideoSpec {
	spec.FPS = clampInt(spec.FPS, DefaultFPS, MinFPS, MaxFPS)

	spec.DurationInFrames = clampInt(spec.DurationInFrames, DefaultDurationFrames, MinDurationFrames, MaxDurationFrames)
	minFrames := int(math.Ceil(float64(spec.FPS) * MinDurationSeconds))
	if spec.DurationInFrames < minFrames {
		spec.DurationInFrames = minFrames
	}

	spec.Width = clampInt(spec.Width, DefaultWidth, MinWidth, MaxWidth)
	spec.Height = clampInt(spec.Height, DefaultHeight, MinHeight, MaxHeight)

	if strings.TrimSpace(spec.Title) == "" {
		spec.Title = DefaultTitle
	}
	if spec.InputProps == nil {
		spec.InputProps = map[string]any{}
	}

	return spec
}

// clampInt 零值取缺省，再钳制到 [lo, hi]
func clampInt(v, def, lo, hi int) int {
	if v == 0 {
		v = def
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
