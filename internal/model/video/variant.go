package video

import "time"

// VariantStatus 变体处理结果状态
type VariantStatus string

const (
	VariantStatusSucceeded VariantStatus = "succeeded" // 渲染成功
	VariantStatusFailed    VariantStatus = "failed"    // 任一阶段失败
)

// String 返回状态的字符串表示
func (s VariantStatus) String() string {
	return string(s)
}

// VariantResult 单个变体的最终结果
// 每个请求的 N 个简报各对应恰好一条结果，顺序与简报生成顺序一致；
// 无论在哪个阶段失败，都会带上原始简报信息与最贴近故障点的错误描述
type VariantResult struct {
	VariantID  string        `bson:"variant_id" json:"variantId"`
	StyleName  string        `bson:"style_name" json:"styleName"`
	StyleBrief string        `bson:"style_brief" json:"styleBrief"`
	Status     VariantStatus `bson:"status" json:"status"`

	// 仅 status == succeeded 时填充
	JobID      string         `bson:"job_id,omitempty" json:"jobId,omitempty"`           // 渲染任务标识（requestId-variantId-slug）
	VideoURL   string         `bson:"video_url,omitempty" json:"videoUrl,omitempty"`     // 成片访问地址
	OutputPath string         `bson:"output_path,omitempty" json:"outputPath,omitempty"` // 成片本地路径
	Metadata   *VideoMetadata `bson:"metadata,omitempty" json:"metadata,omitempty"`      // 回显的规格元数据

	// 仅 status == failed 时填充
	Error string `bson:"error,omitempty" json:"error,omitempty"`
}

// Succeeded 变体是否渲染成功
func (r *VariantResult) Succeeded() bool {
	return r.Status == VariantStatusSucceeded
}

// StepLog 流水线阶段日志条目
// 记录每次阶段切换，便于调用方定位某个变体死在哪一阶段
type StepLog struct {
	At     time.Time `bson:"at" json:"at"`
	Step   string    `bson:"step" json:"step"`
	Detail string    `bson:"detail,omitempty" json:"detail,omitempty"`
}
