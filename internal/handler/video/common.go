package video

import (
	"time"

	"mango/internal/model/video"
	httputil "mango/internal/pkg/http"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// RequestSummary 请求历史列表项（不含逐变体明细与阶段日志）
type RequestSummary struct {
	ID           string `json:"id"`                 // 请求ID
	Prompt       string `json:"prompt"`             // 用户提示词
	Model        string `json:"model,omitempty"`    // 指定的模型ID
	VariantCount int    `json:"variantCount"`       // 请求的变体数量
	OK           bool   `json:"ok"`                 // 是否至少一个变体成功
	JobID        string `json:"jobId,omitempty"`    // 首个成功变体的任务ID
	VideoURL     string `json:"videoUrl,omitempty"` // 首个成功变体的视频地址
	ElapsedMS    int64  `json:"elapsedMs"`          // 总耗时（毫秒）
	CreatedAt    string `json:"createdAt"`          // 创建时间
}

// toRequestSummary 将 RenderRequest 实体转换为列表项 DTO
func toRequestSummary(req *video.RenderRequest) RequestSummary {
	return RequestSummary{
		ID:           req.ID,
		Prompt:       req.Prompt,
		Model:        req.Model,
		VariantCount: req.VariantCount,
		OK:           req.OK,
		JobID:        req.JobID,
		VideoURL:     req.VideoURL,
		ElapsedMS:    req.ElapsedMS,
		CreatedAt:    req.CreatedAt.Format(time.RFC3339),
	}
}

// toRequestSummaryList 将 RenderRequest 列表转换为列表项 DTO 列表
func toRequestSummaryList(requests []*video.RenderRequest) []RequestSummary {
	result := make([]RequestSummary, len(requests))
	for i, req := range requests {
		result[i] = toRequestSummary(req)
	}
	return result
}
