package video

import (
	"errors"
	"fmt"

	"mango/internal/model/video"
)

// ErrHistoryUnavailable 未配置 MongoDB 时历史查询不可用
var ErrHistoryUnavailable = errors.New("request history unavailable: mongo not configured")

// GenerationError 模型生成阶段的失败
// Stage 标记发生在哪一步：briefs（请求级失败，后续阶段不再执行）或 spec（只判该变体失败）
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed at %s stage: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// RenderError 单个变体渲染管线的失败
// Stage 取值: workspace / bundle / resolve / render / publish
type RenderError struct {
	VariantID string
	Stage     string
	Err       error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s failed at %s: %v", e.VariantID, e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// TotalFailureError 请求的所有变体都失败
// 携带完整的变体明细，响应层原样下发便于排查
type TotalFailureError struct {
	RequestID string
	Variants  []video.VariantResult
}

func (e *TotalFailureError) Error() string {
	return fmt.Sprintf("all %d variants failed for request %s", len(e.Variants), e.RequestID)
}
