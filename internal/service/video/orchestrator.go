package video

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"mango/internal/model/video"
	"mango/internal/pkg/id"
	"mango/internal/pkg/videotools"
)

// GenerateVideo 一次生成请求的完整编排
// 阶段: 风格简报（失败即请求级失败）→ 并发生成规格 → 并发渲染规格成功者 →
// 按简报顺序折叠，每个风格恰好一条结果，错误取最贴近失败点的那个
func (s *videoService) GenerateVideo(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	startTime := time.Now()
	requestID := id.New()

	variantCount := input.VariantCount
	if variantCount <= 0 {
		variantCount = 1
	}

	out := &GenerateOutput{
		RequestID: requestID,
		Variants:  []video.VariantResult{},
		Logs:      []video.StepLog{},
	}
	logStep := func(step, detail string) {
		out.Logs = append(out.Logs, video.StepLog{At: time.Now(), Step: step, Detail: detail})
	}

	log.Info().
		Str("request_id", requestID).
		Int("variant_count", variantCount).
		Str("model", input.Model).
		Bool("image_attached", input.ImageDataURL != "").
		Msg("开始视频生成请求")
	logStep("request.received", fmt.Sprintf("%d variants requested", variantCount))

	provider := s.providerFor(input.Model)

	// 阶段1: 风格简报
	logStep("briefs.start", "")
	briefs, err := videotools.NewBriefGenerator(provider).Generate(ctx, input.Prompt, variantCount, input.ImageDataURL != "")
	if err != nil {
		genErr := &GenerationError{Stage: "briefs", Err: err}
		out.Error = genErr.Error()
		logStep("request.failed", out.Error)
		log.Error().Err(err).
			Str("request_id", requestID).
			Dur("duration", time.Since(startTime)).
			Msg("风格简报生成失败，请求终止")
		s.persistRequest(ctx, input, out, variantCount, startTime)
		return out, genErr
	}
	logStep("briefs.done", fmt.Sprintf("%d styles", len(briefs)))
	log.Info().
		Str("request_id", requestID).
		Int("styles", len(briefs)).
		Msg("风格简报生成完成")

	// 阶段2: 并发生成视频规格
	logStep("specs.start", "")
	specOutcomes := videotools.NewSpecGenerator(provider).GenerateForStyles(ctx, input.Prompt, briefs, input.ImageDataURL)
	specOK := 0
	for _, so := range specOutcomes {
		if so.Err == nil {
			specOK++
		}
	}
	logStep("specs.done", fmt.Sprintf("%d/%d specs generated", specOK, len(briefs)))
	log.Info().
		Str("request_id", requestID).
		Int("succeeded", specOK).
		Int("total", len(briefs)).
		Msg("视频规格生成完成")

	// 阶段3: 并发渲染规格成功的变体
	logStep("render.start", fmt.Sprintf("%d variants to render", specOK))
	renderResults := s.renderVariants(ctx, requestID, specOutcomes)

	// 阶段4: 按简报顺序折叠结果
	succeeded := 0
	for _, so := range specOutcomes {
		result := video.VariantResult{
			VariantID:  so.Style.VariantID,
			StyleName:  so.Style.StyleName,
			StyleBrief: so.Style.StyleBrief,
			Status:     video.VariantStatusFailed,
		}

		switch {
		case so.Err != nil:
			result.Error = (&GenerationError{Stage: "spec", Err: so.Err}).Error()
		case renderResults[so.Style.VariantID] == nil:
			result.Error = fmt.Sprintf("no render outcome recorded for %s", so.Style.VariantID)
		case renderResults[so.Style.VariantID].err != nil:
			result.Error = renderResults[so.Style.VariantID].err.Error()
		default:
			ro := renderResults[so.Style.VariantID]
			result.Status = video.VariantStatusSucceeded
			result.JobID = ro.jobID
			result.VideoURL = ro.videoURL
			result.OutputPath = ro.outputPath
			result.Metadata = ro.metadata
			succeeded++
		}
		out.Variants = append(out.Variants, result)
	}
	logStep("render.done", fmt.Sprintf("%d/%d variants rendered", succeeded, len(briefs)))

	// 首个成功变体回填便捷字段
	for i := range out.Variants {
		if out.Variants[i].Succeeded() {
			out.OK = true
			out.JobID = out.Variants[i].JobID
			out.VideoURL = out.Variants[i].VideoURL
			out.Metadata = out.Variants[i].Metadata
			break
		}
	}

	if !out.OK {
		totalErr := &TotalFailureError{RequestID: requestID, Variants: out.Variants}
		out.Error = totalErr.Error()
		logStep("request.failed", out.Error)
		log.Error().
			Str("request_id", requestID).
			Int("variants", len(out.Variants)).
			Dur("duration", time.Since(startTime)).
			Msg("所有变体均失败")
		s.persistRequest(ctx, input, out, variantCount, startTime)
		return out, totalErr
	}

	logStep("request.done", fmt.Sprintf("%d/%d variants succeeded", succeeded, len(briefs)))
	log.Info().
		Str("request_id", requestID).
		Int("succeeded", succeeded).
		Int("total", len(briefs)).
		Dur("duration", time.Since(startTime)).
		Msg("视频生成请求完成")

	s.persistRequest(ctx, input, out, variantCount, startTime)
	return out, nil
}

// persistRequest 把完成的请求整体落库（尽力而为，失败只告警不影响响应）
func (s *videoService) persistRequest(ctx context.Context, input *GenerateInput, out *GenerateOutput, variantCount int, startTime time.Time) {
	if s.requestRepo == nil {
		return
	}

	now := time.Now()
	record := &video.RenderRequest{
		ID:            out.RequestID,
		Prompt:        input.Prompt,
		Model:         input.Model,
		VariantCount:  variantCount,
		ImageAttached: input.ImageDataURL != "",
		OK:            out.OK,
		JobID:         out.JobID,
		VideoURL:      out.VideoURL,
		Error:         out.Error,
		Variants:      out.Variants,
		Logs:          out.Logs,
		ElapsedMS:     now.Sub(startTime).Milliseconds(),
		CreatedAt:     startTime,
		CompletedAt:   now,
	}

	if err := s.requestRepo.Create(ctx, record); err != nil {
		log.Warn().Err(err).
			Str("request_id", out.RequestID).
			Msg("请求记录落库失败，继续返回结果")
	}
}
