package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"mango/internal/model/video"
	"mango/internal/pkg/videotools"
)

// RenderEngine 渲染引擎契约
// 三段式：打包工程 → 解析合成 → 渲染到文件；本地 CLI 实现在 internal/pkg/remotion
type RenderEngine interface {
	Bundle(ctx context.Context, entryPoint string) (string, error)
	SelectComposition(ctx context.Context, bundleLocation, compositionID, propsPath string) error
	Render(ctx context.Context, bundleLocation, compositionID, propsPath, outputPath string) error
}

// renderOutcome 单个变体的渲染结果
// 渲染器从不向上抛错：任何一步失败都收敛成带 err 的结果
type renderOutcome struct {
	variantID  string
	jobID      string
	videoURL   string
	outputPath string
	metadata   *video.VideoMetadata
	err        error
}

// renderVariant 渲染单个变体并发布产物
// 工作目录按 (requestID, variantID) 隔离，并发请求与并发变体互不踩踏
func (s *videoService) renderVariant(ctx context.Context, requestID string, style video.StyleBrief, spec video.VideoSpec) *renderOutcome {
	startTime := time.Now()

	slug := videotools.StyleSlug(style.StyleName)
	jobID := fmt.Sprintf("%s-%s-%s", requestID, style.VariantID, slug)
	workspace := filepath.Join(s.cfg.Render.WorkDir, requestID, style.VariantID)

	outcome := &renderOutcome{variantID: style.VariantID, jobID: jobID}
	fail := func(stage string, err error) *renderOutcome {
		outcome.err = &RenderError{VariantID: style.VariantID, Stage: stage, Err: err}
		log.Error().Err(err).
			Str("request_id", requestID).
			Str("variant_id", style.VariantID).
			Str("job_id", jobID).
			Str("stage", stage).
			Dur("duration", time.Since(startTime)).
			Msg("变体渲染失败")
		return outcome
	}

	log.Info().
		Str("request_id", requestID).
		Str("variant_id", style.VariantID).
		Str("job_id", jobID).
		Str("style", style.StyleName).
		Msg("开始渲染变体")

	if err := writeWorkspace(workspace, spec); err != nil {
		return fail("workspace", err)
	}
	if !s.cfg.Render.KeepWorkspace {
		defer os.RemoveAll(workspace)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Render.Timeout)
	defer cancel()

	entry := filepath.Join(workspace, "index.ts")
	propsPath := filepath.Join(workspace, "props.json")

	bundleDir, err := s.engine.Bundle(ctx, entry)
	if err != nil {
		return fail("bundle", err)
	}

	if err := s.engine.SelectComposition(ctx, bundleDir, compositionID, propsPath); err != nil {
		return fail("resolve", err)
	}

	if err := os.MkdirAll(s.cfg.Render.OutputDir, 0755); err != nil {
		return fail("render", err)
	}
	outputPath := filepath.Join(s.cfg.Render.OutputDir, jobID+".mp4")
	if err := s.engine.Render(ctx, bundleDir, compositionID, propsPath, outputPath); err != nil {
		return fail("render", err)
	}
	outcome.outputPath = outputPath

	if s.store != nil {
		file, err := os.Open(outputPath)
		if err != nil {
			return fail("publish", err)
		}
		defer file.Close()

		url, err := s.store.Upload(ctx, "videos/"+jobID+".mp4", file, "video/mp4")
		if err != nil {
			return fail("publish", err)
		}
		outcome.videoURL = url
	}

	meta := spec.Metadata()
	outcome.metadata = &meta

	log.Info().
		Str("request_id", requestID).
		Str("variant_id", style.VariantID).
		Str("job_id", jobID).
		Str("output", outcome.outputPath).
		Dur("duration", time.Since(startTime)).
		Msg("变体渲染完成")

	return outcome
}

// renderVariants 并发渲染所有规格生成成功的变体
// 并发度受 render.max_concurrent 约束；结果按 variantID 建映射供编排层回填
func (s *videoService) renderVariants(ctx context.Context, requestID string, outcomes []videotools.SpecOutcome) map[string]*renderOutcome {
	rendered := make([]*renderOutcome, len(outcomes))

	var g errgroup.Group
	g.SetLimit(s.cfg.Render.MaxConcurrent)
	for i, so := range outcomes {
		if so.Err != nil {
			continue
		}
		g.Go(func() error {
			rendered[i] = s.renderVariant(ctx, requestID, so.Style, so.Spec)
			return nil
		})
	}
	_ = g.Wait()

	results := make(map[string]*renderOutcome, len(outcomes))
	for _, r := range rendered {
		if r != nil {
			results[r.variantID] = r
		}
	}
	return results
}
