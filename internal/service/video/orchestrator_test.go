package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"mango/internal/config"
	"mango/internal/model/video"
	"mango/internal/pkg/storage"
	"mango/internal/pkg/videotools"
)

// scriptedProvider 按提示词内容脚本化回复的模型替身
type scriptedProvider struct {
	fn func(prompt string) (string, error)
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return p.fn(prompt)
}

// fakeEngine 可注入失败点的渲染引擎替身，记录所有打包过的入口文件
type fakeEngine struct {
	mu             sync.Mutex
	bundledEntries []string

	bundleErr   func(entry string) error
	resolveErr  func(bundle string) error
	renderErr   func(bundle string) error
	writeOutput bool // Render 成功时落一个假的输出文件
}

func (e *fakeEngine) Bundle(ctx context.Context, entryPoint string) (string, error) {
	e.mu.Lock()
	e.bundledEntries = append(e.bundledEntries, entryPoint)
	e.mu.Unlock()

	if e.bundleErr != nil {
		if err := e.bundleErr(entryPoint); err != nil {
			return "", err
		}
	}
	return filepath.Join(filepath.Dir(entryPoint), "bundle"), nil
}

func (e *fakeEngine) SelectComposition(ctx context.Context, bundleLocation, compositionID, propsPath string) error {
	if e.resolveErr != nil {
		return e.resolveErr(bundleLocation)
	}
	return nil
}

func (e *fakeEngine) Render(ctx context.Context, bundleLocation, compositionID, propsPath, outputPath string) error {
	if e.renderErr != nil {
		if err := e.renderErr(bundleLocation); err != nil {
			return err
		}
	}
	if e.writeOutput {
		return os.WriteFile(outputPath, []byte("mp4"), 0644)
	}
	return nil
}

func (e *fakeEngine) entries() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.bundledEntries))
	copy(out, e.bundledEntries)
	return out
}

// fakeStore 记录上传key的存储替身
type fakeStore struct {
	mu        sync.Mutex
	uploaded  []string
	uploadErr error
}

func (f *fakeStore) Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	_, _ = io.Copy(io.Discard, data)
	f.mu.Lock()
	f.uploaded = append(f.uploaded, key)
	f.mu.Unlock()
	return "https://cdn.test/" + key, nil
}

func (f *fakeStore) GetPresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	return "https://cdn.test/" + key, nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error { return nil }

func (f *fakeStore) Exists(ctx context.Context, key string) (bool, error) { return false, nil }

func (f *fakeStore) GetStorageType() string { return "fake" }

func stylesJSON(names ...string) string {
	var b strings.Builder
	b.WriteString("[")
	for i, n := range names {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"styleName": %q, "styleBrief": "direction for %s"}`, n, n)
	}
	b.WriteString("]")
	return b.String()
}

const renderableComponent = "import React from 'react';\nexport default function Scene() { return null; }"

func renderableSpecJSON() string {
	return fmt.Sprintf(`{"title":"Clip","width":1280,"height":720,"fps":30,"durationInFrames":240,"inputProps":{"headline":"hi"},"componentCode":%q}`, renderableComponent)
}

// isBriefsPrompt / specStyleOf 区分两类提示词（与 videotools 的提示词结构对应）
func isBriefsPrompt(prompt string) bool {
	return strings.Contains(prompt, "Propose exactly")
}

func newTestService(workDir, outDir string, provider videotools.LLMProvider, engine RenderEngine, store storage.Storage) *videoService {
	cfg := &config.Config{
		Render: config.RenderConfig{
			WorkDir:       workDir,
			OutputDir:     outDir,
			MaxConcurrent: 4,
			Timeout:       time.Minute,
		},
	}
	return &videoService{
		cfg:    cfg,
		engine: engine,
		store:  store,
		providerFor: func(string) videotools.LLMProvider {
			return provider
		},
	}
}

func stepNames(logs []video.StepLog) []string {
	names := make([]string, len(logs))
	for i, l := range logs {
		names[i] = l.Step
	}
	return names
}

func TestGenerateVideo(t *testing.T) {
	Convey("GenerateVideo 编排完整的变体生成流水线", t, func() {
		ctx := context.Background()

		Convey("四个风格全部成功", func() {
			provider := &scriptedProvider{fn: func(prompt string) (string, error) {
				if isBriefsPrompt(prompt) {
					return stylesJSON("Neon Dreams", "Paper Cutout", "Vapor Grid", "Ink Wash"), nil
				}
				return renderableSpecJSON(), nil
			}}
			engine := &fakeEngine{writeOutput: true}
			store := &fakeStore{}
			svc := newTestService(t.TempDir(), t.TempDir(), provider, engine, store)

			out, err := svc.GenerateVideo(ctx, &GenerateInput{Prompt: "a rocket launch celebration", VariantCount: 4})
			So(err, ShouldBeNil)
			So(out, ShouldNotBeNil)
			So(out.OK, ShouldBeTrue)
			So(out.RequestID, ShouldNotBeEmpty)
			So(out.Variants, ShouldHaveLength, 4)

			Convey("结果保持简报顺序且全部成功", func() {
				So(out.Variants[0].StyleName, ShouldEqual, "Neon Dreams")
				So(out.Variants[1].StyleName, ShouldEqual, "Paper Cutout")
				So(out.Variants[2].StyleName, ShouldEqual, "Vapor Grid")
				So(out.Variants[3].StyleName, ShouldEqual, "Ink Wash")
				for i, v := range out.Variants {
					So(v.VariantID, ShouldEqual, fmt.Sprintf("style-%d", i+1))
					So(v.Status, ShouldEqual, video.VariantStatusSucceeded)
					So(v.Error, ShouldBeEmpty)
				}
			})

			Convey("jobId 拼接 requestId、variantId 与风格 slug", func() {
				So(out.Variants[0].JobID, ShouldEqual, out.RequestID+"-style-1-neon-dreams")
				So(out.Variants[0].VideoURL, ShouldEqual, "https://cdn.test/videos/"+out.Variants[0].JobID+".mp4")
			})

			Convey("便捷字段取首个成功变体", func() {
				So(out.JobID, ShouldEqual, out.Variants[0].JobID)
				So(out.VideoURL, ShouldEqual, out.Variants[0].VideoURL)
				So(out.Metadata, ShouldNotBeNil)
				So(out.Metadata.Width, ShouldEqual, 1280)
				So(out.Metadata.FPS, ShouldEqual, 30)
				So(out.Metadata.DurationInFrames, ShouldEqual, 240)
			})

			Convey("工作目录按 requestId/variantId 隔离互不冲突", func() {
				entries := engine.entries()
				So(entries, ShouldHaveLength, 4)
				seen := map[string]bool{}
				for _, e := range entries {
					So(e, ShouldContainSubstring, out.RequestID)
					So(seen[e], ShouldBeFalse)
					seen[e] = true
				}
			})

			Convey("阶段日志覆盖全部切换点", func() {
				names := stepNames(out.Logs)
				So(names, ShouldContain, "request.received")
				So(names, ShouldContain, "briefs.done")
				So(names, ShouldContain, "specs.done")
				So(names, ShouldContain, "render.done")
				So(names[len(names)-1], ShouldEqual, "request.done")
			})

			Convey("所有成片都已发布", func() {
				So(store.uploaded, ShouldHaveLength, 4)
			})
		})

		Convey("部分失败互不影响，结果恰好每风格一条", func() {
			provider := &scriptedProvider{fn: func(prompt string) (string, error) {
				if isBriefsPrompt(prompt) {
					return stylesJSON("Solid", "Broken Spec", "Doomed Render", "Sturdy"), nil
				}
				if strings.Contains(prompt, "Style direction: Broken Spec") {
					return "", errors.New("model unavailable")
				}
				return renderableSpecJSON(), nil
			}}
			engine := &fakeEngine{
				writeOutput: true,
				renderErr: func(bundle string) error {
					if strings.Contains(bundle, "style-3") {
						return errors.New("chromium crashed")
					}
					return nil
				},
			}
			svc := newTestService(t.TempDir(), t.TempDir(), provider, engine, &fakeStore{})

			out, err := svc.GenerateVideo(ctx, &GenerateInput{Prompt: "a rocket launch celebration", VariantCount: 4})
			So(err, ShouldBeNil)
			So(out.OK, ShouldBeTrue)
			So(out.Variants, ShouldHaveLength, 4)

			So(out.Variants[0].Status, ShouldEqual, video.VariantStatusSucceeded)
			So(out.Variants[3].Status, ShouldEqual, video.VariantStatusSucceeded)

			So(out.Variants[1].Status, ShouldEqual, video.VariantStatusFailed)
			So(out.Variants[1].Error, ShouldContainSubstring, "generation failed at spec stage")
			So(out.Variants[1].Error, ShouldContainSubstring, "model unavailable")

			So(out.Variants[2].Status, ShouldEqual, video.VariantStatusFailed)
			So(out.Variants[2].Error, ShouldContainSubstring, "failed at render")
			So(out.Variants[2].Error, ShouldContainSubstring, "chromium crashed")

			Convey("规格失败的风格不进入渲染阶段", func() {
				for _, e := range engine.entries() {
					So(e, ShouldNotContainSubstring, string(filepath.Separator)+"style-2"+string(filepath.Separator))
				}
			})

			Convey("便捷字段仍指向首个成功变体", func() {
				So(out.JobID, ShouldEqual, out.Variants[0].JobID)
			})
		})

		Convey("全部变体失败时返回 TotalFailureError", func() {
			provider := &scriptedProvider{fn: func(prompt string) (string, error) {
				if isBriefsPrompt(prompt) {
					return stylesJSON("A", "B", "C", "D"), nil
				}
				return renderableSpecJSON(), nil
			}}
			engine := &fakeEngine{bundleErr: func(string) error { return errors.New("esbuild not found") }}
			svc := newTestService(t.TempDir(), t.TempDir(), provider, engine, nil)

			out, err := svc.GenerateVideo(ctx, &GenerateInput{Prompt: "a rocket launch celebration", VariantCount: 4})
			So(err, ShouldNotBeNil)
			So(out, ShouldNotBeNil)
			So(out.OK, ShouldBeFalse)

			var totalErr *TotalFailureError
			So(errors.As(err, &totalErr), ShouldBeTrue)
			So(totalErr.Variants, ShouldHaveLength, 4)
			So(out.Error, ShouldContainSubstring, "all 4 variants failed")

			for _, v := range out.Variants {
				So(v.Status, ShouldEqual, video.VariantStatusFailed)
				So(v.Error, ShouldContainSubstring, "failed at bundle")
			}
			So(stepNames(out.Logs), ShouldContain, "request.failed")
		})

		Convey("风格简报失败属于请求级失败", func() {
			provider := &scriptedProvider{fn: func(prompt string) (string, error) {
				return "", errors.New("rate limited")
			}}
			svc := newTestService(t.TempDir(), t.TempDir(), provider, &fakeEngine{}, nil)

			out, err := svc.GenerateVideo(ctx, &GenerateInput{Prompt: "a rocket launch celebration", VariantCount: 4})
			So(err, ShouldNotBeNil)

			var genErr *GenerationError
			So(errors.As(err, &genErr), ShouldBeTrue)
			So(genErr.Stage, ShouldEqual, "briefs")

			So(out, ShouldNotBeNil)
			So(out.OK, ShouldBeFalse)
			So(out.Variants, ShouldBeEmpty)
			So(out.Error, ShouldContainSubstring, "briefs")
			So(stepNames(out.Logs), ShouldContain, "request.failed")
		})

		Convey("未指定变体数时默认生成一个", func() {
			var briefsPrompt string
			provider := &scriptedProvider{fn: func(prompt string) (string, error) {
				if isBriefsPrompt(prompt) {
					briefsPrompt = prompt
					return stylesJSON("Solo"), nil
				}
				return renderableSpecJSON(), nil
			}}
			svc := newTestService(t.TempDir(), t.TempDir(), provider, &fakeEngine{writeOutput: true}, nil)

			out, err := svc.GenerateVideo(ctx, &GenerateInput{Prompt: "a rocket launch celebration"})
			So(err, ShouldBeNil)
			So(out.Variants, ShouldHaveLength, 1)
			So(briefsPrompt, ShouldContainSubstring, "exactly 1")
		})
	})
}
