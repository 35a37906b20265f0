package remotion

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"mango/internal/config"
)

// Client Remotion CLI 客户端
// 渲染走本机的 Remotion 命令行（npx remotion ...）
// 工作目录需要能解析到 remotion 依赖（workspace 由调用方准备）
type Client struct {
	npxPath string // npx 可执行文件路径（默认: npx）
}

// NewClient 创建 Remotion 客户端
func NewClient(cfg *config.RenderConfig) *Client {
	npxPath := cfg.NpxPath
	if npxPath == "" {
		npxPath = os.Getenv("NPX_PATH")
	}
	if npxPath == "" {
		npxPath = "npx"
	}

	return &Client{
		npxPath: npxPath,
	}
}

// Bundle 打包 Remotion 工程
// npx remotion bundle entry.ts --out-dir bundle
func (c *Client) Bundle(ctx context.Context, entryPoint string) (string, error) {
	bundleDir := filepath.Join(filepath.Dir(entryPoint), "bundle")

	args := []string{
		"remotion", "bundle",
		entryPoint,
		"--out-dir", bundleDir,
		"--log", "error",
	}

	if err := c.run(ctx, filepath.Dir(entryPoint), args); err != nil {
		return "", fmt.Errorf("remotion bundle failed: %w", err)
	}

	log.Info().
		Str("entry", entryPoint).
		Str("bundle", bundleDir).
		Msg("Remotion 工程打包完成")

	return bundleDir, nil
}

// SelectComposition 确认目标合成存在于打包产物中
// npx remotion compositions bundle --props props.json
// 输出按行解析，首列是合成ID
func (c *Client) SelectComposition(ctx context.Context, bundleLocation, compositionID, propsPath string) error {
	args := []string{
		"remotion", "compositions",
		bundleLocation,
		"--log", "error",
	}
	if propsPath != "" {
		args = append(args, "--props", propsPath)
	}

	cmd := exec.CommandContext(ctx, c.npxPath, args...)
	cmd.Dir = filepath.Dir(bundleLocation)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return fmt.Errorf("remotion compositions failed: %w%s", err, stderrTail(&stderr))
	}

	for _, line := range strings.Split(string(output), "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == compositionID {
			return nil
		}
	}
	return fmt.Errorf("composition %q not found in bundle", compositionID)
}

// Render 渲染合成到目标文件
// npx remotion render bundle DynamicVideo out.mp4 --props props.json
func (c *Client) Render(ctx context.Context, bundleLocation, compositionID, propsPath, outputPath string) error {
	args := []string{
		"remotion", "render",
		bundleLocation,
		compositionID,
		outputPath,
		"--log", "error",
		"--overwrite",
	}
	if propsPath != "" {
		args = append(args, "--props", propsPath)
	}

	if err := c.run(ctx, filepath.Dir(bundleLocation), args); err != nil {
		return fmt.Errorf("remotion render failed: %w", err)
	}

	log.Info().
		Str("composition", compositionID).
		Str("output", outputPath).
		Msg("视频渲染完成")

	return nil
}

// run 执行一条 remotion 命令，stderr 尾部并入错误便于定位
func (c *Client) run(ctx context.Context, dir string, args []string) error {
	cmd := exec.CommandContext(ctx, c.npxPath, args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w%s", err, stderrTail(&stderr))
	}
	return nil
}

// stderrTail 取 stderr 末尾片段（渲染失败时 webpack 报错很长，只留结尾）
func stderrTail(buf *bytes.Buffer) string {
	s := strings.TrimSpace(buf.String())
	if s == "" {
		return ""
	}
	const maxTail = 512
	if len(s) > maxTail {
		s = s[len(s)-maxTail:]
	}
	return ": " + s
}
