package video

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"mango/internal/model/video"
)

// compositionID Remotion 工程里唯一注册的合成名，Root.tsx 与渲染命令都用它
const compositionID = "DynamicVideo"

// entrySource Remotion 入口文件（固定内容）
const entrySource = `import {registerRoot} from 'remotion';
import {Root} from './Root';

registerRoot(Root);
`

// rootTemplate 合成注册模板，按规格填入画布参数与默认 props
const rootTemplate = `import React from 'react';
import {Composition} from 'remotion';
import Component from './Component';

export const Root: React.FC = () => {
  return (
    <Composition
      id=%q
      component={Component}
      durationInFrames={%d}
      fps={%d}
      width={%d}
      height={%d}
      defaultProps={%s}
    />
  );
};
`

// writeWorkspace 在工作目录写出一个完整的 Remotion 工程
// 四个文件：入口、合成注册、模型产出的组件源码、渲染参数
func writeWorkspace(dir string, spec video.VideoSpec) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}

	props, err := json.MarshalIndent(spec.InputProps, "", "  ")
	if err != nil {
		return fmt.Errorf("encode input props: %w", err)
	}

	files := map[string]string{
		"index.ts":      entrySource,
		"Root.tsx":      fmt.Sprintf(rootTemplate, compositionID, spec.DurationInFrames, spec.FPS, spec.Width, spec.Height, string(props)),
		"Component.tsx": spec.ComponentCode,
		"props.json":    string(props),
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}
