package videotools

import (
	"fmt"
	"strings"

	"mango/internal/model/video"
)

// BuildStyleBriefsPrompt 构造风格简报生成的提示词
// 要求模型一次性产出恰好 count 个互不相同的风格方向，输出为纯 JSON 数组
func BuildStyleBriefsPrompt(prompt string, count int, imageAttached bool) string {
	var b strings.Builder
	b.WriteString("You are a creative director for short motion-graphics videos.\n")
	fmt.Fprintf(&b, "Propose exactly %d distinct visual styles for the video idea below.\n\n", count)

	b.WriteString("【Video idea】\n")
	b.WriteString(prompt)
	b.WriteString("\n\n")

	if imageAttached {
		b.WriteString("【Reference image】\n")
		b.WriteString("The user attached a reference image. For every style, the styleBrief must describe how the image should be featured in the video (as a hero layer, a background, a masked reveal, etc).\n\n")
	}

	b.WriteString("【Output format - strict】\n")
	b.WriteString("Respond with ONLY a valid JSON array. No markdown fences, no commentary before or after.\n")
	b.WriteString("[\n")
	b.WriteString("  {\"styleName\": \"...\", \"styleBrief\": \"...\"}\n")
	b.WriteString("]\n")
	fmt.Fprintf(&b, "- exactly %d elements\n", count)
	b.WriteString("- styleName: a short distinct art-direction name (2-5 words)\n")
	b.WriteString("- styleBrief: 2-4 sentences of concrete creative direction: palette, motion language, typography, pacing\n")
	b.WriteString("- every style must be clearly distinct from the others\n")
	b.WriteString("- double quotes around all keys and string values, no trailing commas\n")

	return b.String()
}

// BuildVideoSpecPrompt 构造单个风格的完整视频规格提示词
// 嵌入该风格的名称与简报作为创意方向，并声明组件的结构性约束
func BuildVideoSpecPrompt(prompt string, style video.StyleBrief, imageAttached bool) string {
	var b strings.Builder
	b.WriteString("You are an expert Remotion developer. Author one complete, renderable video composition for the idea below, executed in one specific visual style.\n\n")

	b.WriteString("【Video idea】\n")
	b.WriteString(prompt)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "【Style direction: %s】\n", style.StyleName)
	b.WriteString(style.StyleBrief)
	b.WriteString("\n\n")

	if imageAttached {
		b.WriteString("【Attached image】\n")
		fmt.Fprintf(&b, "The composition receives the user's uploaded image as a data URL in inputProps.%s. Read it from props and feature it visibly in the video (for example an <Img> layer with an animated reveal). Do not invent a different image URL.\n\n", ImagePropKey)
	}

	b.WriteString("【Component rules】\n")
	b.WriteString("- componentCode is one self-contained React component in TypeScript\n")
	b.WriteString("- it MUST have a default export (e.g. `export default function Scene() {...}`)\n")
	b.WriteString("- import only from \"react\" and \"remotion\"\n")
	b.WriteString("- inline styles only; no external CSS, fonts or assets beyond the provided image prop\n")
	b.WriteString("- animate with useCurrentFrame()/interpolate()/spring(); keep motion continuous for the whole duration, no dead frames\n")
	b.WriteString("- target duration 6-12 seconds at the declared fps\n\n")

	b.WriteString("【Output format - strict】\n")
	b.WriteString("Respond with ONLY one valid JSON object. No markdown fences, no commentary.\n")
	b.WriteString("{\n")
	b.WriteString("  \"title\": \"...\",\n")
	b.WriteString("  \"width\": 1920,\n")
	b.WriteString("  \"height\": 1080,\n")
	b.WriteString("  \"fps\": 30,\n")
	b.WriteString("  \"durationInFrames\": 300,\n")
	b.WriteString("  \"inputProps\": {},\n")
	b.WriteString("  \"componentCode\": \"import React from 'react'; ...\"\n")
	b.WriteString("}\n")
	b.WriteString("- escape the component source correctly as one JSON string (\\n for newlines, \\\" for quotes)\n")
	b.WriteString("- no trailing commas anywhere\n")

	return b.String()
}
