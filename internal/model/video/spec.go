package video

// VideoSpec 模型产出的可渲染视频规格
// 数值字段由归一化处理钳制到安全范围，component_code 原样透传（由生成阶段校验）
type VideoSpec struct {
	Title            string         `bson:"title" json:"title"`                           // 视频标题
	Width            int            `bson:"width" json:"width"`                           // 宽度（像素）
	Height           int            `bson:"height" json:"height"`                         // 高度（像素）
	FPS              int            `bson:"fps" json:"fps"`                               // 帧率
	DurationInFrames int            `bson:"duration_in_frames" json:"durationInFrames"`   // 时长（帧数）
	InputProps       map[string]any `bson:"input_props,omitempty" json:"inputProps"`      // 传给合成组件的属性
	ComponentCode    string         `bson:"component_code,omitempty" json:"componentCode"` // 模型编写的组件源码
}

// VideoMetadata 渲染成功后回显给调用方的规格元数据
type VideoMetadata struct {
	Title            string `bson:"title" json:"title"`
	Width            int    `bson:"width" json:"width"`
	Height           int    `bson:"height" json:"height"`
	FPS              int    `bson:"fps" json:"fps"`
	DurationInFrames int    `bson:"duration_in_frames" json:"durationInFrames"`
}

// Metadata 提取规格的元数据部分
func (s *VideoSpec) Metadata() VideoMetadata {
	return VideoMetadata{
		Title:            s.Title,
		Width:            s.Width,
		Height:           s.Height,
		FPS:              s.FPS,
		DurationInFrames: s.DurationInFrames,
	}
}
