package video

import (
	"mango/internal/service/video"
)

// Handler 视频生成处理器
// 所有video相关的Handler方法都通过这个结构体访问Service
type Handler struct {
	videoService video.VideoService
}

// NewHandler 创建视频生成处理器
func NewHandler(videoService video.VideoService) *Handler {
	return &Handler{
		videoService: videoService,
	}
}
