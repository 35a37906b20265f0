package video

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"mango/internal/service/video"
)

// GenerateVideoRequest 视频生成请求
type GenerateVideoRequest struct {
	Prompt       string `json:"prompt" binding:"required,min=10,max=2000"`  // 视频创意描述（必填）
	Model        string `json:"model" binding:"omitempty,min=1,max=100"`    // 模型ID（可选，默认用配置的模型）
	VariantCount int    `json:"variantCount" binding:"omitempty,oneof=1 4"` // 变体数量（可选，1或4，默认1）
	ImageDataURL string `json:"imageDataUrl" binding:"omitempty"`           // 参考图 data URL（可选）
}

// maxImageDataURLLen 参考图 data URL 的长度上限（8MB）
const maxImageDataURLLen = 8 << 20

// imageDataURLPattern 仅接受 base64 形式的常见图片类型
var imageDataURLPattern = regexp.MustCompile(`^data:image/(png|jpeg|jpg|webp|gif);base64,`)

// GenerateVideo 生成视频变体
// @Summary      生成视频变体
// @Description  根据提示词生成1个或4个风格互异的视频变体并渲染成片，逐变体返回结果（支持部分成功）。只要有一个变体成功即返回200。
// @Tags         视频生成
// @Accept       json
// @Produce      json
// @Param        request  body      GenerateVideoRequest  true  "视频生成请求"
// @Success      200      {object}  video.GenerateOutput  "生成完成（含部分成功）"
// @Failure      400      {object}  ErrorResponse         "请求参数错误"
// @Failure      500      {object}  video.GenerateOutput  "请求级失败或全部变体失败（仍携带逐变体明细）"
// @Router       /api/v1/videos/generate [post]
func (h *Handler) GenerateVideo(c *gin.Context) {
	var req GenerateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	if req.ImageDataURL != "" {
		if len(req.ImageDataURL) > maxImageDataURLLen {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    40001,
				Message: "imageDataUrl exceeds size limit",
			})
			return
		}
		if !imageDataURLPattern.MatchString(req.ImageDataURL) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    40001,
				Message: "imageDataUrl must be a base64 data URL of png/jpeg/webp/gif",
			})
			return
		}
	}

	ctx := c.Request.Context()

	out, err := h.videoService.GenerateVideo(ctx, &video.GenerateInput{
		Prompt:       req.Prompt,
		Model:        req.Model,
		VariantCount: req.VariantCount,
		ImageDataURL: req.ImageDataURL,
	})
	if err != nil {
		// 请求级失败与全部变体失败都按输出形状原样返回，保留逐变体明细
		c.JSON(http.StatusInternalServerError, out)
		return
	}

	c.JSON(http.StatusOK, out)
}
