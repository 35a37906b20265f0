package video

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mango/internal/ai"
)

// ListModelsResponseData 模型清单响应数据
type ListModelsResponseData struct {
	Models []ai.ModelInfo `json:"models"` // 可用模型列表
	Count  int            `json:"count"`  // 模型数量
}

// ListModels 获取可用模型清单
// @Summary      获取可用模型清单
// @Description  返回当前配置的模型与各提供商的内置目录合并后的清单（带缓存）
// @Tags         视频生成
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "成功响应"
// @Failure      500  {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/videos/models [get]
func (h *Handler) ListModels(c *gin.Context) {
	ctx := c.Request.Context()

	models, err := h.videoService.ListModels(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": ListModelsResponseData{
			Models: models,
			Count:  len(models),
		},
	})
}
