package video

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"mango/internal/service/video"
)

// GetRequest 获取单个生成请求
// @Summary      获取单个生成请求
// @Description  根据请求ID返回完整的落库记录，含逐变体明细与阶段日志
// @Tags         视频生成
// @Accept       json
// @Produce      json
// @Param        id  path      string  true  "请求ID"
// @Success      200  {object}  map[string]interface{}  "成功响应"
// @Failure      400  {object}  ErrorResponse  "请求参数错误"
// @Failure      404  {object}  ErrorResponse  "请求不存在"
// @Failure      500  {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/videos/requests/{id} [get]
func (h *Handler) GetRequest(c *gin.Context) {
	requestID := c.Param("id")
	if requestID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "id is required",
		})
		return
	}

	ctx := c.Request.Context()

	req, err := h.videoService.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Code:    40401,
				Message: "request not found",
			})
			return
		}

		code := 50001
		if errors.Is(err, video.ErrHistoryUnavailable) {
			code = 50002
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    code,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    req,
	})
}
