package video

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mango/internal/service/video"
)

// ListRequestsResponseData 请求历史列表响应数据
type ListRequestsResponseData struct {
	Requests []RequestSummary `json:"requests"` // 请求列表
	Total    int64            `json:"total"`    // 总条数
	Page     int              `json:"page"`     // 当前页码
	PageSize int              `json:"pageSize"` // 每页条数
}

// ListRequests 查询生成请求历史
// @Summary      查询生成请求历史
// @Description  按创建时间倒序分页返回已落库的视频生成请求（不含逐变体明细与阶段日志）
// @Tags         视频生成
// @Accept       json
// @Produce      json
// @Param        page       query     int  false  "页码，默认1"
// @Param        page_size  query     int  false  "每页条数，默认20，最大100"
// @Success      200        {object}  map[string]interface{}  "成功响应"
// @Failure      500        {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/videos/requests [get]
func (h *Handler) ListRequests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	ctx := c.Request.Context()

	requests, total, err := h.videoService.ListRequests(ctx, int64(pageSize), int64((page-1)*pageSize))
	if err != nil {
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
		"data": ListRequestsResponseData{
			Requests: toRequestSummaryList(requests),
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		},
	})
}
