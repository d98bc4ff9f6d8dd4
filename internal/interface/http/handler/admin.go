package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	appadmin "github.com/xiebiao/bookmall/internal/application/admin"
	"github.com/xiebiao/bookmall/pkg/response"
)

// AdminHandler 管理端分析HTTP处理器
type AdminHandler struct {
	analyticsUseCase *appadmin.AnalyticsUseCase
}

// NewAdminHandler 创建管理端处理器
func NewAdminHandler(analyticsUseCase *appadmin.AnalyticsUseCase) *AdminHandler {
	return &AdminHandler{analyticsUseCase: analyticsUseCase}
}

// GetSummary 销售汇总
// @Summary      销售汇总
// @Description  统计口径不含已取消订单，金额取订单行价格快照
// @Tags         管理端
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "起始日期(2026-01-01)"
// @Param        to query string false "截止日期(2026-01-31)"
// @Success      200 {object} response.Response
// @Failure      403 {object} response.Response "需要管理员权限"
// @Router       /api/v1/admin/analytics/summary [get]
func (h *AdminHandler) GetSummary(c *gin.Context) {
	from, to, err := parseTimeRange(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "日期格式错误，应为2006-01-02")
		return
	}

	result, err := h.analyticsUseCase.GetSummary(c.Request.Context(), appadmin.SummaryRequest{
		From: from,
		To:   to,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// TopBooks 畅销图书
// @Summary      畅销图书
// @Description  按销量倒序，默认前10
// @Tags         管理端
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "数量" default(10)
// @Success      200 {object} response.Response
// @Failure      403 {object} response.Response "需要管理员权限"
// @Router       /api/v1/admin/analytics/top-books [get]
func (h *AdminHandler) TopBooks(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.analyticsUseCase.TopBooks(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RevenueByDay 按天销售额
// @Summary      按天销售额
// @Tags         管理端
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "起始日期(2026-01-01)"
// @Param        to query string false "截止日期(2026-01-31)"
// @Success      200 {object} response.Response
// @Failure      403 {object} response.Response "需要管理员权限"
// @Router       /api/v1/admin/analytics/revenue-by-day [get]
func (h *AdminHandler) RevenueByDay(c *gin.Context) {
	from, to, err := parseTimeRange(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "日期格式错误，应为2006-01-02")
		return
	}

	result, err := h.analyticsUseCase.RevenueByDay(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// parseTimeRange 解析from/to日期参数(零值表示不限)
// to取当天末尾,保证截止日当天的订单计入统计
func parseTimeRange(c *gin.Context) (time.Time, time.Time, error) {
	var from, to time.Time

	if s := c.Query("from"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return from, to, err
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return from, to, err
		}
		to = t.Add(24*time.Hour - time.Nanosecond)
	}

	return from, to, nil
}
