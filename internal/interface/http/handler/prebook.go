package handler

import (
	"github.com/gin-gonic/gin"

	appprebook "github.com/xiebiao/bookmall/internal/application/prebook"
	"github.com/xiebiao/bookmall/internal/interface/http/dto"
	"github.com/xiebiao/bookmall/internal/interface/http/middleware"
	"github.com/xiebiao/bookmall/pkg/response"
)

// PreBookHandler 缺货预订HTTP处理器(全部接口需登录)
type PreBookHandler struct {
	preBookUseCase *appprebook.PreBookUseCase
}

// NewPreBookHandler 创建预订处理器
func NewPreBookHandler(preBookUseCase *appprebook.PreBookUseCase) *PreBookHandler {
	return &PreBookHandler{preBookUseCase: preBookUseCase}
}

// Create 创建预订
// @Summary      创建缺货预订
// @Description  只有零库存的图书可以预订，补货后自动流转为已通知
// @Tags         预订
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreatePreBookRequest true "图书"
// @Success      201 {object} response.Response{data=dto.PreBookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "图书有库存或已有等待中的预订"
// @Router       /api/v1/prebooks [post]
func (h *PreBookHandler) Create(c *gin.Context) {
	var req dto.CreatePreBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.preBookUseCase.Create(c.Request.Context(), userID, req.BookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toPreBookDTO(result))
}

// ListMine 我的预订列表
// @Summary      我的预订
// @Tags         预订
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]dto.PreBookResponse}
// @Router       /api/v1/prebooks [get]
func (h *PreBookHandler) ListMine(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	preBooks, err := h.preBookUseCase.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.PreBookResponse, len(preBooks))
	for i, p := range preBooks {
		list[i] = toPreBookDTO(p)
	}
	response.Success(c, list)
}

// Cancel 取消预订
// @Summary      取消预订
// @Description  仅本人的等待中预订可取消
// @Tags         预订
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "预订ID"
// @Success      200 {object} response.Response{data=dto.PreBookResponse}
// @Failure      400 {object} response.Response "预订状态不允许取消"
// @Failure      404 {object} response.Response "预订不存在"
// @Router       /api/v1/prebooks/{id}/cancel [post]
func (h *PreBookHandler) Cancel(c *gin.Context) {
	preBookID, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的预订ID")
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.preBookUseCase.Cancel(c.Request.Context(), preBookID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toPreBookDTO(result))
}

// toPreBookDTO 应用层DTO → HTTP层DTO
func toPreBookDTO(p *appprebook.PreBookResponse) *dto.PreBookResponse {
	return &dto.PreBookResponse{
		ID:         p.ID,
		BookID:     p.BookID,
		BookTitle:  p.BookTitle,
		Status:     p.Status,
		NotifiedAt: p.NotifiedAt,
		CreatedAt:  p.CreatedAt,
	}
}
