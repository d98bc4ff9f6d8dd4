package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookmall/internal/application/book"
	"github.com/xiebiao/bookmall/internal/interface/http/dto"
	"github.com/xiebiao/bookmall/pkg/response"
)

// BookHandler 图书HTTP处理器
// 列表/详情/分类查询公开,上架/修改/补货/删除仅管理员(路由层挂RequireAdmin)
type BookHandler struct {
	publishBookUseCase *appbook.PublishBookUseCase
	listBooksUseCase   *appbook.ListBooksUseCase
	getBookUseCase     *appbook.GetBookUseCase
	manageBookUseCase  *appbook.ManageBookUseCase
	setStockUseCase    *appbook.SetStockUseCase
	genreUseCase       *appbook.GenreUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	publishBookUseCase *appbook.PublishBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	manageBookUseCase *appbook.ManageBookUseCase,
	setStockUseCase *appbook.SetStockUseCase,
	genreUseCase *appbook.GenreUseCase,
) *BookHandler {
	return &BookHandler{
		publishBookUseCase: publishBookUseCase,
		listBooksUseCase:   listBooksUseCase,
		getBookUseCase:     getBookUseCase,
		manageBookUseCase:  manageBookUseCase,
		setStockUseCase:    setStockUseCase,
		genreUseCase:       genreUseCase,
	}
}

// PublishBook 发布图书(上架)
// @Summary      发布图书
// @Description  管理员上架新图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PublishBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      403 {object} response.Response "需要管理员权限"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) PublishBook(c *gin.Context) {
	var req dto.PublishBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.publishBookUseCase.Execute(c.Request.Context(), appbook.PublishBookRequest{
		ISBN:        req.ISBN,
		Title:       req.Title,
		Author:      req.Author,
		GenreID:     req.GenreID,
		Price:       req.Price,
		Stock:       req.Stock,
		CoverURL:    req.CoverURL,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toBookDTO(result))
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  分页查询图书，支持关键词搜索、分类筛选、只看有货、排序
// @Tags         图书
// @Produce      json
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Param        keyword query string false "搜索关键词(标题/作者)"
// @Param        genre_id query int false "分类ID"
// @Param        in_stock query bool false "只看有库存"
// @Param        sort_by query string false "排序" Enums(price_asc, price_desc, created_at_desc)
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		GenreID:  req.GenreID,
		InStock:  req.InStock,
		SortBy:   req.SortBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.BookListItem, len(result.List))
	for i, b := range result.List {
		list[i] = dto.BookListItem{
			ID:        b.ID,
			ISBN:      b.ISBN,
			Title:     b.Title,
			Author:    b.Author,
			GenreID:   b.GenreID,
			Price:     b.Price,
			PriceYuan: dto.FormatPriceYuan(b.Price),
			Stock:     b.Stock,
			InStock:   b.InStock,
			CoverURL:  b.CoverURL,
		}
	}

	response.SuccessWithPage(c, list, result.Total, result.Page, result.PageSize)
}

// GetBook 图书详情
// @Summary      图书详情
// @Description  查询单本图书，附带平均评分
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	bookID, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	result, err := h.getBookUseCase.Execute(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := toBookDTO(&result.BookResponse)
	resp.AverageRating = result.AverageRating
	response.Success(c, resp)
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Description  管理员修改图书信息和价格（空字段不修改，改价不影响已有订单）
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "更新内容"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      403 {object} response.Response "需要管理员权限"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [patch]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	bookID, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.manageBookUseCase.UpdateBook(c.Request.Context(), appbook.UpdateBookRequest{
		BookID:      bookID,
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		GenreID:     req.GenreID,
		Price:       req.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookDTO(result))
}

// SetStock 补货/盘点
// @Summary      设置库存
// @Description  管理员设置库存（行锁串行化，0→正数时触发到货通知）
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.SetStockRequest true "目标库存"
// @Success      200 {object} response.Response
// @Failure      403 {object} response.Response "需要管理员权限"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id}/stock [put]
func (h *BookHandler) SetStock(c *gin.Context) {
	bookID, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	var req dto.SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.setStockUseCase.Execute(c.Request.Context(), appbook.SetStockRequest{
		BookID: bookID,
		Stock:  req.Stock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteBook 下架图书
// @Summary      下架图书
// @Description  管理员下架图书（软删除）
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      204 "下架成功"
// @Failure      403 {object} response.Response "需要管理员权限"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	bookID, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	if err := h.manageBookUseCase.DeleteBook(c.Request.Context(), bookID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// CreateGenre 创建分类
// @Summary      创建分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateGenreRequest true "分类信息"
// @Success      201 {object} response.Response{data=dto.GenreResponse}
// @Failure      409 {object} response.Response "分类名称已存在"
// @Router       /api/v1/genres [post]
func (h *BookHandler) CreateGenre(c *gin.Context) {
	var req dto.CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.genreUseCase.CreateGenre(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, &dto.GenreResponse{
		ID:          result.ID,
		Name:        result.Name,
		Description: result.Description,
	})
}

// ListGenres 分类列表
// @Summary      分类列表
// @Tags         分类
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.GenreResponse}
// @Router       /api/v1/genres [get]
func (h *BookHandler) ListGenres(c *gin.Context) {
	result, err := h.genreUseCase.ListGenres(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.GenreResponse, len(result))
	for i, g := range result {
		list[i] = dto.GenreResponse{ID: g.ID, Name: g.Name, Description: g.Description}
	}
	response.Success(c, list)
}

// =========================================
// 辅助函数
// =========================================

// toBookDTO 应用层DTO → HTTP层DTO
func toBookDTO(b *appbook.BookResponse) *dto.BookResponse {
	return &dto.BookResponse{
		ID:          b.ID,
		ISBN:        b.ISBN,
		Title:       b.Title,
		Author:      b.Author,
		GenreID:     b.GenreID,
		Price:       b.Price,
		PriceYuan:   dto.FormatPriceYuan(b.Price),
		Stock:       b.Stock,
		InStock:     b.InStock,
		CoverURL:    b.CoverURL,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
	}
}

// parseUintParam 解析路径参数为uint
func parseUintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
