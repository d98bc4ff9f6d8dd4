package prebook

import (
	"context"

	"github.com/xiebiao/bookmall/internal/domain/book"
	"github.com/xiebiao/bookmall/internal/domain/prebook"
)

// PreBookUseCase 缺货预订用例
// 设计说明:
// 1. 只有零库存的图书可以预订,有货直接买即可
// 2. 同一用户同一本书最多一条waiting预订(重复创建返回409)
// 3. 到货流转在补货用例内完成(见application/book.SetStockUseCase)
type PreBookUseCase struct {
	preBookRepo prebook.Repository
	bookRepo    book.Repository
}

// NewPreBookUseCase 创建预订用例
func NewPreBookUseCase(preBookRepo prebook.Repository, bookRepo book.Repository) *PreBookUseCase {
	return &PreBookUseCase{
		preBookRepo: preBookRepo,
		bookRepo:    bookRepo,
	}
}

// PreBookResponse 预订响应DTO
type PreBookResponse struct {
	ID         uint   `json:"id"`
	BookID     uint   `json:"book_id"`
	BookTitle  string `json:"book_title,omitempty"`
	Status     string `json:"status"`
	NotifiedAt string `json:"notified_at,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// Create 创建预订
func (uc *PreBookUseCase) Create(ctx context.Context, userID, bookID uint) (*PreBookResponse, error) {
	b, err := uc.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	// 有货不允许预订
	if b.InStock() {
		return nil, prebook.ErrBookInStock
	}

	p := prebook.NewPreBook(userID, bookID)
	if err := uc.preBookRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	resp := toPreBookResponse(p)
	resp.BookTitle = b.Title
	return resp, nil
}

// ListMine 查询自己的预订列表
func (uc *PreBookUseCase) ListMine(ctx context.Context, userID uint) ([]*PreBookResponse, error) {
	preBooks, err := uc.preBookRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 批量补齐书名
	ids := make([]uint, 0, len(preBooks))
	for _, p := range preBooks {
		ids = append(ids, p.BookID)
	}
	titles := make(map[uint]string, len(ids))
	if len(ids) > 0 {
		books, err := uc.bookRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, b := range books {
			titles[b.ID] = b.Title
		}
	}

	result := make([]*PreBookResponse, len(preBooks))
	for i, p := range preBooks {
		result[i] = toPreBookResponse(p)
		result[i].BookTitle = titles[p.BookID]
	}
	return result, nil
}

// Cancel 取消预订(仅本人,仅waiting状态)
func (uc *PreBookUseCase) Cancel(ctx context.Context, preBookID, userID uint) (*PreBookResponse, error) {
	p, err := uc.preBookRepo.FindByID(ctx, preBookID)
	if err != nil {
		return nil, err
	}

	if !p.IsOwnedBy(userID) {
		// 返回404而非403,不泄露他人预订的存在
		return nil, prebook.ErrPreBookNotFound
	}

	if err := p.Cancel(); err != nil {
		return nil, err
	}
	if err := uc.preBookRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	return toPreBookResponse(p), nil
}

// toPreBookResponse 领域实体 → 响应DTO
func toPreBookResponse(p *prebook.PreBook) *PreBookResponse {
	resp := &PreBookResponse{
		ID:        p.ID,
		BookID:    p.BookID,
		Status:    p.Status.String(),
		CreatedAt: p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if p.NotifiedAt != nil {
		resp.NotifiedAt = p.NotifiedAt.Format("2006-01-02 15:04:05")
	}
	return resp
}
