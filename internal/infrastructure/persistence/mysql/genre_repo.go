package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookmall/internal/domain/book"
	apperrors "github.com/xiebiao/bookmall/pkg/errors"
)

// genreRepository 分类仓储实现(MySQL)
type genreRepository struct {
	db *gorm.DB
}

// NewGenreRepository 创建分类仓储
func NewGenreRepository(db *gorm.DB) book.GenreRepository {
	return &genreRepository{db: db}
}

// Create 创建分类
func (r *genreRepository) Create(ctx context.Context, g *book.Genre) error {
	model := &GenreModel{
		Name:        g.Name,
		Description: g.Description,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrGenreDuplicate
		}
		return apperrors.Wrap(err, "创建分类失败")
	}

	g.ID = model.ID
	g.CreatedAt = model.CreatedAt
	g.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找分类
func (r *genreRepository) FindByID(ctx context.Context, id uint) (*book.Genre, error) {
	var model GenreModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrGenreNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}

	return toGenreEntity(&model), nil
}

// FindByName 根据名称查找分类
func (r *genreRepository) FindByName(ctx context.Context, name string) (*book.Genre, error) {
	var model GenreModel
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrGenreNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}

	return toGenreEntity(&model), nil
}

// List 查询全部分类
func (r *genreRepository) List(ctx context.Context) ([]*book.Genre, error) {
	var models []GenreModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询分类列表失败")
	}

	genres := make([]*book.Genre, len(models))
	for i := range models {
		genres[i] = toGenreEntity(&models[i])
	}
	return genres, nil
}

// Update 更新分类
func (r *genreRepository) Update(ctx context.Context, g *book.Genre) error {
	model := &GenreModel{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrGenreDuplicate
		}
		return apperrors.Wrap(err, "更新分类失败")
	}

	g.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除分类
func (r *genreRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&GenreModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除分类失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrGenreNotFound
	}
	return nil
}

// toGenreEntity GORM模型 → 领域实体
func toGenreEntity(model *GenreModel) *book.Genre {
	return &book.Genre{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
