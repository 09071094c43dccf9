package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/rentmoment/rental-api/internal/model"
	ctxutil "github.com/rentmoment/rental-api/pkg/context"
	"github.com/rentmoment/rental-api/pkg/database"
	"github.com/rentmoment/rental-api/pkg/listing"
	"github.com/rentmoment/rental-api/pkg/logger"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Listing() listing.Collection[model.Category] {
	return database.NewCollection[model.Category](r.db)
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*model.Category, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetCategoryByID")

	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		logger.DebugWithContext(ctx, "Failed to get category by ID").
			Uint("category_id", id).
			Err(err).
			Log()
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetCategoryBySlug")

	var category model.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		logger.DebugWithContext(ctx, "Failed to get category by slug").
			String("slug", slug).
			Err(err).
			Log()
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// CountProducts returns how many products reference the category.
func (r *CategoryRepository) CountProducts(ctx context.Context, id uint) (int64, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "CountCategoryProducts")

	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count category products").
			Uint("category_id", id).
			Err(err).
			Log()
		return 0, err
	}
	return count, nil
}

// CountProductsByCategory counts products for a batch of categories in one query.
func (r *CategoryRepository) CountProductsByCategory(ctx context.Context, ids []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		CategoryID uint
		Total      int64
	}
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select("category_id, COUNT(*) AS total").
		Where("category_id IN ?", ids).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.CategoryID] = row.Total
	}
	return counts, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "CreateCategory")

	start := time.Now()
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create category").
			String("name", category.Name).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Category created successfully").
		Uint("category_id", category.ID).
		String("slug", category.Slug).
		Duration(time.Since(start)).
		Log()

	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "UpdateCategory")

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update category").
			Uint("category_id", id).
			Duration(time.Since(start)).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Category updated successfully").
		Uint("category_id", id).
		Duration(time.Since(start)).
		Log()

	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "DeleteCategory")

	result := r.db.WithContext(ctx).Unscoped().Delete(&model.Category{}, id)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete category").
			Uint("category_id", id).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Category deleted successfully").
		Uint("category_id", id).
		Log()

	return nil
}
