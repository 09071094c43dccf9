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

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Listing preloads the category of every listed product.
func (r *ProductRepository) Listing() listing.Collection[model.Product] {
	return database.NewCollection[model.Product](r.db, "Category")
}

func (r *ProductRepository) GetByID(ctx context.Context, id uint) (*model.Product, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetProductByID")
	return r.first(ctx, r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetProductBySlug")
	return r.first(ctx, r.db.WithContext(ctx).Where("slug = ?", slug))
}

func (r *ProductRepository) first(ctx context.Context, query *gorm.DB) (*model.Product, error) {
	start := time.Now()
	var product model.Product
	if err := query.Preload("Category").First(&product).Error; err != nil {
		logger.DebugWithContext(ctx, "Failed to get product").
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "Product retrieved successfully").
		Uint("product_id", product.ID).
		Duration(time.Since(start)).
		Log()

	return &product, nil
}

// GetByIDs loads products keyed by id. Missing ids are absent from the map.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]model.Product, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetProductsByIDs")

	out := make(map[uint]model.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var products []model.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to load products").
			Int("requested", len(ids)).
			Err(err).
			Log()
		return nil, err
	}

	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

// SlugTaken reports whether another product already uses slug.
func (r *ProductRepository) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Product{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// Featured returns up to limit featured and available products, newest first.
func (r *ProductRepository) Featured(ctx context.Context, limit int) ([]model.Product, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "FeaturedProducts")

	start := time.Now()
	products := make([]model.Product, 0, limit)
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("is_featured = ? AND is_available = ?", true, true).
		Order("created_at DESC").Order("id").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch featured products").
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "Featured products fetched").
		Int("returned_count", len(products)).
		Duration(time.Since(start)).
		Log()

	return products, nil
}

// IncrementViews bumps the view counter without touching updated_at and
// returns the stored count after the bump.
func (r *ProductRepository) IncrementViews(ctx context.Context, id uint) (int, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "IncrementViews")

	var views int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Product{}).Where("id = ?", id).
			UpdateColumn("views", gorm.Expr("views + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&model.Product{}).Where("id = ?", id).Select("views").Scan(&views).Error
	})
	if err != nil {
		logger.WarnWithContext(ctx, "Failed to increment product views").
			Uint("product_id", id).
			Err(err).
			Log()
	}
	return views, err
}

func (r *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "CreateProduct")

	start := time.Now()
	if err := r.db.WithContext(ctx).Omit("Category").Create(product).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create product").
			String("name", product.Name).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Product created successfully").
		Uint("product_id", product.ID).
		String("slug", product.Slug).
		Duration(time.Since(start)).
		Log()

	return nil
}

func (r *ProductRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "UpdateProduct")

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update product").
			Uint("product_id", id).
			Duration(time.Since(start)).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No product found to update").
			Uint("product_id", id).
			Log()
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Product updated successfully").
		Uint("product_id", id).
		Int("columns", len(updates)).
		Duration(time.Since(start)).
		Log()

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "DeleteProduct")

	result := r.db.WithContext(ctx).Unscoped().Delete(&model.Product{}, id)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete product").
			Uint("product_id", id).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Product deleted successfully").
		Uint("product_id", id).
		Log()

	return nil
}
