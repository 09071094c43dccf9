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

type MerchantRepository struct {
	db *gorm.DB
}

func NewMerchantRepository(db *gorm.DB) *MerchantRepository {
	return &MerchantRepository{db: db}
}

func (r *MerchantRepository) Listing() listing.Collection[model.Merchant] {
	return database.NewCollection[model.Merchant](r.db)
}

func (r *MerchantRepository) GetByID(ctx context.Context, id uint) (*model.Merchant, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetMerchantByID")

	start := time.Now()
	var merchant model.Merchant
	result := r.db.WithContext(ctx).First(&merchant, id)
	if result.Error != nil {
		logger.DebugWithContext(ctx, "Failed to get merchant by ID").
			Uint("merchant_id", id).
			Duration(time.Since(start)).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return &merchant, nil
}

func (r *MerchantRepository) Create(ctx context.Context, merchant *model.Merchant) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "CreateMerchant")

	start := time.Now()
	if err := r.db.WithContext(ctx).Create(merchant).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create merchant").
			String("name", merchant.Name).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Merchant created successfully").
		Uint("merchant_id", merchant.ID).
		Duration(time.Since(start)).
		Log()

	return nil
}

func (r *MerchantRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "UpdateMerchant")

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.Merchant{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update merchant").
			Uint("merchant_id", id).
			Duration(time.Since(start)).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No merchant found to update").
			Uint("merchant_id", id).
			Log()
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Merchant updated successfully").
		Uint("merchant_id", id).
		Duration(time.Since(start)).
		Log()

	return nil
}

func (r *MerchantRepository) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "DeleteMerchant")

	start := time.Now()
	result := r.db.WithContext(ctx).Unscoped().Delete(&model.Merchant{}, id)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete merchant").
			Uint("merchant_id", id).
			Duration(time.Since(start)).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No merchant found to delete").
			Uint("merchant_id", id).
			Log()
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Merchant deleted successfully").
		Uint("merchant_id", id).
		Duration(time.Since(start)).
		Log()

	return nil
}
