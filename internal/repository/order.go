package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rentmoment/rental-api/internal/constants"
	"github.com/rentmoment/rental-api/internal/model"
	ctxutil "github.com/rentmoment/rental-api/pkg/context"
	"github.com/rentmoment/rental-api/pkg/database"
	"github.com/rentmoment/rental-api/pkg/listing"
	"github.com/rentmoment/rental-api/pkg/logger"
)

// ErrProductsUnavailable is returned when an ordered product disappeared or
// became unavailable between validation and insert.
var ErrProductsUnavailable = errors.New("ordered products are no longer available")

// ErrStatusChanged is returned by conditional updates that lost a race.
var ErrStatusChanged = errors.New("order status changed")

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Listing preloads items and the owning user.
func (r *OrderRepository) Listing() listing.Collection[model.Order] {
	return database.NewCollection[model.Order](r.db, "Items", "User")
}

// Create inserts the order and its items in one transaction after checking
// that every referenced product is still available.
func (r *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "CreateOrder")

	ids := make(map[uint]struct{}, len(order.Items))
	for _, item := range order.Items {
		ids[item.ProductID] = struct{}{}
	}
	productIDs := make([]uint, 0, len(ids))
	for id := range ids {
		productIDs = append(productIDs, id)
	}

	start := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var available int64
		if err := tx.Model(&model.Product{}).
			Where("id IN ? AND is_available = ?", productIDs, true).
			Count(&available).Error; err != nil {
			return err
		}
		if available != int64(len(productIDs)) {
			return ErrProductsUnavailable
		}

		return tx.Omit("User").Create(order).Error
	})
	duration := time.Since(start)

	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to create order").
			Uint("user_id", order.UserID).
			Int("items", len(order.Items)).
			Duration(duration).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Order created successfully").
		Uint("order_id", order.ID).
		Uint("user_id", order.UserID).
		Float64("total_amount", order.TotalAmount).
		Duration(duration).
		Log()

	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uint) (*model.Order, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetOrderByID")

	var order model.Order
	err := r.db.WithContext(ctx).Preload("Items").Preload("User").First(&order, id).Error
	if err != nil {
		logger.DebugWithContext(ctx, "Failed to get order by ID").
			Uint("order_id", id).
			Err(err).
			Log()
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, updates map[string]any) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "UpdateOrderStatus")

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update order status").
			Uint("order_id", id).
			Duration(time.Since(start)).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Order status updated").
		Uint("order_id", id).
		Any("updates", updates).
		Duration(time.Since(start)).
		Log()

	return nil
}

// CancelPending moves a pending order to cancelled. It returns
// ErrStatusChanged when the order is no longer pending.
func (r *OrderRepository) CancelPending(ctx context.Context, id uint) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "CancelPendingOrder")

	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", id, constants.OrderStatusPending).
		Update("status", constants.OrderStatusCancelled)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to cancel order").
			Uint("order_id", id).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrStatusChanged
	}

	logger.InfoWithContext(ctx, "Order cancelled").
		Uint("order_id", id).
		Log()

	return nil
}
