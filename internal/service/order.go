package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rentmoment/rental-api/internal/constants"
	"github.com/rentmoment/rental-api/internal/dto"
	apperrors "github.com/rentmoment/rental-api/internal/errors"
	"github.com/rentmoment/rental-api/internal/model"
	"github.com/rentmoment/rental-api/internal/repository"
	ctxutil "github.com/rentmoment/rental-api/pkg/context"
	"github.com/rentmoment/rental-api/pkg/listing"
	"github.com/rentmoment/rental-api/pkg/logger"
)

type OrderService struct {
	repo        *repository.OrderRepository
	productRepo *repository.ProductRepository
	orders      *listing.Service[model.Order]
}

func NewOrderService(repo *repository.OrderRepository, productRepo *repository.ProductRepository, opts listing.Options) *OrderService {
	return &OrderService{
		repo:        repo,
		productRepo: productRepo,
		orders:      listing.New(repo.Listing(), opts),
	}
}

func toOrderResponse(o *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, dto.OrderItemResponse{
			Product:  item.ProductID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Size:     item.Size,
		})
	}

	res := dto.OrderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		Items:         items,
		TotalAmount:   o.TotalAmount,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		ShippingAddress: dto.ShippingAddressResponse{
			Street:  o.ShippingAddress.Street,
			City:    o.ShippingAddress.City,
			State:   o.ShippingAddress.State,
			ZipCode: o.ShippingAddress.ZipCode,
			Phone:   o.ShippingAddress.Phone,
		},
		RentalStartDate: o.RentalStartDate,
		RentalEndDate:   o.RentalEndDate,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	if o.User.ID != 0 {
		res.User = &dto.OrderUserSummary{
			ID:    o.User.ID,
			Name:  o.User.Name,
			Email: o.User.Email,
		}
	}
	return res
}

// Create places an order for userID. Names and prices are copied from the
// products so later catalog edits do not change the order.
func (s *OrderService) Create(ctx context.Context, userID uint, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "CreateOrder")

	if !req.RentalEndDate.After(req.RentalStartDate) {
		return nil, apperrors.ErrInvalidRentalDates
	}
	if len(req.Items) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "order must contain at least one item")
	}

	ids := make([]uint, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.Product)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}

	order := &model.Order{
		UserID:        userID,
		Items:         make([]model.OrderItem, 0, len(req.Items)),
		Status:        constants.OrderStatusPending,
		PaymentStatus: constants.PaymentStatusPending,
		ShippingAddress: model.ShippingAddress{
			Street:  strings.TrimSpace(req.ShippingAddress.Street),
			City:    strings.TrimSpace(req.ShippingAddress.City),
			State:   strings.TrimSpace(req.ShippingAddress.State),
			ZipCode: strings.TrimSpace(req.ShippingAddress.ZipCode),
			Phone:   strings.TrimSpace(req.ShippingAddress.Phone),
		},
		RentalStartDate: req.RentalStartDate,
		RentalEndDate:   req.RentalEndDate,
		Notes:           strings.TrimSpace(req.Notes),
	}

	for _, item := range req.Items {
		product, ok := products[item.Product]
		if !ok {
			return nil, apperrors.WithMessage(apperrors.ErrProductUnavailable,
				fmt.Sprintf("product %d not found", item.Product))
		}
		if !product.IsAvailable {
			logger.InfoWithContext(ctx, "Ordered product is unavailable").
				Uint("product_id", product.ID).
				Uint("user_id", userID).
				Log()
			return nil, apperrors.WithMessage(apperrors.ErrProductUnavailable,
				fmt.Sprintf("product %s is not available", product.Name))
		}

		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		size := item.Size
		if size == "" {
			size = product.Size
		}

		order.Items = append(order.Items, model.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  quantity,
			Size:      size,
		})
		order.TotalAmount += product.Price * float64(quantity)
	}

	if err := s.repo.Create(ctx, order); err != nil {
		if errors.Is(err, repository.ErrProductsUnavailable) {
			return nil, apperrors.WrapError(apperrors.ErrProductUnavailable, err)
		}
		return nil, repoError(err, nil, nil)
	}

	created, err := s.repo.GetByID(ctx, order.ID)
	if err != nil {
		return nil, repoError(err, apperrors.ErrOrderNotFound, nil)
	}
	res := toOrderResponse(created)
	return &res, nil
}

// GetForUser returns the order when the caller owns it or is an admin.
// Anyone else gets not-found so order ids cannot be probed.
func (s *OrderService) GetForUser(ctx context.Context, id, userID uint, isAdmin bool) (*dto.OrderResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetOrder")

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, apperrors.ErrOrderNotFound, nil)
	}
	if order.UserID != userID && !isAdmin {
		logger.WarnWithContext(ctx, "Order requested by non-owner").
			Uint("order_id", id).
			Uint("user_id", userID).
			Log()
		return nil, apperrors.ErrOrderNotFound
	}

	res := toOrderResponse(order)
	return &res, nil
}

// List serves both the caller's own orders and the admin listing; the
// caller scope arrives as a filter term.
func (s *OrderService) List(ctx context.Context, req listing.Request) (*listing.Result[dto.OrderResponse], error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ListOrders")

	res, err := s.orders.List(ctx, req)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list orders").
			Err(err).
			Log()
		return nil, apperrors.FromListing(err)
	}
	return listing.Map(res, func(o model.Order) dto.OrderResponse { return toOrderResponse(&o) }), nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id uint, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateOrderStatus")

	updates := map[string]any{}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.PaymentStatus != "" {
		updates["payment_status"] = req.PaymentStatus
	}
	if len(updates) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "status or paymentStatus is required")
	}

	if err := s.repo.UpdateStatus(ctx, id, updates); err != nil {
		return nil, repoError(err, apperrors.ErrOrderNotFound, nil)
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, apperrors.ErrOrderNotFound, nil)
	}
	res := toOrderResponse(order)
	return &res, nil
}

// Cancel lets the owner cancel an order that is still pending.
func (s *OrderService) Cancel(ctx context.Context, id, userID uint) (*dto.OrderResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "CancelOrder")

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, apperrors.ErrOrderNotFound, nil)
	}
	if order.UserID != userID {
		return nil, apperrors.ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return nil, apperrors.ErrOrderNotCancelable
	}

	if err := s.repo.CancelPending(ctx, id); err != nil {
		if errors.Is(err, repository.ErrStatusChanged) {
			return nil, apperrors.WrapError(apperrors.ErrOrderNotCancelable, err)
		}
		return nil, repoError(err, apperrors.ErrOrderNotFound, nil)
	}

	order.Status = constants.OrderStatusCancelled
	res := toOrderResponse(order)
	return &res, nil
}
