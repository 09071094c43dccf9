package service

import (
	"context"
	"strings"

	"github.com/rentmoment/rental-api/internal/dto"
	apperrors "github.com/rentmoment/rental-api/internal/errors"
	"github.com/rentmoment/rental-api/internal/model"
	"github.com/rentmoment/rental-api/internal/repository"
	ctxutil "github.com/rentmoment/rental-api/pkg/context"
	"github.com/rentmoment/rental-api/pkg/listing"
	"github.com/rentmoment/rental-api/pkg/logger"
)

type MerchantService struct {
	repo      *repository.MerchantRepository
	merchants *listing.Service[model.Merchant]
}

func NewMerchantService(repo *repository.MerchantRepository, opts listing.Options) *MerchantService {
	return &MerchantService{
		repo:      repo,
		merchants: listing.New(repo.Listing(), opts),
	}
}

func toMerchantResponse(m *model.Merchant) dto.MerchantResponse {
	return dto.MerchantResponse{
		ID:           m.ID,
		Name:         m.Name,
		MobileNumber: m.MobileNumber,
		Address:      m.Address,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (s *MerchantService) List(ctx context.Context, req listing.Request) (*listing.Result[dto.MerchantResponse], error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ListMerchants")

	res, err := s.merchants.List(ctx, req)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list merchants").
			Err(err).
			Log()
		return nil, apperrors.FromListing(err)
	}
	return listing.Map(res, func(m model.Merchant) dto.MerchantResponse { return toMerchantResponse(&m) }), nil
}

func (s *MerchantService) GetByID(ctx context.Context, id uint) (*dto.MerchantResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetMerchant")

	merchant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, apperrors.ErrMerchantNotFound, nil)
	}
	res := toMerchantResponse(merchant)
	return &res, nil
}

func (s *MerchantService) Create(ctx context.Context, req *dto.CreateMerchantRequest) (*dto.MerchantResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "CreateMerchant")

	merchant := &model.Merchant{
		Name:         strings.TrimSpace(req.Name),
		MobileNumber: strings.TrimSpace(req.MobileNumber),
		Address:      strings.TrimSpace(req.Address),
	}
	if err := s.repo.Create(ctx, merchant); err != nil {
		return nil, repoError(err, nil, nil)
	}

	res := toMerchantResponse(merchant)
	return &res, nil
}

// Update applies the non-nil fields of req.
func (s *MerchantService) Update(ctx context.Context, id uint, req *dto.UpdateMerchantRequest) (*dto.MerchantResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateMerchant")

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.MobileNumber != nil {
		updates["mobile_number"] = strings.TrimSpace(*req.MobileNumber)
	}
	if req.Address != nil {
		updates["address"] = strings.TrimSpace(*req.Address)
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, repoError(err, apperrors.ErrMerchantNotFound, nil)
		}
	}
	return s.GetByID(ctx, id)
}

func (s *MerchantService) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithFunction(ctx, "service", "DeleteMerchant")

	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError(err, apperrors.ErrMerchantNotFound, nil)
	}
	return nil
}
