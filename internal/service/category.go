package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/rentmoment/rental-api/internal/dto"
	apperrors "github.com/rentmoment/rental-api/internal/errors"
	"github.com/rentmoment/rental-api/internal/model"
	"github.com/rentmoment/rental-api/internal/repository"
	ctxutil "github.com/rentmoment/rental-api/pkg/context"
	"github.com/rentmoment/rental-api/pkg/listing"
	"github.com/rentmoment/rental-api/pkg/logger"
)

type CategoryService struct {
	repo       *repository.CategoryRepository
	cache      *CacheService
	categories *listing.Service[model.Category]
}

// CategoryListingSort is the default order of the category listing.
var CategoryListingSort = []listing.SortField{
	{Field: "sort_order"},
	{Field: "name"},
}

func NewCategoryService(repo *repository.CategoryRepository, cache *CacheService, opts listing.Options) *CategoryService {
	return &CategoryService{
		repo:       repo,
		cache:      cache,
		categories: listing.New(repo.Listing(), opts),
	}
}

func toCategoryResponse(c *model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Image:       c.Image,
		Slug:        c.Slug,
		IsActive:    c.IsActive,
		SortOrder:   c.SortOrder,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// List pages through categories and fills in the product count of each.
func (s *CategoryService) List(ctx context.Context, req listing.Request) (*listing.Result[dto.CategoryResponse], error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ListCategories")

	res, err := s.categories.List(ctx, req)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list categories").
			Err(err).
			Log()
		return nil, apperrors.FromListing(err)
	}

	ids := make([]uint, 0, len(res.Items))
	for _, c := range res.Items {
		ids = append(ids, c.ID)
	}
	counts, err := s.repo.CountProductsByCategory(ctx, ids)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}

	return listing.Map(res, func(c model.Category) dto.CategoryResponse {
		out := toCategoryResponse(&c)
		n := counts[c.ID]
		out.ProductCount = &n
		return out
	}), nil
}

// Get resolves ref as a numeric id first and as a slug otherwise.
func (s *CategoryService) Get(ctx context.Context, ref string) (*dto.CategoryResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetCategory")

	ref = strings.TrimSpace(ref)
	key := CategoryCacheKey(ref)

	var cached dto.CategoryResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	category, err := s.lookup(ctx, ref)
	if err != nil {
		return nil, repoError(err, apperrors.ErrCategoryNotFound, nil)
	}

	count, err := s.repo.CountProducts(ctx, category.ID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}

	res := toCategoryResponse(category)
	res.ProductCount = &count
	s.cache.Set(ctx, key, res)
	return &res, nil
}

func (s *CategoryService) lookup(ctx context.Context, ref string) (*model.Category, error) {
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		return s.repo.GetByID(ctx, uint(id))
	}
	return s.repo.GetBySlug(ctx, ref)
}

func (s *CategoryService) Create(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "CreateCategory")

	name := strings.TrimSpace(req.Name)
	slug := Slugify(name)
	if slug == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name must contain letters or digits")
	}

	if _, err := s.repo.GetBySlug(ctx, slug); err == nil {
		logger.WarnWithContext(ctx, "Category already exists").
			String("slug", slug).
			Log()
		return nil, apperrors.ErrCategoryExists
	}

	category := &model.Category{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Image:       strings.TrimSpace(req.Image),
		Slug:        slug,
		IsActive:    true,
		SortOrder:   req.SortOrder,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, repoError(err, nil, apperrors.ErrCategoryExists)
	}

	s.cache.InvalidateCatalog(ctx)

	res := toCategoryResponse(category)
	return &res, nil
}

// Update applies the non-nil fields of req. Renaming regenerates the slug.
func (s *CategoryService) Update(ctx context.Context, id uint, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateCategory")

	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		slug := Slugify(name)
		if slug == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name must contain letters or digits")
		}
		if existing, err := s.repo.GetBySlug(ctx, slug); err == nil && existing.ID != id {
			return nil, apperrors.ErrCategoryExists
		}
		updates["name"] = name
		updates["slug"] = slug
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Image != nil {
		updates["image"] = strings.TrimSpace(*req.Image)
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, repoError(err, apperrors.ErrCategoryNotFound, apperrors.ErrCategoryExists)
		}
		s.cache.InvalidateCatalog(ctx)
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, apperrors.ErrCategoryNotFound, nil)
	}
	res := toCategoryResponse(category)
	return &res, nil
}

// Delete refuses to remove a category that still has products.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithFunction(ctx, "service", "DeleteCategory")

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return repoError(err, apperrors.ErrCategoryNotFound, nil)
	}

	count, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrStorage, err)
	}
	if count > 0 {
		logger.WarnWithContext(ctx, "Category still has products").
			Uint("category_id", id).
			Int64("product_count", count).
			Log()
		return apperrors.ErrCategoryInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError(err, apperrors.ErrCategoryNotFound, nil)
	}

	s.cache.InvalidateCatalog(ctx)
	return nil
}
