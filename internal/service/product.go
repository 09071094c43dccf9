package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/datatypes"

	"github.com/rentmoment/rental-api/internal/constants"
	"github.com/rentmoment/rental-api/internal/dto"
	apperrors "github.com/rentmoment/rental-api/internal/errors"
	"github.com/rentmoment/rental-api/internal/model"
	"github.com/rentmoment/rental-api/internal/repository"
	ctxutil "github.com/rentmoment/rental-api/pkg/context"
	"github.com/rentmoment/rental-api/pkg/listing"
	"github.com/rentmoment/rental-api/pkg/logger"
)

type ProductService struct {
	repo         *repository.ProductRepository
	categoryRepo *repository.CategoryRepository
	cache        *CacheService
	products     *listing.Service[model.Product]
}

func NewProductService(
	repo *repository.ProductRepository,
	categoryRepo *repository.CategoryRepository,
	cache *CacheService,
	opts listing.Options,
) *ProductService {
	return &ProductService{
		repo:         repo,
		categoryRepo: categoryRepo,
		cache:        cache,
		products:     listing.New(repo.Listing(), opts),
	}
}

func toProductResponse(p *model.Product) dto.ProductResponse {
	res := dto.ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		CategoryID:       p.CategoryID,
		Images:           nonNil(p.Images),
		Price:            p.Price,
		OriginalPrice:    p.OriginalPrice,
		Size:             p.Size,
		Color:            p.Color,
		Brand:            p.Brand,
		Material:         p.Material,
		Condition:        p.Condition,
		RentalDuration:   p.RentalDuration,
		IsAvailable:      p.IsAvailable,
		IsFeatured:       p.IsFeatured,
		Tags:             nonNil(p.Tags),
		CareInstructions: p.CareInstructions,
		Slug:             p.Slug,
		Views:            p.Views,
		Rating:           p.Rating,
		NumReviews:       p.NumReviews,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.Category.ID != 0 {
		res.Category = &dto.CategorySummary{
			ID:   p.Category.ID,
			Name: p.Category.Name,
			Slug: p.Category.Slug,
		}
	}
	if len(p.Specifications) > 0 {
		res.Specifications = make(map[string]string, len(p.Specifications))
		for k, v := range p.Specifications {
			res.Specifications[k] = fmt.Sprint(v)
		}
	}
	return res
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toSpecifications(in map[string]string) datatypes.JSONMap {
	if len(in) == 0 {
		return nil
	}
	out := make(datatypes.JSONMap, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (s *ProductService) List(ctx context.Context, req listing.Request) (*listing.Result[dto.ProductResponse], error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ListProducts")

	res, err := s.products.List(ctx, req)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list products").
			Err(err).
			Log()
		return nil, apperrors.FromListing(err)
	}
	return listing.Map(res, func(p model.Product) dto.ProductResponse { return toProductResponse(&p) }), nil
}

// Featured returns the newest featured products that can be rented.
func (s *ProductService) Featured(ctx context.Context) ([]dto.ProductResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "FeaturedProducts")

	products, err := s.repo.Featured(ctx, constants.FeaturedProductsLimit)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}

	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return out, nil
}

// Get resolves ref as an id or a slug and counts the view. The product
// itself may come from the cache; the view count is always the one stored
// in the database after this view.
func (s *ProductService) Get(ctx context.Context, ref string) (*dto.ProductResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetProduct")

	ref = strings.TrimSpace(ref)
	key := ProductCacheKey(ref)

	var res dto.ProductResponse
	if !s.cache.Get(ctx, key, &res) {
		product, err := s.lookup(ctx, ref)
		if err != nil {
			return nil, repoError(err, apperrors.ErrProductNotFound, nil)
		}
		res = toProductResponse(product)
		s.cache.Set(ctx, key, res)
	}

	views, err := s.repo.IncrementViews(ctx, res.ID)
	if err != nil {
		logger.WarnWithContext(ctx, "Failed to count product view").
			Uint("product_id", res.ID).
			Err(err).
			Log()
	} else {
		res.Views = views
	}

	return &res, nil
}

func (s *ProductService) lookup(ctx context.Context, ref string) (*model.Product, error) {
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		return s.repo.GetByID(ctx, uint(id))
	}
	return s.repo.GetBySlug(ctx, ref)
}

func (s *ProductService) checkCategory(ctx context.Context, id uint) error {
	exists, err := s.categoryRepo.Exists(ctx, id)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrStorage, err)
	}
	if !exists {
		return apperrors.ErrInvalidCategory
	}
	return nil
}

func (s *ProductService) slugFor(ctx context.Context, name string, excludeID uint) (string, error) {
	slug := Slugify(name)
	if slug == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "product name must contain letters or digits")
	}
	taken, err := s.repo.SlugTaken(ctx, slug, excludeID)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrStorage, err)
	}
	if taken {
		return "", apperrors.ErrProductSlugExists
	}
	return slug, nil
}

func (s *ProductService) Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "CreateProduct")

	if err := s.checkCategory(ctx, req.Category); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	slug, err := s.slugFor(ctx, name, 0)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:             name,
		Description:      strings.TrimSpace(req.Description),
		CategoryID:       req.Category,
		Images:           trimAll(req.Images),
		Price:            req.Price,
		OriginalPrice:    req.OriginalPrice,
		Size:             req.Size,
		Color:            strings.TrimSpace(req.Color),
		Brand:            strings.TrimSpace(req.Brand),
		Material:         strings.TrimSpace(req.Material),
		Condition:        req.Condition,
		RentalDuration:   req.RentalDuration,
		IsAvailable:      true,
		IsFeatured:       req.IsFeatured,
		Tags:             trimAll(req.Tags),
		Specifications:   toSpecifications(req.Specifications),
		CareInstructions: strings.TrimSpace(req.CareInstructions),
		Slug:             slug,
	}
	if product.Condition == "" {
		product.Condition = constants.DefaultCondition
	}
	if product.RentalDuration < 1 {
		product.RentalDuration = 1
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, repoError(err, nil, apperrors.ErrProductSlugExists)
	}

	s.cache.InvalidateCatalog(ctx)

	created, err := s.repo.GetByID(ctx, product.ID)
	if err != nil {
		return nil, repoError(err, apperrors.ErrProductNotFound, nil)
	}
	res := toProductResponse(created)
	return &res, nil
}

// Update applies the non-nil fields of req. Renaming regenerates the slug.
func (s *ProductService) Update(ctx context.Context, id uint, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateProduct")

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, repoError(err, apperrors.ErrProductNotFound, nil)
	}

	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		slug, err := s.slugFor(ctx, name, id)
		if err != nil {
			return nil, err
		}
		updates["name"] = name
		updates["slug"] = slug
	}
	if req.Category != nil {
		if err := s.checkCategory(ctx, *req.Category); err != nil {
			return nil, err
		}
		updates["category_id"] = *req.Category
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Images != nil {
		updates["images"] = datatypes.JSONSlice[string](trimAll(req.Images))
	}
	if req.Tags != nil {
		updates["tags"] = datatypes.JSONSlice[string](trimAll(req.Tags))
	}
	if req.Specifications != nil {
		updates["specifications"] = toSpecifications(req.Specifications)
	}
	setIf(updates, "price", req.Price)
	setIf(updates, "original_price", req.OriginalPrice)
	setIf(updates, "size", req.Size)
	setIf(updates, "color", req.Color)
	setIf(updates, "brand", req.Brand)
	setIf(updates, "material", req.Material)
	setIf(updates, "condition", req.Condition)
	setIf(updates, "rental_duration", req.RentalDuration)
	setIf(updates, "is_available", req.IsAvailable)
	setIf(updates, "is_featured", req.IsFeatured)
	setIf(updates, "care_instructions", req.CareInstructions)
	setIf(updates, "rating", req.Rating)
	setIf(updates, "num_reviews", req.NumReviews)

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, repoError(err, apperrors.ErrProductNotFound, apperrors.ErrProductSlugExists)
		}
		s.cache.InvalidateCatalog(ctx)
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, apperrors.ErrProductNotFound, nil)
	}
	res := toProductResponse(product)
	return &res, nil
}

func setIf[T any](updates map[string]any, column string, v *T) {
	if v == nil {
		return
	}
	if s, ok := any(*v).(string); ok {
		updates[column] = strings.TrimSpace(s)
		return
	}
	updates[column] = *v
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithFunction(ctx, "service", "DeleteProduct")

	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError(err, apperrors.ErrProductNotFound, nil)
	}

	s.cache.InvalidateCatalog(ctx)
	return nil
}
