package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rentmoment/rental-api/internal/constants"
	"github.com/rentmoment/rental-api/internal/model"
	"github.com/rentmoment/rental-api/pkg/database"
	"github.com/rentmoment/rental-api/pkg/listing"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewSQLiteDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()), "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.CloseDB(db) })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) (model.Category, []model.Product) {
	t.Helper()

	category := model.Category{Name: "Sarees", Slug: "sarees", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	products := []model.Product{
		{Name: "Red Silk Saree", Slug: "red-silk-saree", CategoryID: category.ID, Price: 1200, Size: "Free Size", Color: "Red", IsAvailable: true},
		{Name: "Blue Cotton Saree", Slug: "blue-cotton-saree", CategoryID: category.ID, Price: 600, Size: "Free Size", Color: "Blue", IsAvailable: true},
		{Name: "Retired Lehenga", Slug: "retired-lehenga", CategoryID: category.ID, Price: 900, Size: "M", Color: "Gold", IsAvailable: false},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}
	return category, products
}

func TestUserRepository_RefreshTokenLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &model.User{Name: "Asha", Email: "asha@example.com", Password: "hash", Role: constants.RoleUser, IsActive: true, TokenVersion: 1}
	require.NoError(t, repo.Create(ctx, user))

	expired := time.Now().Add(-time.Hour)
	require.NoError(t, repo.UpdateRefreshToken(ctx, user.ID, "bcrypt-hash", &expired))

	cleaned, err := repo.CleanupExpiredRefreshTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleaned)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, got.RefreshTokenHash)
	assert.Nil(t, got.RefreshTokenExpires)
}

func TestUserRepository_UpdatePasswordBumpsTokenVersion(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &model.User{Name: "Ravi", Email: "ravi@example.com", Password: "old", Role: constants.RoleUser, IsActive: true, TokenVersion: 3}
	require.NoError(t, repo.Create(ctx, user))
	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "new"))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Password)
	assert.Equal(t, 4, got.TokenVersion)
}

func TestUserRepository_MissingRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Update(ctx, 42, map[string]any{"name": "x"}), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 42), gorm.ErrRecordNotFound)
}

func TestCategoryRepository_CountProducts(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	category, _ := seedCatalog(t, db)
	empty := model.Category{Name: "Kurtas", Slug: "kurtas", IsActive: true}
	require.NoError(t, db.Create(&empty).Error)

	n, err := repo.CountProducts(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	counts, err := repo.CountProductsByCategory(ctx, []uint{category.ID, empty.ID})
	require.NoError(t, err)
	assert.Equal(t, map[uint]int64{category.ID: 3}, counts)
}

func TestProductRepository_ViewsAndFeatured(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	_, products := seedCatalog(t, db)
	require.NoError(t, db.Model(&model.Product{}).Where("id IN ?", []uint{products[0].ID, products[2].ID}).Update("is_featured", true).Error)

	views, err := repo.IncrementViews(ctx, products[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, views)
	views, err = repo.IncrementViews(ctx, products[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, views)

	_, err = repo.IncrementViews(ctx, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := repo.GetBySlug(ctx, "red-silk-saree")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Views)
	assert.Equal(t, "Sarees", got.Category.Name)

	featured, err := repo.Featured(ctx, 8)
	require.NoError(t, err)
	require.Len(t, featured, 1, "unavailable products are not featured")
	assert.Equal(t, products[0].ID, featured[0].ID)

	taken, err := repo.SlugTaken(ctx, "red-silk-saree", products[0].ID)
	require.NoError(t, err)
	assert.False(t, taken)
	taken, err = repo.SlugTaken(ctx, "red-silk-saree", 0)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestProductRepository_ListingFiltersByCategory(t *testing.T) {
	db := newTestDB(t)
	category, _ := seedCatalog(t, db)
	svc := listing.New(NewProductRepository(db).Listing(), listing.DefaultOptions())

	res, err := svc.List(context.Background(), listing.Request{Filters: []listing.Condition{
		listing.Eq("category_id", uint64(category.ID)),
		listing.Eq("is_available", true),
	}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.TotalCount)
	for _, p := range res.Items {
		assert.Equal(t, "Sarees", p.Category.Name, "category is preloaded")
	}
}

func TestOrderRepository_CreateAndCancel(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	_, products := seedCatalog(t, db)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	newOrder := func(items ...model.OrderItem) *model.Order {
		return &model.Order{
			UserID:          7,
			Items:           items,
			TotalAmount:     1800,
			Status:          constants.OrderStatusPending,
			PaymentStatus:   constants.PaymentStatusPending,
			RentalStartDate: start,
			RentalEndDate:   start.Add(72 * time.Hour),
		}
	}

	t.Run("unavailable product rolls back", func(t *testing.T) {
		order := newOrder(
			model.OrderItem{ProductID: products[0].ID, Name: products[0].Name, Price: 1200, Quantity: 1},
			model.OrderItem{ProductID: products[2].ID, Name: products[2].Name, Price: 900, Quantity: 1},
		)
		err := repo.Create(ctx, order)
		assert.True(t, errors.Is(err, ErrProductsUnavailable))

		var count int64
		require.NoError(t, db.Model(&model.OrderItem{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("created then cancelled once", func(t *testing.T) {
		order := newOrder(
			model.OrderItem{ProductID: products[0].ID, Name: products[0].Name, Price: 1200, Quantity: 1},
			model.OrderItem{ProductID: products[1].ID, Name: products[1].Name, Price: 600, Quantity: 1},
		)
		require.NoError(t, repo.Create(ctx, order))

		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Len(t, got.Items, 2)

		require.NoError(t, repo.CancelPending(ctx, order.ID))
		assert.ErrorIs(t, repo.CancelPending(ctx, order.ID), ErrStatusChanged)
	})
}
