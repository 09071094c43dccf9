package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentmoment/rental-api/config"
	"github.com/rentmoment/rental-api/internal/handler"
	"github.com/rentmoment/rental-api/internal/middleware"
	"github.com/rentmoment/rental-api/internal/repository"
	"github.com/rentmoment/rental-api/internal/service"
	"github.com/rentmoment/rental-api/pkg/cache"
	"github.com/rentmoment/rental-api/pkg/database"
	"github.com/rentmoment/rental-api/pkg/redis"
)

const (
	adminEmail    = "admin@rentmoment.test"
	adminPassword = "Admin@123"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "rental-api",
			Environment: "test",
			Timeout:     5 * time.Second,
			BodyLimit:   1 << 20,
		},
		Listing: config.ListingConfig{
			DefaultLimit: 10,
			MaxLimit:     100,
			QueryTimeout: 5 * time.Second,
		},
		Upload: config.UploadConfig{
			Dir:          t.TempDir(),
			PublicPath:   "/uploads",
			MaxFileSize:  1 << 20,
			MaxFiles:     3,
			AllowedTypes: []string{"image/png"},
		},
		CORS: config.CORSConfig{Origins: []string{"https://shop.example"}},
		Seed: config.SeedConfig{
			AdminName:     "Admin",
			AdminEmail:    adminEmail,
			AdminPassword: adminPassword,
		},
	}
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := testConfig(t)

	db, err := database.NewSQLiteDB(fmt.Sprintf("file:router_%s?mode=memory&cache=shared", t.Name()), "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.CloseDB(db) })
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.Seed(db, cfg.Seed))

	store := cache.NewCache(time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)

	opts := service.ListingOptions(cfg.Listing)
	cacheService := service.NewCacheService(store, time.Minute)
	jwtService := service.NewJWTService("router-secret", time.Minute, time.Hour)
	userService := service.NewUserService(userRepo, jwtService, opts)
	uploadService, err := service.NewUploadService(cfg.Upload)
	require.NoError(t, err)

	return NewRouter(Handlers{
		Auth:     handler.NewAuthHandler(userService),
		User:     handler.NewUserHandler(userService),
		Merchant: handler.NewMerchantHandler(service.NewMerchantService(repository.NewMerchantRepository(db), opts)),
		Category: handler.NewCategoryHandler(service.NewCategoryService(categoryRepo, cacheService,
			service.ListingOptions(cfg.Listing, service.CategoryListingSort...))),
		Product: handler.NewProductHandler(service.NewProductService(productRepo, categoryRepo, cacheService, opts)),
		Order:   handler.NewOrderHandler(service.NewOrderService(repository.NewOrderRepository(db), productRepo, opts)),
		Upload:  handler.NewUploadHandler(uploadService),
		Health:  handler.NewHealthHandler(db, redis.New(nil), nil),
	}, middleware.NewJWTMiddleware(jwtService, userService), cfg).SetupRoutes()
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func do(t *testing.T, r http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func login(t *testing.T, r http.Handler, email, password string) string {
	t.Helper()
	w, env := do(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &auth))
	return auth.Token
}

func register(t *testing.T, r http.Handler, name, email string) (string, uint) {
	t.Helper()
	w, env := do(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var auth struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &auth))
	return auth.Token, auth.User.ID
}

func createdID(t *testing.T, env envelope) uint {
	t.Helper()
	var obj struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &obj))
	require.NotZero(t, obj.ID)
	return obj.ID
}

func TestRouter_HealthAndNoRoute(t *testing.T) {
	r := newTestEngine(t)

	w, _ := do(t, r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w, env := do(t, r, http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Route not found", env.Message)
}

func TestRouter_AuthFlow(t *testing.T) {
	r := newTestEngine(t)

	w, env := do(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "A", "email": "not-an-email", "password": "1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", env.Message)
	assert.NotEmpty(t, env.Errors)

	token, _ := register(t, r, "Rina", "rina@example.com")

	w, _ = do(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Rina", "email": "RINA@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = do(t, r, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"rina@example.com"`)

	w, _ = do(t, r, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, r, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "logout revokes issued tokens")

	w, _ = do(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "rina@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_AdminOnlyRoutes(t *testing.T) {
	r := newTestEngine(t)
	userToken, _ := register(t, r, "Budi", "budi@example.com")
	adminToken := login(t, r, adminEmail, adminPassword)

	for _, path := range []string{"/api/users", "/api/merchants"} {
		w, env := do(t, r, http.MethodGet, path, userToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
		assert.False(t, env.Success)

		w, _ = do(t, r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)

		w, _ = do(t, r, http.MethodGet, path, adminToken, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w, _ := do(t, r, http.MethodPost, "/api/categories", userToken, map[string]any{"name": "Kebaya"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := do(t, r, http.MethodGet, "/api/users?page=1&limit=1&sort=email&order=asc", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Users       []map[string]any `json:"users"`
		Total       int64            `json:"total"`
		TotalPages  int              `json:"totalPages"`
		HasNextPage bool             `json:"hasNextPage"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Users, 1)
	assert.EqualValues(t, 2, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasNextPage)
	assert.Equal(t, adminEmail, page.Users[0]["email"])
}

func TestRouter_Merchants(t *testing.T) {
	r := newTestEngine(t)
	adminToken := login(t, r, adminEmail, adminPassword)

	for _, m := range []map[string]string{
		{"name": "Kebaya Boutique", "address": "Jl. Braga, Bandung"},
		{"name": "Bandung Tailors", "address": "Jl. Dago"},
		{"name": "Surabaya Drapes", "address": "Jl. Tunjungan"},
	} {
		w, _ := do(t, r, http.MethodPost, "/api/merchants", adminToken, m)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w, _ := do(t, r, http.MethodPost, "/api/merchants", adminToken, map[string]string{"name": "X", "mobileNumber": "abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := do(t, r, http.MethodGet, "/api/merchants?search=bandung&limit=1", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Merchants   []map[string]any `json:"merchants"`
		Total       int64            `json:"total"`
		HasNextPage bool             `json:"hasNextPage"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Merchants, 1)
	assert.EqualValues(t, 2, page.Total)
	assert.True(t, page.HasNextPage)

	id := uint(page.Merchants[0]["id"].(float64))
	path := fmt.Sprintf("/api/merchants/%d", id)

	w, env = do(t, r, http.MethodPut, path, adminToken, map[string]string{"mobileNumber": "0812345678"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), `"mobileNumber":"0812345678"`)
	assert.Contains(t, string(env.Data), fmt.Sprintf(`"name":%q`, page.Merchants[0]["name"]))

	w, _ = do(t, r, http.MethodDelete, path, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w, _ = do(t, r, method, path, adminToken, map[string]string{"name": "Renamed"})
		assert.Equal(t, http.StatusNotFound, w.Code, method)
	}
}

func TestRouter_CatalogAndOrders(t *testing.T) {
	r := newTestEngine(t)
	adminToken := login(t, r, adminEmail, adminPassword)

	w, env := do(t, r, http.MethodPost, "/api/categories", adminToken, map[string]any{"name": "Evening Gowns"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	categoryID := createdID(t, env)

	w, _ = do(t, r, http.MethodGet, "/api/categories/evening-gowns", "", nil)
	assert.Equal(t, http.StatusOK, w.Code, "categories resolve by slug")

	w, env = do(t, r, http.MethodPost, "/api/products", adminToken, map[string]any{
		"name":        "Silk Gown",
		"description": "Floor length",
		"category":    categoryID,
		"images":      []string{"/uploads/gown.png"},
		"price":       150,
		"size":        "M",
		"color":       "Red",
		"isFeatured":  true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	productID := createdID(t, env)

	w, env = do(t, r, http.MethodGet, "/api/products/featured", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "Silk Gown")

	w, _ = do(t, r, http.MethodGet, "/api/products?category=abc", "", nil)
	assert.Equal(t, http.StatusOK, w.Code, "malformed optional filters are ignored")

	w, _ = do(t, r, http.MethodDelete, fmt.Sprintf("/api/categories/%d", categoryID), adminToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code, "categories with products cannot be deleted")

	aliceToken, aliceID := register(t, r, "Alice", "alice@example.com")
	bobToken, _ := register(t, r, "Bob", "bob@example.com")

	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	order := map[string]any{
		"items": []map[string]any{{"product": productID, "quantity": 2}},
		"shippingAddress": map[string]string{
			"street": "Jl. Merdeka 1", "city": "Bandung", "state": "Jawa Barat",
			"zipCode": "40111", "phone": "08123",
		},
		"rentalStartDate": start,
		"rentalEndDate":   start.Add(72 * time.Hour),
	}
	w, env = do(t, r, http.MethodPost, "/api/orders", aliceToken, order)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderID := createdID(t, env)
	assert.Contains(t, string(env.Data), `"totalAmount":300`)

	w, _ = do(t, r, http.MethodPost, "/api/orders", bobToken, order)
	require.Equal(t, http.StatusCreated, w.Code)

	path := fmt.Sprintf("/api/orders/%d", orderID)
	w, _ = do(t, r, http.MethodGet, path, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "other users' orders look missing")
	w, _ = do(t, r, http.MethodGet, path, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodGet, fmt.Sprintf("/api/orders/my-orders?user=%d", aliceID+1), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine struct {
		Orders []struct {
			UserID uint `json:"userId"`
		} `json:"orders"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	require.Len(t, mine.Orders, 1, "the user query parameter cannot widen the scope")
	assert.Equal(t, aliceID, mine.Orders[0].UserID)

	w, _ = do(t, r, http.MethodGet, "/api/orders", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, env = do(t, r, http.MethodGet, "/api/orders", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"total":2`)

	w, _ = do(t, r, http.MethodPut, path+"/cancel", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, env = do(t, r, http.MethodPut, path+"/cancel", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), `"status":"cancelled"`)
	w, _ = do(t, r, http.MethodPut, path+"/cancel", aliceToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = do(t, r, http.MethodPut, path+"/status", aliceToken, map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = do(t, r, http.MethodPut, path+"/status", adminToken, map[string]string{"paymentStatus": "refunded"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_CORS(t *testing.T) {
	r := newTestEngine(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "https://shop.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_BodyLimit(t *testing.T) {
	r := newTestEngine(t)

	big := bytes.Repeat([]byte("a"), 2<<20)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
