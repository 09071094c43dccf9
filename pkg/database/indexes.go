package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rentmoment/rental-api/pkg/logger"
)

// ListingIndexes creates the composite and expression indexes behind the
// listing filters and default sorts. Only PostgreSQL is handled; other
// dialects rely on the single column indexes from the model tags.
func ListingIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	indexes := []string{
		// Catalog listing: category + availability, newest first with id tie-break.
		"CREATE INDEX IF NOT EXISTS idx_products_category_available_created ON products(category_id, is_available, created_at DESC, id);",
		"CREATE INDEX IF NOT EXISTS idx_products_featured_created ON products(is_featured, created_at DESC, id) WHERE is_available = true;",
		"CREATE INDEX IF NOT EXISTS idx_products_price_id ON products(price, id);",
		"CREATE INDEX IF NOT EXISTS idx_products_lower_name ON products(LOWER(name));",

		"CREATE INDEX IF NOT EXISTS idx_categories_active_sort ON categories(is_active, sort_order, name);",

		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC, id);",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_payment ON orders(status, payment_status);",

		"CREATE INDEX IF NOT EXISTS idx_merchants_lower_name ON merchants(LOWER(name));",
		"CREATE INDEX IF NOT EXISTS idx_users_role_active ON users(role, is_active);",
	}

	for _, indexSQL := range indexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			// Index creation is best effort; the listing works without them.
			logger.GetLogger().Warn("Failed to create index",
				zap.String("sql", indexSQL),
				zap.Error(err),
			)
		}
	}

	return nil
}
