package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	ctxutil "github.com/rentmoment/rental-api/pkg/context"
	"github.com/rentmoment/rental-api/pkg/listing"
	"github.com/rentmoment/rental-api/pkg/logger"
)

// Collection serves listing queries for the model T from one table.
type Collection[T any] struct {
	db       *gorm.DB
	preloads []string
}

// NewCollection returns a listing collection over T. Preloads are applied to
// Find only.
func NewCollection[T any](db *gorm.DB, preloads ...string) *Collection[T] {
	return &Collection[T]{db: db, preloads: preloads}
}

func (c *Collection[T]) Count(ctx context.Context, conds []listing.Condition) (int64, error) {
	ctx = ctxutil.WithFunction(ctx, "collection", "Count")

	where, err := WhereClause(conds)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	var total int64
	result := c.db.WithContext(ctx).Model(new(T)).Scopes(whereScope(where)).Count(&total)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to count records").
			Int("conditions", len(conds)).
			Duration(time.Since(start)).
			Err(result.Error).
			Log()
		return 0, result.Error
	}

	logger.DebugWithContext(ctx, "Records counted").
		Int("conditions", len(conds)).
		Int64("total", total).
		Duration(time.Since(start)).
		Log()

	return total, nil
}

func (c *Collection[T]) Find(ctx context.Context, conds []listing.Condition, sort []listing.SortField, skip, limit int) ([]T, error) {
	ctx = ctxutil.WithFunction(ctx, "collection", "Find")

	where, err := WhereClause(conds)
	if err != nil {
		return nil, err
	}

	query := c.db.WithContext(ctx).Model(new(T)).Scopes(whereScope(where))
	for _, p := range c.preloads {
		query = query.Preload(p)
	}
	if len(sort) > 0 {
		query = query.Order(OrderByClause(sort))
	}

	start := time.Now()
	items := make([]T, 0, limit)
	result := query.Offset(skip).Limit(limit).Find(&items)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch records").
			Int("skip", skip).
			Int("limit", limit).
			Duration(time.Since(start)).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "Records fetched").
		Int("skip", skip).
		Int("limit", limit).
		Int("returned_count", len(items)).
		Duration(time.Since(start)).
		Log()

	return items, nil
}

// WhereClause ANDs one expression per condition. A condition naming several
// columns is OR-ed across them.
func WhereClause(conds []listing.Condition) (clause.Where, error) {
	where := clause.Where{}
	for _, cond := range conds {
		if cond.IsEmpty() {
			continue
		}

		exprs := make([]clause.Expression, 0, len(cond.Fields))
		for _, field := range cond.Fields {
			expr, err := conditionExpr(field, cond.Op, cond.Value)
			if err != nil {
				return clause.Where{}, err
			}
			exprs = append(exprs, expr)
		}

		if len(exprs) == 1 {
			where.Exprs = append(where.Exprs, exprs[0])
		} else {
			where.Exprs = append(where.Exprs, clause.Or(exprs...))
		}
	}
	return where, nil
}

func conditionExpr(field string, op listing.Op, value any) (clause.Expression, error) {
	column := clause.Column{Table: clause.CurrentTable, Name: field}

	switch op {
	case listing.OpEqual:
		return clause.Eq{Column: column, Value: value}, nil
	case listing.OpContains:
		pattern := "%" + escapeLike(strings.ToLower(fmt.Sprint(value))) + "%"
		return clause.Expr{SQL: "LOWER(?) LIKE ? ESCAPE '\\'", Vars: []any{column, pattern}}, nil
	case listing.OpGTE:
		return clause.Gte{Column: column, Value: value}, nil
	case listing.OpLTE:
		return clause.Lte{Column: column, Value: value}, nil
	default:
		return nil, fmt.Errorf("unsupported listing operator %s on %s", op, field)
	}
}

func whereScope(where clause.Where) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(where.Exprs) == 0 {
			return db
		}
		return db.Clauses(where)
	}
}

// OrderByClause converts sort fields into an ORDER BY clause.
func OrderByClause(sort []listing.SortField) clause.OrderBy {
	columns := make([]clause.OrderByColumn, 0, len(sort))
	for _, s := range sort {
		columns = append(columns, clause.OrderByColumn{
			Column: clause.Column{Table: clause.CurrentTable, Name: s.Field},
			Desc:   s.Desc,
		})
	}
	return clause.OrderBy{Columns: columns}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
