package service

import (
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/rentmoment/rental-api/config"
	apperrors "github.com/rentmoment/rental-api/internal/errors"
	"github.com/rentmoment/rental-api/pkg/listing"
)

// ListingOptions derives the listing bounds from configuration. A non-empty
// defaultSort replaces the newest-first default.
func ListingOptions(cfg config.ListingConfig, defaultSort ...listing.SortField) listing.Options {
	opts := listing.DefaultOptions()
	opts.DefaultLimit = cfg.DefaultLimit
	opts.MaxLimit = cfg.MaxLimit
	opts.Timeout = cfg.QueryTimeout
	if len(defaultSort) > 0 {
		opts.DefaultSort = defaultSort
	}
	return opts
}

// repoError maps a repository error to a domain error. Missing rows become
// notFound; duplicates become conflict when one is given.
func repoError(err error, notFound, conflict *apperrors.DomainError) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil:
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey) && conflict != nil:
		return apperrors.WrapError(conflict, err)
	case apperrors.IsDomainError(err):
		return err
	default:
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s, collapses every run of other characters into a
// single dash and trims dashes from both ends.
func Slugify(s string) string {
	return strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-"), "-")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
