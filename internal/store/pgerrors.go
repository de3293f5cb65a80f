package store

import (
	"errors"

	"github.com/hollis/threadbare/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes we translate into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// uniqueConstraintErrors maps constraint names from the migrations to the
// sentinel each one signals.
var uniqueConstraintErrors = map[string]error{
	"products_handle_key":      domain.ErrDuplicateHandle,
	"product_variants_sku_key": domain.ErrDuplicateSKU,
	"collections_handle_key":   domain.Conflict("store", "collection handle already exists"),
	"discounts_code_key":       domain.ErrDuplicateCode,
}

// mapError translates driver errors into domain errors. notFound is returned
// for pgx.ErrNoRows so each query site picks its own sentinel.
func mapError(err, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if mapped, ok := uniqueConstraintErrors[pgErr.ConstraintName]; ok {
				return mapped
			}
			return domain.Conflict("store", "resource already exists")
		case pgForeignKeyViolation:
			return domain.Invalid("store", "referenced resource does not exist")
		}
	}
	return err
}
