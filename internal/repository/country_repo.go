package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"countries-etl/internal/domain"
)

// ConstraintName is the named uniqueness constraint over the business key.
// The insert statement references it for conflict-skip behavior.
const ConstraintName = "unique_country_profile"

// CreateTableSQL creates the countries table if it does not exist, including
// the uniqueness constraint that makes re-runs idempotent.
const CreateTableSQL = `
CREATE TABLE IF NOT EXISTS countries (
	id BIGSERIAL PRIMARY KEY,
	country_name TEXT,
	official_name TEXT,
	native_names TEXT,
	currency_codes TEXT,
	currency_names TEXT,
	currency_symbols TEXT,
	idd_codes TEXT,
	capitals TEXT,
	region TEXT,
	subregion TEXT,
	languages TEXT,
	area DOUBLE PRECISION,
	population BIGINT,
	continents TEXT,
	independent BOOLEAN,
	un_member BOOLEAN,
	start_of_week TEXT,
	CONSTRAINT ` + ConstraintName + ` UNIQUE (country_name, official_name, region, area, continents)
)`

// InsertSQL inserts one row with 17 positional parameters in table column
// order. A row that collides on the uniqueness constraint is silently
// skipped, which is the mechanism that keeps repeat runs from duplicating
// data.
const InsertSQL = `
INSERT INTO countries (
	country_name, official_name, native_names,
	currency_codes, currency_names, currency_symbols,
	idd_codes, capitals, region, subregion, languages,
	area, population, continents,
	independent, un_member, start_of_week
)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
ON CONFLICT ON CONSTRAINT ` + ConstraintName + ` DO NOTHING`

// CountryRepository persists flattened country rows.
type CountryRepository interface {
	EnsureSchema(ctx context.Context) error
	InsertRows(ctx context.Context, rows []domain.CountryRow) (int64, error)
}

type countryRepo struct {
	db *pgxpool.Pool
}

// NewCountryRepo returns a CountryRepository backed by a pgx pool.
func NewCountryRepo(db *pgxpool.Pool) CountryRepository {
	return &countryRepo{db: db}
}

// EnsureSchema idempotently creates the countries table and its uniqueness
// constraint.
func (r *countryRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, CreateTableSQL); err != nil {
		return fmt.Errorf("create countries table: %w", err)
	}
	return nil
}

// InsertRows inserts the batch in one transaction, one conflict-skipping
// statement per row, and returns how many rows were actually inserted.
// A conflict on the uniqueness constraint is not an error; the returned
// count simply excludes the skipped rows.
func (r *countryRepo) InsertRows(ctx context.Context, rows []domain.CountryRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(InsertSQL, row.Args()...)
	}

	results := tx.SendBatch(ctx, batch)

	var inserted int64
	for i := range rows {
		tag, err := results.Exec()
		if err != nil {
			_ = results.Close()
			return inserted, fmt.Errorf("insert row %d (%s): %w", i, rows[i].CountryName, err)
		}
		inserted += tag.RowsAffected()
	}
	if err := results.Close(); err != nil {
		return inserted, fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return inserted, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}
