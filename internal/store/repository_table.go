package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/schema"
)

// tableRepository runs statements against provisioned tables. It never
// builds DDL itself; statements come from [schema.Compiler].
type tableRepository struct {
	*DB
	logger *logger.Logger
}

func NewTableRepository(db *DB, logger *logger.Logger) TableRepository {
	logger.Debug().Msg("creating table repository")
	return &tableRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *tableRepository) Exec(ctx context.Context, stmt schema.Statement) error {
	log := logger.FromContext(ctx)

	if _, err := r.DB.ExecContext(ctx, stmt.SQL); err != nil {
		if r.isDuplicateRelation(err) {
			log.Warn().
				Str("func", "tableRepository.Exec").
				Str("table_name", stmt.Table).
				Msg("relation name is already taken")
			return fmt.Errorf("%w: %w", ErrDuplicateTableName, err)
		}

		log.Err(err).
			Str("func", "tableRepository.Exec").
			Str("table_name", stmt.Table).
			Bool("retryable", r.isRetryable(err)).
			Msg("failed to execute DDL")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Debug().Str("func", "tableRepository.Exec").Str("table_name", stmt.Table).Msg("DDL executed")
	return nil
}

func (r *tableRepository) TableExists(ctx context.Context, tableName string) (bool, error) {
	query, args, err := buildTableExistsQuery(r.statementBuilder(), r.dialect, tableName)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		logger.FromContext(ctx).Err(err).
			Str("func", "tableRepository.TableExists").
			Str("table_name", tableName).
			Bool("retryable", r.isRetryable(err)).
			Msg("failed to check relation name")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return true, nil
}

func (r *tableRepository) InsertRow(ctx context.Context, tableName string, columns []string, values []any) error {
	query, args, err := buildInsertRowQuery(r.statementBuilder(), tableName, columns, values)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "tableRepository.InsertRow").
			Str("table_name", tableName).
			Bool("retryable", r.isRetryable(err)).
			Msg("failed to insert projected row")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *tableRepository) ListOrphanTables(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListOrphanTablesQuery(r.statementBuilder(), r.dialect)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "tableRepository.ListOrphanTables").
			Bool("retryable", r.isRetryable(err)).
			Msg("failed to list orphan tables")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tables := make([]string, 0)
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		tables = append(tables, name)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tables, nil
}
