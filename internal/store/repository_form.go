// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/models"
)

// formRepository is the SQL implementation of [FormRepository] over the
// "forms" registry table. Field descriptors are stored as one JSON document
// per form.
type formRepository struct {
	*DB
	logger *logger.Logger
}

// NewFormRepository constructs a [FormRepository] backed by db.
func NewFormRepository(db *DB, logger *logger.Logger) FormRepository {
	logger.Debug().Msg("creating form repository")
	return &formRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateForm inserts the registry row. The UNIQUE constraint on table_name
// decides between concurrent creators; the loser receives
// [ErrDuplicateTableName].
func (r *formRepository) CreateForm(ctx context.Context, form models.Form) (models.Form, error) {
	log := logger.FromContext(ctx)

	fieldsJSON, err := json.Marshal(form.Fields)
	if err != nil {
		return models.Form{}, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}

	query, args, err := buildInsertFormQuery(r.statementBuilder(), form, string(fieldsJSON))
	if err != nil {
		log.Err(err).Str("func", "formRepository.CreateForm").Msg("failed to build query")
		return models.Form{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		if r.isUniqueViolation(err) {
			log.Warn().
				Str("func", "formRepository.CreateForm").
				Str("table_name", form.TableName).
				Msg("table name already taken")
			return models.Form{}, ErrDuplicateTableName
		}

		log.Err(err).
			Str("func", "formRepository.CreateForm").
			Str("form_id", form.ID).
			Msg("failed to insert form")
		return models.Form{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return form, nil
}

func (r *formRepository) TableNameExists(ctx context.Context, tableName string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildTableNameExistsQuery(r.statementBuilder(), tableName)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		log.Err(err).
			Str("func", "formRepository.TableNameExists").
			Str("table_name", tableName).
			Msg("failed to check table name")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return true, nil
}

func (r *formRepository) GetForm(ctx context.Context, formID string) (models.Form, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectFormQuery(r.statementBuilder(), formID)
	if err != nil {
		return models.Form{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	form, err := scanForm(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, ErrFormNotFound) {
			log.Err(err).Str("func", "formRepository.GetForm").Str("form_id", formID).Msg("failed to get form")
		}
		return models.Form{}, err
	}

	return form, nil
}

func (r *formRepository) ListFormsByOwner(ctx context.Context, ownerID string) ([]models.FormSummary, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListFormsByOwnerQuery(r.statementBuilder(), ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "formRepository.ListFormsByOwner").
			Str("owner_id", ownerID).
			Msg("failed to list forms")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	summaries := make([]models.FormSummary, 0)
	for rows.Next() {
		var (
			summary    models.FormSummary
			fieldsJSON []byte
		)
		if err = rows.Scan(
			&summary.ID, &summary.Title, &summary.Description, &fieldsJSON, &summary.TableName,
			&summary.CreatedBy, &summary.CreatedAt, &summary.UpdatedAt, &summary.ResponseCount,
		); err != nil {
			log.Err(err).Str("func", "formRepository.ListFormsByOwner").Msg("failed to scan form row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if err = json.Unmarshal(fieldsJSON, &summary.Fields); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "formRepository.ListFormsByOwner").Msg("error iterating form rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return summaries, nil
}

// DeleteForm deletes the responses and then the form inside one
// transaction. The responses are deleted explicitly so the cascade does not
// depend on foreign key enforcement being enabled.
func (r *formRepository) DeleteForm(ctx context.Context, formID, ownerID string) (models.Form, error) {
	log := logger.FromContext(ctx)
	sb := r.statementBuilder()

	selectQuery, selectArgs, err := buildSelectOwnedFormQuery(sb, formID, ownerID)
	if err != nil {
		return models.Form{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	deleteResponses, deleteResponsesArgs, err := buildDeleteResponsesQuery(sb, formID)
	if err != nil {
		return models.Form{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	deleteForm, deleteFormArgs, err := buildDeleteFormQuery(sb, formID, ownerID)
	if err != nil {
		return models.Form{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "formRepository.DeleteForm").Msg("failed to begin transaction")
		return models.Form{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	form, err := scanForm(tx.QueryRowContext(ctx, selectQuery, selectArgs...))
	if err != nil {
		return models.Form{}, err
	}

	res, err := tx.ExecContext(ctx, deleteResponses, deleteResponsesArgs...)
	if err != nil {
		log.Err(err).Str("func", "formRepository.DeleteForm").Str("form_id", formID).Msg("failed to delete responses")
		return models.Form{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	deletedResponses, _ := res.RowsAffected()

	res, err = tx.ExecContext(ctx, deleteForm, deleteFormArgs...)
	if err != nil {
		log.Err(err).Str("func", "formRepository.DeleteForm").Str("form_id", formID).Msg("failed to delete form")
		return models.Form{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Form{}, ErrFormNotFound
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "formRepository.DeleteForm").Msg("failed to commit transaction")
		return models.Form{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().
		Str("func", "formRepository.DeleteForm").
		Str("form_id", formID).
		Int64("deleted_responses", deletedResponses).
		Msg("form deleted")

	return form, nil
}

// scanForm reads one registry row; sql.ErrNoRows becomes [ErrFormNotFound].
func scanForm(row *sql.Row) (models.Form, error) {
	var (
		form       models.Form
		fieldsJSON []byte
	)

	err := row.Scan(&form.ID, &form.Title, &form.Description, &fieldsJSON, &form.TableName,
		&form.CreatedBy, &form.CreatedAt, &form.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Form{}, ErrFormNotFound
	}
	if err != nil {
		return models.Form{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = json.Unmarshal(fieldsJSON, &form.Fields); err != nil {
		return models.Form{}, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}

	return form, nil
}

// decodeDocument decodes a JSON object keeping numbers as json.Number, so a
// stored payload reads back exactly as it was submitted.
func decodeDocument(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}
	return doc, nil
}
