package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/models"
)

// responseRepository is the SQL implementation of [ResponseRepository] over
// the "form_responses" table.
type responseRepository struct {
	*DB
	logger *logger.Logger
}

func NewResponseRepository(db *DB, logger *logger.Logger) ResponseRepository {
	logger.Debug().Msg("creating response repository")
	return &responseRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveResponse appends one response document. Once it returns nil the
// submission is durable.
func (r *responseRepository) SaveResponse(ctx context.Context, response models.FormResponse) error {
	log := logger.FromContext(ctx)

	dataJSON, err := json.Marshal(response.Data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}

	query, args, err := buildInsertResponseQuery(r.statementBuilder(), response, string(dataJSON))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "responseRepository.SaveResponse").
			Str("form_id", response.FormID).
			Msg("failed to insert response")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrResponseNotSaved
	}

	return nil
}

func (r *responseRepository) ListResponses(ctx context.Context, formID string) ([]models.FormResponse, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListResponsesQuery(r.statementBuilder(), formID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "responseRepository.ListResponses").
			Str("form_id", formID).
			Msg("failed to list responses")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	responses := make([]models.FormResponse, 0)
	for rows.Next() {
		var (
			response models.FormResponse
			dataJSON []byte
		)
		if err = rows.Scan(&response.ID, &response.FormID, &dataJSON, &response.SubmittedAt); err != nil {
			log.Err(err).Str("func", "responseRepository.ListResponses").Msg("failed to scan response row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if response.Data, err = decodeDocument(dataJSON); err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return responses, nil
}
