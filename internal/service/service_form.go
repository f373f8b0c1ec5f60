// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/MKhiriev/go-form-keeper/internal/config"
	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/metrics"
	"github.com/MKhiriev/go-form-keeper/internal/schema"
	"github.com/MKhiriev/go-form-keeper/internal/store"
	"github.com/MKhiriev/go-form-keeper/internal/utils"
	"github.com/MKhiriev/go-form-keeper/internal/validators"
	"github.com/MKhiriev/go-form-keeper/models"
)

// formService is the concrete implementation of FormService.
//
// Creating a form is a two-step saga: the table is provisioned first, then
// the registry row is inserted. A registry failure is compensated by
// dropping the table again, unless the failure was a duplicate, in which
// case the table belongs to the concurrent creator that won.
type formService struct {
	forms  store.FormRepository
	tables store.TableRepository

	compiler  *schema.Compiler
	validator validators.Validator

	shareBaseURL string

	ids     idGenerator
	now     func() time.Time
	metrics *metrics.Recorder
	logger  *logger.Logger
}

type idGenerator interface {
	Generate() string
}

func NewFormService(storages *store.Storages, compiler *schema.Compiler, cfg config.App, recorder *metrics.Recorder, logger *logger.Logger) FormService {
	return &formService{
		forms:        storages.FormRepository,
		tables:       storages.TableRepository,
		compiler:     compiler,
		validator:    validators.NewFormRequestValidator(),
		shareBaseURL: strings.TrimRight(cfg.ShareBaseURL, "/"),
		ids:          utils.NewUUIDGenerator(),
		now:          func() time.Time { return time.Now().UTC() },
		metrics:      recorder,
		logger:       logger,
	}
}

func (s *formService) CreateForm(ctx context.Context, ownerID string, request models.CreateFormRequest) (models.CreateFormResponse, error) {
	log := logger.FromContext(ctx)

	if ownerID == "" {
		return models.CreateFormResponse{}, fmt.Errorf("%w: missing owner", ErrInvalidInput)
	}
	if err := s.validator.Validate(ctx, request); err != nil {
		return models.CreateFormResponse{}, err
	}

	createStmt, err := s.compiler.CompileCreateTable(request.TableName, request.Fields)
	if err != nil {
		return models.CreateFormResponse{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	dropStmt, err := s.compiler.CompileDropTable(request.TableName)
	if err != nil {
		return models.CreateFormResponse{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	taken, err := s.forms.TableNameExists(ctx, request.TableName)
	if err != nil {
		return models.CreateFormResponse{}, fmt.Errorf("checking table name: %w", err)
	}
	if taken {
		return models.CreateFormResponse{}, ErrDuplicateTableName
	}

	// a table without a registry row is an orphan; never adopt it
	occupied, err := s.tables.TableExists(ctx, request.TableName)
	if err != nil {
		return models.CreateFormResponse{}, fmt.Errorf("probing table: %w", err)
	}
	if occupied {
		log.Warn().
			Str("func", "formService.CreateForm").
			Str("table_name", request.TableName).
			Msg("table exists without a form")
		return models.CreateFormResponse{}, ErrDuplicateTableName
	}

	err = s.tables.Exec(ctx, createStmt)
	if errors.Is(err, store.ErrDuplicateTableName) {
		// lost a concurrent create; the table is not ours to drop
		return models.CreateFormResponse{}, ErrDuplicateTableName
	}
	if err != nil {
		log.Err(err).
			Str("func", "formService.CreateForm").
			Str("table_name", request.TableName).
			Msg("failed to create table")
		return models.CreateFormResponse{}, fmt.Errorf("%w: %w", ErrTableProvisioning, err)
	}

	now := s.now()
	form, err := s.forms.CreateForm(ctx, models.Form{
		ID:          s.ids.Generate(),
		Title:       strings.TrimSpace(request.Title),
		Description: request.Description,
		Fields:      request.Fields,
		TableName:   request.TableName,
		CreatedBy:   ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if errors.Is(err, store.ErrDuplicateTableName) {
		return models.CreateFormResponse{}, ErrDuplicateTableName
	}
	if err != nil {
		s.dropTable(ctx, dropStmt, metrics.TeardownCompensation)
		return models.CreateFormResponse{}, fmt.Errorf("registering form: %w", err)
	}

	s.metrics.FormCreated()
	log.Info().
		Str("func", "formService.CreateForm").
		Str("form_id", form.ID).
		Str("table_name", form.TableName).
		Msg("form created")

	return models.CreateFormResponse{
		Form:      form,
		ShareLink: s.shareLink(form.ID),
	}, nil
}

func (s *formService) ListForms(ctx context.Context, ownerID string) ([]models.FormSummary, error) {
	forms, err := s.forms.ListFormsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing forms: %w", err)
	}
	return forms, nil
}

func (s *formService) GetPublicForm(ctx context.Context, formID string) (models.PublicForm, error) {
	form, err := s.forms.GetForm(ctx, formID)
	if errors.Is(err, store.ErrFormNotFound) {
		return models.PublicForm{}, ErrFormNotFound
	}
	if err != nil {
		return models.PublicForm{}, fmt.Errorf("getting form: %w", err)
	}
	return form.Public(), nil
}

// DeleteForm removes the form and its responses, then drops the table. A
// failed drop leaves an orphan table behind, which is logged and counted
// but does not fail the request.
func (s *formService) DeleteForm(ctx context.Context, formID, ownerID string) error {
	form, err := s.forms.DeleteForm(ctx, formID, ownerID)
	if errors.Is(err, store.ErrFormNotFound) {
		return ErrFormNotFound
	}
	if err != nil {
		return fmt.Errorf("deleting form: %w", err)
	}
	s.metrics.FormDeleted()

	dropStmt, err := s.compiler.CompileDropTable(form.TableName)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "formService.DeleteForm").
			Str("table_name", form.TableName).
			Msg("stored table name no longer compiles")
		s.metrics.TeardownFailed(metrics.TeardownDelete)
		return nil
	}
	s.dropTable(ctx, dropStmt, metrics.TeardownDelete)

	return nil
}

func (s *formService) FindOrphanTables(ctx context.Context) ([]string, error) {
	tables, err := s.tables.ListOrphanTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing orphan tables: %w", err)
	}
	s.metrics.OrphanTables(len(tables))
	return tables, nil
}

func (s *formService) DropOrphanTables(ctx context.Context, candidates []string) ([]string, error) {
	tables, err := s.FindOrphanTables(ctx)
	if err != nil {
		return nil, err
	}
	if candidates != nil {
		tables = lo.Filter(tables, func(table string, _ int) bool {
			return lo.Contains(candidates, table)
		})
	}

	dropped := make([]string, 0, len(tables))
	for _, table := range tables {
		stmt, err := s.compiler.CompileDropTable(table)
		if err != nil {
			// names outside the identifier grammar were not created by us
			continue
		}
		if s.dropTable(ctx, stmt, metrics.TeardownOrphan) {
			dropped = append(dropped, table)
		}
	}
	return dropped, nil
}

// dropTable runs a best-effort DROP detached from the caller's
// cancellation and reports whether it succeeded.
func (s *formService) dropTable(ctx context.Context, stmt schema.Statement, reason string) bool {
	err := s.tables.Exec(context.WithoutCancel(ctx), stmt)
	if err == nil {
		return true
	}

	logger.FromContext(ctx).Err(err).
		Str("func", "formService.dropTable").
		Str("table_name", stmt.Table).
		Str("reason", reason).
		Msg("failed to drop table")
	s.metrics.TeardownFailed(reason)
	return false
}

func (s *formService) shareLink(formID string) string {
	return s.shareBaseURL + "/forms/" + formID
}
