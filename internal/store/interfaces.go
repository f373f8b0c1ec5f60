// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists forms, their responses and their provisioned tables.
//
// Three repositories share one [DB]:
//   - FormRepository is the form registry ("forms" table).
//   - ResponseRepository is the append-only response log ("form_responses").
//   - TableRepository executes compiled DDL and writes projected rows into
//     provisioned tables.
//
// All queries are built with squirrel using the placeholder format of the
// connected dialect (PostgreSQL or SQLite).
package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-form-keeper/internal/schema"
	"github.com/MKhiriev/go-form-keeper/models"
)

// FormRepository is the durable registry of form definitions.
type FormRepository interface {
	// CreateForm inserts form. A table_name collision yields
	// [ErrDuplicateTableName].
	CreateForm(ctx context.Context, form models.Form) (models.Form, error)

	// TableNameExists reports whether a form already holds tableName.
	TableNameExists(ctx context.Context, tableName string) (bool, error)

	// GetForm returns the form with the given id or [ErrFormNotFound].
	GetForm(ctx context.Context, formID string) (models.Form, error)

	// ListFormsByOwner returns the owner's forms, newest first, each with
	// its response count.
	ListFormsByOwner(ctx context.Context, ownerID string) ([]models.FormSummary, error)

	// DeleteForm removes the form and all of its responses in one
	// transaction and returns the deleted form. Forms owned by somebody
	// else are reported as [ErrFormNotFound].
	DeleteForm(ctx context.Context, formID, ownerID string) (models.Form, error)
}

// ResponseRepository is the append-only log of submitted payloads.
type ResponseRepository interface {
	SaveResponse(ctx context.Context, response models.FormResponse) error
	ListResponses(ctx context.Context, formID string) ([]models.FormResponse, error)
}

// TableRepository manages provisioned tables.
type TableRepository interface {
	// Exec runs a compiled DDL statement. A CREATE that loses to an
	// existing relation of the same name yields [ErrDuplicateTableName].
	Exec(ctx context.Context, stmt schema.Statement) error

	// TableExists reports whether any relation (table, index, sequence,
	// view) already holds the name.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// InsertRow writes one projected row into a provisioned table.
	InsertRow(ctx context.Context, tableName string, columns []string, values []any) error

	// ListOrphanTables returns provisioned-shape tables (having a
	// submitted_at column) that no form references.
	ListOrphanTables(ctx context.Context) ([]string, error)
}

// ErrorClassificator maps driver errors onto the conditions the
// repositories react to.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool

	// IsDuplicateRelation reports a CREATE rejected because the name is
	// already held by another relation.
	IsDuplicateRelation(err error) bool
}
