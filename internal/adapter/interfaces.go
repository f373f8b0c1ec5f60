// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the form API, used by formctl.
//
// Non-2xx answers are returned as [*APIError], which matches the sentinels in
// errors.go so callers can use [errors.Is] (e.g. [ErrConflict] for 409).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-form-keeper/models"
)

// FormsClient talks to the form API. Owner operations send the bearer token
// set with SetToken.
type FormsClient interface {
	SetToken(token string)
	Token() string

	CreateForm(ctx context.Context, req models.CreateFormRequest) (models.CreateFormResponse, error)
	ListForms(ctx context.Context) ([]models.FormSummary, error)
	GetForm(ctx context.Context, formID string) (models.PublicForm, error)
	Submit(ctx context.Context, req models.SubmitRequest) (models.SubmissionReceipt, error)
	GetResponses(ctx context.Context, formID string) ([]models.FormResponse, error)
	DeleteForm(ctx context.Context, formID string) (models.MessageResponse, error)
	Version(ctx context.Context) (string, error)
}
