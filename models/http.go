// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CreateFormRequest is the body of POST /forms/create.
type CreateFormRequest struct {
	// Title is the display title of the new form.
	Title string `json:"title" validate:"required,notblank,max=255"`

	// Description is an optional display description.
	Description string `json:"description"`

	// TableName is the requested name of the provisioned table.
	TableName string `json:"tableName" validate:"required"`

	// Fields are the field descriptors, at least one.
	Fields []Field `json:"fields" validate:"required,min=1,dive"`
}

// CreateFormResponse is the body of a successful POST /forms/create.
type CreateFormResponse struct {
	Form      Form   `json:"form"`
	ShareLink string `json:"shareLink"`
}

// SubmitRequest is the body of POST /forms/submit.
type SubmitRequest struct {
	FormID string         `json:"formId" validate:"required"`
	Data   map[string]any `json:"data"`
}

// ErrorResponse carries one or more client-facing error messages.
type ErrorResponse struct {
	Message string      `json:"message"`
	Errors  []Violation `json:"errors,omitempty"`
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
