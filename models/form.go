// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Form is the registry record of a dynamic form.
//
// A Form is created together with its provisioned table and removed together
// with all of its responses and that table. TableName never changes after
// creation.
type Form struct {
	// ID is the server-generated identifier (UUIDv7).
	ID string `json:"id"`

	// Title is the display title of the form.
	Title string `json:"title"`

	// Description is an optional display description.
	Description string `json:"description"`

	// Fields is the ordered list of field descriptors.
	Fields []Field `json:"fields"`

	// TableName is the unique name of the provisioned table.
	TableName string `json:"tableName"`

	// CreatedBy is the owner identity (bearer token subject).
	CreatedBy string `json:"createdBy"`

	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the last modification timestamp.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public returns the view of the form served to anonymous respondents,
// without owner or storage details.
func (f Form) Public() PublicForm {
	return PublicForm{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		Fields:      f.Fields,
	}
}

// PublicForm is the form rendering view returned by GET /forms/{formId}.
type PublicForm struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Fields      []Field `json:"fields"`
}

// FormSummary is a form annotated with the number of stored responses.
type FormSummary struct {
	Form
	ResponseCount int64 `json:"responseCount"`
}
