// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// FieldType is the logical type of a form field. It drives both the column
// type of the provisioned table and the checks applied to submitted values.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldSelect   FieldType = "select"
	FieldTextarea FieldType = "textarea"
	FieldCheckbox FieldType = "checkbox"
	FieldRadio    FieldType = "radio"
	FieldFile     FieldType = "file"
)

// KnownFieldTypes lists every logical type understood by the engine.
// Unknown types are still accepted at form creation and stored as text.
var KnownFieldTypes = []FieldType{
	FieldText,
	FieldEmail,
	FieldNumber,
	FieldDate,
	FieldSelect,
	FieldTextarea,
	FieldCheckbox,
	FieldRadio,
	FieldFile,
}

// IsKnown reports whether t is one of [KnownFieldTypes].
func (t FieldType) IsKnown() bool {
	for _, known := range KnownFieldTypes {
		if t == known {
			return true
		}
	}
	return false
}

// FieldValidation is the optional rule bundle attached to a field.
//
// Min and Max are numeric bounds for number fields and character-length
// bounds for text and textarea fields. Pattern is a regular expression
// applied to text and textarea values; Message replaces the generic
// "format is invalid" text when Pattern does not match.
type FieldValidation struct {
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
	Message string   `json:"message,omitempty"`
}

// Field describes a single form field. It is immutable once the owning form
// has been created: the provisioned table has exactly one column per field.
type Field struct {
	// Name is the storage identifier of the field and the column name in the
	// provisioned table. Must match ^[a-z][a-z0-9_]*$.
	Name string `json:"name" validate:"required"`

	// Label is the human-readable caption. Violations are reported with it.
	Label string `json:"label"`

	// Type is the logical type of the field.
	Type FieldType `json:"type"`

	// Required marks the field as mandatory on submission.
	Required bool `json:"required"`

	// Options are the choices rendered for select and radio fields.
	Options []string `json:"options,omitempty"`

	// Validation holds optional bounds and pattern rules.
	Validation *FieldValidation `json:"validation,omitempty"`
}

// DisplayName returns the label used in violation messages, falling back to
// the field name when no label was given.
func (f Field) DisplayName() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}
