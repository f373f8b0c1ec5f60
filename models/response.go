// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// FormResponse is one stored submission. Data is the submitted payload kept
// verbatim; it is the durable source of truth for the submission, while the
// row in the provisioned table is only a projection of it.
type FormResponse struct {
	// ID is the server-generated identifier (UUIDv7).
	ID string `json:"id"`

	// FormID references the owning form.
	FormID string `json:"formId"`

	// Data maps field names to submitted values.
	Data map[string]any `json:"data"`

	// SubmittedAt is the time the response was stored.
	SubmittedAt time.Time `json:"submittedAt"`
}

// Receipt returns the acknowledgement sent back to a respondent.
func (r FormResponse) Receipt() SubmissionReceipt {
	return SubmissionReceipt{
		ID:          r.ID,
		FormID:      r.FormID,
		SubmittedAt: r.SubmittedAt,
	}
}

// SubmissionReceipt is the body of a successful POST /forms/submit.
type SubmissionReceipt struct {
	ID          string    `json:"id"`
	FormID      string    `json:"formId"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Violation is a single human-readable validation failure for a field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
