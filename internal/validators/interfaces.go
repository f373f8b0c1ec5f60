// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds the two kinds of input checks of the form engine.
//
//   - Validator checks the shape of API requests (create form, submit) before
//     the service layer touches storage.
//   - ValidateSubmission checks a submitted payload against the field
//     descriptors of a form and reports every violation in one pass.
//
// Neither consults storage; identifier safety of table and field names is
// enforced by the schema compiler at form creation time.
package validators

import "context"

// Validator validates a request value, optionally restricted to the named
// fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
