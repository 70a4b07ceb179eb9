// SPDX-License-Identifier: MIT

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID = "request_id"
	FieldComponent = "component"
	FieldEvent     = "event"

	// Segmentation fields
	FieldModel     = "model"
	FieldLang      = "lang"
	FieldThreshold = "threshold"
	FieldPhrases   = "phrases"
	FieldTextBytes = "text_bytes"

	// Store fields
	FieldPath    = "path"
	FieldBackend = "backend"
)
