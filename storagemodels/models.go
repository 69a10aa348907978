/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"time"

	"github.com/go-openapi/strfmt"
)

// DocumentRecord is the stored form of an encoded document: the JSON payload
// produced by the jsonstore encoder plus addressing and bookkeeping fields.
// All backends persist this same shape.
type DocumentRecord struct {
	// Key addresses the record, e.g. "EXPERIMENT#branin".
	Key string `json:"Key"`
	// TypeName is the payload's root discriminant, kept outside the payload
	// so backends can filter by type without parsing documents.
	TypeName string `json:"TypeName"`
	// Payload is the encoded document JSON.
	Payload []byte `json:"Payload"`

	CreatedAt *strfmt.DateTime `json:"CreatedAt,omitempty"`
	UpdatedAt *strfmt.DateTime `json:"UpdatedAt,omitempty"`
}

// Touch stamps UpdatedAt (and CreatedAt when unset) with the current time.
func (r *DocumentRecord) Touch() {
	now := strfmt.DateTime(time.Now().UTC().Truncate(time.Millisecond))
	if r.CreatedAt == nil {
		r.CreatedAt = &now
	}
	r.UpdatedAt = &now
}
