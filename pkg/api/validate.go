/*
Copyright © 2025 Framecheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/framecheck/framecheck/pkg/frame"
	"github.com/framecheck/framecheck/pkg/schema"
	"github.com/framecheck/framecheck/pkg/serializer"
	"github.com/framecheck/framecheck/pkg/server"
)

// maxValidateBodyBytes caps the request body for POST /v1/validate.
const maxValidateBodyBytes = 32 << 20

// TablePayload is the row-oriented table representation accepted and
// returned by the API.
type TablePayload struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// ValidateRequest is the body of POST /v1/validate: a check set document
// plus the table to validate. Custom predicate checks cannot be restored
// without a caller-side registry and are rejected as configuration errors.
type ValidateRequest struct {
	Checks             schema.Document `json:"checks"`
	Table              TablePayload    `json:"table"`
	IncludeInvalidRows bool            `json:"include_invalid_rows,omitempty"`
}

// ValidateResponse carries the structured validation report, plus the
// offending rows when requested.
type ValidateResponse struct {
	*schema.Report

	InvalidRows *TablePayload `json:"invalid_rows,omitempty"`
}

// handleValidate handles POST /v1/validate.
func handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		server.WriteError(w, r, http.StatusMethodNotAllowed,
			server.ErrCodeMethodNotAllowed, "only POST is supported", false, nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxValidateBodyBytes)

	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		server.WriteError(w, r, http.StatusBadRequest,
			server.ErrCodeInvalidRequest, fmt.Sprintf("malformed request body: %v", err), false, nil)
		return
	}

	f, err := frame.FromRecords(req.Table.Columns, req.Table.Rows)
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest,
			server.ErrCodeInvalidRequest, fmt.Sprintf("invalid table: %v", err), false, nil)
		return
	}

	set, err := schema.Load(&req.Checks, nil)
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest,
			server.ErrCodeInvalidRequest, fmt.Sprintf("invalid check set: %v", err), false, nil)
		return
	}

	result, err := set.Validate(r.Context(), f)
	if err != nil {
		server.WriteError(w, r, http.StatusInternalServerError,
			server.ErrCodeInternalError, fmt.Sprintf("validation failed: %v", err), true, nil)
		return
	}

	resp := ValidateResponse{Report: result.Report()}

	if req.IncludeInvalidRows {
		invalid, err := result.InvalidRows(f, true)
		if err != nil {
			server.WriteError(w, r, http.StatusInternalServerError,
				server.ErrCodeInternalError, fmt.Sprintf("failed to recover invalid rows: %v", err), false, nil)
			return
		}
		resp.InvalidRows = &TablePayload{
			Columns: invalid.Columns(),
			Rows:    invalid.Records(),
		}
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}
