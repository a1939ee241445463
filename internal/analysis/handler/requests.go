package handler

import (
	"encoding/json"

	dErrors "riskscope/pkg/domain-errors"
)

// AnalyzeRequest carries the raw submission untouched. Normalization owns
// field-level interpretation, so decoding only asserts the body is a JSON
// object.
type AnalyzeRequest struct {
	Fields map[string]any
}

func (r *AnalyzeRequest) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &r.Fields)
}

func (r *AnalyzeRequest) Validate() error {
	if len(r.Fields) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "request body must be a non-empty JSON object")
	}
	return nil
}
