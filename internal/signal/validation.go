package signal

import "fmt"

// Reason tags classify why a field failed validation. The transport layer
// surfaces the tag and field so the UI can highlight the offending input.
type Reason string

const (
	ReasonMissingRequired   Reason = "missing_required"
	ReasonOutOfRange        Reason = "out_of_range"
	ReasonInvalidEnumValue  Reason = "invalid_enum_value"
	ReasonUnparseableNumber Reason = "unparseable_number"
)

// ValidationError identifies a single invalid input field. It is the only
// failure the engine can produce; everything downstream of normalization is
// total.
type ValidationError struct {
	FieldName string
	Tag       Reason
	Detail    string
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.FieldName, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.FieldName, e.Tag)
}

// Field returns the offending field name.
func (e *ValidationError) Field() string { return e.FieldName }

// Reason returns the classification tag.
func (e *ValidationError) Reason() string { return string(e.Tag) }

func missingRequired(field string) *ValidationError {
	return &ValidationError{FieldName: field, Tag: ReasonMissingRequired, Detail: "field is required"}
}

func outOfRange(field, detail string) *ValidationError {
	return &ValidationError{FieldName: field, Tag: ReasonOutOfRange, Detail: detail}
}

func invalidEnum(field string, got any) *ValidationError {
	return &ValidationError{FieldName: field, Tag: ReasonInvalidEnumValue, Detail: fmt.Sprintf("value %v is not in the allowed set", got)}
}

func unparseableNumber(field string, got any) *ValidationError {
	return &ValidationError{FieldName: field, Tag: ReasonUnparseableNumber, Detail: fmt.Sprintf("value %v is not a non-negative integer", got)}
}
