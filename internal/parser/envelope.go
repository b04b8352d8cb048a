package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Belphemur/TVShows/internal/apperrors"
)

// DataField is the envelope key wrapping every payload returned by the shows API.
const DataField = "data"

var errFieldMissing = errors.New("field missing from response envelope")

// ExtractField returns the raw JSON stored under field in the top-level object of body.
// An absent or null field is a DecodeError.
func ExtractField(body []byte, field string) (json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &apperrors.DecodeError{Field: field, Err: fmt.Errorf("invalid envelope: %w", err)}
	}

	raw, ok := envelope[field]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, &apperrors.DecodeError{Field: field, Err: errFieldMissing}
	}
	return raw, nil
}

// DecodeField extracts field from body and unmarshals it into T. T may be a
// struct or a slice; a shape mismatch (wrong JSON type) is a DecodeError.
func DecodeField[T any](body []byte, field string) (T, error) {
	var out T
	raw, err := ExtractField(body, field)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &apperrors.DecodeError{Field: field, Err: err}
	}
	return out, nil
}

// readBody drains r for envelope decoding.
func readBody(r io.Reader, field string) ([]byte, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, &apperrors.DecodeError{Field: field, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}
