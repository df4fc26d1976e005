package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is the wire format version clients pin against.
const envelopeVersion = 1

// successEnvelope wraps successful responses.
type successEnvelope struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// simpleErrorEnvelope wraps errors that carry only a message.
type simpleErrorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// detailedErrorEnvelope wraps errors that carry a machine-readable code.
type detailedErrorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps every response body in the versioned envelope
// clients expect: {"v": 1, "success": true, "data": ...} on success,
// {"v": 1, "success": false, "error": "..."} for simple errors, and
// {"v": 1, "success": false, "code": ..., "message": ..., "details": ...}
// for errors with a machine-readable code. The field names are part of the
// client contract; renaming any of them breaks parsing silently.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		if apiErr.Code == "" {
			return &simpleErrorEnvelope{
				V:       envelopeVersion,
				Success: false,
				Error:   apiErr.Message,
			}, nil
		}
		return &detailedErrorEnvelope{
			V:       envelopeVersion,
			Success: false,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil
	}

	return &successEnvelope{
		V:       envelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}
