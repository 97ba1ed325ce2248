package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is the wire version of the response envelope. Clients
// check this before parsing the rest of the payload.
const EnvelopeVersion = 1

// APIEnvelope wraps every successful response body.
type APIEnvelope struct { //nolint:revive // API prefix is intentional for clarity
	Version int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ErrorBody carries the machine-readable error payload inside an
// APIErrorEnvelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// APIErrorEnvelope wraps every error response body.
type APIErrorEnvelope struct { //nolint:revive // API prefix is intentional for clarity
	Version int       `json:"v"`
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// EnvelopeTransformer wraps response bodies in the versioned envelope.
// Registered on the huma config so every operation, including generated
// error responses, goes through it.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return APIErrorEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Error: ErrorBody{
				Code:    apiErr.Code,
				Message: apiErr.Message,
				Details: apiErr.Details,
			},
		}, nil
	}

	if err, ok := v.(error); ok {
		code, _ := strconv.Atoi(status)
		return APIErrorEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Error: ErrorBody{
				Code:    statusToCode(code),
				Message: err.Error(),
			},
		}, nil
	}

	return APIEnvelope{
		Version: EnvelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}
