package api

import (
	"encoding/json/v2"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeTransformer_AlwaysIncludesVersion(t *testing.T) {
	tests := []struct {
		name   string
		status string
		input  any
	}{
		{"success response", "200", map[string]string{"key": "value"}},
		{"created response", "201", map[string]string{"id": "123"}},
		{"no content response", "204", nil},
		{"bad request error", "400", errors.New("invalid input")},
		{"not found error", "404", errors.New("resource not found")},
		{
			"conflict error with details",
			"409",
			&APIError{
				Code:    "CONFLICT",
				Message: "book already exists",
				Details: map[string]string{"existing_id": "123"},
			},
		},
		{"internal server error", "500", errors.New("internal error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := EnvelopeTransformer(nil, tt.status, tt.input)
			require.NoError(t, err)

			jsonBytes, err := json.Marshal(result)
			require.NoError(t, err)

			var envelope map[string]any
			require.NoError(t, json.Unmarshal(jsonBytes, &envelope))

			require.Contains(t, envelope, "v", "Envelope must contain version field 'v'")
			assert.Equal(t, float64(EnvelopeVersion), envelope["v"])
		})
	}
}

func TestEnvelopeTransformer_SuccessResponse(t *testing.T) {
	data := map[string]string{"title": "Dune"}

	result, err := EnvelopeTransformer(nil, "200", data)
	require.NoError(t, err)

	envelope, ok := result.(APIEnvelope)
	require.True(t, ok, "Expected APIEnvelope type")

	assert.Equal(t, EnvelopeVersion, envelope.Version)
	assert.True(t, envelope.Success)
	assert.Equal(t, data, envelope.Data)
}

func TestEnvelopeTransformer_ErrorResponse(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "400", errors.New("validation failed"))
	require.NoError(t, err)

	envelope, ok := result.(APIErrorEnvelope)
	require.True(t, ok, "Expected APIErrorEnvelope type")

	assert.Equal(t, EnvelopeVersion, envelope.Version)
	assert.False(t, envelope.Success)
	assert.Equal(t, "VALIDATION", envelope.Error.Code)
	assert.Equal(t, "validation failed", envelope.Error.Message)
}

func TestEnvelopeTransformer_APIErrorCarriesCodeAndDetails(t *testing.T) {
	apiErr := &APIError{
		status:  409,
		Code:    "ALREADY_EXISTS",
		Message: "a book with this title already exists",
		Details: map[string]string{"title": "Dune"},
	}

	result, err := EnvelopeTransformer(nil, "409", apiErr)
	require.NoError(t, err)

	envelope, ok := result.(APIErrorEnvelope)
	require.True(t, ok, "Expected APIErrorEnvelope type")

	assert.Equal(t, EnvelopeVersion, envelope.Version)
	assert.False(t, envelope.Success)
	assert.Equal(t, "ALREADY_EXISTS", envelope.Error.Code)
	assert.Equal(t, "a book with this title already exists", envelope.Error.Message)
	assert.Equal(t, map[string]string{"title": "Dune"}, envelope.Error.Details)
}

func TestEnvelopeTransformer_VersionFieldName(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "200", nil)
	require.NoError(t, err)

	serverBytes, err := json.Marshal(result)
	require.NoError(t, err)

	var serverOutput map[string]any
	require.NoError(t, json.Unmarshal(serverBytes, &serverOutput))

	// Clients key on 'v'; renaming it breaks parsing silently.
	assert.Contains(t, serverOutput, "v")
	assert.NotContains(t, serverOutput, "version")
}
