package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorStatusHTTPStatusAndTerminal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status   ErrorStatus
		httpCode int
		terminal bool
	}{
		{InvalidArgument, 400, false},
		{InvalidSessionID, 404, true},
		{SessionNotCreated, 500, true},
		{UnknownMethod, 405, false},
		{ScriptTimeout, 408, false},
		{NoSuchElement, 404, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.httpCode, tt.status.HTTPStatus(), tt.status)
		assert.Equal(t, tt.terminal, tt.status.Terminal(), tt.status)
	}
}

func TestErrorMarshalJSON(t *testing.T) {
	t.Parallel()

	err := New(InvalidSessionID, "no such session")
	data, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	assert.JSONEq(t, `{"status":404,"error":"invalid session id","message":"no such session"}`, string(data))
}

func TestErrorImplementsErrorInterface(t *testing.T) {
	t.Parallel()

	var err error = New(UnknownError, "boom")
	assert.Equal(t, "unknown error: boom", err.Error())
}
