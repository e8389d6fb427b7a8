package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func decode(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal([]byte(raw), &body))
	return body
}

func TestValidateResolveRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "minimal valid request",
			body: `{"message": "napkins", "customerId": "cust-1"}`,
		},
		{
			name: "with chat history",
			body: `{"message": "napkins", "customerId": "cust-1", "chatHistory": [{"role": "user", "content": "hi"}, {"role": "assistant", "content": "hello"}]}`,
		},
		{
			name: "empty history is allowed",
			body: `{"message": "napkins", "customerId": "cust-1", "chatHistory": []}`,
		},
		{
			name:    "missing message",
			body:    `{"customerId": "cust-1"}`,
			wantErr: true,
		},
		{
			name:    "empty message",
			body:    `{"message": "", "customerId": "cust-1"}`,
			wantErr: true,
		},
		{
			name:    "missing customerId",
			body:    `{"message": "napkins"}`,
			wantErr: true,
		},
		{
			name:    "empty customerId",
			body:    `{"message": "napkins", "customerId": ""}`,
			wantErr: true,
		},
		{
			name:    "unknown chat role",
			body:    `{"message": "napkins", "customerId": "cust-1", "chatHistory": [{"role": "system", "content": "x"}]}`,
			wantErr: true,
		},
		{
			name:    "history entry missing role",
			body:    `{"message": "napkins", "customerId": "cust-1", "chatHistory": [{"content": "x"}]}`,
			wantErr: true,
		},
		{
			name:    "non-string message",
			body:    `{"message": 42, "customerId": "cust-1"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResolveRequest(decode(t, tt.body))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateResolveRequest_ErrorListsAllProblems(t *testing.T) {
	err := ValidateResolveRequest(decode(t, `{}`))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "message")
	assert.Contains(t, err.Error(), "customerId")
}
