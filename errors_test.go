package invoker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatError(t *testing.T) {
	testCases := []struct {
		name  string
		input interface{}
		want  *InvocationError
	}{
		{
			name:  "plain string",
			input: "boom",
			want:  &InvocationError{StatusCode: 400, Message: "boom"},
		},
		{
			name:  "json object string",
			input: `{"statusCode":503,"message":"unavailable"}`,
			want:  &InvocationError{StatusCode: 503, Message: "unavailable"},
		},
		{
			name:  "json object without fields",
			input: `{}`,
			want:  &InvocationError{StatusCode: 400, Message: "Error"},
		},
		{
			name:  "json number string",
			input: "404",
			want:  &InvocationError{StatusCode: 400, Message: "404"},
		},
		{
			name:  "json null string",
			input: "null",
			want:  &InvocationError{StatusCode: 400, Message: "null"},
		},
		{
			name:  "string status code",
			input: `{"statusCode":"401","message":"denied"}`,
			want:  &InvocationError{StatusCode: 401, Message: "denied"},
		},
		{
			name:  "invalid status code",
			input: `{"statusCode":true,"message":"odd"}`,
			want:  &InvocationError{StatusCode: 400, Message: "odd"},
		},
		{
			name:  "non string message",
			input: `{"statusCode":500,"message":{"detail":"x"}}`,
			want:  &InvocationError{StatusCode: 500, Message: "Error"},
		},
		{
			name:  "structured object",
			input: map[string]interface{}{"statusCode": float64(418), "message": "teapot"},
			want:  &InvocationError{StatusCode: 418, Message: "teapot"},
		},
		{
			name:  "fractional status code",
			input: `{"statusCode":404.7,"message":"odd"}`,
			want:  &InvocationError{StatusCode: 400, Message: "odd"},
		},
		{
			name:  "huge status code",
			input: `{"statusCode":1e300,"message":"odd"}`,
			want:  &InvocationError{StatusCode: 400, Message: "odd"},
		},
		{
			name:  "zero status code",
			input: `{"statusCode":0,"message":""}`,
			want:  &InvocationError{StatusCode: 400, Message: "Error"},
		},
		{
			name:  "zero string status code",
			input: `{"statusCode":"0","message":"zero"}`,
			want:  &InvocationError{StatusCode: 400, Message: "zero"},
		},
		{
			name:  "nil",
			input: nil,
			want:  &InvocationError{StatusCode: 400, Message: "Error"},
		},
		{
			name:  "other value",
			input: float64(12),
			want:  &InvocationError{StatusCode: 400, Message: "12"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatError(tc.input))
		})
	}
}

func TestInvocationError_Error(t *testing.T) {
	assert.Equal(t, "400: No function name", ErrNoFunctionName.Error())
}
