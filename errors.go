package invoker

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

const (
	defaultErrorStatus  = 400
	defaultErrorMessage = "Error"
)

var (
	// ErrNoFunctionName is returned when Invoke is called without a function name.
	ErrNoFunctionName = &InvocationError{StatusCode: 400, Message: "No function name"}
	// ErrNoPayload is returned when the function responded without a payload.
	ErrNoPayload = &InvocationError{StatusCode: 400, Message: "Can't get payload"}
)

// InvocationError is a failure with an HTTP-like status code. It is produced
// locally or decoded from the errorMessage of a function response.
type InvocationError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// FormatError converts the errorMessage value of a function response into an
// InvocationError.
//
// A string holding a JSON object and an already decoded object both use their
// statusCode and message fields, defaulting to 400 and "Error". Any other
// string is used as the message with status 400. A nil value yields the
// defaults.
func FormatError(v interface{}) *InvocationError {
	switch ev := v.(type) {
	case nil:
		return &InvocationError{StatusCode: defaultErrorStatus, Message: defaultErrorMessage}
	case map[string]interface{}:
		return errorFromObject(ev)
	case string:
		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(ev), &obj); err == nil && obj != nil {
			return errorFromObject(obj)
		}
		return &InvocationError{StatusCode: defaultErrorStatus, Message: ev}
	default:
		return &InvocationError{StatusCode: defaultErrorStatus, Message: fmt.Sprint(v)}
	}
}

func errorFromObject(obj map[string]interface{}) *InvocationError {
	ie := &InvocationError{
		StatusCode: defaultErrorStatus,
		Message:    defaultErrorMessage,
	}
	if code, ok := statusCode(obj["statusCode"]); ok {
		ie.StatusCode = code
	}
	if msg, ok := obj["message"].(string); ok && msg != "" {
		ie.Message = msg
	}
	return ie
}

// statusCode accepts integral, non-zero numbers and numeric strings. Zero is
// treated like a missing value.
func statusCode(v interface{}) (int, bool) {
	var f float64
	switch code := v.(type) {
	case float64:
		f = code
	case string:
		n, err := strconv.Atoi(code)
		if err != nil {
			return 0, false
		}
		f = float64(n)
	default:
		return 0, false
	}
	if f == 0 || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
