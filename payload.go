package invoker

import "encoding/json"

// errorMessageKey is the field the Lambda runtimes use to report a failed
// invocation inside an otherwise successful response.
const errorMessageKey = "errorMessage"

// ParsePayload decodes a raw response payload. Bytes and strings are decoded
// as JSON and kept as a string when they are not valid JSON. Values of any
// other type are returned unchanged.
func ParsePayload(v interface{}) interface{} {
	var raw []byte
	switch pv := v.(type) {
	case []byte:
		raw = pv
	case string:
		raw = []byte(pv)
	default:
		return v
	}

	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return string(raw)
	}
	return decoded
}

// applicationError reports the errorMessage carried by a parsed payload, if any.
func applicationError(result interface{}) (*InvocationError, bool) {
	obj, ok := result.(map[string]interface{})
	if !ok {
		return nil, false
	}
	msg, ok := obj[errorMessageKey]
	if !ok {
		return nil, false
	}
	return FormatError(msg), true
}
