// Package envelope provides the response wrapper used by every JSON endpoint.
// Internal details (stack traces, driver errors) never reach this type.
package envelope

// Envelope is the canonical body of all JSON responses.
type Envelope struct {
	Success bool              `json:"success"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func Success(data interface{}) *Envelope {
	return &Envelope{Success: true, Data: data}
}

func Error(msg string) *Envelope {
	return &Envelope{Success: false, Error: msg}
}

// Validation wraps per-field validation failures.
func Validation(fields map[string]string) *Envelope {
	return &Envelope{Success: false, Error: "Error de validación", Fields: fields}
}
