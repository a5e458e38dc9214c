package dto

// Envelope is the uniform response body of every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// OK wraps data in a successful envelope.
func OK(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Fail builds an unsuccessful envelope with no data.
func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}
