package types

// ErrorEnvelope is the observable error body: {success:false, error, code}.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// Ack is the minimal success body used by endpoints with no payload.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
