package httputil

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response shape every endpoint returns.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Reason  string      `json:"reason,omitempty"`
}

// RespondJSON writes an envelope with the given status code. It marshals
// first, preventing partial responses if encoding fails after headers
// are sent.
func RespondJSON(w http.ResponseWriter, status int, envelope Envelope) {
	payload, err := json.Marshal(envelope)
	if err != nil {
		// Fallback to plain text if JSON encoding fails
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondData writes a success envelope carrying data.
func RespondData(w http.ResponseWriter, status int, data interface{}) {
	RespondJSON(w, status, Envelope{Success: true, Data: data})
}

// RespondDataMessage writes a success envelope with a message and data.
func RespondDataMessage(w http.ResponseWriter, status int, message string, data interface{}) {
	RespondJSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// RespondList writes a success envelope with data and a count field.
func RespondList(w http.ResponseWriter, status int, data interface{}, count int) {
	RespondJSON(w, status, Envelope{Success: true, Data: data, Count: &count})
}

// RespondMessage writes a success envelope with only a message.
func RespondMessage(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, Envelope{Success: true, Message: message})
}

// RespondError writes a failure envelope.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, Envelope{Success: false, Message: message})
}

// RespondDenied writes a 403 failure envelope carrying the access
// control reason code.
func RespondDenied(w http.ResponseWriter, message, reason string) {
	RespondJSON(w, http.StatusForbidden, Envelope{Success: false, Message: message, Reason: reason})
}
