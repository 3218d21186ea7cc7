// Package response holds the uniform {"message": ...} envelope returned by
// every non-list response of the API.
package response

import (
	"encoding/json"
	"net/http"
)

// Message is the envelope. The status only sets the HTTP status line and is
// never serialized. Message implements huma.StatusError, so handlers can
// return it as an error to short-circuit with any status.
type Message struct {
	Message string `json:"message" example:"Created reminder" doc:"Human readable outcome"`
	status  int
}

// New creates an envelope with status 200.
func New(message string) *Message {
	return &Message{Message: message, status: http.StatusOK}
}

// WithStatus sets the status line used for the envelope.
func (m *Message) WithStatus(status int) *Message {
	m.status = status
	return m
}

func (m *Message) Error() string {
	return m.Message
}

func (m *Message) GetStatus() int {
	return m.status
}

// ToJSON renders the envelope body.
func (m *Message) ToJSON() []byte {
	b, _ := json.Marshal(m)
	return b
}

// Write sends the envelope on a plain http.ResponseWriter.
func (m *Message) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(m.status)
	_, _ = w.Write(m.ToJSON())
}
