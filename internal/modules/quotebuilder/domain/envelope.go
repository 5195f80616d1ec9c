package domain

import (
	"net/http"
	"time"
)

// Envelope is the response shape shared by the remote API and this service.
type Envelope struct {
	Success    bool      `json:"success"`
	StatusCode int       `json:"statusCode"`
	Message    string    `json:"message,omitempty"`
	Data       any       `json:"data"`
	Timestamp  time.Time `json:"timestamp"`
	Errors     any       `json:"errors,omitempty"`
}

func OK(data any, at time.Time) Envelope {
	return Envelope{Success: true, StatusCode: http.StatusOK, Data: data, Timestamp: at.UTC()}
}

func Created(data any, at time.Time) Envelope {
	return Envelope{Success: true, StatusCode: http.StatusCreated, Data: data, Timestamp: at.UTC()}
}

// Failure builds an unsuccessful envelope. Data may still carry a fallback value.
func Failure(status int, message string, data any, errs any, at time.Time) Envelope {
	return Envelope{
		Success:    false,
		StatusCode: status,
		Message:    message,
		Data:       data,
		Timestamp:  at.UTC(),
		Errors:     errs,
	}
}
