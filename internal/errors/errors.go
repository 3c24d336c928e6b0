package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GenericFailureMessage is shown when a failure body carries no usable detail.
const GenericFailureMessage = "An error occurred"

type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Field + ": " + e.Message
}

// APIFailure is a non-success response from the portfolio API.
type APIFailure struct {
	Status int
	Detail FailureDetail
}

func (e *APIFailure) Error() string {
	return fmt.Sprintf("portfolio api returned status %d: %s", e.Status, e.Detail.Message)
}

// FailureDetail is the best-effort parse of a failure body. Parsed is false
// when the body was not structured data or had no usable details field;
// Message then holds the generic fallback.
type FailureDetail struct {
	Parsed  bool
	Code    string
	Message string
}

// Notification renders the detail for a transient error notification as
// "Error: <message>", with exactly one space whatever the server sent.
func (d FailureDetail) Notification() string {
	if !d.Parsed {
		return GenericFailureMessage
	}
	return "Error: " + d.Message
}

type failureBody struct {
	Details *string `json:"details"`
}

// ParseFailureDetail extracts the human message from a body shaped like
// {"details": "<code>:<message>"}. The message is the segment between the
// first and second colon.
func ParseFailureDetail(body []byte) FailureDetail {
	fallback := FailureDetail{Message: GenericFailureMessage}

	var fb failureBody
	if err := json.Unmarshal(body, &fb); err != nil || fb.Details == nil {
		return fallback
	}
	parts := strings.Split(*fb.Details, ":")
	if len(parts) < 2 {
		return fallback
	}
	msg := strings.TrimSpace(parts[1])
	if msg == "" {
		return fallback
	}
	return FailureDetail{
		Parsed:  true,
		Code:    strings.TrimSpace(parts[0]),
		Message: msg,
	}
}
