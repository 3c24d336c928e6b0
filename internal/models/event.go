package models

// EventKind classifies notifications a workflow hands to the view layer.
type EventKind string

const (
	EventSubmitReady     EventKind = "submit_ready"
	EventValidationError EventKind = "validation_error"
	EventSuccess         EventKind = "success"
	EventFailure         EventKind = "failure"
)

// Event is a plain data notification emitted by a workflow transition.
type Event struct {
	Kind    EventKind `json:"kind"`
	Message string    `json:"message,omitempty"`
}

// SubmitOutcome is the result of a submission call after the failure body,
// if any, has been reduced to a display message.
type SubmitOutcome struct {
	OK      bool   `json:"ok"`
	Status  int    `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}
