package errors

import "testing"

func TestErrValidationError(t *testing.T) {
	err := &ErrValidation{Field: "quantity", Message: "must be positive"}
	if got, want := err.Error(), "quantity: must be positive"; got != want {
		t.Fatalf("unexpected error string: got %q want %q", got, want)
	}
}

func TestParseFailureDetail(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		parsed       bool
		message      string
		notification string
	}{
		{"code and message", `{"details":"400:Insufficient funds to purchase stock"}`, true, "Insufficient funds to purchase stock", "Error: Insufficient funds to purchase stock"},
		{"server spacing normalized", `{"details":"400: Insufficient funds to purchase stock"}`, true, "Insufficient funds to purchase stock", "Error: Insufficient funds to purchase stock"},
		{"only second segment kept", `{"details":"uri=/api:Buy date cannot be in the future:extra"}`, true, "Buy date cannot be in the future", "Error: Buy date cannot be in the future"},
		{"no colon", `{"details":"boom"}`, false, GenericFailureMessage, GenericFailureMessage},
		{"empty segment", `{"details":"500:"}`, false, GenericFailureMessage, GenericFailureMessage},
		{"missing details", `{"message":"nope"}`, false, GenericFailureMessage, GenericFailureMessage},
		{"not json", `<html>Bad Gateway</html>`, false, GenericFailureMessage, GenericFailureMessage},
		{"empty body", ``, false, GenericFailureMessage, GenericFailureMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ParseFailureDetail([]byte(tt.body))
			if d.Parsed != tt.parsed {
				t.Fatalf("Parsed = %v, want %v", d.Parsed, tt.parsed)
			}
			if d.Message != tt.message {
				t.Errorf("Message = %q, want %q", d.Message, tt.message)
			}
			if got := d.Notification(); got != tt.notification {
				t.Errorf("Notification() = %q, want %q", got, tt.notification)
			}
		})
	}
}

func TestAPIFailureError(t *testing.T) {
	err := &APIFailure{Status: 404, Detail: ParseFailureDetail([]byte(`{"details":"404:Portfolio not found"}`))}
	if got, want := err.Error(), "portfolio api returned status 404: Portfolio not found"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
