package schema

import "testing"

func newValidator(t *testing.T) *EventValidator {
	t.Helper()
	v, err := NewEventValidator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}
	return v
}

func TestValidateAcceptsWellFormedEvent(t *testing.T) {
	v := newValidator(t)
	payload := []byte(`{"event":"ORDER_COMPLETED","order_id":"ord_1","timestamp":"2026-08-27T10:00:00Z"}`)
	if err := v.Validate(payload); err != nil {
		t.Fatalf("expected valid document, got %v", err)
	}
}

func TestValidateAcceptsUnknownEventType(t *testing.T) {
	v := newValidator(t)
	if err := v.Validate([]byte(`{"event":"SOMETHING_NEW"}`)); err != nil {
		t.Fatalf("expected unknown event type to pass, got %v", err)
	}
}

func TestValidateRejectsMissingEvent(t *testing.T) {
	v := newValidator(t)
	if err := v.Validate([]byte(`{"order_id":"ord_1"}`)); err == nil {
		t.Fatal("expected error for missing event field")
	}
}

func TestValidateRejectsWrongTypes(t *testing.T) {
	v := newValidator(t)
	if err := v.Validate([]byte(`{"event":42}`)); err == nil {
		t.Fatal("expected error for non-string event")
	}
}

func TestValidateRejectsMalformedJSON(t *testing.T) {
	v := newValidator(t)
	if err := v.Validate([]byte(`{bad`)); err == nil {
		t.Fatal("expected error for malformed json")
	}
}
