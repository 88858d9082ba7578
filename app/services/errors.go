package services

// Validation kinds returned to clients on a rejected order submission.
const (
	KindMissingFields          = "missing_fields"
	KindIncompleteCustomerInfo = "incomplete_customer_info"
	KindInvalidItems           = "invalid_items"
	KindInvalidStatus          = "invalid_status"
)

// IntakeError is a machine-readable rejection of an order draft.
// Kind is a stable string clients can branch on; Message is for humans.
type IntakeError struct {
	Kind    string
	Message string
}

func (e *IntakeError) Error() string { return e.Kind + ": " + e.Message }

func intakeErr(kind, message string) *IntakeError {
	return &IntakeError{Kind: kind, Message: message}
}
