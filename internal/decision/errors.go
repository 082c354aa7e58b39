package decision

// BusinessError is the only error Evaluate returns. Message is the cause's
// message and is shown to the caller.
type BusinessError struct {
	CorrelationID string
	Message       string
	Cause         error
}

func (e *BusinessError) Error() string {
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Cause
}

func newBusinessError(correlationID string, cause error) *BusinessError {
	return &BusinessError{
		CorrelationID: correlationID,
		Message:       cause.Error(),
		Cause:         cause,
	}
}
