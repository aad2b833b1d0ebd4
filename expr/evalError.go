package expr

// EvalError is a runtime evaluation failure carried as a value. It is data,
// not control flow: batch callers store it alongside ordinary results and
// keep going. Message is never empty for failures produced by the bridges.
type EvalError struct {
	Message string
}

// NewEvalError builds an EvalError from a script engine's failure message.
func NewEvalError(message string) *EvalError {
	if message == "" {
		message = "unknown evaluation error"
	}
	return &EvalError{Message: message}
}

func (e *EvalError) Error() string {
	return e.Message
}

func (e *EvalError) String() string {
	return e.Message
}
