package apperror

// AppError is an error that knows which HTTP status code it should map to.
// Domain packages declare their failure modes as AppError values so handlers
// never have to re-classify errors.
type AppError struct {
	Code    int    // HTTP status code (400, 403, 404, ...)
	Message string // user-facing message
	Err     error  // underlying cause, kept out of responses
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap creates an AppError whose chain keeps the original error, so that
// errors.Is against sentinel AppError values still matches.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
