package apperror

// AppError is a custom error type that carries an HTTP status code and a
// machine-readable kind alongside the user-facing message.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Kind    string // Stable error kind (e.g., "SlotAlreadyBooked")
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code, kind and message.
func New(code int, kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}
