package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// annotatedError includes more context than a plain error that is useful for troubleshooting.
type annotatedError struct {
	// msg is the error message.
	msg string
	// pc is the program counter for the location of the error provided by runtime.Callers.
	pc uintptr
	// attrs are slog attributes that are added to the log event to provide more context for the error.
	attrs []slog.Attr
	// wrapped is the optional underlying error.
	wrapped error
}

func newAnnotated(skip int, msg string, wrapped error, attrs []slog.Attr) *annotatedError {
	var pcs [1]uintptr
	runtime.Callers(skip, pcs[:])
	return &annotatedError{
		msg:     msg,
		pc:      pcs[0],
		attrs:   attrs,
		wrapped: wrapped,
	}
}

// New creates an error annotated with the caller's source location and the given attributes.
func New(msg string, attrs ...slog.Attr) error {
	// Skip runtime.Callers, newAnnotated and this function.
	return newAnnotated(3, msg, nil, attrs) //nolint:mnd // see above
}

// NewSentinel creates a plain error without other context that can be used as sentinel error that can be detected
// with errors.Is.
func NewSentinel(msg string) error {
	return errors.New(msg)
}

// Wrap adds a message, the caller's source location and attributes to err. Wrapping a nil error returns nil.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	return newAnnotated(3, msg, err, attrs) //nolint:mnd // skip runtime.Callers, newAnnotated and Wrap.
}

// Error implements error interface.
func (err *annotatedError) Error() string {
	if err.wrapped == nil {
		return err.msg
	}
	return fmt.Sprintf("%s: %s", err.msg, err.wrapped.Error())
}

// Unwrap supports errors.Is and errors.As.
func (err *annotatedError) Unwrap() error {
	return err.wrapped
}

// LogValue formats the error for useful logging.
func (err *annotatedError) LogValue() slog.Value {
	// Retrieve the source location of the error so that developers can locate it faster.
	frames := runtime.CallersFrames([]uintptr{err.pc})
	source, _ := frames.Next()
	attrs := []slog.Attr{
		slog.String("msg", err.Error()),
		slog.String("source", fmt.Sprintf("%s:%d", source.File, source.Line)),
	}
	attrs = append(attrs, err.attrs...)

	// Include the attributes of the wrapped annotated errors so that no context gets lost.
	var inner *annotatedError
	if errors.As(err.wrapped, &inner) {
		attrs = append(attrs, inner.attrs...)
	}

	return slog.GroupValue(attrs...)
}

// SlogError returns a slog attribute with key "error" for logging err.
func SlogError(err error) slog.Attr {
	var annotated *annotatedError
	if errors.As(err, &annotated) {
		return slog.Any("error", annotated)
	}
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// As exposes stdlib errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is exposes stdlib errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Unwrap exposes stdlib errors.Unwrap.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join exposes stdlib errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
