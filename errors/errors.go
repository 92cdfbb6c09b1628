package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseConstruct Phase = "construct" // reader construction
	PhaseDetect    Phase = "detect"    // preamble and byte order mark handling
	PhaseDecode    Phase = "decode"    // byte to character conversion
	PhaseRead      Phase = "read"      // read operations
	PhaseClose     Phase = "close"     // teardown
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidInput   Kind = "invalid_input"
	KindClosed         Kind = "closed"
	KindInProgress     Kind = "in_progress"
	KindSourceContract Kind = "source_contract"
	KindDecodeFailed   Kind = "decode_failed"
	KindOverflow       Kind = "overflow"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the operation name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidInput creates a construction-time invalid input error
func InvalidInput(detail string) *Error {
	return &Error{
		Phase:  PhaseConstruct,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Closed creates a usage-after-close error
func Closed(op string) *Error {
	return &Error{
		Phase:  PhaseRead,
		Kind:   KindClosed,
		Op:     op,
		Detail: "reader is closed",
	}
}

// InProgress creates a concurrent-misuse error for overlapping reads
func InProgress(op string) *Error {
	return &Error{
		Phase:  PhaseRead,
		Kind:   KindInProgress,
		Op:     op,
		Detail: "another read operation is in progress",
	}
}

// SourceContract reports a byte source violating its read contract
func SourceContract(n int) *Error {
	return &Error{
		Phase:  PhaseRead,
		Kind:   KindSourceContract,
		Detail: fmt.Sprintf("source returned negative byte count %d", n),
	}
}

// DecodeFailed wraps a decoder failure with the encoding name
func DecodeFailed(encoding string, cause error) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindDecodeFailed,
		Detail: fmt.Sprintf("decode as %s", encoding),
		Cause:  cause,
	}
}

// Overflow reports a decode output exceeding the caller-provided buffer
func Overflow(encoding string, have, need int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("%s output exceeds buffer: have %d characters of space, need at least %d", encoding, have, need),
	}
}

// IsClosed reports whether err is a usage-after-close error
func IsClosed(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == KindClosed
}

// IsInProgress reports whether err is an overlapping-read error
func IsInProgress(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == KindInProgress
}
