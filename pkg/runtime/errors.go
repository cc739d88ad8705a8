package runtime

import "fmt"

// ErrorKind categorizes evaluation failures.
type ErrorKind string

const (
	KindNameNotFound      ErrorKind = "NameNotFound"
	KindNotCallable       ErrorKind = "NotCallable"
	KindDivisionByZero    ErrorKind = "DivisionByZero"
	KindInputFormat       ErrorKind = "InputFormat"
	KindUnknownOperator   ErrorKind = "UnknownOperator"
	KindTypeMismatch      ErrorKind = "TypeMismatch"
	KindCallDepthExceeded ErrorKind = "CallDepthExceeded"
)

// Error is returned for every failed evaluation. All kinds are fatal to the
// evaluation that raised them.
type Error struct {
	Kind    ErrorKind
	Message string
	// Name is the identifier or operator involved, when there is one.
	Name string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any *Error of the same kind, so the sentinels below work with
// errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrNameNotFound      = &Error{Kind: KindNameNotFound}
	ErrNotCallable       = &Error{Kind: KindNotCallable}
	ErrDivisionByZero    = &Error{Kind: KindDivisionByZero}
	ErrInputFormat       = &Error{Kind: KindInputFormat}
	ErrUnknownOperator   = &Error{Kind: KindUnknownOperator}
	ErrTypeMismatch      = &Error{Kind: KindTypeMismatch}
	ErrCallDepthExceeded = &Error{Kind: KindCallDepthExceeded}
)

func NameNotFound(name string) *Error {
	return &Error{Kind: KindNameNotFound, Name: name, Message: fmt.Sprintf("undefined name '%s'", name)}
}

func NotCallable(v Value) *Error {
	return &Error{Kind: KindNotCallable, Message: fmt.Sprintf("cannot call %s value %s", v.Kind(), Describe(v))}
}

func DivisionByZero(op string) *Error {
	return &Error{Kind: KindDivisionByZero, Name: op, Message: "division by zero"}
}

func InputFormat(format string, args ...any) *Error {
	return &Error{Kind: KindInputFormat, Message: fmt.Sprintf(format, args...)}
}

func UnknownOperator(op string) *Error {
	return &Error{Kind: KindUnknownOperator, Name: op, Message: fmt.Sprintf("unsupported operator %q", op)}
}

func TypeMismatch(context string, v Value) *Error {
	return &Error{Kind: KindTypeMismatch, Message: fmt.Sprintf("%s expects an integer, got %s", context, Describe(v))}
}

func CallDepthExceeded(limit int) *Error {
	return &Error{Kind: KindCallDepthExceeded, Message: fmt.Sprintf("call depth exceeds %d", limit)}
}
