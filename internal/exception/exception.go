package exception

import (
	"fmt"

	"github.com/cqlbridge/cqlbridge-go/internal/xerrors"
)

// Exception is an opaque handle to an error object owned by the host.
// The zero value means "no exception".
type Exception uintptr

func (e Exception) HasException() bool {
	return e != 0
}

// Kind is the category of an error crossing the boundary
type Kind uint8

const (
	Internal = Kind(iota)
	Connection
	Prepare
	Execution
)

func (k Kind) String() string {
	switch k {
	case Internal:
		return "internal"
	case Connection:
		return "connection"
	case Prepare:
		return "prepare"
	case Execution:
		return "execution"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Constructors is the table of host callbacks building a host exception
// for each Kind. It is supplied by the caller on every call that may fail.
type Constructors struct {
	Internal   func(msg string) Exception
	Connection func(msg string) Exception
	Prepare    func(msg string) Exception
	Execution  func(msg string) Exception
}

// Construct builds a host exception for kind. A missing constructor falls
// back to Internal.
func (c *Constructors) Construct(kind Kind, msg string) Exception {
	var f func(string) Exception
	switch kind {
	case Connection:
		f = c.Connection
	case Prepare:
		f = c.Prepare
	case Execution:
		f = c.Execution
	}
	if f == nil {
		f = c.Internal
	}
	if f == nil {
		panic("cqlbridge: no exception constructor for " + kind.String() + " error")
	}

	return f(msg)
}

type kindError struct {
	kind Kind
	err  error
}

func (e *kindError) Error() string {
	return e.err.Error()
}

func (e *kindError) Unwrap() error {
	return e.err
}

// WithKind tags err with kind. The outermost tag wins.
func WithKind(kind Kind, err error) error {
	if err == nil {
		return nil
	}

	return &kindError{kind: kind, err: err}
}

// KindOf returns the category of err. Untagged errors are Internal.
func KindOf(err error) Kind {
	var ke *kindError
	if xerrors.As(err, &ke) {
		return ke.kind
	}

	return Internal
}

// raisedError carries an exception that the host already constructed,
// usually returned by a host callback.
type raisedError struct {
	exception Exception
}

func (e *raisedError) Error() string {
	return fmt.Sprintf("host exception 0x%x", uintptr(e.exception))
}

// Raised wraps an already constructed host exception into an error.
// Zero exceptions yield a nil error.
func Raised(ex Exception) error {
	if !ex.HasException() {
		return nil
	}

	return &raisedError{exception: ex}
}

// From converts err into a host exception. Exceptions raised by the host
// are returned verbatim, anything else is built through c.
func From(err error, c *Constructors) Exception {
	if err == nil {
		return 0
	}
	var raised *raisedError
	if xerrors.As(err, &raised) {
		return raised.exception
	}

	return c.Construct(KindOf(err), err.Error())
}
