package xerrors

import (
	"github.com/cqlbridge/cqlbridge-go/internal/stack"
)

// WithStackTrace is a wrapper over original err with file:line identification
func WithStackTrace(err error) error {
	if err == nil {
		return nil
	}

	return &stackError{
		stackRecord: stack.Record(1),
		err:         err,
	}
}

type stackError struct {
	stackRecord string
	err         error
}

func (e *stackError) Error() string {
	return e.err.Error() + " at `" + e.stackRecord + "`"
}

func (e *stackError) Unwrap() error {
	return e.err
}
