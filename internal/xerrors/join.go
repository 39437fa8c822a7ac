package xerrors

import (
	"fmt"
	"strings"
)

func Join(errs ...error) error {
	nonNil := make(joinErrors, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			nonNil = append(nonNil, err)
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	default:
		return nonNil
	}
}

type joinErrors []error

func (errs joinErrors) Error() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, err := range errs {
		if i > 0 {
			_ = b.WriteByte(',')
		}
		_, _ = fmt.Fprintf(&b, "%q", err.Error())
	}
	b.WriteByte(']')

	return b.String()
}

func (errs joinErrors) Unwrap() []error {
	return errs
}
