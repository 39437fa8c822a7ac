package rowset

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCursor is returned for metadata requests on a row set without a cursor
	ErrNoCursor = errors.New("cqlbridge: row set has no cursor to get metadata from")

	// ErrSchemaChanged is returned by a Pager when a new page carries columns
	// different from the ones the row set was created with
	ErrSchemaChanged = errors.New("cqlbridge: result metadata changed between pages")
)

// ColumnCountError reports a row shorter than the declared columns
type ColumnCountError struct {
	Got  int
	Want int
}

func (e *ColumnCountError) Error() string {
	return fmt.Sprintf("cqlbridge: row contains fewer columns (%d of %d) than metadata claims", e.Got, e.Want)
}
