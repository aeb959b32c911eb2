package tabular

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
var (
	ErrNotTabular        = errors.New("expected valid tabular data")
	ErrRowShape          = errors.New("invalid table row")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrInvalidTemplate   = errors.New("invalid template")
	ErrInvalidConfig     = errors.New("invalid render config")
)

// ShapeErrorKind classifies a [RowShapeError].
type ShapeErrorKind int

const (
	// MissingColumn means a row lacks a column the head row has.
	MissingColumn ShapeErrorKind = iota + 1
	// ExtraColumn means a pair-list row has more pairs than the head row.
	ExtraColumn
	// ColumnsOutOfOrder means a pair-list row names a column at a position
	// where the head row has a different one.
	ColumnsOutOfOrder
	// MissingReferenceColumns means a map row has columns the head row lacks.
	MissingReferenceColumns
	// InvalidRecord means a row is neither a map nor a pair list.
	InvalidRecord
)

var shapeErrorKinds = map[ShapeErrorKind]string{
	MissingColumn:           "missing column",
	ExtraColumn:             "extra column",
	ColumnsOutOfOrder:       "columns out of order",
	MissingReferenceColumns: "missing columns in the reference row",
	InvalidRecord:           "invalid table record",
}

// String returns a short description of the kind.
func (k ShapeErrorKind) String() string {
	if s, ok := shapeErrorKinds[k]; ok {
		return s
	}
	return fmt.Sprintf("ShapeErrorKind(%d)", int(k))
}

// RowShapeError reports a row that does not match the columns derived from
// the head row. It is returned by the traversal that reaches the row, never
// by classification.
//
// Columns names the offending columns: the missing or extra column, the
// expected and the actual column for ColumnsOutOfOrder, or every leftover
// column for MissingReferenceColumns. Row is the offending row.
type RowShapeError struct {
	Kind    ShapeErrorKind
	Columns []string
	Row     any
}

func (e *RowShapeError) Error() string {
	switch e.Kind {
	case MissingColumn, ExtraColumn:
		return fmt.Sprintf("%s %q in row: %v", e.Kind, e.Columns[0], e.Row)
	case ColumnsOutOfOrder:
		return fmt.Sprintf("%s: expected %q, got %q in row: %v", e.Kind, e.Columns[0], e.Columns[1], e.Row)
	case MissingReferenceColumns:
		return fmt.Sprintf("%s %q, found in row: %v", e.Kind, e.Columns, e.Row)
	default:
		return fmt.Sprintf("%s: %v", e.Kind, e.Row)
	}
}

// Unwrap makes every RowShapeError match [ErrRowShape].
func (e *RowShapeError) Unwrap() error { return ErrRowShape }

// InvariantViolation is the panic value raised when a [Reader]'s metadata
// disagrees with its sequence. It signals a bug in whatever built the
// Reader, not bad input data, and is never returned as an error.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string {
	return "tabular: invariant violated: " + e.Reason
}

func violate(format string, args ...any) {
	panic(&InvariantViolation{Reason: fmt.Sprintf(format, args...)})
}
