package tabular

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Log field keys.
const (
	FieldKind    = "kind"
	FieldColumns = "columns"
	FieldCount   = "count"
	FieldRows    = "rows"
	FieldFormat  = "format"
	FieldType    = "type"
)

var logger atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	logger.Store(&nop)
}

// SetLogger installs the logger used for debug events. The default logger
// discards everything.
func SetLogger(l zerolog.Logger) {
	logger.Store(&l)
}

// Logger returns the installed logger.
func Logger() *zerolog.Logger {
	return logger.Load()
}
