package tabular

import (
	"fmt"
	"io"

	"github.com/bjaus/tabular/seq"
)

func writePlain(w io.Writer, rows seq.Seq[Record]) error {
	return eachRecord(rows, func(rec Record) error {
		_, err := fmt.Fprintln(w, rec.String())
		return err
	})
}
