package tabular

import (
	"fmt"
	"io"
	"text/template"

	"github.com/bjaus/tabular/seq"
)

func writeGoTemplate(w io.Writer, tmplStr string, rows seq.Seq[Record]) error {
	tmpl, err := template.New("").Parse(tmplStr)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTemplate, err)
	}
	return eachRecord(rows, func(rec Record) error {
		if err := tmpl.Execute(w, rec.Map()); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	})
}
