package export

import (
	"encoding/csv"
	"io"
)

// WriteCSV writes the header labels and rows with CRLF line endings.
// Fields containing commas, quotes or newlines are quoted.
func WriteCSV(w io.Writer, doc Document) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(doc.Headers); err != nil {
		return err
	}
	if err := cw.WriteAll(doc.Rows); err != nil {
		return err
	}
	return cw.Error()
}
