package report

import (
	"encoding/csv"
	"io"
)

// CSVContentType is the response content type for CSV exports.
const CSVContentType = "text/csv"

// WriteCSV writes the header row followed by one record per row, in order.
// PRE: w is writable
// POST: Body uses standard CSV quoting with LF line endings
func WriteCSV(w io.Writer, rows []UserRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.Fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
