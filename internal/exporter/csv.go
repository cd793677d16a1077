package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes the tables to one CSV document. Sections are separated by
// a blank line and introduced by a single-cell title row, so the file stays
// readable in a spreadsheet without needing multiple files.
func WriteCSV(w io.Writer, tables []Table) error {
	cw := csv.NewWriter(w)

	for i, table := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := cw.Write([]string{table.Name}); err != nil {
			return fmt.Errorf("write section title %q: %w", table.Name, err)
		}
		if err := cw.Write(table.Header); err != nil {
			return fmt.Errorf("write header for %q: %w", table.Name, err)
		}
		for _, row := range table.Rows {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write row in %q: %w", table.Name, err)
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return err
		}
	}
	return nil
}
