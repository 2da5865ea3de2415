package adminview

import (
	"encoding/csv"
	"io"

	"github.com/purnalakshitha99/location-app/internal/model"
)

// WriteCSV serializes the records as delimited text: a header row of
// the visible column names in declared order, then one row per record.
// Missing fields serialize as empty rather than failing the export;
// quoting follows RFC 4180 (internal quotes doubled).
func WriteCSV(w io.Writer, subs []*model.ContactSubmission, visible map[string]bool) error {
	cols := visibleInOrder(visible)

	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}

	row := make([]string, len(cols))
	for _, sub := range subs {
		for i, col := range cols {
			v, ok := FieldString(sub, col)
			if !ok {
				v = ""
			}
			row[i] = v
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func visibleInOrder(visible map[string]bool) []string {
	var cols []string
	for _, c := range Columns {
		if visible[c] {
			cols = append(cols, c)
		}
	}
	return cols
}
