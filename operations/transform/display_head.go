package transform

import (
	"fmt"
	"io"

	"github.com/go-sif/reshape"
	"github.com/olekukonko/tablewriter"
)

// DisplayHead renders the first n rows of a Frame as a table on w, and returns them
func DisplayHead(w io.Writer, f reshape.Frame, n int) ([]reshape.Row, error) {
	head, err := f.Limit(n)
	if err != nil {
		return nil, err
	}
	defer reshape.Release(head)
	rows, err := head.Collect()
	if err != nil {
		return nil, err
	}
	s := f.Schema()
	types := s.ColumnTypes()
	table := tablewriter.NewWriter(w)
	table.SetHeader(s.ColumnNames())
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCaption(true, fmt.Sprintf("showing %d rows", len(rows)))
	for _, row := range rows {
		values := row.Values()
		cells := make([]string, len(values))
		for i, v := range values {
			if v == nil {
				cells[i] = "null"
			} else {
				cells[i] = types[i].ToString(v)
			}
		}
		table.Append(cells)
	}
	table.Render()
	return rows, nil
}
