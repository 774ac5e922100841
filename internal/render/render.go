// Package render writes a truth table display model to a terminal or file.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"dmath-truthtable/internal/truthtable"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Formats lists the accepted output formats.
var Formats = []string{"table", "json", "csv", "markdown"}

// ValidFormat reports whether Write accepts format.
func ValidFormat(format string) bool {
	switch format {
	case "", "table", "json", "csv", "md", "markdown":
		return true
	}
	return false
}

// Write renders m in the given format.
func Write(w io.Writer, m *truthtable.DisplayModel, format string) error {
	switch format {
	case "table", "":
		return Table(w, m)
	case "json":
		return JSON(w, m)
	case "csv":
		return CSV(w, m)
	case "md", "markdown":
		return Markdown(w, m)
	default:
		return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// Table draws m as a box table followed by a row count.
func Table(w io.Writer, m *truthtable.DisplayModel) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(m.Headers))
	configs := make([]table.ColumnConfig, len(m.Headers))
	for i, h := range m.Headers {
		header[i] = h
		configs[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignCenter, AlignHeader: text.AlignCenter}
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(configs)

	for i := range m.Rows {
		t.AppendRow(formatCells(m.Cells(i)))
	}

	t.Render()
	_, err := fmt.Fprintf(w, "(%d rows)\n", len(m.Rows))
	return err
}

// JSON writes m as an indented {headers, rows} object.
func JSON(w io.Writer, m *truthtable.DisplayModel) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// CSV writes a header line then one record per row.
func CSV(w io.Writer, m *truthtable.DisplayModel) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(m.Headers); err != nil {
		return err
	}
	for i := range m.Rows {
		cells := m.Cells(i)
		record := make([]string, len(cells))
		for j, c := range cells {
			record[j] = truthtable.FormatValue(c)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Markdown writes m as a GitHub-flavored Markdown table.
func Markdown(w io.Writer, m *truthtable.DisplayModel) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := make(table.Row, len(m.Headers))
	for i, h := range m.Headers {
		header[i] = h
	}
	t.AppendHeader(header)

	for i := range m.Rows {
		t.AppendRow(formatCells(m.Cells(i)))
	}

	t.RenderMarkdown()
	return nil
}

func formatCells(cells []any) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = truthtable.FormatValue(c)
	}
	return row
}
