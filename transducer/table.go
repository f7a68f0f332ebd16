package transducer

import (
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
)

// TableTransducer renders every record emitted by a Trigger call as a row
// of a go-pretty table, writing the final table to out on Exit. It is the
// console-summary counterpart to SQLiteTransducer: useful for the
// cmd/gpt CLI demo, not meant for high-volume runs.
type TableTransducer struct {
	*Base

	out    io.Writer
	writer table.Writer
	header []string
}

// NewTableTransducer builds a TableTransducer that writes to out once
// Exit is called.
func NewTableTransducer(id string, exhaustive bool, out io.Writer) *TableTransducer {
	t := &TableTransducer{out: out, writer: table.NewWriter()}
	t.Base = NewBase(id, exhaustive, t.appendRows)
	return t
}

// Initialize is a no-op; the table is built lazily from the first batch
// of records so its header matches whatever fields were registered.
func (t *TableTransducer) Initialize() error { return nil }

func (t *TableTransducer) appendRows(_ float64, records []Record) error {
	for _, rec := range records {
		if t.header == nil {
			t.header = fieldNames(rec)
			t.writer.AppendHeader(headerRow(t.header))
		}
		t.writer.AppendRow(dataRow(t.header, rec))
	}
	return nil
}

func fieldNames(rec Record) []string {
	names := make([]string, 0, len(rec))
	for k := range rec {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func headerRow(names []string) table.Row {
	row := make(table.Row, len(names))
	for i, n := range names {
		row[i] = n
	}
	return row
}

func dataRow(names []string, rec Record) table.Row {
	row := make(table.Row, len(names))
	for i, n := range names {
		row[i] = rec[n]
	}
	return row
}

// Exit renders the accumulated table to the configured writer.
func (t *TableTransducer) Exit() error {
	t.writer.SetOutputMirror(t.out)
	t.writer.Render()
	return nil
}
