package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"gopkg.in/yaml.v3"

	"github.com/kamusis/credscan/internal/datasource"
	"github.com/kamusis/credscan/internal/record"
)

// Console output formats.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatTSV   = "tsv"
	FormatYAML  = "yaml"
)

// NormalizeFormat falls back to FormatTable for unknown values.
func NormalizeFormat(format string) string {
	switch format {
	case FormatTable, FormatCSV, FormatTSV, FormatYAML:
		return format
	default:
		return FormatTable
	}
}

// Console prints records for a human reader. All presentation choices are
// explicit fields; nothing here touches process-wide output state.
type Console struct {
	Out    io.Writer
	Format string
	// Plain restricts output to ASCII: box drawing and check marks are replaced.
	Plain bool
	Color bool
}

// NewConsole enables colour only when out is a terminal.
func NewConsole(out io.Writer, plain bool) *Console {
	return &Console{
		Out:    out,
		Format: FormatTable,
		Plain:  plain,
		Color:  IsTerminal(out),
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *Console) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Console) paint(attrs ...color.Attribute) *color.Color {
	p := color.New(attrs...)
	if c.Color {
		p.EnableColor()
	} else {
		p.DisableColor()
	}
	return p
}

// Records writes records in the configured format. columns is used for the
// header when records is empty.
func (c *Console) Records(records []record.Reportable, columns []string) error {
	if len(records) > 0 {
		columns = records[0].Columns()
	}
	switch NormalizeFormat(c.Format) {
	case FormatCSV:
		return c.delimited(columns, records, ',')
	case FormatTSV:
		return c.delimited(columns, records, '\t')
	case FormatYAML:
		return c.yaml(records)
	default:
		return c.table(columns, records)
	}
}

func (c *Console) table(columns []string, records []record.Reportable) error {
	table := tablewriter.NewWriter(c.out())
	// Keep header labels as written (e.g. "jdbc.URL").
	table.Options(tablewriter.WithConfig(tablewriter.Config{
		Header: tw.CellConfig{
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
	}))
	if c.Plain {
		table.Options(tablewriter.WithSymbols(&tw.SymbolASCII{}))
	}

	headers := make([]any, 0, len(columns))
	for _, col := range columns {
		headers = append(headers, col)
	}
	table.Header(headers...)

	for _, r := range records {
		values := r.Values()
		row := make([]any, 0, len(values))
		for _, v := range values {
			row = append(row, v)
		}
		if err := table.Append(row...); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}
	return table.Render()
}

func (c *Console) delimited(columns []string, records []record.Reportable, comma rune) error {
	w := csv.NewWriter(c.out())
	w.Comma = comma
	if err := w.Write(columns); err != nil {
		return err
	}
	for _, r := range records {
		if err := w.Write(r.Values()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (c *Console) yaml(records []record.Reportable) error {
	enc := yaml.NewEncoder(c.out())
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

const verifyRule = 120

// Verify prints one line per expected JNDI name, marking whether a record
// with that exact name was found. It returns the names that were missing.
func (c *Console) Verify(records []record.TreePatternRecord, expected []string) []string {
	w := c.out()
	found, missing := "✓", "✗"
	if c.Plain {
		found, missing = "[OK]", "[MISSING]"
	}
	ok := c.paint(color.FgGreen)
	bad := c.paint(color.FgRed)

	fmt.Fprintln(w)
	fmt.Fprintln(w, c.paint(color.Bold).Sprint("Critical datasource check:"))
	fmt.Fprintln(w, strings.Repeat("-", verifyRule))

	var notFound []string
	for _, name := range expected {
		r, exists := datasource.Find(records, name)
		if exists {
			fmt.Fprintf(w, "%s %-50s %-15s %-50s\n", ok.Sprint(found), name, r.Username, r.URL)
			continue
		}
		notFound = append(notFound, name)
		fmt.Fprintf(w, "%s %s not found\n", bad.Sprint(missing), name)
	}
	return notFound
}

// Summary prints the closing line for a run.
func (c *Console) Summary(count int, noun string) {
	w := c.out()
	if count == 0 {
		fmt.Fprintf(w, "\nNo %s found.\n", noun)
		return
	}
	fmt.Fprintf(w, "\nFound %d %s.\n", count, noun)
}

// Written announces a generated report file.
func (c *Console) Written(path string) {
	fmt.Fprintf(c.out(), "Report written: %s\n", path)
}

