// Package export renders task lists in the formats offered by the export command.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"

	"tasklist/internal/domain"
	"tasklist/internal/errors"
	"tasklist/internal/repository/jsonfile"
)

// Format names an export format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatPDF  Format = "pdf"
)

// Formats lists the supported formats in help order.
var Formats = []Format{FormatCSV, FormatJSON, FormatYAML, FormatPDF}

// CSVHeader is the first row of a CSV export.
var CSVHeader = []string{"Title", "Description", "Due Date", "Status"}

// ReportTitle heads the PDF report.
const ReportTitle = "Task List"

// ParseFormat matches s case-insensitively against the supported formats.
// "yml" is accepted for yaml.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "yml" {
		return FormatYAML, nil
	}
	for _, format := range Formats {
		if string(format) == name {
			return format, nil
		}
	}
	return "", errors.NewInvalidInputError("format", s,
		fmt.Sprintf("unsupported export format %q (use %s)", s, formatList()))
}

// Export writes tasks to w in the named format.
func Export(w io.Writer, format string, tasks []domain.Task) error {
	parsed, err := ParseFormat(format)
	if err != nil {
		return err
	}

	switch parsed {
	case FormatCSV:
		err = writeCSV(w, tasks)
	case FormatJSON:
		err = writeJSON(w, tasks)
	case FormatYAML:
		err = writeYAML(w, tasks)
	case FormatPDF:
		err = writePDF(w, tasks)
	}
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeSave, fmt.Sprintf("failed to export %s", parsed))
	}
	return nil
}

func writeCSV(w io.Writer, tasks []domain.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, task := range tasks {
		row := []string{task.Title, task.Description, task.DueDateString(), task.StatusLabel()}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, tasks []domain.Task) error {
	data, err := jsonfile.Encode(tasks)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func writeYAML(w io.Writer, tasks []domain.Task) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(domain.SerializeAll(tasks)); err != nil {
		return err
	}
	return encoder.Close()
}

// pdfColumn is one column of the PDF table; widths are in millimetres.
type pdfColumn struct {
	header string
	width  float64
	value  func(position int, task domain.Task) string
}

var pdfColumns = []pdfColumn{
	{"#", 10, func(position int, _ domain.Task) string { return strconv.Itoa(position) }},
	{"Title", 55, func(_ int, task domain.Task) string { return domain.Truncate(task.Title, 32) }},
	{"Description", 70, func(_ int, task domain.Task) string { return domain.Truncate(task.Description, 42) }},
	{"Due Date", 25, func(_ int, task domain.Task) string { return task.DueDateString() }},
	{"Status", 30, func(_ int, task domain.Task) string { return task.StatusLabel() }},
}

func writePDF(w io.Writer, tasks []domain.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(ReportTitle, true)
	// Core fonts are cp1252; translate so accented titles render.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, ReportTitle)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, column := range pdfColumns {
		pdf.CellFormat(column.width, 7, column.header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for i, task := range tasks {
		for _, column := range pdfColumns {
			pdf.CellFormat(column.width, 6, tr(column.value(i+1, task)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(40, 6, fmt.Sprintf("%d tasks", len(tasks)))

	return pdf.Output(w)
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, format := range Formats {
		names[i] = string(format)
	}
	return strings.Join(names, ", ")
}
