package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caszofficial/Expense-Control/internal/apperr"
)

const (
	colDate        = "date"
	colDescription = "description"
	colAmount      = "amount"
	colCategory    = "category"
)

// Header aliases, compared after lower-casing and trimming.
var headerAliases = map[string]string{
	"date":        colDate,
	"fecha":       colDate,
	"description": colDescription,
	"descripción": colDescription,
	"descripcion": colDescription,
	"amount":      colAmount,
	"monto":       colAmount,
	"category":    colCategory,
	"categoría":   colCategory,
	"categoria":   colCategory,
}

var dateLayouts = []string{time.DateOnly, "02-01-2006", "02/01/2006"}

// Row is one parsed line of an expense CSV.
type Row struct {
	Line        int
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Category    string
}

// Parse reads an expense CSV. The first line must be a header naming the
// date, description and amount columns; category is optional. Blank lines
// are skipped. Every malformed cell is reported, keyed by line number.
func Parse(r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperr.Invalid("CSV file is empty")
	}

	if err != nil {
		return nil, malformed(err)
	}

	idx, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var (
		rows   []Row
		fields apperr.Fields
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, malformed(err)
		}

		if blank(record) {
			continue
		}

		line, _ := reader.FieldPos(0)

		row, rowFields := parseRecord(record, idx)
		if len(rowFields) > 0 {
			fields = append(fields, rowFields.Prefix(fmt.Sprintf("line %d.", line))...)
			continue
		}

		row.Line = line
		rows = append(rows, row)
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, apperr.Invalid("CSV file has no expense rows")
	}

	return rows, nil
}

func malformed(err error) error {
	return apperr.Invalid(fmt.Sprintf("Malformed CSV: %v", err))
}

func detectDelimiter(data []byte) rune {
	first, _, _ := bytes.Cut(data, []byte("\n"))
	if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		return ';'
	}

	return ','
}

func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))

	for i, col := range header {
		name, ok := headerAliases[strings.ToLower(strings.TrimSpace(col))]
		if !ok {
			continue
		}

		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	var fields apperr.Fields

	for _, required := range []string{colDate, colDescription, colAmount} {
		if _, ok := idx[required]; !ok {
			fields.Add("header", fmt.Sprintf("Missing %q column", required))
		}
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	return idx, nil
}

func parseRecord(record []string, idx map[string]int) (Row, apperr.Fields) {
	var (
		row    Row
		fields apperr.Fields
	)

	cell := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(record) {
			return ""
		}

		return strings.TrimSpace(record[i])
	}

	date, err := parseDate(cell(colDate))
	if err != nil {
		fields.Add(colDate, "Date must be YYYY-MM-DD, DD-MM-YYYY or DD/MM/YYYY")
	}

	row.Date = date

	row.Description = cell(colDescription)
	if row.Description == "" {
		fields.Add(colDescription, "Description is required")
	}

	amount, err := parseAmount(cell(colAmount))
	switch {
	case err != nil:
		fields.Add(colAmount, "Amount must be a number")
	case amount.IsZero():
		fields.Add(colAmount, "Amount must not be zero")
	}

	// Bank exports list outflows as negative amounts.
	row.Amount = amount.Abs()
	row.Category = cell(colCategory)

	return row, fields
}

func parseDate(s string) (time.Time, error) {
	var err error

	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, err
}

func blank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
