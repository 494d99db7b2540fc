package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "centavo/internal/encoding"
	"centavo/internal/transaction"
)

// Parser reads generic statement CSV exports. The file must carry a header
// row with Date, Payee, and Amount columns (any order, case-insensitive);
// a Notes column is optional. Amounts are decimal strings, either with a
// dot or a European comma separator.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

var dateLayouts = []string{
	time.DateOnly,
	"02-01-2006",
	"02/01/2006",
}

func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	cols, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	params := make([]transaction.CreateParams, 0, len(rows)-1)

	for i, row := range rows[1:] {
		line := i + 2

		if isBlank(row) {
			continue
		}

		param, err := parseRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		params = append(params, param)
	}

	return params, nil
}

type columns struct {
	date   int
	payee  int
	amount int
	notes  int // -1 when absent
}

func mapHeader(header []string) (columns, error) {
	cols := columns{date: -1, payee: -1, amount: -1, notes: -1}

	for i, cell := range header {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "date":
			cols.date = i
		case "payee":
			cols.payee = i
		case "amount":
			cols.amount = i
		case "notes":
			cols.notes = i
		}
	}

	if cols.date == -1 || cols.payee == -1 || cols.amount == -1 {
		return cols, fmt.Errorf("header must contain Date, Payee, and Amount columns")
	}

	return cols, nil
}

func parseRow(cols columns, row []string) (transaction.CreateParams, error) {
	var p transaction.CreateParams

	if len(row) <= cols.date || len(row) <= cols.payee || len(row) <= cols.amount {
		return p, fmt.Errorf("too few columns")
	}

	date, err := parseDate(strings.TrimSpace(row[cols.date]))
	if err != nil {
		return p, err
	}

	payee := strings.TrimSpace(row[cols.payee])
	if payee == "" {
		return p, fmt.Errorf("payee is empty")
	}

	amount, err := parseAmount(strings.TrimSpace(row[cols.amount]))
	if err != nil {
		return p, err
	}

	p = transaction.CreateParams{
		Amount: amount,
		Payee:  payee,
		Date:   date,
	}

	if cols.notes != -1 && len(row) > cols.notes {
		if notes := strings.TrimSpace(row[cols.notes]); notes != "" {
			p.Notes = &notes
		}
	}

	return p, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
