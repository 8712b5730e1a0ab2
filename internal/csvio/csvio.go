// Package csvio moves transactions across the CSV boundary: importing
// externally supplied rows and exporting filtered sets as flat rows.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tally/internal/core"
)

// ErrMissingColumns is returned when the import header lacks one of the
// required transaction fields. The whole import is rejected.
var ErrMissingColumns = errors.New("csv missing required columns: date, type, category, description, amount")

var requiredColumns = []string{"date", "type", "category", "description", "amount"}

// Import parses a whole CSV document into transactions. The header must
// name every required column (any order, extras ignored); an optional
// account column overrides the "Imported" default. Unrecognized type
// values are coerced to Expense rather than rejected, but a malformed
// date or amount aborts the entire import.
func Import(r io.Reader) ([]core.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingColumns
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, ErrMissingColumns
		}
	}
	accountCol, hasAccount := cols["account"]

	field := func(record []string, col int) string {
		if col >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[col])
	}

	var txns []core.Transaction
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		line++

		date, err := core.ParseDate(field(record, cols["date"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		amount, err := core.ParseMoney(field(record, cols["amount"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		account := core.ImportedAccount
		if hasAccount {
			if a := field(record, accountCol); a != "" {
				account = a
			}
		}

		txns = append(txns, core.Transaction{
			Date:        date,
			Type:        core.CoerceTxType(field(record, cols["type"])),
			Category:    field(record, cols["category"]),
			Description: field(record, cols["description"]),
			Amount:      amount,
			Account:     account,
		})
	}

	return txns, nil
}

// Export writes transactions as flat CSV rows, amounts with two
// decimals, dates in ISO form.
func Export(w io.Writer, txns []core.Transaction) error {
	cw := csv.NewWriter(w)

	header := []string{"id", "date", "type", "category", "description", "amount", "account", "created_at"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, t := range txns {
		createdAt := ""
		if !t.CreatedAt.IsZero() {
			createdAt = t.CreatedAt.Format("2006-01-02 15:04:05")
		}
		record := []string{
			strconv.FormatInt(t.ID, 10),
			t.Date.Format(),
			string(t.Type),
			t.Category,
			t.Description,
			t.Amount.String(),
			t.Account,
			createdAt,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
