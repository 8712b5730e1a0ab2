package csvio

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"tally/internal/core"
)

func TestImport(t *testing.T) {
	input := strings.Join([]string{
		"date,type,category,description,amount",
		"2024-04-01,Expense,Food,Groceries,42.50",
		"2024-04-02,Income,Salary,,2500",
		"2024-04-03,transfer,Other,coerced type,10.00",
	}, "\n")

	txns, err := Import(strings.NewReader(input))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(txns) != 3 {
		t.Fatalf("got %d rows, want 3", len(txns))
	}

	first := txns[0]
	if first.Date.Format() != "2024-04-01" || first.Type != core.Expense ||
		first.Category != "Food" || first.Amount.Cents != 4250 {
		t.Errorf("first row = %+v", first)
	}
	if first.Account != core.ImportedAccount {
		t.Errorf("account = %q, want %q default", first.Account, core.ImportedAccount)
	}

	// Unknown type values coerce to Expense instead of failing the row.
	if txns[2].Type != core.Expense {
		t.Errorf("coerced type = %v, want Expense", txns[2].Type)
	}
}

func TestImportColumnOrderAndAccount(t *testing.T) {
	input := strings.Join([]string{
		"amount,account,category,Type,description,date,ignored",
		"7.50,Card,Transport,Expense,bus,2024-04-05,x",
		"1.00,,Other,Expense,,2024-04-06,y",
	}, "\n")

	txns, err := Import(strings.NewReader(input))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if txns[0].Account != "Card" {
		t.Errorf("account = %q, want Card", txns[0].Account)
	}
	if txns[1].Account != core.ImportedAccount {
		t.Errorf("blank account = %q, want %q", txns[1].Account, core.ImportedAccount)
	}
	if txns[0].Amount.Cents != 750 || txns[0].Date.Format() != "2024-04-05" {
		t.Errorf("reordered columns misread: %+v", txns[0])
	}
}

func TestImportMissingColumns(t *testing.T) {
	inputs := []string{
		"date,type,category,description", // no amount
		"",                               // empty document
		"foo,bar",
	}
	for _, in := range inputs {
		if _, err := Import(strings.NewReader(in)); !errors.Is(err, ErrMissingColumns) {
			t.Errorf("Import(%q) err = %v, want ErrMissingColumns", in, err)
		}
	}
}

func TestImportMalformedRowAborts(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{name: "bad date", row: "04/01/2024,Expense,Food,x,10.00"},
		{name: "bad amount", row: "2024-04-01,Expense,Food,x,ten"},
		{name: "negative amount", row: "2024-04-01,Expense,Food,x,-5.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "date,type,category,description,amount\n" + tt.row
			if _, err := Import(strings.NewReader(input)); err == nil {
				t.Error("expected import to abort")
			}
		})
	}
}

func TestExport(t *testing.T) {
	txns := []core.Transaction{
		{
			ID:          7,
			Date:        core.NewDate(2024, 4, 1),
			Type:        core.Expense,
			Category:    "Food",
			Description: "Groceries, weekly",
			Amount:      core.MoneyFromCents(4250),
			Account:     "Cash",
			CreatedAt:   time.Date(2024, 4, 1, 9, 30, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	if err := Export(&buf, txns); err != nil {
		t.Fatalf("export: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header plus one row", len(lines))
	}
	if lines[0] != "id,date,type,category,description,amount,account,created_at" {
		t.Errorf("header = %q", lines[0])
	}
	// The comma in the description must stay quoted.
	if !strings.Contains(lines[1], `"Groceries, weekly"`) {
		t.Errorf("row = %q, want quoted description", lines[1])
	}
	if !strings.Contains(lines[1], "42.50") {
		t.Errorf("row = %q, want two-decimal amount", lines[1])
	}
}

// Exported documents satisfy their own import contract.
func TestExportThenImport(t *testing.T) {
	src := []core.Transaction{
		{ID: 1, Date: core.NewDate(2024, 4, 1), Type: core.Income, Category: "Salary", Amount: core.MoneyFromCents(250000), Account: "Bank"},
	}
	var buf bytes.Buffer
	if err := Export(&buf, src); err != nil {
		t.Fatalf("export: %v", err)
	}
	got, err := Import(&buf)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(got) != 1 || got[0].Amount.Cents != 250000 || got[0].Account != "Bank" {
		t.Errorf("round trip = %+v", got)
	}
}
