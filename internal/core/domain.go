package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Expense TxType = "Expense"
	Income  TxType = "Income"
)

const (
	IntervalMonthly Interval = "monthly"
)

// Account labels assigned when the user did not pick one.
const (
	DefaultAccount   = "Cash"
	RecurringAccount = "Recurring"
	ImportedAccount  = "Imported"
)

type (
	// TxType is the direction of a transaction: money out or money in.
	TxType string

	// Interval is a recurrence period. Only IntervalMonthly is understood
	// by the poster; other values are stored as-is and post at most one
	// occurrence per pass.
	Interval string

	// Date is a calendar date with no time-of-day component. The wrapped
	// time.Time is always midnight UTC.
	Date struct {
		time.Time
	}

	Transaction struct {
		ID          int64
		Date        Date
		Type        TxType
		Category    string
		Description string
		Amount      Money
		Account     string
		CreatedAt   time.Time
	}

	// Budget is a spending target for one (month, category) pair.
	// Month is a "YYYY-MM" key as produced by MonthKey.
	Budget struct {
		ID       int64
		Month    string
		Category string
		Amount   Money
	}

	// RecurringRule is a template the poster materializes into
	// transactions. NextDate is the earliest unposted occurrence.
	RecurringRule struct {
		ID          int64
		Type        TxType
		Category    string
		Description string
		Amount      Money
		Interval    Interval
		NextDate    Date
	}
)

var (
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidMonth  = errors.New("invalid month key")
	ErrEmptyCategory = errors.New("empty category")
)

// ParseTxType validates a transaction type string.
func ParseTxType(s string) (TxType, error) {
	switch TxType(s) {
	case Expense, Income:
		return TxType(s), nil
	}
	return "", ErrInvalidType
}

// CoerceTxType maps unrecognized type values to Expense. CSV import uses
// this instead of rejecting rows with unknown types.
func CoerceTxType(s string) TxType {
	if t, err := ParseTxType(s); err == nil {
		return t
	}
	return Expense
}

func (t TxType) Validate() error {
	_, err := ParseTxType(string(t))
	return err
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// Today returns the current calendar date.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses an ISO "YYYY-MM-DD" date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// Format returns the ISO "YYYY-MM-DD" form, the representation used
// everywhere dates are persisted or serialized.
func (d Date) Format() string {
	return d.Time.Format("2006-01-02")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Equal reports whether d and other are the same calendar date.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (b Budget) Validate() error {
	if !ValidMonthKey(b.Month) {
		return ErrInvalidMonth
	}
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (r RecurringRule) Validate() error {
	if err := r.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if r.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	return r.NextDate.Validate()
}
