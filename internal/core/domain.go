package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

// MaxDescriptionLen is the post-trim description limit, counted in
// runes so multi-byte text is measured the same as ASCII.
const MaxDescriptionLen = 100

type (
	// TxType is the direction of a transaction. The sign of the amount is
	// carried here, never by a negative Money value.
	TxType string

	// Date is a calendar date without a time component, held at UTC midnight.
	// The zero value means "no date".
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a single ledger record. It is immutable once created:
	// the only mutations a store permits are append and remove-by-id.
	Transaction struct {
		ID          int64
		Description string
		Amount      Money
		Type        TxType
		Date        Date
		CreatedAt   time.Time
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long")
	ErrEmptyDate          = errors.New("empty date")
	ErrInvalidType        = errors.New("invalid transaction type")
)

// ParseTxType maps the raw one-of-two selection to a TxType.
func ParseTxType(s string) (TxType, error) {
	switch TxType(strings.TrimSpace(strings.ToLower(s))) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t.UTC()}, nil
}

// IsEmpty reports whether the date is absent.
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// ISO returns the date as YYYY-MM-DD, or "" for an absent date.
func (d Date) ISO() string {
	if d.IsEmpty() {
		return ""
	}
	return d.Format("2006-01-02")
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t TxType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidType, string(t))
	}
}

// Validate checks the record-level invariants. Input-surface validation
// (raw strings) is ValidateInput's job; this is the last guard before a
// store accepts the record.
func (t Transaction) Validate() error {
	desc := strings.TrimSpace(t.Description)
	if desc == "" {
		return ErrEmptyDescription
	}
	if utf8.RuneCountInString(desc) > MaxDescriptionLen {
		return ErrDescriptionTooLong
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if t.Date.IsEmpty() {
		return ErrEmptyDate
	}
	return nil
}
