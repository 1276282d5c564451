package core

import (
	"strings"
	"unicode/utf8"
)

// Field names reported on validation failure. FieldType is reported by
// the transport layer, which maps the type selection before the
// validator runs.
const (
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldDate        = "date"
	FieldType        = "type"
)

// FieldErrors lists the input fields that failed validation, in input
// order. An empty slice means the input is valid. It is a recoverable
// condition, never a fatal one: callers retry with corrected input.
type FieldErrors []string

func (e FieldErrors) OK() bool {
	return len(e) == 0
}

func (e FieldErrors) Has(field string) bool {
	for _, f := range e {
		if f == field {
			return true
		}
	}
	return false
}

func (e FieldErrors) Error() string {
	if e.OK() {
		return ""
	}
	return "invalid fields: " + strings.Join(e, ", ")
}

// ValidateInput checks the raw input tuple against the per-field rules.
// All fields are checked and all failures reported together; there is
// no short-circuiting, so a form can mark every broken field at once.
//
// The type field is not validated here: the input surface offers a
// one-of-two selection, and the transport layer maps it before the
// validator runs.
func ValidateInput(description, amount, date string) FieldErrors {
	var failed FieldErrors

	desc := strings.TrimSpace(description)
	if desc == "" || utf8.RuneCountInString(desc) > MaxDescriptionLen {
		failed = append(failed, FieldDescription)
	}

	if _, err := ParseAmountToCents(amount); err != nil {
		failed = append(failed, FieldAmount)
	}

	d := strings.TrimSpace(date)
	if d == "" {
		failed = append(failed, FieldDate)
	} else if _, err := ParseDate(d); err != nil {
		failed = append(failed, FieldDate)
	}

	return failed
}
