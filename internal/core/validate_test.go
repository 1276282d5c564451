package core

import (
	"reflect"
	"strings"
	"testing"
)

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name        string
		description string
		amount      string
		date        string
		want        FieldErrors
	}{
		{
			name:        "all valid",
			description: "Coffee",
			amount:      "4.50",
			date:        "2026-02-23",
			want:        nil,
		},
		{
			name:        "description at the length limit",
			description: strings.Repeat("x", 100),
			amount:      "1",
			date:        "2026-01-01",
			want:        nil,
		},
		{
			name:        "description over the length limit",
			description: strings.Repeat("x", 101),
			amount:      "1",
			date:        "2026-01-01",
			want:        FieldErrors{FieldDescription},
		},
		{
			name:        "multi-byte description at the length limit",
			description: strings.Repeat("é", 100),
			amount:      "1",
			date:        "2026-01-01",
			want:        nil,
		},
		{
			name:        "multi-byte description over the length limit",
			description: strings.Repeat("é", 101),
			amount:      "1",
			date:        "2026-01-01",
			want:        FieldErrors{FieldDescription},
		},
		{
			name:        "empty description",
			description: "  ",
			amount:      "1",
			date:        "2026-01-01",
			want:        FieldErrors{FieldDescription},
		},
		{
			name:        "zero amount",
			description: "Coffee",
			amount:      "0",
			date:        "2026-01-01",
			want:        FieldErrors{FieldAmount},
		},
		{
			name:        "negative amount",
			description: "Coffee",
			amount:      "-3",
			date:        "2026-01-01",
			want:        FieldErrors{FieldAmount},
		},
		{
			name:        "empty date",
			description: "Coffee",
			amount:      "1",
			date:        "",
			want:        FieldErrors{FieldDate},
		},
		{
			name:        "malformed date",
			description: "Coffee",
			amount:      "1",
			date:        "not-a-date",
			want:        FieldErrors{FieldDate},
		},
		{
			name:        "every field invalid at once",
			description: "",
			amount:      "abc",
			date:        "",
			want:        FieldErrors{FieldDescription, FieldAmount, FieldDate},
		},
		{
			name:        "two fields invalid, no short circuit",
			description: "",
			amount:      "1",
			date:        "bad",
			want:        FieldErrors{FieldDescription, FieldDate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateInput(tt.description, tt.amount, tt.date)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ValidateInput() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldErrorsHelpers(t *testing.T) {
	var ok FieldErrors
	if !ok.OK() {
		t.Error("empty FieldErrors should be OK")
	}

	failed := FieldErrors{FieldAmount, FieldDate}
	if failed.OK() {
		t.Error("non-empty FieldErrors should not be OK")
	}
	if !failed.Has(FieldAmount) {
		t.Error("Has(amount) should be true")
	}
	if failed.Has(FieldDescription) {
		t.Error("Has(description) should be false")
	}
	if failed.Error() != "invalid fields: amount, date" {
		t.Errorf("Error() = %q", failed.Error())
	}
}
