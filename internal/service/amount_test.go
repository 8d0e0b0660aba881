package service

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		err  error
	}{
		{raw: "10.50", want: "10.5"},
		{raw: " 8 ", want: "8"},
		{raw: "0.01", want: "0.01"},
		{raw: "10.500", want: "10.5"},
		{raw: "0.004", err: ErrAmountPrecision},
		{raw: "10.505", err: ErrAmountPrecision},
		{raw: "0", err: ErrAmountInvalid},
		{raw: "0.00", err: ErrAmountInvalid},
		{raw: "-1", err: ErrAmountInvalid},
		{raw: "ten", err: ErrAmountInvalid},
		{raw: "", err: ErrAmountInvalid},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.raw)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Fatalf("ParseAmount(%q) want %v got %v", tc.raw, tc.err, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseAmount(%q) unexpected error: %v", tc.raw, err)
		}
		if got.String() != tc.want {
			t.Fatalf("ParseAmount(%q) want %s got %s", tc.raw, tc.want, got.String())
		}
	}
}
