package service

import (
	"errors"
	"math"
	"testing"
)

func TestValidateTimeoutExpress(t *testing.T) {
	cases := []struct {
		expr string
		want error
	}{
		{expr: "15m"},
		{expr: "2h"},
		{expr: "3d"},
		{expr: "1c"},
		{expr: "2c"},
		{expr: "120m"},
		{expr: "0m", want: ErrNonPositiveValue},
		{expr: "-5h", want: ErrNonPositiveValue},
		{expr: "0c", want: ErrNonPositiveValue},
		{expr: "abc", want: ErrInvalidFormat},
		{expr: "15", want: ErrInvalidFormat},
		{expr: "15s", want: ErrInvalidFormat},
		{expr: "", want: ErrInvalidFormat},
		{expr: "m", want: ErrInvalidFormat},
		{expr: "1.5h", want: ErrInvalidFormat},
	}
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			err := ValidateTimeoutExpress(tc.expr)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("expected %q valid, got %v", tc.expr, err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %q error %v, got %v", tc.expr, tc.want, err)
			}
		})
	}
}

func TestValidateTimeoutExpressReasons(t *testing.T) {
	if err := ValidateTimeoutExpress("15s"); !errors.Is(err, ErrTimeoutUnit) {
		t.Fatalf("expected unit error, got %v", err)
	}
	if err := ValidateTimeoutExpress("abc"); !errors.Is(err, ErrTimeoutNotInteger) {
		t.Fatalf("expected integer error, got %v", err)
	}
	if err := ValidateTimeoutExpress("99999999999999999999m"); err != nil {
		t.Fatalf("huge positive value should pass syntax check, got %v", err)
	}
	if err := ValidateTimeoutExpress("-99999999999999999999m"); !errors.Is(err, ErrNonPositiveValue) {
		t.Fatalf("huge negative value should be non-positive, got %v", err)
	}
}

func TestTimeoutSeconds(t *testing.T) {
	cases := map[string]int64{
		"15m": 900,
		"2h":  7200,
		"1d":  86400,
		"1c":  0,
	}
	for expr, want := range cases {
		got, err := TimeoutSeconds(expr)
		if err != nil {
			t.Fatalf("TimeoutSeconds(%s) failed: %v", expr, err)
		}
		if got != want {
			t.Fatalf("TimeoutSeconds(%s) want %d got %d", expr, want, got)
		}
	}
	if got, _ := TimeoutSeconds("99999999999999999999d"); got != math.MaxInt64 {
		t.Fatalf("overflow should saturate, got %d", got)
	}
	if _, err := TimeoutSeconds("0h"); !errors.Is(err, ErrNonPositiveValue) {
		t.Fatalf("expected non-positive error, got %v", err)
	}
}
