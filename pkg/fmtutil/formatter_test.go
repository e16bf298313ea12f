package fmtutil

import (
	"testing"

	"github.com/msdsl-go/pwlc/pkg/caseio"
)

func TestFormatValueFactor(t *testing.T) {
	cases := []struct {
		value float64
		unit  string
		want  string
	}{
		{1.5, "H", "1.500 H"},
		{1e-3, "F", "1.000 mF"},
		{2.5e-6, "F", "2.500 uF"},
	}
	for _, tc := range cases {
		if got := FormatValueFactor(tc.value, tc.unit); got != tc.want {
			t.Errorf("FormatValueFactor(%v, %q) = %q, want %q", tc.value, tc.unit, got, tc.want)
		}
	}
}

func TestFormatLinFormSortsVars(t *testing.T) {
	lf := caseio.LinForm{Vars: map[string]float64{"u": 0.1, "v_c": 0.9}, Const: 0}
	got := FormatLinForm(lf)
	want := "0.1*u + 0.9*v_c"
	if got != want {
		t.Errorf("FormatLinForm = %q, want %q", got, want)
	}
}

func TestFormatLinFormZero(t *testing.T) {
	lf := caseio.LinForm{Vars: map[string]float64{}, Const: 0}
	if got := FormatLinForm(lf); got != "0" {
		t.Errorf("FormatLinForm(zero) = %q, want \"0\"", got)
	}
}
