// Package fmtutil pretty-prints component values and solved linear
// forms; no other package in this module imports it. FormatValueFactor is kept
// verbatim from toy-spice/pkg/util's SI-prefix formatter; the
// frequency/phase formatters it shipped alongside are AC-analysis
// output and have no place in a system with no AC analysis (see
// DESIGN.md), so this package adds FormatLinForm in their place.
package fmtutil

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/msdsl-go/pwlc/pkg/caseio"
)

// FormatValueFactor renders value with an SI prefix scaled for unit,
// e.g. FormatValueFactor(1e-3, "H") -> "1.000 mH".
func FormatValueFactor(value float64, unit string) string {
	absValue := math.Abs(value)
	switch {
	case absValue >= 1:
		return fmt.Sprintf("%.3f %s", value, unit)
	case absValue >= 1e-3:
		return fmt.Sprintf("%.3f m%s", value*1e3, unit)
	case absValue >= 1e-6:
		return fmt.Sprintf("%.3f u%s", value*1e6, unit)
	case absValue >= 1e-9:
		return fmt.Sprintf("%.3f n%s", value*1e9, unit)
	case absValue >= 1e-12:
		return fmt.Sprintf("%.3f p%s", value*1e12, unit)
	default:
		return fmt.Sprintf("%.3e %s", value, unit)
	}
}

// FormatLinForm renders a solved linear form as "0.900*v_c + 0.100*u",
// with variable names sorted for deterministic output, and "0" for the
// zero form.
func FormatLinForm(lf caseio.LinForm) string {
	names := make([]string, 0, len(lf.Vars))
	for name := range lf.Vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var terms []string
	for _, name := range names {
		terms = append(terms, fmt.Sprintf("%.6g*%s", lf.Vars[name], name))
	}
	if lf.Const != 0 || len(terms) == 0 {
		terms = append(terms, fmt.Sprintf("%.6g", lf.Const))
	}

	return strings.Join(terms, " + ")
}
