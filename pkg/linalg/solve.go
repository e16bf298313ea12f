package linalg

import (
	"fmt"

	"github.com/msdsl-go/pwlc/pkg/symtab"
	"gonum.org/v1/gonum/mat"
)

// zeroTolerance matches the Kirchhoff-check tolerance spec.md's
// TESTABLE PROPERTIES section uses for "zero to within tolerance".
const zeroTolerance = 1e-9

// DegreeMismatchError reports that the number of equations does not
// match the number of unknowns handed to Solve — spec.md's fatal
// DegreeMismatch condition, meaning a modeling bug in the component
// library rather than a degenerate circuit.
type DegreeMismatchError struct {
	Equations int
	Unknowns  int
}

func (e *DegreeMismatchError) Error() string {
	return fmt.Sprintf("linalg: %d equations for %d unknowns", e.Equations, e.Unknowns)
}

// Solve eliminates unknowns from equations (each implicitly "= 0"),
// treating every symbol that appears in equations but is not in
// unknowns as a free parameter of the result. It returns, for every
// unknown, an Expr over those free parameters — or ok=false if the
// system has no unique solution (singular for this unknown set).
//
// This is the one linear solve that stands in for msdsl's sympy.solve
// call: because every equation is linear once a mode assignment is
// fixed, the whole basis of free parameters can be eliminated against
// in a single dense LU factorization instead of one symbolic solve per
// free variable.
func Solve(equations []Expr, unknowns []symtab.Symbol) (map[symtab.Symbol]Expr, bool, error) {
	n := len(unknowns)
	if len(equations) != n {
		return nil, false, &DegreeMismatchError{Equations: len(equations), Unknowns: n}
	}

	unknownIdx := make(map[symtab.Symbol]int, n)
	for i, u := range unknowns {
		unknownIdx[u] = i
	}

	// Collect free symbols: anything referenced in an equation that
	// isn't one of the unknowns.
	freeIdx := map[symtab.Symbol]int{}
	var free []symtab.Symbol
	for _, eq := range equations {
		for s, c := range eq.Terms {
			if c == 0 {
				continue
			}
			if _, isUnknown := unknownIdx[s]; isUnknown {
				continue
			}
			if _, seen := freeIdx[s]; !seen {
				freeIdx[s] = len(free)
				free = append(free, s)
			}
		}
	}

	// A*unknowns = -B, B's columns are [free..., const].
	numCols := len(free) + 1
	aData := make([]float64, n*n)
	bData := make([]float64, n*numCols)

	for i, eq := range equations {
		for s, c := range eq.Terms {
			if c == 0 {
				continue
			}
			if j, isUnknown := unknownIdx[s]; isUnknown {
				aData[i*n+j] = c
			} else {
				j := freeIdx[s]
				bData[i*numCols+j] = -c
			}
		}
		bData[i*numCols+len(free)] = -eq.Const
	}

	if n == 0 {
		return map[symtab.Symbol]Expr{}, true, nil
	}

	a := mat.NewDense(n, n, aData)
	b := mat.NewDense(n, numCols, bData)

	var x mat.Dense
	if err := x.Solve(a, b); err != nil {
		return nil, false, nil
	}

	result := make(map[symtab.Symbol]Expr, n)
	for i, u := range unknowns {
		terms := make(map[symtab.Symbol]float64, len(free))
		for j, f := range free {
			v := x.At(i, j)
			if v > zeroTolerance || v < -zeroTolerance {
				terms[f] = v
			}
		}
		result[u] = Expr{Terms: terms, Const: x.At(i, len(free))}
	}

	return result, true, nil
}
