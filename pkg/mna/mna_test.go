package mna

import (
	"testing"

	"github.com/msdsl-go/pwlc/pkg/linalg"
	"github.com/msdsl-go/pwlc/pkg/symtab"
)

func TestAddCurrentSignsAndGroundDropped(t *testing.T) {
	const p, n, i symtab.Symbol = 1, 2, 3

	a := New()
	a.AddCurrent(p, n, linalg.Sym(i))
	a.AddCurrent(n, symtab.Ground, linalg.Sym(i)) // current leaving n into ground

	eqns := a.Equations()
	if len(eqns) != 2 {
		t.Fatalf("Equations() returned %d equations, want 2 (ground dropped)", len(eqns))
	}

	// kcl[p] = -i
	if eqns[0].Coeff(i) != -1 {
		t.Errorf("kcl[p] coeff on i = %v, want -1", eqns[0].Coeff(i))
	}
	// kcl[n] = i (from first AddCurrent) - i (flowing out to ground) = 0
	if eqns[1].Coeff(i) != 0 {
		t.Errorf("kcl[n] coeff on i = %v, want 0", eqns[1].Coeff(i))
	}
}

func TestSetEqualAppendsAux(t *testing.T) {
	const v, r, i symtab.Symbol = 1, 2, 3

	a := New()
	a.SetEqual(linalg.Sym(v), linalg.Scaled(i, 4))

	eqns := a.Equations()
	if len(eqns) != 1 {
		t.Fatalf("got %d equations, want 1", len(eqns))
	}
	if eqns[0].Coeff(v) != 1 || eqns[0].Coeff(i) != -4 {
		t.Errorf("eqns[0] = %+v, want v - 4*i = 0", eqns[0])
	}
	_ = r
}

func TestEquationCountMatchesNodesMinusOnePlusAux(t *testing.T) {
	const n1, n2, i symtab.Symbol = 1, 2, 3

	a := New()
	a.AddCurrent(n1, n2, linalg.Sym(i))
	a.SetEqual(linalg.Sym(i), linalg.ConstExpr(1))

	// Two distinct non-ground nodes touched, plus one aux equation.
	if got, want := len(a.Equations()), 3; got != want {
		t.Errorf("Equations() len = %d, want %d", got, want)
	}
}
