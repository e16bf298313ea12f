package linalg

import (
	"testing"

	"github.com/msdsl-go/pwlc/pkg/symtab"
)

func TestSolveLinearInFreeSymbol(t *testing.T) {
	const x, u symtab.Symbol = 10, 11

	// x - u = 0  =>  x = u
	eqns := []Expr{Sym(x).Sub(Sym(u))}

	soln, ok, err := Solve(eqns, []symtab.Symbol{x})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a solution")
	}

	got := soln[x]
	if got.Coeff(u) != 1 || got.Const != 0 {
		t.Errorf("soln[x] = %+v, want {u: 1} const 0", got)
	}
}

func TestSolveResistorDivider(t *testing.T) {
	// Two unknowns i1 (shared branch current) and vout, one free
	// symbol vin: vin - vout = 1*i1 (R1=1), vout = 1*i1 (R2=1, to ground).
	const i1, vout, vin symtab.Symbol = 20, 21, 22

	eqns := []Expr{
		Sym(vin).Sub(Sym(vout)).Sub(Sym(i1)),
		Sym(vout).Sub(Sym(i1)),
	}

	soln, ok, err := Solve(eqns, []symtab.Symbol{i1, vout})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a solution")
	}

	vo := soln[vout]
	if got := vo.Coeff(vin); got < 0.49 || got > 0.51 {
		t.Errorf("vout coefficient on vin = %v, want 0.5", got)
	}
}

func TestSolveSingularReturnsNotOK(t *testing.T) {
	const x, y symtab.Symbol = 30, 31

	// Two equations that don't pin down both unknowns independently.
	eqns := []Expr{
		Sym(x).Add(Sym(y)),
		Sym(x).Add(Sym(y)),
	}

	_, ok, err := Solve(eqns, []symtab.Symbol{x, y})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected singular system to report ok=false")
	}
}

func TestSolveDegreeMismatch(t *testing.T) {
	const x, y symtab.Symbol = 40, 41

	eqns := []Expr{Sym(x)}

	_, _, err := Solve(eqns, []symtab.Symbol{x, y})
	if err == nil {
		t.Fatal("expected DegreeMismatchError")
	}
	if _, ok := err.(*DegreeMismatchError); !ok {
		t.Errorf("got error type %T, want *DegreeMismatchError", err)
	}
}

func TestSolveNoUnknowns(t *testing.T) {
	soln, ok, err := Solve(nil, nil)
	if err != nil || !ok {
		t.Fatalf("Solve(nil, nil) = (%v, %v, %v), want empty solution, ok, no error", soln, ok, err)
	}
	if len(soln) != 0 {
		t.Errorf("expected empty solution map, got %v", soln)
	}
}
