package linalg

import "testing"

func TestExprArithmetic(t *testing.T) {
	a := Scaled(1, 2).Add(ConstExpr(3))
	b := Sym(2)

	sum := a.Add(b)
	if sum.Coeff(1) != 2 || sum.Coeff(2) != 1 || sum.Const != 3 {
		t.Fatalf("sum = %+v, want coeffs {1:2, 2:1} const 3", sum)
	}

	diff := a.Sub(b)
	if diff.Coeff(1) != 2 || diff.Coeff(2) != -1 || diff.Const != 3 {
		t.Fatalf("diff = %+v", diff)
	}

	scaled := a.Scale(2)
	if scaled.Coeff(1) != 4 || scaled.Const != 6 {
		t.Fatalf("scaled = %+v", scaled)
	}
}

func TestExprCloneIsIndependent(t *testing.T) {
	a := Sym(1)
	b := a.Add(Sym(2))

	if a.Coeff(2) != 0 {
		t.Fatalf("mutating via Add leaked into receiver: a.Coeff(2) = %v", a.Coeff(2))
	}
	if b.Coeff(1) != 1 || b.Coeff(2) != 1 {
		t.Fatalf("b = %+v, want coeffs {1:1, 2:1}", b)
	}
}

func TestExprSymbols(t *testing.T) {
	e := Sym(1).Add(Scaled(2, 0)).Add(Scaled(3, 5))
	syms := e.Symbols()
	if len(syms) != 2 {
		t.Fatalf("Symbols() = %v, want exactly the nonzero-coefficient symbols (len 2)", syms)
	}
}
