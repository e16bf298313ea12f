package component

import (
	"testing"

	"github.com/msdsl-go/pwlc/pkg/linalg"
	"github.com/msdsl-go/pwlc/pkg/mna"
	"github.com/msdsl-go/pwlc/pkg/symtab"
)

func TestResistorContribute(t *testing.T) {
	const p, n, v, i symtab.Symbol = 1, 2, 3, 4
	port := Port{P: p, N: n, V: v, I: i}

	m := mna.New()
	NewResistor("r0", port, 5).Contribute(m)

	eqns := m.Equations()
	if len(eqns) != 4 { // kcl[p], kcl[n], aux v=R*i, aux v=V(p)-V(n)
		t.Fatalf("got %d equations, want 4", len(eqns))
	}

	if !hasEquation(eqns, func(e linalg.Expr) bool { return e.Coeff(v) == 1 && e.Coeff(i) == -5 }) {
		t.Errorf("expected v - 5*i = 0 among %+v", eqns)
	}
	if !hasEquation(eqns, func(e linalg.Expr) bool { return e.Coeff(v) == 1 && e.Coeff(p) == -1 && e.Coeff(n) == 1 }) {
		t.Errorf("expected v - p + n = 0 (port KVL) among %+v", eqns)
	}
}

func TestMOSFETModes(t *testing.T) {
	const p, n, v, i symtab.Symbol = 1, 2, 3, 4
	port := Port{P: p, N: n, V: v, I: i}
	sw := NewMOSFET("m0", port)

	mOn := mna.New()
	sw.Contribute(On, mOn)
	onEqns := mOn.Equations()
	if !hasEquation(onEqns, func(e linalg.Expr) bool { return e.Coeff(v) == 1 && e.Const == 0 && e.Coeff(i) == 0 }) {
		t.Errorf("MOSFET on: expected V=0 equation, got %+v", onEqns)
	}

	mOff := mna.New()
	sw.Contribute(Off, mOff)
	offEqns := mOff.Equations()
	if !hasEquation(offEqns, func(e linalg.Expr) bool { return e.Coeff(i) == 1 && e.Const == 0 && e.Coeff(v) == 0 }) {
		t.Errorf("MOSFET off: expected I=0 equation, got %+v", offEqns)
	}
}

func TestDiodeModes(t *testing.T) {
	const p, n, v, i symtab.Symbol = 1, 2, 3, 4
	port := Port{P: p, N: n, V: v, I: i}
	d := NewDiode("d0", port, 0.7)

	mOn := mna.New()
	d.Contribute(On, mOn)
	if !hasEquation(mOn.Equations(), func(e linalg.Expr) bool { return e.Coeff(v) == 1 && e.Const == -0.7 }) {
		t.Error("Diode on: expected V - 0.7 = 0 equation")
	}

	mOff := mna.New()
	d.Contribute(Off, mOff)
	if !hasEquation(mOff.Equations(), func(e linalg.Expr) bool { return e.Coeff(i) == 1 && e.Const == 0 }) {
		t.Error("Diode off: expected I = 0 equation")
	}
}

func TestTransformerRatioEquations(t *testing.T) {
	const p1, n1, v1, i1 symtab.Symbol = 1, 2, 3, 4
	const p2, n2, v2, i2 symtab.Symbol = 5, 6, 7, 8

	xfmr := NewTransformer("t0", Port{P: p1, N: n1, V: v1, I: i1}, Port{P: p2, N: n2, V: v2, I: i2}, 2.0)
	m := mna.New()
	xfmr.Contribute(m)

	eqns := m.Equations()
	if !hasEquation(eqns, func(e linalg.Expr) bool { return e.Coeff(v1) == 1 && e.Coeff(v2) == -2 }) {
		t.Errorf("expected V1 - 2*V2 = 0 among %+v", eqns)
	}
	if !hasEquation(eqns, func(e linalg.Expr) bool { return e.Coeff(i1) == 2 && e.Coeff(i2) == 1 }) {
		t.Errorf("expected 2*I1 + I2 = 0 among %+v", eqns)
	}
}

func hasEquation(eqns []linalg.Expr, pred func(linalg.Expr) bool) bool {
	for _, e := range eqns {
		if pred(e) {
			return true
		}
	}
	return false
}
