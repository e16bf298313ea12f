// Package linalg implements the minimal symbolic-linear-algebra layer
// the compiler needs: a sum-of-coefficient-times-symbol expression
// type, and a solver that eliminates a square system of such
// expressions (each implicitly "= 0") for a set of unknown symbols,
// leaving every other symbol in the system as a free parameter of the
// solution. All circuit equations are linear once a mode assignment is
// fixed, so reals suffice in place of a full symbolic-algebra
// dependency — this is the compact, self-contained form spec.md's
// design notes call out as preferable.
package linalg

import "github.com/msdsl-go/pwlc/pkg/symtab"

// Expr is a linear form: sum(coeff * symbol) + const.
type Expr struct {
	Terms map[symtab.Symbol]float64
	Const float64
}

// Zero returns the empty expression (the constant 0).
func Zero() Expr {
	return Expr{Terms: map[symtab.Symbol]float64{}}
}

// ConstExpr returns the constant expression c.
func ConstExpr(c float64) Expr {
	return Expr{Terms: map[symtab.Symbol]float64{}, Const: c}
}

// Sym returns the expression consisting of the bare symbol s (coefficient 1).
func Sym(s symtab.Symbol) Expr {
	return Expr{Terms: map[symtab.Symbol]float64{s: 1}, Const: 0}
}

// Scaled returns the expression coeff*s.
func Scaled(s symtab.Symbol, coeff float64) Expr {
	return Expr{Terms: map[symtab.Symbol]float64{s: coeff}, Const: 0}
}

func (e Expr) clone() Expr {
	terms := make(map[symtab.Symbol]float64, len(e.Terms))
	for k, v := range e.Terms {
		terms[k] = v
	}
	return Expr{Terms: terms, Const: e.Const}
}

// Add returns e + other.
func (e Expr) Add(other Expr) Expr {
	out := e.clone()
	for k, v := range other.Terms {
		out.Terms[k] += v
	}
	out.Const += other.Const
	return out
}

// Sub returns e - other.
func (e Expr) Sub(other Expr) Expr {
	out := e.clone()
	for k, v := range other.Terms {
		out.Terms[k] -= v
	}
	out.Const -= other.Const
	return out
}

// Scale returns e scaled by k.
func (e Expr) Scale(k float64) Expr {
	out := e.clone()
	for s := range out.Terms {
		out.Terms[s] *= k
	}
	out.Const *= k
	return out
}

// Coeff returns the coefficient of s in e (0 if absent).
func (e Expr) Coeff(s symtab.Symbol) float64 {
	return e.Terms[s]
}

// Symbols returns the symbols with a nonzero coefficient in e.
func (e Expr) Symbols() []symtab.Symbol {
	out := make([]symtab.Symbol, 0, len(e.Terms))
	for s, c := range e.Terms {
		if c != 0 {
			out = append(out, s)
		}
	}
	return out
}
