// Package mna implements the modified-nodal-analysis equation
// assembler: an insertion-ordered sum of signed branch currents per
// node (KCL) plus an append-only list of auxiliary constitutive
// equations, exactly as spec.md §4.2 describes. Each element's
// Contribute method (pkg/component) stamps into an Assembler; the
// circuit builder reads back Equations() once per mode specialization.
package mna

import (
	"github.com/msdsl-go/pwlc/pkg/linalg"
	"github.com/msdsl-go/pwlc/pkg/symtab"
)

// Assembler accumulates KCL sums per node and auxiliary equations for
// one mode specialization of a circuit. It is built fresh for every
// case the enumerator tries.
type Assembler struct {
	kclOrder []symtab.Symbol
	kcl      map[symtab.Symbol]linalg.Expr
	aux      []linalg.Expr
}

// New returns an empty assembler.
func New() *Assembler {
	return &Assembler{kcl: make(map[symtab.Symbol]linalg.Expr)}
}

// AddCurrent registers a branch current expr flowing conventionally
// from node p to node n: kcl[p] -= expr; kcl[n] += expr.
func (a *Assembler) AddCurrent(p, n symtab.Symbol, expr linalg.Expr) {
	a.accumulate(p, expr.Scale(-1))
	a.accumulate(n, expr)
}

func (a *Assembler) accumulate(node symtab.Symbol, delta linalg.Expr) {
	cur, exists := a.kcl[node]
	if !exists {
		a.kclOrder = append(a.kclOrder, node)
		cur = linalg.Zero()
	}
	a.kcl[node] = cur.Add(delta)
}

// SetEqual appends the auxiliary equation lhs - rhs (implicitly = 0).
func (a *Assembler) SetEqual(lhs, rhs linalg.Expr) {
	a.aux = append(a.aux, lhs.Sub(rhs))
}

// Equations returns every KCL sum except the one at ground (redundant
// by Kirchhoff's law), followed by the auxiliary equations, in the
// order they were first touched.
func (a *Assembler) Equations() []linalg.Expr {
	out := make([]linalg.Expr, 0, len(a.kclOrder)+len(a.aux))
	for _, node := range a.kclOrder {
		if node == symtab.Ground {
			continue
		}
		out = append(out, a.kcl[node])
	}
	out = append(out, a.aux...)
	return out
}
