// Package component is the element library: a tagged variant for each
// element kind (spec.md §3-4.3, "sum types over variants" in §9).
// Every element knows how to contribute its equations to an MNA build;
// switched elements (MOSFET, Diode) take a Mode parameter, static ones
// ignore it. This mirrors toy-spice/pkg/device's Device interface and
// per-type Stamp methods, generalized from numeric matrix stamping to
// symbolic equation contribution.
package component

import (
	"fmt"

	"github.com/msdsl-go/pwlc/pkg/linalg"
	"github.com/msdsl-go/pwlc/pkg/mna"
	"github.com/msdsl-go/pwlc/pkg/symtab"
)

// Mode is the on/off state of a switched element.
type Mode int

const (
	Off Mode = iota
	On
)

func (m Mode) String() string {
	if m == On {
		return "on"
	}
	return "off"
}

// Port is the terminal pair of a two-terminal element, plus the
// internal symbols for its own port voltage and current.
type Port struct {
	P, N symtab.Symbol
	V, I symtab.Symbol
}

// Static is implemented by elements whose constitutive relation does
// not depend on a mode assignment (everything except MOSFET/Diode).
type Static interface {
	Name() string
	Contribute(m *mna.Assembler)
}

// Switched is implemented by mode-dependent elements: MOSFET and
// Diode. The case enumerator invokes Contribute once per mode
// assignment for each such element.
type Switched interface {
	Name() string
	Contribute(mode Mode, m *mna.Assembler)
}

// nodeExpr returns the expression for a node symbol: the zero
// expression at ground, the bare symbol everywhere else.
func nodeExpr(n symtab.Symbol) linalg.Expr {
	if n == symtab.Ground {
		return linalg.Zero()
	}
	return linalg.Sym(n)
}

// stampPortVoltage constrains port.V to V(P)-V(N), spec.md §3's
// definition of a port's own voltage as the node-voltage difference it
// spans. Every Contribute method calls this once per port so node
// symbols actually participate in the equation system instead of only
// ever appearing as mna.Assembler KCL keys.
func stampPortVoltage(port Port, m *mna.Assembler) {
	m.SetEqual(linalg.Sym(port.V), nodeExpr(port.P).Sub(nodeExpr(port.N)))
}

// NodeRefError reports that an element was built referencing a node
// symbol the circuit never registered — spec.md's fatal, solve-time
// UnknownNode condition.
type NodeRefError struct {
	Element string
	Symbol  symtab.Symbol
}

func (e *NodeRefError) Error() string {
	return fmt.Sprintf("component %s: references unregistered node symbol %d", e.Element, e.Symbol)
}
