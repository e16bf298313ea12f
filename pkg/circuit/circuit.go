// Package circuit is the builder API spec.md §6 describes: users
// declare nodes, elements and outputs against a *Circuit, then call
// Solve to get a compiled case table. It owns the symbol namespace for
// the whole lifecycle, generalizing toy-spice/pkg/circuit.Circuit's
// role (it owns the node map, device list and matrix for one netlist)
// to symbolic compilation instead of numeric stamping.
package circuit

import (
	"github.com/msdsl-go/pwlc/pkg/component"
	"github.com/msdsl-go/pwlc/pkg/linalg"
	"github.com/msdsl-go/pwlc/pkg/symtab"
)

// StateKind distinguishes the two kinds of energy-storage state.
type StateKind int

const (
	InductorState StateKind = iota
	CapacitorState
)

// StateVar is a (variable, derivative) pair: inductor states pair the
// element's own port current with di/dt, capacitor states pair port
// voltage with dv/dt. StateVars are compared by identity via their
// index in Circuit.stateVars, never by symbol name, matching spec.md
// §9's "stable handles" guidance.
type StateVar struct {
	Variable   symtab.Symbol
	Derivative symtab.Symbol
	Kind       StateKind
}

// Circuit accumulates external and internal symbols, state variables
// and element instances. It is built up monotonically by builder calls
// and frozen at Solve time — no mutation after solving begins.
type Circuit struct {
	syms *symtab.Table

	nodeSet map[symtab.Symbol]bool
	extSyms []symtab.Symbol
	extSet  map[symtab.Symbol]bool

	stateVars []*StateVar

	staticComps []component.Static
	mosfets     []*component.MOSFET
	diodes      []*component.Diode

	portRefs []portRef
	outputs  []symtab.Symbol

	// MaxDisableAttempts caps the degeneracy handler's retry budget
	// (spec.md §4.5's "configurable limit (default 10)"). spec.md §9
	// flags this cap as a heuristic that may need to grow for circuits
	// with many inductors; exposing it as a field lets a caller raise
	// it without forking the solver.
	MaxDisableAttempts int
}

// New returns an empty circuit with symbol 0 reserved for ground.
func New() *Circuit {
	return &Circuit{
		syms:               symtab.New(),
		nodeSet:            map[symtab.Symbol]bool{symtab.Ground: true},
		extSet:             make(map[symtab.Symbol]bool),
		MaxDisableAttempts: 10,
	}
}

// Ground returns the reference node symbol.
func (c *Circuit) Ground() symtab.Symbol { return symtab.Ground }

// Nodes defines one or more fresh node-voltage symbols.
func (c *Circuit) Nodes(names ...string) ([]symtab.Symbol, error) {
	out := make([]symtab.Symbol, len(names))
	for i, nm := range names {
		s, err := c.syms.Define(nm)
		if err != nil {
			return nil, err
		}
		c.nodeSet[s] = true
		out[i] = s
	}
	return out, nil
}

// Internal defines one or more fresh internal-unknown symbols that
// aren't node voltages (rarely needed directly — element builders mint
// their own port internals).
func (c *Circuit) Internal(names ...string) ([]symtab.Symbol, error) {
	out := make([]symtab.Symbol, len(names))
	for i, nm := range names {
		s, err := c.syms.Define(nm)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// External defines a fresh external (input) symbol.
func (c *Circuit) External(name string) (symtab.Symbol, error) {
	s, err := c.syms.Define(name)
	if err != nil {
		return 0, err
	}
	c.extSyms = append(c.extSyms, s)
	c.extSet[s] = true
	return s, nil
}

func (c *Circuit) checkLinearInExternals(elemName string, expr linalg.Expr) error {
	for _, s := range expr.Symbols() {
		if !c.extSet[s] {
			return &NonLinearInputError{Element: elemName, Symbol: s}
		}
	}
	return nil
}

type portRef struct {
	elem string
	node symtab.Symbol
}

func (c *Circuit) registerPort(elem string, p, n symtab.Symbol) {
	c.portRefs = append(c.portRefs, portRef{elem, p}, portRef{elem, n})
}

// Output declares sym as an emitted output of the compiled case table.
func (c *Circuit) Output(sym symtab.Symbol) {
	c.outputs = append(c.outputs, sym)
}

func (c *Circuit) sourceValue(name string, expr *linalg.Expr) (linalg.Expr, error) {
	if expr != nil {
		if err := c.checkLinearInExternals(name, *expr); err != nil {
			return linalg.Zero(), err
		}
		return *expr, nil
	}
	extSym, err := c.External(name)
	if err != nil {
		return linalg.Zero(), err
	}
	return linalg.Sym(extSym), nil
}

// VoltageSource adds a voltage source between p and n. When expr is
// nil, the source's own value becomes a fresh external symbol.
func (c *Circuit) VoltageSource(p, n symtab.Symbol, expr *linalg.Expr) (*component.VoltageSource, error) {
	vSym := c.syms.Make("vsrc")
	name := c.syms.Name(vSym)
	c.registerPort(name, p, n)
	iSym := c.syms.Make("i_" + name)
	value, err := c.sourceValue(name, expr)
	if err != nil {
		return nil, err
	}

	elem := component.NewVoltageSource(name, component.Port{P: p, N: n, V: vSym, I: iSym}, value)
	c.staticComps = append(c.staticComps, elem)
	return elem, nil
}

// CurrentSource adds a current source between p and n, symmetric to
// VoltageSource.
func (c *Circuit) CurrentSource(p, n symtab.Symbol, expr *linalg.Expr) (*component.CurrentSource, error) {
	vSym := c.syms.Make("vcsrc")
	name := c.syms.Name(vSym)
	c.registerPort(name, p, n)
	iSym := c.syms.Make("i_" + name)
	value, err := c.sourceValue(name, expr)
	if err != nil {
		return nil, err
	}

	elem := component.NewCurrentSource(name, component.Port{P: p, N: n, V: vSym, I: iSym}, value)
	c.staticComps = append(c.staticComps, elem)
	return elem, nil
}

// Resistor adds a resistor of the given value (ohms) between p and n.
func (c *Circuit) Resistor(p, n symtab.Symbol, value float64) (*component.Resistor, error) {
	vSym := c.syms.Make("vr")
	name := c.syms.Name(vSym)
	c.registerPort(name, p, n)
	iSym := c.syms.Make("i_" + name)

	elem := component.NewResistor(name, component.Port{P: p, N: n, V: vSym, I: iSym}, value)
	c.staticComps = append(c.staticComps, elem)
	return elem, nil
}

// Inductor adds an inductor of the given value (henries) between p and
// n and registers its (current, di/dt) pair as a state variable.
func (c *Circuit) Inductor(p, n symtab.Symbol, value float64) (*component.Inductor, error) {
	vSym := c.syms.Make("vl")
	name := c.syms.Name(vSym)
	c.registerPort(name, p, n)
	iSym := c.syms.Make("i_" + name)
	dSym := c.syms.Make("didt_" + name)

	elem := component.NewInductor(name, component.Port{P: p, N: n, V: vSym, I: iSym}, value, dSym)
	c.staticComps = append(c.staticComps, elem)

	c.stateVars = append(c.stateVars, &StateVar{Variable: iSym, Derivative: dSym, Kind: InductorState})

	return elem, nil
}

// Capacitor adds a capacitor of the given value (farads) between p and
// n and registers its (voltage, dv/dt) pair as a state variable.
func (c *Circuit) Capacitor(p, n symtab.Symbol, value float64) (*component.Capacitor, error) {
	vSym := c.syms.Make("vc")
	name := c.syms.Name(vSym)
	c.registerPort(name, p, n)
	iSym := c.syms.Make("i_" + name)
	dSym := c.syms.Make("dvdt_" + name)

	elem := component.NewCapacitor(name, component.Port{P: p, N: n, V: vSym, I: iSym}, value, dSym)
	c.staticComps = append(c.staticComps, elem)

	c.stateVars = append(c.stateVars, &StateVar{Variable: vSym, Derivative: dSym, Kind: CapacitorState})

	return elem, nil
}

// Transformer adds an ideal 1:n transformer between (p1,n1) and (p2,n2).
func (c *Circuit) Transformer(p1, n1, p2, n2 symtab.Symbol, n float64) (*component.Transformer, error) {
	v1 := c.syms.Make("v1t")
	name := c.syms.Name(v1)
	c.registerPort(name, p1, n1)
	c.registerPort(name, p2, n2)
	i1 := c.syms.Make("i1_" + name)
	v2 := c.syms.Make("v2_" + name)
	i2 := c.syms.Make("i2_" + name)

	elem := component.NewTransformer(name,
		component.Port{P: p1, N: n1, V: v1, I: i1},
		component.Port{P: p2, N: n2, V: v2, I: i2},
		n)
	c.staticComps = append(c.staticComps, elem)
	return elem, nil
}

// MOSFET adds an ideal two-state switch between p and n.
func (c *Circuit) MOSFET(p, n symtab.Symbol) (*component.MOSFET, error) {
	vSym := c.syms.Make("vm")
	name := c.syms.Name(vSym)
	c.registerPort(name, p, n)
	iSym := c.syms.Make("i_" + name)

	elem := component.NewMOSFET(name, component.Port{P: p, N: n, V: vSym, I: iSym})
	c.mosfets = append(c.mosfets, elem)
	return elem, nil
}

// Diode adds an ideal two-state switch with forward drop vf between p
// (anode) and n (cathode).
func (c *Circuit) Diode(p, n symtab.Symbol, vf float64) (*component.Diode, error) {
	vSym := c.syms.Make("vd")
	name := c.syms.Name(vSym)
	c.registerPort(name, p, n)
	iSym := c.syms.Make("i_" + name)

	elem := component.NewDiode(name, component.Port{P: p, N: n, V: vSym, I: iSym}, vf)
	c.diodes = append(c.diodes, elem)
	return elem, nil
}

func (c *Circuit) validateNodeRefs() error {
	for _, r := range c.portRefs {
		if !c.nodeSet[r.node] {
			return &component.NodeRefError{Element: r.elem, Symbol: r.node}
		}
	}
	return nil
}
