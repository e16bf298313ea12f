package circuit

import (
	"fmt"
	"sort"

	"github.com/msdsl-go/pwlc/pkg/caseio"
	"github.com/msdsl-go/pwlc/pkg/component"
	"github.com/msdsl-go/pwlc/pkg/linalg"
	"github.com/msdsl-go/pwlc/pkg/mna"
	"github.com/msdsl-go/pwlc/pkg/symtab"
	"gonum.org/v1/gonum/stat/combin"
)

// Solve enumerates every mode combination over the circuit's switched
// elements, specializes and solves each, and serializes the surviving
// cases into a caseio.CaseTable. outputs, if non-empty, overrides the
// set previously declared via Output.
func (c *Circuit) Solve(dt float64, outputs ...symtab.Symbol) (*caseio.CaseTable, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("circuit: dt must be positive, got %v", dt)
	}
	if err := c.validateNodeRefs(); err != nil {
		return nil, err
	}

	outs := c.outputs
	if len(outputs) > 0 {
		outs = outputs
	}

	dynComps := c.dynamicComponents()

	table := &caseio.CaseTable{
		Dt:      dt,
		ExtSyms: c.symNames(c.extSyms),
		Mosfets: namesOf(c.mosfets, func(m *component.MOSFET) string { return m.Name() }),
		States:  c.symNames(c.stateVarSyms()),
		Outputs: c.symNames(outs),
		Diodes:  c.diodeMeta(),
	}

	n := len(dynComps)
	for bits := 0; bits < (1 << n); bits++ {
		assignment := make([]component.Mode, n)
		for j := range dynComps {
			if bits&(1<<j) != 0 {
				assignment[j] = component.On
			} else {
				assignment[j] = component.Off
			}
		}

		caseResult, ok, err := c.solveCase(dt, dynComps, assignment, outs)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue // SingularCase: dropped, not fatal.
		}
		table.Cases = append(table.Cases, *caseResult)
	}

	return table, nil
}

// dynamicComponents returns the switched elements in a fixed bit
// order: MOSFETs before diodes, each group in declaration order.
func (c *Circuit) dynamicComponents() []component.Switched {
	out := make([]component.Switched, 0, len(c.mosfets)+len(c.diodes))
	for _, m := range c.mosfets {
		out = append(out, m)
	}
	for _, d := range c.diodes {
		out = append(out, d)
	}
	return out
}

func (c *Circuit) symNames(syms []symtab.Symbol) []string {
	out := make([]string, len(syms))
	for i, s := range syms {
		out[i] = c.syms.Name(s)
	}
	return out
}

func namesOf[T any](items []T, name func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = name(it)
	}
	return out
}

func (c *Circuit) stateVarSyms() []symtab.Symbol {
	out := make([]symtab.Symbol, len(c.stateVars))
	for i, sv := range c.stateVars {
		out[i] = sv.Variable
	}
	return out
}

func (c *Circuit) diodeMeta() map[string]caseio.DiodeMeta {
	out := make(map[string]caseio.DiodeMeta, len(c.diodes))
	for _, d := range c.diodes {
		out[d.Name()] = caseio.DiodeMeta{
			V:  c.syms.Name(d.Port.V),
			I:  c.syms.Name(d.Port.I),
			Vf: d.Vf,
		}
	}
	return out
}

// inductorStateIdx returns the indices into c.stateVars of inductor
// states — only these are eligible for disabling (4.5).
func (c *Circuit) inductorStateIdx() []int {
	var out []int
	for i, sv := range c.stateVars {
		if sv.Kind == InductorState {
			out = append(out, i)
		}
	}
	return out
}

// solveCase builds the MNA system for one mode assignment and attempts
// to solve it, trying successively larger inductor disable sets on a
// singular result. It returns ok=false (no error) when every attempt
// within MaxDisableAttempts is singular — the SingularCase outcome.
func (c *Circuit) solveCase(dt float64, dynComps []component.Switched, assignment []component.Mode, outs []symtab.Symbol) (*caseio.Case, bool, error) {
	indIdx := c.inductorStateIdx()

	attempts := 0
	tryDisableSet := func(combo []int) (*caseio.Case, bool, error) {
		if attempts >= c.MaxDisableAttempts {
			return nil, false, nil
		}
		attempts++

		disabled := make(map[int]bool, len(combo))
		for _, j := range combo {
			disabled[indIdx[j]] = true
		}

		soln, ok, err := c.trySolve(dynComps, assignment, disabled)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		return c.buildCase(dt, assignment, dynComps, soln, disabled, outs), true, nil
	}

	// k=0: the empty disable set, tried first regardless of whether
	// there are any inductor states at all (combin.Combinations
	// requires n>0, so this case can't go through it).
	if result, ok, err := tryDisableSet(nil); err != nil || ok {
		return result, ok, err
	}

	for k := 1; k <= len(indIdx); k++ {
		for _, combo := range combin.Combinations(len(indIdx), k) {
			result, ok, err := tryDisableSet(combo)
			if err != nil {
				return nil, false, err
			}
			if ok {
				return result, true, nil
			}
			if attempts >= c.MaxDisableAttempts {
				return nil, false, nil
			}
		}
	}

	return nil, false, nil
}

// trySolve builds a fresh MNA for this mode assignment and disable
// set, collects the unknowns (every internal symbol, minus the
// variable of every active state, plus the derivative of every
// disabled state), pins each disabled state's derivative to zero, and
// solves.
func (c *Circuit) trySolve(dynComps []component.Switched, assignment []component.Mode, disabled map[int]bool) (map[symtab.Symbol]linalg.Expr, bool, error) {
	m := mna.New()
	for _, elem := range c.staticComps {
		elem.Contribute(m)
	}
	for j, elem := range dynComps {
		elem.Contribute(assignment[j], m)
	}
	for i, sv := range c.stateVars {
		if disabled[i] {
			m.SetEqual(linalg.Sym(sv.Derivative), linalg.ConstExpr(0))
		}
	}

	unknowns := c.collectUnknowns(disabled)
	equations := m.Equations()

	soln, ok, err := linalg.Solve(equations, unknowns)
	if err != nil {
		return nil, false, err // DegreeMismatch: fatal.
	}
	return soln, ok, nil
}

// collectUnknowns gathers every non-ground node symbol (now that each
// element's Contribute stamps port.V against the node-voltage
// difference it spans, node symbols are real unknowns, not just
// mna.Assembler bookkeeping keys) plus every internal symbol
// contributed by static and switched elements (port v/i, plus state
// derivatives), excluding the variable of every active (non-disabled)
// state and including the derivative of every disabled one as an
// ordinary unknown.
func (c *Circuit) collectUnknowns(disabled map[int]bool) []symtab.Symbol {
	excludeVar := make(map[symtab.Symbol]bool)
	for i, sv := range c.stateVars {
		if !disabled[i] {
			excludeVar[sv.Variable] = true
		}
	}

	seen := make(map[symtab.Symbol]bool)
	var out []symtab.Symbol
	add := func(s symtab.Symbol) {
		if excludeVar[s] || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}

	for _, s := range c.sortedNonGroundNodes() {
		add(s)
	}
	for _, elem := range c.staticComps {
		addPortUnknowns(elem, add)
	}
	for _, m := range c.mosfets {
		add(m.Port.V)
		add(m.Port.I)
	}
	for _, d := range c.diodes {
		add(d.Port.V)
		add(d.Port.I)
	}
	for _, sv := range c.stateVars {
		add(sv.Derivative)
	}

	return out
}

// sortedNonGroundNodes returns every registered node symbol except
// ground, ordered by symbol value so collectUnknowns's output does not
// depend on map iteration order.
func (c *Circuit) sortedNonGroundNodes() []symtab.Symbol {
	out := make([]symtab.Symbol, 0, len(c.nodeSet))
	for s := range c.nodeSet {
		if s == symtab.Ground {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func addPortUnknowns(elem component.Static, add func(symtab.Symbol)) {
	switch e := elem.(type) {
	case *component.VoltageSource:
		add(e.Port.V)
		add(e.Port.I)
	case *component.CurrentSource:
		add(e.Port.V)
		add(e.Port.I)
	case *component.Resistor:
		add(e.Port.V)
		add(e.Port.I)
	case *component.Inductor:
		add(e.Port.V)
		add(e.Port.I)
	case *component.Capacitor:
		add(e.Port.V)
		add(e.Port.I)
	case *component.Transformer:
		add(e.Port1.V)
		add(e.Port1.I)
		add(e.Port2.V)
		add(e.Port2.I)
	}
}

// buildCase serializes a successful solve into a caseio.Case, applying
// the Euler update to active states and emitting the algebraic
// solution for disabled ones, per 4.7.
func (c *Circuit) buildCase(dt float64, assignment []component.Mode, dynComps []component.Switched, soln map[symtab.Symbol]linalg.Expr, disabled map[int]bool, outs []symtab.Symbol) *caseio.Case {
	result := &caseio.Case{
		DynModes: make(map[string]string, len(dynComps)),
		States:   make(map[string]caseio.LinForm, len(c.stateVars)),
		Diodes:   make(map[string]caseio.DiodeSolution, len(c.diodes)),
		Outputs:  make(map[string]caseio.LinForm, len(outs)),
	}

	for j, elem := range dynComps {
		result.DynModes[elem.Name()] = assignment[j].String()
	}

	for i, sv := range c.stateVars {
		name := c.syms.Name(sv.Variable)
		if disabled[i] {
			result.States[name] = c.toLinForm(soln[sv.Variable])
		} else {
			update := linalg.Sym(sv.Variable).Add(soln[sv.Derivative].Scale(dt))
			result.States[name] = c.toLinForm(update)
		}
	}

	alreadySolved := make(map[symtab.Symbol]bool, len(c.stateVars)+2*len(c.diodes))
	for _, sv := range c.stateVars {
		alreadySolved[sv.Variable] = true
	}

	for _, d := range c.diodes {
		result.Diodes[d.Name()] = caseio.DiodeSolution{
			V: c.toLinForm(soln[d.Port.V]),
			I: c.toLinForm(soln[d.Port.I]),
		}
		alreadySolved[d.Port.V] = true
		alreadySolved[d.Port.I] = true
	}

	for _, sym := range outs {
		result.Outputs[c.syms.Name(sym)] = c.toLinForm(c.resolveOutput(soln, alreadySolved, sym))
	}

	return result
}

// resolveOutput mirrors the original reference's already_solved
// tracking: an output that names a state variable or a diode port
// always emits its own identity expression — its value in soln (when
// present at all) is the case's current-state free parameter, not a
// substitutable solution — everything else is looked up in soln
// directly. See spec.md §9: "the reference emits an identity
// expression (output = output)" for these symbols.
func (c *Circuit) resolveOutput(soln map[symtab.Symbol]linalg.Expr, alreadySolved map[symtab.Symbol]bool, sym symtab.Symbol) linalg.Expr {
	if alreadySolved[sym] {
		return linalg.Sym(sym)
	}
	return soln[sym]
}

// toLinForm converts an Expr over symbols into the wire LinForm, using
// symbol names as keys.
func (c *Circuit) toLinForm(e linalg.Expr) caseio.LinForm {
	vars := make(map[string]float64, len(e.Terms))
	for s, coeff := range e.Terms {
		if coeff == 0 {
			continue
		}
		vars[c.syms.Name(s)] = coeff
	}
	return caseio.LinForm{Vars: vars, Const: e.Const}
}
