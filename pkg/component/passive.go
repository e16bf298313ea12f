package component

import (
	"github.com/msdsl-go/pwlc/pkg/linalg"
	"github.com/msdsl-go/pwlc/pkg/mna"
	"github.com/msdsl-go/pwlc/pkg/symtab"
)

// Resistor contributes the constitutive relation V = R*I.
type Resistor struct {
	name  string
	Port  Port
	Value float64 // ohms
}

func NewResistor(name string, port Port, value float64) *Resistor {
	return &Resistor{name: name, Port: port, Value: value}
}

func (r *Resistor) Name() string { return r.name }

func (r *Resistor) Contribute(m *mna.Assembler) {
	m.AddCurrent(r.Port.P, r.Port.N, linalg.Sym(r.Port.I))
	m.SetEqual(linalg.Sym(r.Port.V), linalg.Scaled(r.Port.I, r.Value))
	stampPortVoltage(r.Port, m)
}

// Inductor contributes V = L*di/dt. DIdt is the internal symbol for
// the state derivative; the circuit builder pairs (Port.I, DIdt) as a
// state variable and performs the Euler update downstream.
type Inductor struct {
	name  string
	Port  Port
	Value float64 // henries
	DIdt  symtab.Symbol
}

func NewInductor(name string, port Port, value float64, dIdt symtab.Symbol) *Inductor {
	return &Inductor{name: name, Port: port, Value: value, DIdt: dIdt}
}

func (l *Inductor) Name() string { return l.name }

func (l *Inductor) Contribute(m *mna.Assembler) {
	m.AddCurrent(l.Port.P, l.Port.N, linalg.Sym(l.Port.I))
	m.SetEqual(linalg.Sym(l.Port.V), linalg.Scaled(l.DIdt, l.Value))
	stampPortVoltage(l.Port, m)
}

// Capacitor contributes I = C*dv/dt. DVdt is the internal symbol for
// the state derivative; the circuit builder pairs (Port.V, DVdt) as a
// state variable.
type Capacitor struct {
	name  string
	Port  Port
	Value float64 // farads
	DVdt  symtab.Symbol
}

func NewCapacitor(name string, port Port, value float64, dVdt symtab.Symbol) *Capacitor {
	return &Capacitor{name: name, Port: port, Value: value, DVdt: dVdt}
}

func (c *Capacitor) Name() string { return c.name }

func (c *Capacitor) Contribute(m *mna.Assembler) {
	m.AddCurrent(c.Port.P, c.Port.N, linalg.Sym(c.Port.I))
	m.SetEqual(linalg.Sym(c.Port.I), linalg.Scaled(c.DVdt, c.Value))
	stampPortVoltage(c.Port, m)
}
