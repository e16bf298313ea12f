package component

import (
	"github.com/msdsl-go/pwlc/pkg/linalg"
	"github.com/msdsl-go/pwlc/pkg/mna"
)

// VoltageSource pins port.v to a linear expression over external
// symbols. When the builder is given no expr, it wraps a fresh
// external symbol itself as that expression — Contribute here never
// needs to know which case applied.
type VoltageSource struct {
	name  string
	Port  Port
	Value linalg.Expr
}

// NewVoltageSource returns a voltage source over port held at value.
func NewVoltageSource(name string, port Port, value linalg.Expr) *VoltageSource {
	return &VoltageSource{name: name, Port: port, Value: value}
}

func (s *VoltageSource) Name() string { return s.name }

func (s *VoltageSource) Contribute(m *mna.Assembler) {
	m.AddCurrent(s.Port.P, s.Port.N, linalg.Sym(s.Port.I))
	m.SetEqual(linalg.Sym(s.Port.V), s.Value)
	stampPortVoltage(s.Port, m)
}

// CurrentSource pins port.i to a linear expression over external
// symbols, symmetric to VoltageSource.
type CurrentSource struct {
	name  string
	Port  Port
	Value linalg.Expr
}

// NewCurrentSource returns a current source over port fixed at value.
func NewCurrentSource(name string, port Port, value linalg.Expr) *CurrentSource {
	return &CurrentSource{name: name, Port: port, Value: value}
}

func (s *CurrentSource) Name() string { return s.name }

func (s *CurrentSource) Contribute(m *mna.Assembler) {
	m.AddCurrent(s.Port.P, s.Port.N, linalg.Sym(s.Port.I))
	m.SetEqual(linalg.Sym(s.Port.I), s.Value)
	stampPortVoltage(s.Port, m)
}
