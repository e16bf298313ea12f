package component

import (
	"fmt"

	"github.com/msdsl-go/pwlc/pkg/linalg"
	"github.com/msdsl-go/pwlc/pkg/mna"
)

// MOSFET is an ideal two-state switch: on => V=0, off => I=0.
type MOSFET struct {
	name string
	Port Port
}

func NewMOSFET(name string, port Port) *MOSFET {
	return &MOSFET{name: name, Port: port}
}

func (s *MOSFET) Name() string { return s.name }

func (s *MOSFET) Contribute(mode Mode, m *mna.Assembler) {
	m.AddCurrent(s.Port.P, s.Port.N, linalg.Sym(s.Port.I))
	if mode == On {
		m.SetEqual(linalg.Sym(s.Port.V), linalg.ConstExpr(0))
	} else {
		m.SetEqual(linalg.Sym(s.Port.I), linalg.ConstExpr(0))
	}
	stampPortVoltage(s.Port, m)
}

// Diode is an ideal two-state switch with a forward drop: on => V=Vf,
// off => I=0. It does not enforce I>=0 while on — per spec.md §9, that
// physical-validity check belongs to the downstream runtime that picks
// among the compiled cases.
type Diode struct {
	name string
	Port Port
	Vf   float64
}

// NewDiode panics on a malformed port, mirroring toy-spice's
// device.NewDiode guard against a wrong node count.
func NewDiode(name string, port Port, vf float64) *Diode {
	if port.P == port.N {
		panic(fmt.Sprintf("diode %s: anode and cathode must be distinct nodes", name))
	}
	return &Diode{name: name, Port: port, Vf: vf}
}

func (d *Diode) Name() string { return d.name }

func (d *Diode) Contribute(mode Mode, m *mna.Assembler) {
	m.AddCurrent(d.Port.P, d.Port.N, linalg.Sym(d.Port.I))
	if mode == On {
		m.SetEqual(linalg.Sym(d.Port.V), linalg.ConstExpr(d.Vf))
	} else {
		m.SetEqual(linalg.Sym(d.Port.I), linalg.ConstExpr(0))
	}
	stampPortVoltage(d.Port, m)
}
