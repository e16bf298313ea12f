package component

import (
	"github.com/msdsl-go/pwlc/pkg/linalg"
	"github.com/msdsl-go/pwlc/pkg/mna"
)

// Transformer is an ideal 1:n two-port: V1 = n*V2 and n*I1 = -I2.
type Transformer struct {
	name  string
	Port1 Port
	Port2 Port
	N     float64 // turns ratio
}

func NewTransformer(name string, port1, port2 Port, n float64) *Transformer {
	return &Transformer{name: name, Port1: port1, Port2: port2, N: n}
}

func (t *Transformer) Name() string { return t.name }

func (t *Transformer) Contribute(m *mna.Assembler) {
	m.AddCurrent(t.Port1.P, t.Port1.N, linalg.Sym(t.Port1.I))
	m.AddCurrent(t.Port2.P, t.Port2.N, linalg.Sym(t.Port2.I))

	m.SetEqual(linalg.Sym(t.Port1.V), linalg.Scaled(t.Port2.V, t.N))
	m.SetEqual(linalg.Scaled(t.Port1.I, t.N), linalg.Scaled(t.Port2.I, -1))

	stampPortVoltage(t.Port1, m)
	stampPortVoltage(t.Port2, m)
}
