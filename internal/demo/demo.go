// Package demo builds the five worked circuits from spec.md §8's
// end-to-end scenarios (A-E). cmd/pwlc's "compile <name>" command
// builds its circuits from this package, the way toy-spice's
// examples/rr/main.go isolates circuit construction in its own
// createCircuit function.
package demo

import (
	"fmt"

	"github.com/msdsl-go/pwlc/pkg/circuit"
	"github.com/msdsl-go/pwlc/pkg/linalg"
)

// Built is a constructed circuit ready to solve, plus the timestep the
// scenario calls for.
type Built struct {
	Circuit *circuit.Circuit
	Dt      float64
}

// Names lists the demo circuits in a fixed order, used by `pwlc list`.
var Names = []string{"resistordivider", "rclowpass", "buck", "rectifier", "transformer"}

// Build dispatches by name to one of the scenario constructors.
func Build(name string) (*Built, error) {
	switch name {
	case "resistordivider":
		return ResistorDivider()
	case "rclowpass":
		return RCLowPass()
	case "buck":
		return Buck()
	case "rectifier":
		return Rectifier()
	case "transformer":
		return Transformer()
	default:
		return nil, fmt.Errorf("demo: unknown circuit %q (want one of %v)", name, Names)
	}
}

func exprPtr(e linalg.Expr) *linalg.Expr { return &e }

// ResistorDivider is scenario A: a two-resistor divider fed by an
// external source, with the midpoint declared as output.
func ResistorDivider() (*Built, error) {
	c := circuit.New()

	u, err := c.External("u")
	if err != nil {
		return nil, err
	}
	nodes, err := c.Nodes("v_in", "v_out")
	if err != nil {
		return nil, err
	}
	vIn, vOut := nodes[0], nodes[1]

	if _, err := c.VoltageSource(vIn, c.Ground(), exprPtr(linalg.Sym(u))); err != nil {
		return nil, err
	}
	if _, err := c.Resistor(vIn, vOut, 1); err != nil {
		return nil, err
	}
	if _, err := c.Resistor(vOut, c.Ground(), 1); err != nil {
		return nil, err
	}
	c.Output(vOut)

	return &Built{Circuit: c, Dt: 0.1}, nil
}

// RCLowPass is scenario B: a single-pole RC filter.
func RCLowPass() (*Built, error) {
	c := circuit.New()

	u, err := c.External("u")
	if err != nil {
		return nil, err
	}
	nodes, err := c.Nodes("v_in", "v_c")
	if err != nil {
		return nil, err
	}
	vIn, vC := nodes[0], nodes[1]

	if _, err := c.VoltageSource(vIn, c.Ground(), exprPtr(linalg.Sym(u))); err != nil {
		return nil, err
	}
	if _, err := c.Resistor(vIn, vC, 1); err != nil {
		return nil, err
	}
	if _, err := c.Capacitor(vC, c.Ground(), 1); err != nil {
		return nil, err
	}
	c.Output(vC)

	return &Built{Circuit: c, Dt: 0.1}, nil
}

// Buck is scenario C: a synchronous-less buck converter (MOSFET high
// side, diode freewheel, LC output filter, resistive load).
func Buck() (*Built, error) {
	c := circuit.New()

	u, err := c.External("u")
	if err != nil {
		return nil, err
	}
	nodes, err := c.Nodes("v_in", "v_sw", "v_out")
	if err != nil {
		return nil, err
	}
	vIn, vSw, vOut := nodes[0], nodes[1], nodes[2]

	if _, err := c.VoltageSource(vIn, c.Ground(), exprPtr(linalg.Sym(u))); err != nil {
		return nil, err
	}
	if _, err := c.MOSFET(vIn, vSw); err != nil {
		return nil, err
	}
	if _, err := c.Diode(c.Ground(), vSw, 0); err != nil {
		return nil, err
	}
	if _, err := c.Inductor(vSw, vOut, 100e-6); err != nil {
		return nil, err
	}
	if _, err := c.Capacitor(vOut, c.Ground(), 10e-6); err != nil {
		return nil, err
	}
	if _, err := c.Resistor(vOut, c.Ground(), 5); err != nil {
		return nil, err
	}
	c.Output(vOut)

	return &Built{Circuit: c, Dt: 1e-6}, nil
}

// Rectifier is scenario D: an ideal half-wave diode rectifier into a
// resistive load.
func Rectifier() (*Built, error) {
	c := circuit.New()

	u, err := c.External("u")
	if err != nil {
		return nil, err
	}
	nodes, err := c.Nodes("v_in", "v_out")
	if err != nil {
		return nil, err
	}
	vIn, vOut := nodes[0], nodes[1]

	if _, err := c.VoltageSource(vIn, c.Ground(), exprPtr(linalg.Sym(u))); err != nil {
		return nil, err
	}
	if _, err := c.Diode(vIn, vOut, 0.7); err != nil {
		return nil, err
	}
	if _, err := c.Resistor(vOut, c.Ground(), 100); err != nil {
		return nil, err
	}
	c.Output(vOut)

	return &Built{Circuit: c, Dt: 1e-3}, nil
}

// Transformer is scenario E: an ideal 1:2 transformer with resistive
// loads on both windings.
func Transformer() (*Built, error) {
	c := circuit.New()

	u, err := c.External("u")
	if err != nil {
		return nil, err
	}
	nodes, err := c.Nodes("v_p", "v_s")
	if err != nil {
		return nil, err
	}
	vP, vS := nodes[0], nodes[1]

	if _, err := c.VoltageSource(vP, c.Ground(), exprPtr(linalg.Sym(u))); err != nil {
		return nil, err
	}
	if _, err := c.Transformer(vP, c.Ground(), vS, c.Ground(), 2.0); err != nil {
		return nil, err
	}
	if _, err := c.Resistor(vP, c.Ground(), 50); err != nil {
		return nil, err
	}
	if _, err := c.Resistor(vS, c.Ground(), 200); err != nil {
		return nil, err
	}
	c.Output(vS)

	return &Built{Circuit: c, Dt: 1e-3}, nil
}
