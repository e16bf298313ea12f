// Package caseio is the ambient JSON I/O wrapper around the compiled
// case table: spec.md §1 explicitly excludes "the JSON I/O wrapper"
// from the symbolic-compiler core, so this package carries no solving
// logic — only the wire schema from spec.md §6 and the Marshal/
// Unmarshal round trip a downstream mixed-signal model runtime
// consumes. It plays the role msdsl/format.py plays around the
// original circuit compiler, rebuilt on encoding/json struct tags
// instead of a schema-validation library (see DESIGN.md).
package caseio

import "encoding/json"

// LinForm is a linear form {vars: {symbol: coeff}, const}, spec.md's
// wire representation for every solved expression.
type LinForm struct {
	Vars  map[string]float64 `json:"vars"`
	Const float64            `json:"const"`
}

// DiodeSolution is the solved {v, i} pair for one diode in one case.
type DiodeSolution struct {
	V LinForm `json:"v"`
	I LinForm `json:"i"`
}

// DiodeMeta describes a diode's port symbol names and forward drop,
// independent of any particular case.
type DiodeMeta struct {
	V  string  `json:"v"`
	I  string  `json:"i"`
	Vf float64 `json:"vf"`
}

// Case is the compiled update law for one mode assignment.
type Case struct {
	DynModes map[string]string        `json:"dyn_modes"`
	States   map[string]LinForm       `json:"states"`
	Diodes   map[string]DiodeSolution `json:"diodes"`
	Outputs  map[string]LinForm       `json:"outputs"`
}

// CaseTable is the top-level JSON artifact spec.md §6 describes,
// consumed by the downstream mixed-signal model runtime.
type CaseTable struct {
	Dt      float64              `json:"dt"`
	ExtSyms []string             `json:"ext_syms"`
	Mosfets []string             `json:"mosfets"`
	States  []string             `json:"states"`
	Outputs []string             `json:"outputs"`
	Diodes  map[string]DiodeMeta `json:"diodes"`
	Cases   []Case               `json:"cases"`
}

// Marshal serializes t to pretty-printed JSON with deterministic key
// ordering for map fields (encoding/json already sorts map keys).
func Marshal(t *CaseTable) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// Unmarshal parses a case table previously produced by Marshal.
func Unmarshal(data []byte) (*CaseTable, error) {
	var t CaseTable
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
