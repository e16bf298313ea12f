package circuit

import (
	"fmt"

	"github.com/msdsl-go/pwlc/pkg/symtab"
)

// NonLinearInputError reports a source expr that references a symbol
// other than one of the circuit's declared external symbols — not
// linear in the externals, per spec.md §7.
type NonLinearInputError struct {
	Element string
	Symbol  symtab.Symbol
}

func (e *NonLinearInputError) Error() string {
	return fmt.Sprintf("circuit: %s: expr term on symbol %d is not an external symbol", e.Element, e.Symbol)
}
