package main

import "github.com/gitrdm/eqsat/eqsat"

// parseExpr parses a single arithmetic expression (same grammar as one side
// of a rule line, see rulefile.go) into a Node tree. It is implemented by
// parsing a Pattern and instantiating it with no bindings: every
// identifier becomes a fresh free Variable, exactly per
// eqsat.Instantiate's rule for an unbound VariablePattern. This reuses the
// rule-file grammar instead of maintaining a second, node-flavored parser.
func parseExpr(src string) (eqsat.Node, error) {
	pat, err := parsePattern(src)
	if err != nil {
		return nil, err
	}
	return eqsat.Instantiate(pat, eqsat.Bindings{}), nil
}
