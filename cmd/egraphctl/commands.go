package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gitrdm/eqsat/eqsat"
)

// loadRules opens and parses path, or returns an empty rule set if path is
// empty (a bare congruence-closure run is a legitimate spec scenario).
func loadRules(path string) ([]eqsat.Rule, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rule file: %w", err)
	}
	defer f.Close()
	return parseRuleFile(f)
}

// CheckCommand loads an expression and an optional rule file, saturates,
// and prints the equivalence class of the root expression.
type CheckCommand struct {
	UI io.Writer
}

func (c *CheckCommand) Help() string {
	return strings.TrimSpace(`
Usage: egraphctl check [options]

  Builds an e-graph from an expression and a rule file, then prints every
  node equivalent to the root expression.

Options:

  -expr=<expr>    Arithmetic expression, e.g. "x * 2 / 2" (required)
  -rules=<path>   Rule file, one "lhs => rhs" line per rule (optional)
`)
}

func (c *CheckCommand) Synopsis() string {
	return "Print the equivalence class of an expression"
}

func (c *CheckCommand) Run(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	expr := fs.String("expr", "", "arithmetic expression to evaluate")
	rulesPath := fs.String("rules", "", "path to a rule file")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *expr == "" {
		fmt.Fprintln(c.UI, "egraphctl check: -expr is required")
		return 1
	}

	root, err := parseExpr(*expr)
	if err != nil {
		fmt.Fprintf(c.UI, "egraphctl check: parsing expression: %v\n", err)
		return 1
	}
	rules, err := loadRules(*rulesPath)
	if err != nil {
		fmt.Fprintf(c.UI, "egraphctl check: %v\n", err)
		return 1
	}

	graph, err := eqsat.NewEGraph(rules, root)
	if err != nil {
		fmt.Fprintf(c.UI, "egraphctl check: %v\n", err)
		return 1
	}

	fmt.Fprintf(c.UI, "root: %s\n", root)
	fmt.Fprintln(c.UI, "equivalent to:")
	for _, n := range graph.EquivalentTo(root) {
		fmt.Fprintf(c.UI, "  %s\n", n)
	}
	return 0
}

// RulesCommand parses and prints a rule file without building an e-graph —
// useful for validating a rule file's syntax in isolation.
type RulesCommand struct {
	UI io.Writer
}

func (c *RulesCommand) Help() string {
	return strings.TrimSpace(`
Usage: egraphctl rules -rules=<path>

  Parses a rule file and prints each rule it contains.
`)
}

func (c *RulesCommand) Synopsis() string {
	return "Validate and print a rule file"
}

func (c *RulesCommand) Run(args []string) int {
	fs := flag.NewFlagSet("rules", flag.ContinueOnError)
	rulesPath := fs.String("rules", "", "path to a rule file")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *rulesPath == "" {
		fmt.Fprintln(c.UI, "egraphctl rules: -rules is required")
		return 1
	}

	rules, err := loadRules(*rulesPath)
	if err != nil {
		fmt.Fprintf(c.UI, "egraphctl rules: %v\n", err)
		return 1
	}

	for i, r := range rules {
		fmt.Fprintf(c.UI, "%d: %s => %s\n", i, r.LHS, r.RHS)
	}
	return 0
}

// NodesCommand loads an expression and rule file, saturates, and prints
// every node the resulting e-graph holds.
type NodesCommand struct {
	UI io.Writer
}

func (c *NodesCommand) Help() string {
	return strings.TrimSpace(`
Usage: egraphctl nodes [options]

  Builds an e-graph and prints every node it holds, across all e-classes.

Options:

  -expr=<expr>    Arithmetic expression, e.g. "x * 2 / 2" (required)
  -rules=<path>   Rule file, one "lhs => rhs" line per rule (optional)
`)
}

func (c *NodesCommand) Synopsis() string {
	return "Print every node in the saturated e-graph"
}

func (c *NodesCommand) Run(args []string) int {
	fs := flag.NewFlagSet("nodes", flag.ContinueOnError)
	expr := fs.String("expr", "", "arithmetic expression to evaluate")
	rulesPath := fs.String("rules", "", "path to a rule file")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *expr == "" {
		fmt.Fprintln(c.UI, "egraphctl nodes: -expr is required")
		return 1
	}

	root, err := parseExpr(*expr)
	if err != nil {
		fmt.Fprintf(c.UI, "egraphctl nodes: parsing expression: %v\n", err)
		return 1
	}
	rules, err := loadRules(*rulesPath)
	if err != nil {
		fmt.Fprintf(c.UI, "egraphctl nodes: %v\n", err)
		return 1
	}

	graph, err := eqsat.NewEGraph(rules, root)
	if err != nil {
		fmt.Fprintf(c.UI, "egraphctl nodes: %v\n", err)
		return 1
	}

	for _, n := range graph.AllNodes() {
		fmt.Fprintln(c.UI, n)
	}
	return 0
}

// VersionCommand prints the engine's version information.
type VersionCommand struct {
	UI io.Writer
}

func (c *VersionCommand) Help() string     { return "Usage: egraphctl version" }
func (c *VersionCommand) Synopsis() string { return "Print version information" }

func (c *VersionCommand) Run(args []string) int {
	info := eqsat.GetVersionInfo()
	fmt.Fprintf(c.UI, "egraphctl %s (%s)\n", info.Version, info.GoVersion)
	return 0
}
