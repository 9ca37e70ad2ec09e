// Command egraphctl is a demonstration CLI over the eqsat engine: it loads
// an arithmetic expression and an optional rule file, saturates an
// e-graph, and prints or serves the result. None of this is part of the
// engine's core contract (see eqsat package doc) — it is the kind of
// surface syntax and demo tooling spec section 1 calls an external
// collaborator.
package main

import (
	"os"

	"github.com/hashicorp/cli"

	"github.com/gitrdm/eqsat/eqsat"
)

func main() {
	c := cli.NewCLI("egraphctl", eqsat.Version)
	c.Args = os.Args[1:]
	c.Commands = map[string]cli.CommandFactory{
		"check": func() (cli.Command, error) {
			return &CheckCommand{UI: os.Stdout}, nil
		},
		"rules": func() (cli.Command, error) {
			return &RulesCommand{UI: os.Stdout}, nil
		},
		"nodes": func() (cli.Command, error) {
			return &NodesCommand{UI: os.Stdout}, nil
		},
		"serve": func() (cli.Command, error) {
			return &ServeCommand{UI: os.Stdout}, nil
		},
		"version": func() (cli.Command, error) {
			return &VersionCommand{UI: os.Stdout}, nil
		},
	}

	exitStatus, err := c.Run()
	if err != nil {
		os.Exit(1)
	}
	os.Exit(exitStatus)
}
