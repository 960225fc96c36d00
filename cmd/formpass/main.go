// Command formpass compiles a YAML container dump through the form bundle's
// compiler passes and prints the resulting definitions.
package main

import (
	"fmt"
	"io"
	"os"
)

// version can be set during build with -ldflags.
var version = "dev"

func run(args []string, stdout, stderr io.Writer) error {
	root := newRootCmd(version)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "formpass:", err)
		os.Exit(1)
	}
}
