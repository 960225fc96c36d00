package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "formpass",
		Short: "Run the form bundle compiler passes over a container dump",
		Long: `formpass loads a YAML container dump (classes + service definitions),
registers the bundle defaults, runs the compiler pipeline and writes the
compiled definitions back as YAML.`,
		Version: version,
		// errors are printed once by main
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(`{{printf "formpass version %s\n" .Version}}`)

	root.AddCommand(newCompileCmd())
	root.AddCommand(newVersionCmd(version))
	return root
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of formpass",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "formpass version %s\n", version)
		},
	}
}
