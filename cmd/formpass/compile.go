package main

import (
	"os"

	"github.com/sghaida/formbundle/compiler"
	"github.com/sghaida/formbundle/config"
	"github.com/sghaida/formbundle/form"
	"github.com/spf13/cobra"
)

type compileOptions struct {
	file        string
	out         string
	noExtension bool
	logLevel    string
}

func newCompileCmd() *cobra.Command {
	opts := &compileOptions{}

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a container dump",
		Long: `Compile loads the dump given with --file, registers the bundle's default
definitions (unless --no-extension), runs the form bundle pass followed by
the reference check, and writes the compiled dump to --out or stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompile(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "container dump to compile (required)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write the compiled dump here instead of stdout")
	cmd.Flags().BoolVar(&opts.noExtension, "no-extension", false, "do not register the bundle's default definitions")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runCompile(cmd *cobra.Command, opts *compileOptions) error {
	level, err := parseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	logger := newSlogLogger(cmd.ErrOrStderr(), level)

	doc, err := config.Load(opts.file)
	if err != nil {
		return err
	}
	reg, err := doc.Registry()
	if err != nil {
		return err
	}

	formOpts := form.Options{Namespace: doc.Namespace, Host: doc.Host}
	ext := form.Extension{Options: formOpts}
	cat := doc.Catalog()
	if !opts.noExtension {
		ext.Declare(cat)
		if err := ext.Load(reg); err != nil {
			return err
		}
	}

	pipeline := compiler.NewPipeline(compiler.WithLogger(logger)).
		AddPass(compiler.CheckReferencesPass{}, compiler.AfterRemoving, 0)
	form.Bundle{Catalog: cat, Options: formOpts, Logger: logger}.Build(pipeline)

	if err := pipeline.Compile(reg); err != nil {
		return err
	}

	raw, err := config.Dump(reg)
	if err != nil {
		return err
	}
	if opts.out == "" {
		_, err = cmd.OutOrStdout().Write(raw)
		return err
	}
	logger.Info("writing compiled dump", "path", opts.out, "services", reg.Len())
	return os.WriteFile(opts.out, raw, 0o644)
}
