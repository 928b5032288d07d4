// zvalue-gen writes Value conversion methods for the types of a package
// that carry a //zvalue:derive directive.
package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/wippyai/zvalue/codegen"
	"github.com/wippyai/zvalue/derive"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type cliFlags struct {
	config      string
	output      string
	dir         string
	list        bool
	interactive bool
	verbose     bool
}

func parseFlags(args []string) (*pflag.FlagSet, *cliFlags, error) {
	f := &cliFlags{}
	flags := pflag.NewFlagSet("zvalue-gen", pflag.ContinueOnError)
	flags.StringVarP(&f.config, "config", "c", "", "YAML configuration file")
	flags.StringVarP(&f.output, "output", "o", defaultOutput, "generated file name in each package directory")
	flags.StringVarP(&f.dir, "dir", "C", ".", "directory package patterns are resolved in")
	flags.BoolVarP(&f.list, "list", "l", false, "list derived types and exit")
	flags.BoolVarP(&f.interactive, "interactive", "i", false, "browse derived types and generated code")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "log every analysed type")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: zvalue-gen [flags] [packages]")
		flags.PrintDefaults()
	}
	return flags, f, flags.Parse(args)
}

// resolveConfig merges the config file under the flags that were set.
func resolveConfig(flags *pflag.FlagSet, f *cliFlags) (Config, error) {
	cfg, err := LoadConfig(f.config)
	if err != nil {
		return cfg, err
	}
	if flags.Changed("output") {
		cfg.Output = f.output
	}
	if flags.Changed("dir") {
		cfg.Dir = f.dir
	}
	if flags.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if rest := flags.Args(); len(rest) > 0 {
		cfg.Patterns = rest
	}
	return cfg, cfg.Validate()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func run(args []string, stdout io.Writer) error {
	flags, f, err := parseFlags(args)
	if err != nil {
		if stderrors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := resolveConfig(flags, f)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	codegen.SetLogger(log.Named("codegen"))
	derive.SetLogger(log.Named("derive"))

	pkgs, err := codegen.Load(cfg.Dir, cfg.Patterns...)
	if err != nil {
		return err
	}

	switch {
	case f.interactive:
		return runInteractive(pkgs)
	case f.list:
		return printList(stdout, pkgs)
	}
	return writeAll(pkgs, cfg.Output, log)
}

func writeAll(pkgs []*codegen.Package, output string, log *zap.Logger) error {
	for _, pkg := range pkgs {
		src, err := codegen.Generate(pkg)
		if err != nil {
			return fmt.Errorf("generate %s: %w", pkg.Path, err)
		}
		if src == nil {
			log.Debug("no derived types", zap.String("package", pkg.Path))
			continue
		}

		file := filepath.Join(pkg.Dir, output)
		if err := os.WriteFile(file, src, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", file, err)
		}
		log.Info("generated",
			zap.String("file", file),
			zap.Int("types", len(pkg.Types)))
	}
	return nil
}
