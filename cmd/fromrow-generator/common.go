package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"fromrow-generator/internal/analyze"
	"fromrow-generator/internal/diagnostic"
	"fromrow-generator/internal/mapping"
	"fromrow-generator/internal/plan"
)

// loadOptions are the flags shared by every command.
type loadOptions struct {
	packages []string
	config   string
	types    []string
	verbose  bool
}

func (o *loadOptions) register(fs *pflag.FlagSet) {
	fs.StringArrayVarP(&o.packages, "pkg", "p", nil, "package pattern to load (repeatable, default \".\")")
	fs.StringVarP(&o.config, "config", "c", "",
		"schema file (default "+mapping.DefaultFileName+" in the working directory, if present)")
	fs.StringSliceVarP(&o.types, "type", "t", nil, "only plan these types (Name, pkg.Name or import/path.Name)")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log debug output")
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newFlagSet(name string, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false

	return fs
}

// loadSchema reads the schema file. The default file is optional; an
// explicit path must exist.
func loadSchema(path string, logger *slog.Logger) (*mapping.SchemaFile, error) {
	explicit := path != ""
	if !explicit {
		path = mapping.DefaultFileName
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			logger.Debug("no schema file", "path", path)
			return nil, nil
		}

		return nil, fmt.Errorf("schema file: %w", err)
	}

	sf, err := mapping.LoadFile(path)
	if err != nil {
		return nil, err
	}

	logger.Debug("schema file loaded", "path", path, "types", len(sf.Types))

	return sf, nil
}

// resolvePlan loads packages and the schema file and plans the records.
func resolvePlan(opts *loadOptions, cfg plan.ResolutionConfig, logger *slog.Logger) (*plan.Plan, error) {
	patterns := opts.packages
	if len(patterns) == 0 {
		patterns = []string{"."}

		// set by go generate
		if pkg := os.Getenv("GOPACKAGE"); pkg != "" {
			logger.Debug("go generate", "package", pkg, "file", os.Getenv("GOFILE"))
		}
	}

	graph, err := analyze.NewAnalyzer().LoadPackages(patterns...)
	if err != nil {
		return nil, err
	}

	logger.Debug("packages loaded", "patterns", patterns, "packages", len(graph.Packages), "types", len(graph.Types))

	schema, err := loadSchema(opts.config, logger)
	if err != nil {
		return nil, err
	}

	cfg.Types = opts.types

	return plan.NewResolver(graph, schema, cfg).Resolve()
}

// reportDiagnostics logs every diagnostic and returns the combined error.
func reportDiagnostics(diags *diagnostic.Diagnostics, logger *slog.Logger) error {
	for _, d := range diags.All() {
		switch d.Severity {
		case diagnostic.DiagnosticError:
			logger.Error(d.String())
		case diagnostic.DiagnosticWarning:
			logger.Warn(d.String())
		default:
			logger.Info(d.String())
		}
	}

	return diags.Error()
}
