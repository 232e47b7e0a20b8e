package main

import (
	"fmt"
	"io"

	"fromrow-generator/internal/gen"
	"fromrow-generator/internal/plan"
)

func runGen(args []string, stdout, stderr io.Writer) int {
	var (
		opts       loadOptions
		outputDir  string
		runtime    string
		noComments bool
		dryRun     bool
		strict     bool
	)

	fs := newFlagSet("gen", stderr)
	opts.register(fs)
	fs.StringVarP(&outputDir, "out", "o", "", "write files here instead of next to each record (single package only)")
	fs.StringVar(&runtime, "runtime", "", "import path of the runtime package (default "+gen.DefaultRuntimeImport+")")
	fs.BoolVar(&noComments, "no-comments", false, "omit doc comments from generated methods")
	fs.BoolVar(&dryRun, "dry-run", false, "print generated files instead of writing them")
	fs.BoolVar(&strict, "strict", false, "treat duplicate columns as errors")

	if code, done := parseFlags(fs, args, stderr); done {
		return code
	}

	logger := newLogger(stderr, opts.verbose)

	cfg := plan.DefaultConfig()
	cfg.StrictMode = strict

	p, err := resolvePlan(&opts, cfg, logger)
	if err != nil {
		logger.Error("planning failed", "error", err)
		return exitFail
	}

	if err := reportDiagnostics(&p.Diagnostics, logger); err != nil {
		logger.Error("records have errors, nothing generated", "errors", len(p.Diagnostics.Errors))
		return exitFail
	}

	genCfg := gen.DefaultGeneratorConfig()
	genCfg.RuntimeImport = runtime
	genCfg.OutputDir = outputDir
	genCfg.GenerateComments = !noComments

	files, err := gen.NewGenerator(genCfg).Generate(p)
	if err != nil {
		logger.Error("generation failed", "error", err)
		return exitFail
	}

	if dryRun {
		for _, f := range files {
			fmt.Fprintf(stdout, "// ==== %s ====\n%s\n", f.Path(), f.Content)
		}

		return exitOK
	}

	if err := gen.WriteFiles(files, outputDir); err != nil {
		logger.Error("writing files failed", "error", err)
		return exitFail
	}

	for _, f := range files {
		logger.Info("generated", "file", f.Path())
	}

	if len(files) == 0 {
		logger.Warn("no records found, mark a struct with //fromrow:generate or list it in the schema file")
	}

	return exitOK
}
