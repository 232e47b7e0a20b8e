package main

import (
	"fmt"
	"io"

	"fromrow-generator/internal/mapping"
	"fromrow-generator/internal/plan"
)

func runAnalyze(args []string, stdout, stderr io.Writer) int {
	var (
		opts    loadOptions
		explain bool
		export  string
	)

	fs := newFlagSet("analyze", stderr)
	opts.register(fs)
	fs.BoolVar(&explain, "explain", false, "report where every renamed column comes from")
	fs.StringVar(&export, "export", "", "write a schema file pinning the resolved columns (\"-\" for stdout)")

	if code, done := parseFlags(fs, args, stderr); done {
		return code
	}

	logger := newLogger(stderr, opts.verbose)

	cfg := plan.DefaultConfig()
	cfg.Explain = explain

	p, err := resolvePlan(&opts, cfg, logger)
	if err != nil {
		logger.Error("planning failed", "error", err)
		return exitFail
	}

	diagErr := reportDiagnostics(&p.Diagnostics, logger)

	switch export {
	case "":
		fmt.Fprint(stdout, plan.FormatReport(plan.GenerateReport(p)))
	case "-":
		data, err := plan.ExportSchemaYAML(p)
		if err != nil {
			logger.Error("export failed", "error", err)
			return exitFail
		}

		if _, err := stdout.Write(data); err != nil {
			return exitFail
		}
	default:
		if err := mapping.WriteFile(plan.ExportSchema(p), export); err != nil {
			logger.Error("export failed", "error", err)
			return exitFail
		}

		logger.Info("schema file written", "path", export, "types", len(p.Records))
	}

	if diagErr != nil {
		return exitFail
	}

	return exitOK
}
