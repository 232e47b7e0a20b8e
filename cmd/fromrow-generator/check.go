package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"fromrow-generator/fromrow"
	"fromrow-generator/internal/dbconn"
	"fromrow-generator/internal/match"
	"fromrow-generator/internal/plan"
)

// envDSN is read when --dsn is not given, keeping credentials out of shell history.
const envDSN = "FROMROW_DSN"

func runCheck(args []string, stdout, stderr io.Writer) int {
	var (
		opts    loadOptions
		driver  string
		dsn     string
		query   string
		timeout time.Duration
	)

	fs := newFlagSet("check", stderr)
	opts.register(fs)
	fs.StringVar(&driver, "driver", "sqlite", "database driver: sqlite, postgres or mysql")
	fs.StringVar(&dsn, "dsn", "", "data source name (default $"+envDSN+")")
	fs.StringVarP(&query, "query", "q", "", "query whose result columns are checked")
	fs.DurationVar(&timeout, "timeout", dbconn.DefaultTimeout, "connect and query timeout")

	if code, done := parseFlags(fs, args, stderr); done {
		return code
	}

	if len(opts.types) != 1 || query == "" {
		fmt.Fprintln(stderr, "check needs exactly one --type and a --query")
		return exitUsage
	}

	if dsn == "" {
		dsn = os.Getenv(envDSN)
	}

	logger := newLogger(stderr, opts.verbose)

	p, err := resolvePlan(&opts, plan.DefaultConfig(), logger)
	if err != nil {
		logger.Error("planning failed", "error", err)
		return exitFail
	}

	if err := reportDiagnostics(&p.Diagnostics, logger); err != nil {
		return exitFail
	}

	if len(p.Records) != 1 {
		logger.Error("type not found", "type", opts.types[0])
		return exitFail
	}

	rec := &p.Records[0]

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	db, err := dbconn.Open(ctx, dbconn.Config{Driver: driver, DSN: dsn, Timeout: timeout})
	if err != nil {
		logger.Error("connecting failed", "error", err)
		return exitFail
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("query failed", "error", err)
		return exitFail
	}
	defer rows.Close()

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		logger.Error("reading columns failed", "error", err)
		return exitFail
	}

	dbTypes := make(map[string]string, len(columnTypes))
	have := make([]string, 0, len(columnTypes))

	for _, ct := range columnTypes {
		if _, dup := dbTypes[ct.Name()]; !dup {
			dbTypes[ct.Name()] = ct.DatabaseTypeName()
		}

		have = append(have, ct.Name())
	}

	incompatible := writeCheckTable(stdout, rec, dbTypes)

	failed := false

	var colErr *fromrow.ColumnsError
	if err := fromrow.CheckColumns(have, rowColumns(rec)); errors.As(err, &colErr) {
		logger.Error(colErr.Error(), "type", rec.Name())
		failed = true
	}

	if incompatible > 0 {
		logger.Error("columns cannot be narrowed to their fields", "type", rec.Name(), "count", incompatible)
		failed = true
	}

	if failed {
		return exitFail
	}

	fmt.Fprintf(stdout, "%s: ok\n", rec.Name())

	return exitOK
}

// writeCheckTable prints one line per field and returns the number of
// incompatible columns.
func writeCheckTable(w io.Writer, rec *plan.RecordPlan, dbTypes map[string]string) int {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tCOLUMN\tDB TYPE\tVERDICT\tREASON")

	incompatible := 0

	for _, f := range rec.Fields {
		dbType, ok := dbTypes[f.Column]
		if !ok {
			state := "absent"
			if f.Required {
				state = "missing"
			}

			fmt.Fprintf(tw, "%s\t%s\t-\t%s\t\n", f.FieldName, f.Column, state)

			continue
		}

		res := match.ScoreColumnType(dbType, f.Kind)
		if res.Compatibility == match.TypeIncompatible {
			incompatible++
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", f.FieldName, f.Column, dbType, res.Compatibility, res.Reason)
	}

	_ = tw.Flush()

	return incompatible
}

func rowColumns(rec *plan.RecordPlan) []fromrow.Column {
	cols := make([]fromrow.Column, 0, len(rec.Fields))
	for _, f := range rec.Fields {
		cols = append(cols, fromrow.Column{Name: f.Column, Field: f.FieldName, Required: f.Required})
	}

	return cols
}
