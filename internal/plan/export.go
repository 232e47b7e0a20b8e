package plan

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"fromrow-generator/internal/common"
	"fromrow-generator/internal/mapping"
	"fromrow-generator/internal/naming"
)

// ExportSchema pins the resolved columns of a plan into a schema file, so
// the columns survive later renames of fields or directives.
func ExportSchema(p *Plan) *mapping.SchemaFile {
	sf := &mapping.SchemaFile{
		Version: mapping.CurrentVersion,
		Runtime: p.Runtime,
		Types:   []mapping.TypeSchema{},
	}

	for i := range p.Records {
		sf.Types = append(sf.Types, exportRecord(&p.Records[i]))
	}

	return sf
}

// ExportSchemaYAML generates the pinned schema file as YAML.
func ExportSchemaYAML(p *Plan) ([]byte, error) {
	return mapping.Marshal(ExportSchema(p))
}

func exportRecord(rec *RecordPlan) mapping.TypeSchema {
	ts := mapping.TypeSchema{
		Type: common.PkgAlias(rec.Type.ID.PkgPath) + "." + rec.Type.ID.Name,
	}

	if rec.Naming != naming.Same {
		ts.Naming = rec.Naming.String()
	}

	for _, f := range rec.Fields {
		if f.Column == f.FieldName {
			continue
		}

		if ts.Columns == nil {
			ts.Columns = make(map[string]string)
		}

		ts.Columns[f.FieldName] = f.Column
	}

	for _, s := range rec.Skipped {
		if s.FieldName == "_" {
			continue
		}

		ts.Ignore = append(ts.Ignore, s.FieldName)
	}

	return ts
}

// Report is a printable summary of a plan.
type Report struct {
	Records []RecordReport
}

// RecordReport describes one resolved record.
type RecordReport struct {
	Type    string
	Naming  string
	Fields  []FieldReport
	Skipped []SkippedField
}

// FieldReport describes one resolved field.
type FieldReport struct {
	Field    string
	Type     string
	Column   string
	Source   string
	Wrapper  string
	Required bool
	Narrow   string
}

// GenerateReport creates a report from a resolved plan.
func GenerateReport(p *Plan) *Report {
	report := &Report{Records: []RecordReport{}}

	for _, rec := range p.Records {
		rr := RecordReport{
			Type:    rec.Type.ID.String(),
			Naming:  rec.Naming.String(),
			Fields:  []FieldReport{},
			Skipped: rec.Skipped,
		}

		for _, f := range rec.Fields {
			rr.Fields = append(rr.Fields, FieldReport{
				Field:    f.FieldName,
				Type:     f.TypeString,
				Column:   f.Column,
				Source:   f.ColumnSource.String(),
				Wrapper:  f.Wrapper.String(),
				Required: f.Required,
				Narrow:   f.NarrowMethod(),
			})
		}

		report.Records = append(report.Records, rr)
	}

	return report
}

// FormatReport formats a report as aligned human-readable text.
func FormatReport(report *Report) string {
	var sb strings.Builder

	for _, rec := range report.Records {
		fmt.Fprintf(&sb, "\n=== %s (naming=%s) ===\n", rec.Type, rec.Naming)

		tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "FIELD\tTYPE\tCOLUMN\tSOURCE\tREQUIRED\tNARROW")

		for _, f := range rec.Fields {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n",
				f.Field, f.Type, f.Column, f.Source, f.Required, f.Narrow)
		}

		_ = tw.Flush()

		for _, s := range rec.Skipped {
			fmt.Fprintf(&sb, "  skipped %s: %s\n", s.FieldName, s.Reason)
		}
	}

	return sb.String()
}
