package main

import (
	"fmt"

	"github.com/fwojciec/biomark"
	"github.com/fwojciec/biomark/fs"
)

// Run executes the records command.
func (c *RecordsCmd) Run(deps *Dependencies) error {
	filter := biomark.RecordFilter{Limit: c.Limit}
	if c.Name != "" {
		filter.Name = &c.Name
	}

	recs, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", biomark.ErrorMessage(err))
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found. Run 'biomark' to extract some.")
		return nil
	}

	for _, r := range recs {
		protein, _ := r.Fields[biomark.FieldProteinName].(string)
		if protein == "" {
			protein = "-"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", r.ID, r.Name, protein, r.SourceURL)

		if c.Full {
			body, err := fs.FormatRecord(r.Fields)
			if err != nil {
				return err
			}
			_, _ = deps.Stdout.Write(body)
		}
	}

	return nil
}
