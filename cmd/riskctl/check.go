package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"roadrisk/internal/domain"
	"roadrisk/internal/ingest"
)

// checkCmd dry-runs admission over CSV files without touching the store.
func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file...]",
		Short: "Validate CSV files without ingesting them",
		Long: `check runs every row through the same transform and admission checks as
ingest, reports problems per line, and writes nothing.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transformer := ingest.NewTransformer(nil, newLogger())
			validator := domain.NewValidator(domain.WorldBounds())

			failed := false
			for _, path := range args {
				bad, total, err := checkFile(cmd.Context(), path, transformer, validator)
				if err != nil {
					return fmt.Errorf("check %s: %w", path, err)
				}
				if len(bad) == 0 {
					fmt.Printf("%s: %d rows OK\n", path, total)
					continue
				}
				failed = true
				fmt.Printf("%s: %d of %d rows invalid\n", path, len(bad), total)
				for _, b := range bad {
					fmt.Printf("  line %d: %s\n", b.line, b.reason)
				}
			}
			if failed {
				return errors.New("validation failed")
			}
			return nil
		},
	}
}

type badRow struct {
	line   int
	reason string
}

// checkFile transforms and admits every row of one CSV, collecting per-line
// failures. Duplicate accident numbers within the file are flagged the same
// way the store's unique index would reject them.
func checkFile(ctx context.Context, path string, transformer *ingest.RowTransformer, validator *domain.Validator) ([]badRow, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	extractor := ingest.NewCSVExtractor(f)
	seen := make(map[string]int)

	var bad []badRow
	total := 0
	for {
		rows, err := extractor.ExtractBatch(ctx, 500)
		if err != nil {
			return nil, total, err
		}
		if len(rows) == 0 {
			return bad, total, nil
		}

		for _, row := range rows {
			total++
			in, err := transformer.Transform(ctx, row)
			if err != nil {
				bad = append(bad, badRow{line: row.Line, reason: err.Error()})
				continue
			}
			if _, err := validator.Admit(in); err != nil {
				bad = append(bad, badRow{line: row.Line, reason: err.Error()})
				continue
			}
			if first, ok := seen[in.AccidentNo]; ok {
				bad = append(bad, badRow{
					line:   row.Line,
					reason: fmt.Sprintf("duplicate accident_no %q, first seen on line %d", in.AccidentNo, first),
				})
				continue
			}
			seen[in.AccidentNo] = row.Line
		}
	}
}
