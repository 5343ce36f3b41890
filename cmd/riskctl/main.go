// Command riskctl is the operations CLI for the accident risk store: it
// ingests and validates CSV datasets, generates sample data, and prints area
// risk assessments without going through the HTTP service.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"roadrisk/internal/domain"
	"roadrisk/internal/ingest"
	"roadrisk/internal/observability"
	"roadrisk/internal/risk"
	"roadrisk/internal/store"
)

var (
	dbPath  string
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "riskctl",
		Short: "Road accident risk analysis toolkit",
		Long: `riskctl loads road accident records into the risk store, generates
sample datasets, and reports per-area risk assessments.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "roadrisk.db", "path to the SQLite record store")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log per-row ingest detail")

	rootCmd.AddCommand(ingestCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(statsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func openStore() (*store.Store, error) {
	st, err := store.Open(dbPath, domain.NewValidator(domain.WorldBounds()))
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", dbPath, err)
	}
	return st, nil
}

// ingestCmd loads one or more CSV files into the record store.
func ingestCmd() *cobra.Command {
	var batchSize int

	cmd := &cobra.Command{
		Use:   "ingest [file...]",
		Short: "Ingest accident records from CSV files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			logger := newLogger()
			metrics := observability.NewMetrics()

			var total ingest.Summary
			for _, path := range args {
				sum, err := ingestFile(cmd.Context(), path, st, logger, metrics, batchSize)
				if err != nil {
					return fmt.Errorf("ingest %s: %w", path, err)
				}
				fmt.Printf("%s: %d rows, %d admitted, %d rejected\n",
					path, sum.Rows, sum.Admitted, sum.Rejected)
				total.Rows += sum.Rows
				total.Admitted += sum.Admitted
				total.Rejected += sum.Rejected
			}

			if len(args) > 1 {
				fmt.Printf("total: %d rows, %d admitted, %d rejected\n",
					total.Rows, total.Admitted, total.Rejected)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch-size", 200, "rows per insert batch")
	return cmd
}

func ingestFile(ctx context.Context, path string, st *store.Store, logger *slog.Logger, metrics *observability.Metrics, batchSize int) (ingest.Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return ingest.Summary{}, err
	}
	defer f.Close()

	p := ingest.New(ingest.NewCSVExtractor(f), ingest.NewTransformer(nil, logger), st, nil, logger, metrics, batchSize)
	return p.Run(ctx)
}

// statsCmd prints per-area assessments, or area-hour hotspots with --by-hour.
func statsCmd() *cobra.Command {
	var (
		asJSON bool
		byHour bool
		top    int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Report per-area risk assessments",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			records, err := st.All(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch records: %w", err)
			}
			if len(records) == 0 {
				fmt.Println("store is empty; run riskctl ingest first")
				return nil
			}

			if byHour {
				spots := hotspots(records)
				if top > 0 && len(spots) > top {
					spots = spots[:top]
				}
				if asJSON {
					return printJSON(spots)
				}
				fmt.Printf("%-28s %8s %8s %s\n", "AREA@HOUR", "RECORDS", "SCORE", "TIER")
				for _, h := range spots {
					fmt.Printf("%-28s %8d %8.1f %s\n", h.Key, h.Records, h.Score, h.Tier)
				}
				return nil
			}

			assessments := risk.AssessAreas(records)
			if asJSON {
				return printJSON(assessments)
			}

			fmt.Printf("%-24s %8s %11s %8s %-10s %s\n",
				"AREA", "RECORDS", "FATALITIES", "SCORE", "TIER", "DOMINANT CAUSE")
			for _, a := range assessments {
				fmt.Printf("%-24s %8d %11d %8.1f %-10s %s\n",
					a.Area, a.Records, a.Fatalities, a.Score, a.Tier, a.DominantCause)
			}
			fmt.Printf("\n%d records across %d areas\n", len(records), len(assessments))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit results as JSON")
	cmd.Flags().BoolVar(&byHour, "by-hour", false, "rank area-hour hotspots instead of areas")
	cmd.Flags().IntVar(&top, "top", 10, "max hotspots to list with --by-hour (0 = all)")
	return cmd
}

// hotspot is one area-hour group ranked against the full area-hour
// population.
type hotspot struct {
	Key     string    `json:"key"`
	Records int       `json:"records"`
	Score   float64   `json:"score"`
	Tier    risk.Tier `json:"tier"`
}

func hotspots(records []domain.Record) []hotspot {
	grouping := risk.GroupBy(records, risk.AreaHourKey)
	keys := grouping.Keys()

	scores := make([]float64, len(keys))
	for i, key := range keys {
		scores[i] = risk.Score(grouping.Group(key))
	}

	out := make([]hotspot, len(keys))
	for i, key := range keys {
		out[i] = hotspot{
			Key:     key,
			Records: len(grouping.Group(key)),
			Score:   scores[i],
			Tier:    risk.Classify(scores[i], scores),
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	return out
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
