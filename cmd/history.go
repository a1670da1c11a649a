package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/adphone/internal/history"
	"github.com/sells-group/adphone/internal/model"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent extraction attempts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("history"); err != nil {
			return err
		}
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		reader := history.NewReader(st, cfg.History.DefaultLimit)

		// Same rules as the HTTP limit parameter; unset means the configured default.
		limit, err := reader.ParseLimit(cmd.Flags().Lookup("limit").Value.String(), cmd.Flags().Changed("limit"))
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		stats, _ := cmd.Flags().GetBool("stats")

		entries, err := reader.List(ctx, limit)
		if err != nil {
			return eris.Wrap(err, "history")
		}

		return writeHistory(os.Stdout, entries, format, stats)
	},
}

func init() {
	historyCmd.Flags().Int("limit", history.DefaultLimit, "max number of records to display")
	historyCmd.Flags().String("format", "table", "output format (table, json, yaml)")
	historyCmd.Flags().Bool("stats", false, "append success/failure counts, success rate and total spend")
	rootCmd.AddCommand(historyCmd)
}

// historyOutput is the json/yaml document; Summary is set with --stats.
type historyOutput struct {
	History []model.HistoryEntry `json:"history" yaml:"history"`
	Summary *history.Summary     `json:"summary,omitempty" yaml:"summary,omitempty"`
}

func writeHistory(out io.Writer, entries []model.HistoryEntry, format string, withStats bool) error {
	doc := historyOutput{History: entries}
	if withStats {
		sum := history.Summarize(entries)
		doc.Summary = &sum
	}

	switch format {
	case "table", "":
		if len(entries) == 0 {
			fmt.Fprintln(os.Stderr, "No records found.")
			return nil
		}
		formatHistoryTable(out, entries)
		if doc.Summary != nil {
			formatSummary(out, *doc.Summary)
		}
		return nil
	case "json":
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close() //nolint:errcheck
		return enc.Encode(doc)
	default:
		return eris.Errorf("history: unknown format %q", format)
	}
}

// formatSummary writes aggregate stats to w.
func formatSummary(out io.Writer, s history.Summary) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Total:\t%d\n", s.Total)
	_, _ = fmt.Fprintf(w, "Success:\t%d\n", s.Success)
	_, _ = fmt.Fprintf(w, "Failed:\t%d\n", s.Failed)
	_, _ = fmt.Fprintf(w, "Success rate:\t%d%%\n", s.SuccessRate)
	_, _ = fmt.Fprintf(w, "Total spend:\t%d\n", s.TotalCost)
	_ = w.Flush()
}

// formatHistoryTable writes a tabular list of records to w.
func formatHistoryTable(out io.Writer, entries []model.HistoryEntry) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tPLATFORM\tSTATUS\tPHONE\tCOST\tCREATED\tURL")
	_, _ = fmt.Fprintln(w, "--\t--------\t------\t-----\t----\t-------\t---")

	for _, e := range entries {
		created := "-"
		if e.Timestamp != nil {
			created = *e.Timestamp
		}
		phone := e.Phone
		if phone == "" {
			phone = "-"
		}
		url := e.URL
		if len(url) > 50 {
			url = url[:47] + "..."
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			truncateID(e.ID),
			e.Platform,
			e.Status,
			phone,
			e.Cost,
			created,
			url,
		)
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
