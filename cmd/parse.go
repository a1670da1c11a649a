package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/adphone/internal/cost"
	"github.com/sells-group/adphone/internal/extract"
	"github.com/sells-group/adphone/internal/server"
)

var parseCmd = &cobra.Command{
	Use:   "parse <url>",
	Short: "Extract the phone number from one ad page",
	Long:  "Fetches the ad page, prints the extracted phone number as JSON, and records the attempt when a database is configured.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("parse"); err != nil {
			return err
		}
		ctx := cmd.Context()

		st, err := initOptionalStore(ctx)
		if err != nil {
			return err
		}

		if st != nil {
			defer st.Close() //nolint:errcheck
		}

		ext := extract.New(initFetcher(), st, cost.NewCalculator(cfg.Pricing))
		return runParse(ctx, os.Stdout, ext, args[0])
	},
}

type parseOutput struct {
	Success  bool   `json:"success"`
	Phone    string `json:"phone,omitempty"`
	Platform string `json:"platform,omitempty"`
	URL      string `json:"url"`
	RecordID string `json:"record_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

// runParse extracts from rawURL and writes the outcome as indented JSON.
// Validation and unexpected failures are returned; "not found" is not an error.
func runParse(ctx context.Context, out io.Writer, ext server.Extractor, rawURL string) error {
	res, err := ext.Extract(ctx, rawURL)
	if err != nil {
		return err
	}

	o := parseOutput{
		Success:  res.Found(),
		Phone:    res.Phone,
		Platform: string(res.Platform),
		URL:      res.URL,
		RecordID: res.RecordID,
	}
	if !o.Success {
		o.Error = server.MsgPhoneNotFound
	}

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(o)
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
