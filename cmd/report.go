package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/sales-analytics/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the report of the most recent successful run",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return eris.Wrap(err, "report: open store")
		}
		defer st.Close()

		report, err := st.LatestReport(ctx)
		if err != nil {
			return eris.Wrap(err, "report: load")
		}
		if report == nil {
			return eris.New("report: no successful run recorded yet")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
