package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pgierz/snakemake-wrapper-esm-master/internal/cli"
	"github.com/pgierz/snakemake-wrapper-esm-master/internal/config"
	"github.com/pgierz/snakemake-wrapper-esm-master/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:          "history",
	Short:        "List recently resolved resource requests",
	Example:      `  esmwrap history -n 10`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of entries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if !config.Global.HistoryEnabled {
		cli.PrintMessage("History is disabled (set history.enabled: true to record resolutions).")
		return nil
	}

	store, err := history.Open(config.Global.HistoryDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		cli.PrintMessage("No resolutions recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tEXPID\tTASK\tNODES\tTASKS\tMEM_MB\tRUNTIME\tPARTITION\tACCOUNT")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.ExpID, e.Task,
			nullCol(e.Nodes), nullCol(e.Tasks), nullCol(e.MemMB), nullCol(e.Runtime),
			dashIfEmpty(e.Partition), dashIfEmpty(e.Account))
	}
	return w.Flush()
}

func nullCol(v sql.NullInt64) string {
	if !v.Valid {
		return "-"
	}
	return fmt.Sprintf("%d", v.Int64)
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
