package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/drivebay/drivebay/internal/daemon"
	"github.com/drivebay/drivebay/internal/infra/audit"
)

var auditLimit int

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.Flags().IntVar(&auditLimit, "limit", 50, "Number of entries to show")
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent entries from the operation journal",
	RunE:  runAudit,
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Audit.Dir == "" {
		return fmt.Errorf("audit journal is in-memory; set [audit].dir in the config to persist it")
	}

	journal, err := audit.Open(cfg.Audit.Dir)
	if err != nil {
		return err
	}
	defer journal.Close()

	entries, err := journal.Recent(cmd.Context(), auditLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("journal is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tENTITY\tID\tACTION\tDETAIL")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.RecordedAt.Local().Format(time.DateTime), e.Entity, e.EntityID, e.Action, e.Detail)
	}
	return w.Flush()
}
