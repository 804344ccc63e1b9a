package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sajals2410/elyx-assignment/config"
	"github.com/sajals2410/elyx-assignment/infra/store"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List persisted scheduling runs",
	RunE:  listRuns,
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 10, "maximum number of runs to show")
	rootCmd.AddCommand(runsCmd)
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var plans store.PlanStore
	switch cfg.Store.Backend {
	case "jsonl":
		plans, err = store.NewJSONLStore(cfg.Store.Path)
	case "sqlite":
		plans, err = store.NewSQLiteStore(cfg.Store.Path)
	default:
		return fmt.Errorf("no plan store configured")
	}
	if err != nil {
		return err
	}
	defer func() { _ = plans.Close() }()

	recs, err := plans.Query(context.Background(), store.PlanQuery{Limit: runsLimit})
	if err != nil {
		return err
	}
	for _, r := range recs {
		fmt.Printf("%s  %s  %s to %s  placed=%d backups=%d conflicts=%d\n",
			r.RunID, r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Stats.StartDate, r.Stats.EndDate,
			r.Stats.TotalScheduled, r.Stats.BackupsUsed, r.Stats.Conflicts)
	}
	if len(recs) == 0 {
		fmt.Println("no runs recorded")
	}
	return nil
}
