package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sajals2410/elyx-assignment/app"
	"github.com/sajals2410/elyx-assignment/config"
	"github.com/sajals2410/elyx-assignment/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "allocator",
	Short: "Health activity allocation engine",
	RunE:  runPlan,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func runPlan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()

	res, err := svc.Plan(ctx)
	if err != nil {
		return err
	}
	if err := svc.WriteOutputs(res); err != nil {
		return err
	}

	stats := res.Stats()
	fmt.Printf("scheduled %d activities (%d via backup), %d conflicts, %s to %s\n",
		stats.TotalScheduled, stats.BackupsUsed, stats.Conflicts, stats.StartDate, stats.EndDate)
	return nil
}
