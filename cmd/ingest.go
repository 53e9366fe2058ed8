package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/akif5298/flowstate/config"
	"github.com/akif5298/flowstate/infra/ingest"
	"github.com/akif5298/flowstate/infra/logger"
	"github.com/akif5298/flowstate/infra/storage"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run only the MQTT sample ingest bridge",
	RunE:  runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logg := logger.New("ingest-command")
	db, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logg.Errorf("storage close: %v", err)
		}
	}()

	collector, err := ingest.NewCollector(cfg.Ingest, storage.NewWriter(db), logg)
	if err != nil {
		return fmt.Errorf("ingest collector: %w", err)
	}
	return collector.Run(ctx)
}
