package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"backlot/internal/artifact"
	"backlot/internal/catalog"
	"backlot/internal/daemon"
	"backlot/internal/generation"
	"backlot/internal/logging"
	"backlot/internal/studio"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the backlot daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			store, err := artifact.Open(cfg)
			if err != nil {
				logger.Error("open artifact store", logging.Error(err))
				return err
			}
			defer store.Close()

			session := studio.NewSession(
				store,
				catalog.New(cfg.Catalog),
				generation.New(cfg.Generation),
				logger,
			)

			d, err := daemon.New(cfg, store, session, logger)
			if err != nil {
				return fmt.Errorf("create daemon: %w", err)
			}
			defer d.Close()

			if err := d.Start(signalCtx); err != nil {
				return err
			}

			<-signalCtx.Done()
			logger.Info("backlot daemon shutting down")
			return nil
		},
	}
}
