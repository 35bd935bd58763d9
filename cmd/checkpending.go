/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beatrizzfernandes/gestao-equipamentos/config"
	"github.com/beatrizzfernandes/gestao-equipamentos/internal/notify"
	"github.com/beatrizzfernandes/gestao-equipamentos/internal/services"
	"github.com/beatrizzfernandes/gestao-equipamentos/internal/store"
)

// checkpendingCmd runs the due-date sweep once and exits. Meant to be
// scheduled from cron as an alternative to the sweep the server runs at
// startup.
var checkpendingCmd = &cobra.Command{
	Use:   "checkpending",
	Short: "Run the due-date sweep once",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := zap.NewProduction()
		if err != nil {
			return err
		}
		defer log.Sync()

		cfg := config.LoadConfig()
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		backend, err := store.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer backend.Close()

		notifier, err := notify.Open(cfg.Notifier, log)
		if err != nil {
			return err
		}
		defer notifier.Close()

		ledger := services.NewLedgerService(backend, notifier, log)
		alerts, err := ledger.CheckPending(ctx)
		if err != nil {
			return err
		}
		for _, alert := range alerts {
			fmt.Printf("%s: record %d (%s) due %s\n",
				alert.Kind, alert.Reservation.ID, alert.Reservation.UserEmail, alert.Reservation.DueDate)
		}
		fmt.Printf("%d alert(s) sent\n", len(alerts))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkpendingCmd)
}
