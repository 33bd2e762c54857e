package main

import (
	"errors"

	"github.com/spf13/cobra"

	"sortd/internal/undo"
)

func newUndoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Restore the most recent batch of moves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			rules := ctx.ruleset()
			store := ctx.newStore(logger)
			engine := ctx.newUndoEngine(store, rules, logger)

			restored, total, err := engine.UndoLast()
			if errors.Is(err, undo.ErrNothingToUndo) {
				cmd.Println("Nothing to undo.")
				return nil
			}
			if err != nil {
				return err
			}

			cmd.Printf("Restored %d/%d file(s).\n", restored, total)
			if restored < total {
				cmd.Println("Some files were no longer at their recorded destination and were skipped.")
			}
			return nil
		},
	}
}
