package main

import (
	"github.com/spf13/cobra"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "organize",
		Short: "Move files from the source roots into the classified target tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := buildPlan(ctx)
			if err != nil {
				return err
			}
			printPlan(cmd, p)
			if p.Total() == 0 {
				return nil
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store := ctx.newStore(logger)
			moved, total, err := ctx.newExecutor(store, logger).Execute(p)
			if err != nil {
				return err
			}

			cmd.Printf("\nMoved %d/%d file(s).\n", moved, total)
			cmd.Println("Run 'sortd undo' to put them back.")
			return nil
		},
	}
}
