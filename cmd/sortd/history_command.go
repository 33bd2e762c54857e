package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

const maxHistoryBatches = 10

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the most recent organize batches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			store := ctx.newStore(logger)
			batches := store.Load()
			if store.Recovered() {
				cmd.Println("Note: the history file was unreadable and has been reset.")
			}
			if len(batches) == 0 {
				cmd.Println("No history.")
				return nil
			}

			if len(batches) > maxHistoryBatches {
				batches = batches[len(batches)-maxHistoryBatches:]
			}

			rows := make([][]string, 0, len(batches))
			for i := len(batches) - 1; i >= 0; i-- {
				b := batches[i]
				rows = append(rows, []string{
					fmt.Sprintf("#%d", b.ID),
					b.Timestamp.Format("2006-01-02 15:04:05"),
					fmt.Sprintf("%d", len(b.Moves)),
				})
			}
			cmd.Println(renderTable(
				[]string{"Batch", "Time", "Files"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight},
			))

			for i := len(batches) - 1; i >= 0; i-- {
				b := batches[i]
				if len(b.Moves) == 0 {
					continue
				}
				cmd.Printf("#%d\n", b.ID)
				for j, mv := range b.Moves {
					if j == maxListedPerGroup {
						cmd.Printf("  … %d more\n", len(b.Moves)-maxListedPerGroup)
						break
					}
					destFolder := filepath.Dir(mv.Dest)
					if rel, err := filepath.Rel(cfg.Paths.TargetDir, destFolder); err == nil {
						destFolder = rel
					}
					cmd.Printf("  %s → %s/\n", filepath.Base(mv.Source), destFolder)
				}
			}
			return nil
		},
	}
}
