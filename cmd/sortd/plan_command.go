package main

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"sortd/internal/plan"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Preview what organize would move, without touching anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := buildPlan(ctx)
			if err != nil {
				return err
			}
			printPlan(cmd, p)
			if p.Total() > 0 {
				cmd.Println("\nRun 'sortd organize' to apply, 'sortd watch' to keep applying.")
			}
			return nil
		},
	}
}

func buildPlan(ctx *commandContext) (*plan.Plan, error) {
	if _, err := ctx.ensureConfig(); err != nil {
		return nil, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}
	rules := ctx.ruleset()
	scanner := ctx.newScanner(rules, logger)
	return scanner.Scan(ctx.sources()), nil
}

const maxListedPerGroup = 3

func printPlan(cmd *cobra.Command, p *plan.Plan) {
	if p.Total() == 0 {
		cmd.Println("Nothing to organize.")
		if len(p.Skipped) > 0 {
			cmd.Printf("Skipped %d file(s) (hidden or still downloading).\n", len(p.Skipped))
		}
		return
	}

	rows := make([][]string, 0, len(p.Groups)+1)
	for _, g := range p.Groups {
		var size int64
		for _, m := range g.Moves {
			size += m.Size
		}
		rows = append(rows, []string{g.Category, fmt.Sprintf("%d", len(g.Moves)), humanize.IBytes(uint64(size))})
	}
	rows = append(rows, []string{"total", fmt.Sprintf("%d", p.Total()), humanize.IBytes(uint64(p.TotalSize()))})
	cmd.Println(renderTable(
		[]string{"Category", "Files", "Size"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight},
	))

	for _, g := range p.Groups {
		cmd.Printf("%s/\n", g.Category)
		for i, m := range g.Moves {
			if i == maxListedPerGroup {
				cmd.Printf("  … %d more\n", len(g.Moves)-maxListedPerGroup)
				break
			}
			name := filepath.Base(m.Source)
			if m.DateFolder != "" {
				cmd.Printf("  %s → %s/\n", name, m.DateFolder)
			} else {
				cmd.Printf("  %s\n", name)
			}
		}
	}

	if len(p.Skipped) > 0 {
		cmd.Printf("\nSkipped %d file(s) (hidden or still downloading).\n", len(p.Skipped))
	}
}
