package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show server uptime and counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := newClient().Health(cmd.Context())
			if err != nil {
				return err
			}
			data := pterm.TableData{
				{"Status", pterm.FgGreen.Sprint(h.Status)},
				{"Uptime", h.Uptime},
				{"Entries", fmt.Sprintf("%d", h.Entries)},
				{"Resets", fmt.Sprintf("%d", h.Resets)},
				{"Goroutines", fmt.Sprintf("%d", h.Goroutines)},
			}
			return pterm.DefaultTable.WithBoxed().WithData(data).Render()
		},
	}
}
