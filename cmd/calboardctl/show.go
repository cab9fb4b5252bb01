package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := newClient().FetchState(cmd.Context())
			if err != nil {
				return err
			}

			pterm.DefaultSection.Println("Leaderboard")
			pterm.Info.Printf("Last reset: %s\n", formatReset(state.LastReset))

			if len(state.Users) == 0 {
				pterm.Warning.Println("No entries yet.")
				return nil
			}

			data := pterm.TableData{{"#", "Name", "Total kcal", "Entries"}}
			for i, u := range ranked(state.Users) {
				data = append(data, []string{
					fmt.Sprintf("%d", i+1),
					u.Name,
					pterm.FgYellow.Sprint(u.TotalCalories),
					fmt.Sprintf("%d", len(u.Logs)),
				})
			}
			return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()
		},
	}
}
