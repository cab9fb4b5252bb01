package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every entry and restart the board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, _ := pterm.DefaultInteractiveConfirm.
					WithDefaultText("This removes every entry on " + serverURL + ". Continue?").
					Show()
				if !ok {
					pterm.Info.Println("Aborted.")
					return nil
				}
			}

			res, err := newClient().Reset(cmd.Context())
			if err != nil {
				return err
			}
			pterm.Success.Printf("%s at %s\n", res.Message, formatReset(res.LastReset))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
