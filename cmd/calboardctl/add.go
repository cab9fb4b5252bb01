package main

import (
	"errors"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"calboard/pkg/client"
)

func newAddCmd() *cobra.Command {
	var (
		name      string
		calories  int64
		proofFile string
		date      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log calories for a name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || calories == 0 {
				return errors.New("--name and a non-zero --calories are required")
			}

			entry := client.Entry{Name: name, Calories: calories, Date: date}
			if proofFile != "" {
				proof, err := proofFromFile(proofFile)
				if err != nil {
					return err
				}
				entry.Proof = &proof
			}

			res, err := newClient().AddEntry(cmd.Context(), entry)
			if err != nil {
				return err
			}
			pterm.Success.Printf("%s (id %d)\n", res.Message, res.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Participant name")
	cmd.Flags().Int64VarP(&calories, "calories", "c", 0, "Calories burned")
	cmd.Flags().StringVarP(&proofFile, "proof-file", "p", "", "Image to attach as proof")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Display date (server time when empty)")
	return cmd
}
