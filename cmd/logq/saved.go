package main

import (
	"github.com/spf13/cobra"
)

func newSavedCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "saved",
		Short: "Show the most recently saved matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.SavedLimit
			}
			return a.showSaved(limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 3, "number of records to show")

	return cmd
}
