package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fintrack/internal/models"
)

func categoryCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := app.svcs.Categories.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			w := newTable(out, "Name", "Protected")
			defer w.Flush()
			for _, n := range names {
				protected := ""
				if models.IsProtectedCategory(n) {
					protected = "yes"
				}
				row(w, n, protected)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := app.svcs.Categories.Add(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Category %q added\n", name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.svcs.Categories.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Category %q deleted\n", args[0])
			return nil
		},
	})

	return cmd
}
