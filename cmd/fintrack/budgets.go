package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fintrack/internal/money"
)

func budgetCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage monthly category limits",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <MM-YYYY> <category> <limit>",
		Short: "Set the limit of a category for a month",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := parseAmount("limit", args[2])
			if err != nil {
				return err
			}
			b, err := app.svcs.Budgets.SetLimit(args[0], args[1], limit)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Budget for %s in %s set to %s\n", b.Category, b.MonthYear, money.Format(b.Limit))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list <MM-YYYY>",
		Short: "List the limits of a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			budgets, err := app.svcs.Budgets.GetForMonth(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(budgets) == 0 {
				empty(out, "No budgets for "+args[0]+".")
				return nil
			}
			w := newTable(out, "Category", "Limit")
			for _, b := range budgets {
				row(w, b.Category, money.Format(b.Limit))
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "check <MM-YYYY>",
		Short: "Show the categories that went over their limit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exceeded, err := app.svcs.Budgets.CheckExceeded(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(exceeded) == 0 {
				empty(out, "All budgets within their limits.")
				return nil
			}
			w := newTable(out, "Category", "Limit", "Spent", "Over by")
			for _, e := range exceeded {
				row(w, e.Category, money.Format(e.Limit), money.Format(e.CurrentExpense), alertStyle.Render(money.Format(e.Overage)))
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <MM-YYYY> <category>",
		Short: "Remove the limit of a category for a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.svcs.Budgets.Delete(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Budget for %s in %s deleted\n", args[1], args[0])
			return nil
		},
	})

	return cmd
}
