package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/services"
)

func debtCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debt",
		Short: "Schedule and pay debts",
	}

	cmd.AddCommand(debtAddCmd(app))
	cmd.AddCommand(debtListCmd(app))
	cmd.AddCommand(debtUpcomingCmd(app))
	cmd.AddCommand(debtPayCmd(app))
	cmd.AddCommand(debtDeleteCmd(app))

	return cmd
}

func printDebts(out io.Writer, debts []models.Debt) error {
	w := newTable(out, "ID", "Due", "Description", "Category", "Value", "Status")
	for _, d := range debts {
		status := string(d.Status)
		if d.Status == models.DebtStatusOverdue {
			status = alertStyle.Render(status)
		}
		row(w, d.ID, formatDate(d.DueDate), d.Description, d.Category, money.Format(d.Value), status)
	}
	return w.Flush()
}

func debtAddCmd(app *cliApp) *cobra.Command {
	var (
		description, value, due, category, recurrence string
		months                                        int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a debt",
		Long: `Schedule a debt. Recurring debts are expanded into --months occurrences,
one per month or one per year.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cents, err := parseAmount("value", value)
			if err != nil {
				return err
			}
			dueDate, err := parseDateFlag("due", due)
			if err != nil {
				return err
			}
			debts, err := app.svcs.Debts.AddDebt(services.NewDebt{
				Description:      description,
				Value:            cents,
				DueDate:          dueDate,
				Recurrence:       models.Recurrence(recurrence),
				RecurrenceMonths: months,
				Category:         category,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %d occurrence(s) of %q\n", len(debts), description)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "desc", "", "description")
	cmd.Flags().StringVar(&value, "value", "", "value, e.g. 150.00")
	cmd.Flags().StringVar(&due, "due", "", "first due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&category, "category", models.CategoryBills, "category")
	cmd.Flags().StringVar(&recurrence, "recurrence", string(models.RecurrenceOnce), "once, monthly or yearly")
	cmd.Flags().IntVar(&months, "months", 0, "number of occurrences of a recurring debt (at most 1200)")
	for _, f := range []string{"desc", "value", "due"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func debtListCmd(app *cliApp) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List debts by due date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			debts, err := app.svcs.Debts.GetAll(month)
			if err != nil {
				return err
			}
			if len(debts) == 0 {
				empty(cmd.OutOrStdout(), "No debts.")
				return nil
			}
			return printDebts(cmd.OutOrStdout(), debts)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "only debts due in this month (MM-YYYY)")
	return cmd
}

func debtUpcomingCmd(app *cliApp) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List overdue debts and those due soon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("days") {
				days = app.cfg.UpcomingDays
			}
			debts, err := app.svcs.Debts.GetUpcomingOrOverdue(days)
			if err != nil {
				return err
			}
			if len(debts) == 0 {
				empty(cmd.OutOrStdout(), "Nothing due in the next "+strconv.Itoa(days)+" days.")
				return nil
			}
			return printDebts(cmd.OutOrStdout(), debts)
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "horizon in days (default from UPCOMING_DAYS)")
	return cmd
}

func debtPayCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "pay <debt-id> [MM-YYYY]",
		Short: "Pay a debt, booking the expense in a month (the current one by default)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			month := currentMonth()
			if len(args) == 2 {
				month = args[1]
			}
			debt, err := app.svcs.Debts.MarkAsPaid(args[0], month)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Paid %q (%s) in %s\n", debt.Description, money.Format(debt.Value), month)
			return nil
		},
	}
}

func debtDeleteCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <debt-id>",
		Short: "Delete one debt occurrence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.svcs.Debts.DeleteDebt(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Debt %s deleted\n", args[0])
			return nil
		},
	}
}
