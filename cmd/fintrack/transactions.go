package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

func txCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Record and inspect ledger transactions",
		Long:  `Transactions live in monthly partitions named MM-YYYY.`,
	}

	cmd.AddCommand(txListCmd(app))
	cmd.AddCommand(txAddCmd(app))
	cmd.AddCommand(txTransferCmd(app))
	cmd.AddCommand(txDeleteCmd(app))
	cmd.AddCommand(txBalanceCmd(app))

	return cmd
}

func txListCmd(app *cliApp) *cobra.Command {
	var page pagination.PageRequest

	cmd := &cobra.Command{
		Use:   "list <MM-YYYY>",
		Short: "List the transactions of a month, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.svcs.Ledger.ListForMonth(args[0], page)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if result.TotalItems == 0 {
				empty(out, "No transactions in "+args[0]+".")
				return nil
			}
			w := newTable(out, "ID", "Date", "Type", "Category", "Method", "Amount", "Description")
			for _, t := range result.Data {
				row(w, t.ID, formatDate(t.Date), string(t.Type), t.Category, t.PaymentMethod, money.Format(t.Amount), t.Description)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "page %d of %d (%d transactions)\n", result.Page, result.TotalPages, result.TotalItems)
			return nil
		},
	}

	cmd.Flags().IntVar(&page.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&page.PageSize, "page-size", 100, "transactions per page")
	return cmd
}

func txAddCmd(app *cliApp) *cobra.Command {
	var txType, date, description, category, amount, method string

	cmd := &cobra.Command{
		Use:   "add <MM-YYYY>",
		Short: "Record a gain or an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cents, err := parseAmount("amount", amount)
			if err != nil {
				return err
			}
			d, err := parseDateFlag("date", date)
			if err != nil {
				return err
			}
			t, err := app.svcs.Ledger.AddTransaction(services.NewTransaction{
				MonthYear:     args[0],
				Date:          d,
				Type:          models.TransactionType(txType),
				Description:   description,
				Category:      category,
				Amount:        cents,
				PaymentMethod: method,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s %s in %s (%s)\n", t.Type, money.Format(t.Amount), args[0], t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&txType, "type", "", "gain or expense")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&description, "desc", "", "description")
	cmd.Flags().StringVar(&category, "category", "", "category, created when unknown")
	cmd.Flags().StringVar(&amount, "amount", "", "amount, e.g. 12.50")
	cmd.Flags().StringVar(&method, "method", models.PaymentMethodAccount, "payment method")
	for _, f := range []string{"type", "date", "desc", "category", "amount"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func txTransferCmd(app *cliApp) *cobra.Command {
	var amount, from, to string

	cmd := &cobra.Command{
		Use:   "transfer <MM-YYYY>",
		Short: "Move money between payment methods",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cents, err := parseAmount("amount", amount)
			if err != nil {
				return err
			}
			legs, err := app.svcs.Ledger.AddTransfer(args[0], cents, from, to)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Transferred %s from %s to %s (%d entries)\n", money.Format(cents), from, to, len(legs))
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount, e.g. 100.00")
	cmd.Flags().StringVar(&from, "from", models.PaymentMethodAccount, "source payment method")
	cmd.Flags().StringVar(&to, "to", models.PaymentMethodCash, "destination payment method")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func txDeleteCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <MM-YYYY> <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.svcs.Ledger.DeleteTransaction(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Transaction %s deleted\n", args[1])
			return nil
		},
	}
}

func txBalanceCmd(app *cliApp) *cobra.Command {
	var method string

	cmd := &cobra.Command{
		Use:   "balance [MM-YYYY]",
		Short: "Show the totals of a month",
		Long:  `Show gains, expenses and balance of a month (the current one by default) and its expenses by category.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month := currentMonth()
			if len(args) == 1 {
				month = args[0]
			}

			var (
				totals *models.Totals
				err    error
			)
			if method != "" {
				totals, err = app.svcs.Ledger.BalanceByMethod(month, method)
			} else {
				totals, err = app.svcs.Ledger.MonthlyBalance(month)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			w := newTable(out, "Month", "Gains", "Expenses", "Balance")
			row(w, month, money.Format(totals.Gains), money.Format(totals.Expenses), money.Format(totals.Balance))
			if err := w.Flush(); err != nil {
				return err
			}

			byCategory, err := app.svcs.Ledger.ExpensesByCategory(month)
			if err != nil {
				return err
			}
			if len(byCategory) == 0 {
				return nil
			}
			fmt.Fprintln(out)
			w = newTable(out, "Category", "Expenses")
			for _, c := range byCategory {
				row(w, c.Category, money.Format(c.Amount))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&method, "method", "", "only count this payment method")
	return cmd
}
