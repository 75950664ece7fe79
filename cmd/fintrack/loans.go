package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"fintrack/internal/models"
	"fintrack/internal/money"
)

func loanCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Register loans and pay installments",
	}

	cmd.AddCommand(loanRegisterCmd(app))
	cmd.AddCommand(loanPayCmd(app))
	cmd.AddCommand(loanListCmd(app))
	cmd.AddCommand(loanShowCmd(app))
	cmd.AddCommand(loanDeleteCmd(app))

	return cmd
}

func printLoans(out io.Writer, loans []models.Loan) error {
	w := newTable(out, "ID", "Type", "Party", "Remaining", "Rate %", "Installments", "Minimum", "Status")
	for _, l := range loans {
		minimum := "-"
		if !l.IsClosed() {
			minimum = money.Format(money.MinInstallment(l.OriginalValue, l.InterestRate, l.NumInstallments))
		}
		row(w,
			l.ID,
			l.Type.Label(),
			l.InvolvedParty,
			money.Format(l.OriginalValue),
			strconv.FormatFloat(l.InterestRate, 'f', -1, 64),
			fmt.Sprintf("%d/%d", l.InstallmentsPaid, l.NumInstallments),
			minimum,
			string(l.Status),
		)
	}
	return w.Flush()
}

func loanRegisterCmd(app *cliApp) *cobra.Command {
	var (
		loanType, party, value string
		rate                   float64
		installments           int
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a received or granted loan",
		Long: `Register a loan. A received loan records a gain and a granted loan an
expense in the current month, both under the loans category.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cents, err := parseAmount("value", value)
			if err != nil {
				return err
			}
			loan, err := app.svcs.Loans.Register(models.LoanType(loanType), party, cents, rate, installments)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loan %s registered (%s)\n", loan.ID, loan.Type.Label())
			return nil
		},
	}

	cmd.Flags().StringVar(&loanType, "type", "", "received or granted")
	cmd.Flags().StringVar(&party, "party", "", "the other party")
	cmd.Flags().StringVar(&value, "value", "", "original value, e.g. 1000.00")
	cmd.Flags().Float64Var(&rate, "rate", 0, "interest rate in percent")
	cmd.Flags().IntVar(&installments, "installments", 1, "number of installments")
	for _, f := range []string{"type", "party", "value"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func loanPayCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "pay <loan-id> <MM-YYYY> <amount>",
		Short: "Pay an installment",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cents, err := parseAmount("amount", args[2])
			if err != nil {
				return err
			}
			loan, err := app.svcs.Loans.RecordInstallmentPayment(args[0], args[1], cents)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if loan.IsClosed() {
				fmt.Fprintf(out, "Loan %s fully paid\n", loan.ID)
				return nil
			}
			fmt.Fprintf(out, "Installment %d/%d paid, %s remaining\n",
				loan.InstallmentsPaid, loan.NumInstallments, money.Format(loan.OriginalValue))
			return nil
		},
	}
}

func loanListCmd(app *cliApp) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open loans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				loans []models.Loan
				err   error
			)
			if all {
				loans, err = app.svcs.Loans.List()
			} else {
				loans, err = app.svcs.Loans.ListActive()
			}
			if err != nil {
				return err
			}
			if len(loans) == 0 {
				empty(cmd.OutOrStdout(), "No loans.")
				return nil
			}
			return printLoans(cmd.OutOrStdout(), loans)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include closed loans")
	return cmd
}

func loanShowCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "show <loan-id>",
		Short: "Show one loan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loan, err := app.svcs.Loans.GetDetails(args[0])
			if err != nil {
				return err
			}
			return printLoans(cmd.OutOrStdout(), []models.Loan{*loan})
		},
	}
}

func loanDeleteCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <loan-id>",
		Short: "Delete a loan, keeping its ledger entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.svcs.Loans.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loan %s deleted\n", args[0])
			return nil
		},
	}
}
