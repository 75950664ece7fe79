package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"fintrack/internal/money"
	"fintrack/internal/period"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// newTable returns a tabwriter that prints cols as a styled header.
// Callers must Flush it.
func newTable(out io.Writer, cols ...string) *tabwriter.Writer {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	styled := make([]string, len(cols))
	rules := make([]string, len(cols))
	for i, c := range cols {
		styled[i] = headerStyle.Render(c)
		rules[i] = strings.Repeat("-", len(c))
	}
	fmt.Fprintln(w, strings.Join(styled, "\t"))
	fmt.Fprintln(w, strings.Join(rules, "\t"))
	return w
}

func row(w io.Writer, cells ...string) {
	fmt.Fprintln(w, strings.Join(cells, "\t"))
}

func empty(out io.Writer, msg string) {
	fmt.Fprintln(out, mutedStyle.Render(msg))
}

func parseAmount(flag, raw string) (int64, error) {
	cents, err := money.ParseCents(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s: %w", flag, err)
	}
	return cents, nil
}

func parseDateFlag(flag, raw string) (time.Time, error) {
	d, err := period.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s: %w", flag, err)
	}
	return d, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(period.DateLayout)
}

// currentMonth is the partition key used when a command omits one.
func currentMonth() string {
	return period.MonthYear(time.Now())
}
