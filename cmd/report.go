package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sahajm/finledger/internal/ledger"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Financial reports",
}

var networthCmd = &cobra.Command{
	Use:   "networth",
	Short: "Show net worth broken down by accounting class",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		nw, err := c.NetWorth(context.Background())
		if err != nil {
			return err
		}

		w := 56
		fmt.Println()
		fmt.Println(center("NET WORTH", w))
		fmt.Println(center(strings.Repeat("=", 20), w))
		fmt.Println()

		printLines("ASSETS", nw.Assets, nw.TotalAssets, w)
		printLines("RECEIVABLES (owed to me)", nw.Receivables, nw.TotalReceivables, w)
		printLines("LIABILITIES", nw.Liabilities, nw.TotalLiabilities, w)
		printLines("PAYABLES (I owe)", nw.Payables, nw.TotalPayables, w)

		fmt.Printf("%*s%s\n", w-14, "", "═════════════")
		fmt.Printf("%-*s%14s\n", w-14, "NET WORTH", nw.NetWorth.StringFixed(2))
		return nil
	},
}

func printLines(title string, lines []ledger.NetWorthLine, total decimal.Decimal, w int) {
	if len(lines) == 0 {
		return
	}
	fmt.Printf("  %s\n", title)
	fmt.Printf("  %s\n", strings.Repeat("─", w-4))
	for _, l := range lines {
		name := l.AccountName
		if len(name) > 30 {
			name = name[:28] + ".."
		}
		fmt.Printf("  %-*s%14s\n", w-18, name, l.Balance.StringFixed(2))
	}
	fmt.Printf("  %-*s%14s\n\n", w-18, "Total", total.StringFixed(2))
}

var (
	reportStart string
	reportEnd   string
)

var cashflowCmd = &cobra.Command{
	Use:   "cashflow",
	Short: "Show cash flow for a period (default: current month)",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		flow, err := c.CashFlow(context.Background(), reportStart, reportEnd)
		if err != nil {
			return err
		}

		fmt.Printf("Period:   %s to %s\n", flow.Start.Format("2006-01-02"), flow.End.Format("2006-01-02"))
		fmt.Printf("Inflows:  %14s\n", flow.Inflows.StringFixed(2))
		fmt.Printf("Outflows: %14s\n", flow.Outflows.StringFixed(2))
		fmt.Printf("Net:      %14s\n", flow.Net.StringFixed(2))
		if len(flow.ByMonth) > 1 {
			fmt.Println("\nBy month:")
			for _, m := range flow.ByMonth {
				fmt.Printf("  %s  in %12s  out %12s\n", m.Month, m.Inflows.StringFixed(2), m.Outflows.StringFixed(2))
			}
		}
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Income vs expense summary with category breakdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		s, err := c.IncomeExpenseSummary(context.Background(), reportStart, reportEnd)
		if err != nil {
			return err
		}

		fmt.Printf("Period:  %s to %s\n", s.Start.Format("2006-01-02"), s.End.Format("2006-01-02"))
		fmt.Printf("Income:  %14s\n", s.TotalIncome.StringFixed(2))
		fmt.Printf("Expense: %14s\n", s.TotalExpense.StringFixed(2))
		fmt.Printf("Savings: %14s\n", s.Savings.StringFixed(2))
		if len(s.ByCategory) > 0 {
			fmt.Println("\nTop expense categories:")
			for _, ct := range s.ByCategory {
				fmt.Printf("  %-24s %12s\n", ct.Category, ct.Total.StringFixed(2))
			}
		}
		return nil
	},
}

var loansCmd = &cobra.Command{
	Use:   "loans",
	Short: "Outstanding loan positions by counterparty",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		loans, err := c.OutstandingLoans(context.Background())
		if err != nil {
			return err
		}

		if len(loans) == 0 {
			fmt.Println("No loan positions.")
			return nil
		}

		fmt.Printf("%-24s %14s %14s\n", "COUNTERPARTY", "OWED TO ME", "I OWE")
		for _, l := range loans {
			fmt.Printf("%-24s %14s %14s\n", l.Counterparty, l.OwedToMe.StringFixed(2), l.OwedByMe.StringFixed(2))
		}
		return nil
	},
}

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Net worth month by month",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		points, err := c.NetWorthTimeline(context.Background())
		if err != nil {
			return err
		}

		for _, p := range points {
			fmt.Printf("%s  %14s\n", p.Month, p.NetWorth.StringFixed(2))
		}
		return nil
	},
}

func center(s string, w int) string {
	if len(s) >= w {
		return s
	}
	pad := (w - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func init() {
	for _, c := range []*cobra.Command{cashflowCmd, summaryCmd} {
		c.Flags().StringVar(&reportStart, "start", "", "Period start YYYY-MM-DD")
		c.Flags().StringVar(&reportEnd, "end", "", "Period end YYYY-MM-DD")
	}

	reportCmd.AddCommand(networthCmd)
	reportCmd.AddCommand(cashflowCmd)
	reportCmd.AddCommand(summaryCmd)
	reportCmd.AddCommand(loansCmd)
	reportCmd.AddCommand(timelineCmd)

	rootCmd.AddCommand(reportCmd)
}
