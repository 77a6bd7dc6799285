package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sahajm/finledger/internal/ledger"
)

var transactionCmd = &cobra.Command{
	Use:     "transaction",
	Aliases: []string{"txn"},
	Short:   "Manage transactions",
}

var (
	txnType         string
	txnNature       string
	txnAmount       string
	txnFrom         int64
	txnTo           int64
	txnCategory     string
	txnCounterparty string
	txnDescription  string
	txnDate         string
	txnDryRun       bool
)

func transactionFromFlags() (*ledger.Transaction, error) {
	amount, err := decimal.NewFromString(txnAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", txnAmount, err)
	}
	txn := &ledger.Transaction{
		Type:         ledger.TransactionType(txnType),
		Nature:       ledger.TransactionNature(txnNature),
		Amount:       amount,
		FromAccount:  txnFrom,
		ToAccount:    txnTo,
		Category:     txnCategory,
		Counterparty: txnCounterparty,
		Description:  txnDescription,
	}
	if txnDate != "" {
		d, err := time.Parse("2006-01-02", txnDate)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", txnDate)
		}
		txn.Date = d
	}
	return txn, nil
}

var transactionPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Post a new transaction",
	Long: `Post a transaction. The server validates the type/nature combination and
writes a balanced pair of debit/credit entries.

Examples:
  finledger txn post --type income --nature salary --amount 50000 --to 1 --category Salary
  finledger txn post --type transfer --nature loan_given --amount 3000 --from 1 --to 7 --counterparty Ravi`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		txn, err := transactionFromFlags()
		if err != nil {
			return err
		}

		if txnDryRun {
			result, err := c.ValidateTransaction(context.Background(), txn)
			if err != nil {
				return err
			}
			if result.Valid {
				fmt.Println("Valid.")
				return nil
			}
			fmt.Println("Invalid:")
			for _, v := range result.Violations {
				fmt.Printf("  - %s\n", v)
			}
			return nil
		}

		created, err := c.PostTransaction(context.Background(), txn)
		if err != nil {
			return err
		}

		fmt.Printf("Transaction posted: %s\n", created.ID)
		fmt.Printf("  %s/%s %s %s\n", created.Type, created.Nature, created.Amount.StringFixed(2), created.Currency)
		printEntries(created.Entries)
		return nil
	},
}

var (
	txnListAccount int64
	txnListNature  string
)

var transactionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		txns, err := c.ListTransactions(context.Background(), txnListAccount, ledger.TransactionNature(txnListNature))
		if err != nil {
			return err
		}

		if len(txns) == 0 {
			fmt.Println("No transactions found.")
			return nil
		}

		fmt.Printf("%-38s %-12s %-10s %-20s %12s %s\n", "ID", "DATE", "TYPE", "NATURE", "AMOUNT", "DESCRIPTION")
		for _, t := range txns {
			desc := t.Description
			if len(desc) > 30 {
				desc = desc[:28] + ".."
			}
			fmt.Printf("%-38s %-12s %-10s %-20s %12s %s\n",
				t.ID,
				t.Date.Format("2006-01-02"),
				t.Type,
				t.Nature,
				t.Amount.StringFixed(2),
				desc,
			)
		}
		return nil
	},
}

var transactionGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get transaction details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		txn, err := c.GetTransaction(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("ID:          %s\n", txn.ID)
		fmt.Printf("Type:        %s / %s\n", txn.Type, txn.Nature)
		fmt.Printf("Amount:      %s %s\n", txn.Amount.StringFixed(2), txn.Currency)
		if txn.Category != "" {
			fmt.Printf("Category:    %s\n", txn.Category)
		}
		if txn.Counterparty != "" {
			fmt.Printf("Counterparty: %s\n", txn.Counterparty)
		}
		fmt.Printf("Description: %s\n", txn.Description)
		fmt.Printf("Date:        %s\n", txn.Date.Format("2006-01-02"))
		fmt.Printf("Entries:\n")
		printEntries(txn.Entries)
		return nil
	},
}

func printEntries(entries []ledger.Entry) {
	for _, e := range entries {
		direction := "DR"
		amt := e.Debit
		if e.Debit.IsZero() {
			direction = "CR"
			amt = e.Credit
		}
		fmt.Printf("  %s %-14s %12s\n", direction, e.Account, amt.StringFixed(2))
	}
}

func init() {
	f := transactionPostCmd.Flags()
	f.StringVar(&txnType, "type", "", "Transaction type: income, expense or transfer")
	f.StringVar(&txnNature, "nature", "", "Transaction nature (e.g. salary, purchase, loan_given)")
	f.StringVar(&txnAmount, "amount", "", "Amount (positive decimal)")
	f.Int64Var(&txnFrom, "from", 0, "Source account ID")
	f.Int64Var(&txnTo, "to", 0, "Destination account ID")
	f.StringVar(&txnCategory, "category", "", "Spending/income category")
	f.StringVar(&txnCounterparty, "counterparty", "", "Counterparty (required for loans)")
	f.StringVar(&txnDescription, "description", "", "Free-form description")
	f.StringVar(&txnDate, "date", "", "Transaction date YYYY-MM-DD (default today)")
	f.BoolVar(&txnDryRun, "dry-run", false, "Validate only, do not post")
	transactionPostCmd.MarkFlagRequired("type")
	transactionPostCmd.MarkFlagRequired("nature")
	transactionPostCmd.MarkFlagRequired("amount")

	transactionListCmd.Flags().Int64Var(&txnListAccount, "account", 0, "Filter by account ID")
	transactionListCmd.Flags().StringVar(&txnListNature, "nature", "", "Filter by nature")

	transactionCmd.AddCommand(transactionPostCmd)
	transactionCmd.AddCommand(transactionListCmd)
	transactionCmd.AddCommand(transactionGetCmd)

	rootCmd.AddCommand(transactionCmd)
}
