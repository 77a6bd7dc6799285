package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sahajm/finledger/internal/client"
	"github.com/sahajm/finledger/internal/ledger"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage accounts",
}

// account create
var (
	acctCreateName     string
	acctCreateType     string
	acctCreateCurrency string
)

var accountCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		acct := &ledger.Account{
			Name:     acctCreateName,
			Type:     acctCreateType,
			Currency: acctCreateCurrency,
		}

		created, err := c.CreateAccount(context.Background(), acct)
		if err != nil {
			return err
		}

		fmt.Printf("Account created: #%d %s (%s, %s) %s\n",
			created.ID, created.Name, created.Type, created.Class(), created.Currency)
		return nil
	},
}

// account list
var (
	acctListType  string
	acctListClass string
)

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		accounts, err := c.ListAccounts(context.Background(), acctListType, ledger.AccountingClass(acctListClass))
		if err != nil {
			return err
		}

		if len(accounts) == 0 {
			fmt.Println("No accounts found.")
			return nil
		}

		fmt.Printf("%6s %-30s %-14s %-12s %s\n", "ID", "NAME", "TYPE", "CLASS", "CURRENCY")
		fmt.Printf("%6s %-30s %-14s %-12s %s\n", "----", "----", "----", "-----", "--------")
		for _, a := range accounts {
			name := a.Name
			if len(name) > 28 {
				name = name[:28] + ".."
			}
			fmt.Printf("%6d %-30s %-14s %-12s %s\n", a.ID, name, a.Type, a.Class(), a.Currency)
		}
		return nil
	},
}

// account get
var accountGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get account details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid account id %q", args[0])
		}

		acct, err := c.GetAccount(context.Background(), id)
		if err != nil {
			return err
		}

		fmt.Printf("ID:       %d\n", acct.ID)
		fmt.Printf("Name:     %s\n", acct.Name)
		fmt.Printf("Type:     %s\n", acct.Type)
		fmt.Printf("Class:    %s\n", acct.Class())
		fmt.Printf("Currency: %s\n", acct.Currency)
		fmt.Printf("Created:  %s\n", acct.CreatedAt.Format("2006-01-02 15:04:05"))
		return nil
	},
}

// account balance
var accountBalanceCmd = &cobra.Command{
	Use:   "balance [id]",
	Short: "Get account balance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid account id %q", args[0])
		}

		bal, err := c.GetAccountBalance(context.Background(), id)
		if err != nil {
			return err
		}

		fmt.Printf("Account: #%d %s (%s)\n", bal.AccountID, bal.Name, bal.Class)
		fmt.Printf("Balance: %s %s\n", bal.Balance.StringFixed(2), bal.Currency)
		return nil
	},
}

// account delete
var accountDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an account (refused if it has ledger entries)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid account id %q", args[0])
		}
		if err := c.DeleteAccount(context.Background(), id); err != nil {
			return err
		}
		fmt.Printf("Account %d deleted.\n", id)
		return nil
	},
}

// account types
var accountTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List supported account types and their accounting class",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		types, err := c.AccountTypes(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("%-14s %s\n", "TYPE", "CLASS")
		fmt.Printf("%-14s %s\n", "----", "-----")
		for _, t := range types {
			fmt.Printf("%-14s %s\n", t.Label, t.Class)
		}
		return nil
	},
}

func init() {
	accountCreateCmd.Flags().StringVar(&acctCreateName, "name", "", "Account name")
	accountCreateCmd.Flags().StringVar(&acctCreateType, "type", "", "Account type (see 'account types')")
	accountCreateCmd.Flags().StringVar(&acctCreateCurrency, "currency", "", "Currency (ISO 4217, default INR)")
	accountCreateCmd.MarkFlagRequired("name")
	accountCreateCmd.MarkFlagRequired("type")

	accountListCmd.Flags().StringVar(&acctListType, "type", "", "Filter by account type")
	accountListCmd.Flags().StringVar(&acctListClass, "class", "", "Filter by accounting class")

	accountCmd.AddCommand(accountCreateCmd)
	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountGetCmd)
	accountCmd.AddCommand(accountBalanceCmd)
	accountCmd.AddCommand(accountDeleteCmd)
	accountCmd.AddCommand(accountTypesCmd)

	rootCmd.AddCommand(accountCmd)
}

func newClient() (*client.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return client.New(cfg.ServerURL), nil
}
