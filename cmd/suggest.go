package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sahajm/finledger/internal/client"
)

var (
	suggestAmount string
	suggestFrom   string
	suggestTo     string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [description...]",
	Short: "Suggest a transaction type and nature from a description",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		req := client.SuggestRequest{
			Description:     strings.Join(args, " "),
			FromAccountType: suggestFrom,
			ToAccountType:   suggestTo,
		}
		if suggestAmount != "" {
			amount, err := decimal.NewFromString(suggestAmount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", suggestAmount, err)
			}
			req.Amount = amount
		}

		sug, err := c.Suggest(context.Background(), req)
		if err != nil {
			return err
		}

		fmt.Printf("Type:       %s\n", sug.Type)
		fmt.Printf("Nature:     %s\n", sug.Nature)
		fmt.Printf("Confidence: %.0f%%\n", sug.Confidence*100)
		fmt.Printf("Reason:     %s\n", sug.Reasoning)
		return nil
	},
}

func init() {
	suggestCmd.Flags().StringVar(&suggestAmount, "amount", "", "Signed amount, negative for money out")
	suggestCmd.Flags().StringVar(&suggestFrom, "from-type", "", "Source account type")
	suggestCmd.Flags().StringVar(&suggestTo, "to-type", "", "Destination account type")
	rootCmd.AddCommand(suggestCmd)
}
