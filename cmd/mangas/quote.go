package cmd

import (
	"errors"
	"fmt"

	"github.com/kerbaras/mangaverse/pkg/services"
	"github.com/spf13/cobra"
)

var (
	quoteCoins  string
	quoteAmount string
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Convert between coins and dollars",
	Long:  "Price a coin quantity, or find how many coins an amount buys, at the configured rate",
	RunE: func(cmd *cobra.Command, args []string) error {
		if (quoteCoins == "") == (quoteAmount == "") {
			return errors.New("pass exactly one of --coins or --amount")
		}

		state, err := services.NewState(cfg, logger)
		if err != nil {
			return err
		}
		calc := state.Calculator()

		q := calc.ParseCoins(quoteCoins)
		if quoteAmount != "" {
			q = calc.ParseAmount(quoteAmount)
		}

		fmt.Printf("🪙 %d coins = $%s  (%s)\n", q.Coins, q.AmountString(), calc.Rate())
		if minimum := calc.Limits().Min; q.Coins < minimum {
			fmt.Printf("⚠️  Below the %d coin minimum purchase\n", minimum)
		}
		return nil
	},
}

func init() {
	quoteCmd.Flags().StringVarP(&quoteCoins, "coins", "c", "", "coin quantity to price")
	quoteCmd.Flags().StringVarP(&quoteAmount, "amount", "a", "", "dollar amount to convert")
}
