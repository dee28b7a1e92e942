package cmd

import (
	"errors"
	"fmt"

	"github.com/kerbaras/mangaverse/pkg/services"
	"github.com/kerbaras/mangaverse/pkg/store"
	"github.com/spf13/cobra"
)

var (
	buyCoins   int64
	buyPackage int
	buyPayee   string
	buyDecline bool
)

var buyCmd = &cobra.Command{
	Use:   "buy",
	Short: "Buy coins with the simulated payment provider",
	Long: `Run a coin purchase end to end against the simulated provider.
Balances are not persisted, so this is mostly useful to try rates and limits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if buyDecline {
			cfg.Store.SimulateDecline = true
		}
		state, err := services.NewState(cfg, logger)
		if err != nil {
			return err
		}

		calc := state.Calculator()
		switch {
		case buyPackage > 0:
			if buyPackage > len(store.DefaultPackages) {
				return fmt.Errorf("package must be between 1 and %d", len(store.DefaultPackages))
			}
			calc.SelectPackage(store.DefaultPackages[buyPackage-1])
		case cmd.Flags().Changed("coins"):
			calc.SetCoins(buyCoins)
		}

		q := calc.Quote()
		fmt.Printf("💳 Buying %d coins for $%s...\n", q.Coins, q.AmountString())

		receipt, err := state.Purchase(cmd.Context(), buyPayee)
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%s: %s", verr.Title, verr.Message)
		}
		if err != nil {
			return err
		}

		fmt.Printf("✅ %d coins added (ref %s). Balance: %d coins\n", receipt.Coins, receipt.Reference, state.Balance())
		return nil
	},
}

func init() {
	buyCmd.Flags().Int64VarP(&buyCoins, "coins", "c", store.DefaultCoins, "coins to buy")
	buyCmd.Flags().IntVarP(&buyPackage, "package", "k", 0, "buy a package by number (1-5) instead of --coins")
	buyCmd.Flags().StringVarP(&buyPayee, "payee", "p", "", "PayPal email to charge")
	buyCmd.Flags().BoolVar(&buyDecline, "decline", false, "make the simulated provider decline the charge")
}
