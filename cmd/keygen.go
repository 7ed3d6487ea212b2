package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wallet_transfer_back/internal/wallet"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generates a throwaway key for a local development node",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := wallet.Generate()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "address:     %s\nprivate key: %s\n", w.Address.Hex(), w.PrivateKeyHex())
		return nil
	},
}
