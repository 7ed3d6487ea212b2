package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Wallet session and transfer controller",
	Long:  `Connects to an Ethereum wallet provider, sends single transfers and reports status to the browser.`,
}

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default configs/config.yaml)")
	rootCmd.AddCommand(serveCmd, keygenCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
