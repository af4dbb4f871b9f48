package main

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "archibald",
	Short: "Archibald, the lighthouse keeper chatbot",
	Long: `Archibald answers visitor questions about the Cap Ferret lighthouse:
opening days, prices, pets, parking and the FAQ, in the visitor's language.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default configs/config.yaml)")
}
