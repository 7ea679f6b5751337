package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "curio",
	Short: "Curio is a small server-rendered items app",
	Long:  `Curio serves a login-protected CRUD screen for your items, backed by a hosted auth + database service.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "curio.yaml", "Path to the configuration file")
}
