// Package commands implements the CLI commands for motorsales.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "motorsales",
	Short: "Scrape used-car listings into tabular datasets",
	Long: `Motorsales fetches used-car search result pages, caches the raw
HTML per hour, extracts structured listing attributes, and writes one
tabular dataset per (date, make, model).

Examples:
  # Scrape the first results page
  motorsales scrape --make Ford --model Fiesta --postcode SW1A1AA

  # Scrape several pages into one dataset
  motorsales scrape --make Ford --model Fiesta --postcode SW1A1AA \
      --pages 1,2,3 --format json

  # Drop all cached pages
  motorsales cache clear`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.motorsales.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON")
	rootCmd.PersistentFlags().String("data-dir", "data", "directory for cache and datasets")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
	_ = viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".motorsales")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("MOTORSALES")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
