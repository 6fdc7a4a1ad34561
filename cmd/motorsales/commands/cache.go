package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rmcnab/motorsales/internal/cache"
	"github.com/rmcnab/motorsales/internal/logger"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the raw page cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every cached page",
	RunE:  runCacheClear,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
	})

	store := cache.New(filepath.Join(viper.GetString("data_dir"), "cache"))
	removed, err := store.Clear()
	if err != nil {
		logger.Error("cache clear failed", "error", err)
		return err
	}

	logger.Info("cache cleaned", "removed", removed)
	return nil
}
