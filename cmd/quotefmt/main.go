// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the quotefmt CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/quotefmt/internal/history"
	"github.com/pdiddy/quotefmt/internal/process"
	"github.com/pdiddy/quotefmt/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command: it runs the batch itself, with
// subcommands only for version and history.
var rootCmd = &cobra.Command{
	Use:   "quotefmt [files...]",
	Short: "Normalize quotation marks in prose and markup files",
	Long: `quotefmt rewrites quotation marks in plain-text documents. It folds
Unicode double-quote variants (curly, low-9, prime, fullwidth) to the
ASCII quote, then replaces every ASCII quote with properly paired
typographic quotes, alternating opening and closing in file order.

Supported file types: .markdown, .md, .org, .rst, .tex, .txt.
Each file is backed up to <path>.bak before being rewritten unless
--no-backup is given.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runRoot,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Version = version
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./quotefmt.yaml or ~/.config/quotefmt/config.yaml)")
	rootCmd.Flags().Bool("no-backup", false, "do not create backup files")
	rootCmd.Flags().String("backup-suffix", "", `suffix for backup files (default ".bak")`)
	rootCmd.Flags().Bool("history", false, "record this run in the history ledger")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("quotefmt")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "quotefmt"))
		}
	}

	viper.SetDefault("backup.enabled", true)
	viper.SetDefault("backup.suffix", process.DefaultBackupSuffix)
	viper.SetDefault("history.enabled", false)
	viper.SetDefault("history.path", defaultHistoryPath())

	viper.SetEnvPrefix("QUOTEFMT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "quotefmt-history.db"
	}
	return filepath.Join(home, ".local", "share", "quotefmt", "history.db")
}

// loadConfig resolves the effective configuration from viper.
func loadConfig() types.Config {
	return types.Config{
		Backup: types.BackupConfig{
			Enabled: viper.GetBool("backup.enabled"),
			Suffix:  viper.GetString("backup.suffix"),
		},
		History: types.HistoryConfig{
			Enabled: viper.GetBool("history.enabled"),
			Path:    viper.GetString("history.path"),
		},
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	noBackup, _ := cmd.Flags().GetBool("no-backup")
	suffix, _ := cmd.Flags().GetString("backup-suffix")
	if suffix == "" {
		suffix = cfg.Backup.Suffix
	}

	opts := process.Options{
		Backup:       cfg.Backup.Enabled && !noBackup,
		BackupSuffix: suffix,
	}

	startedAt := time.Now()
	result, reports := process.Batch(args, opts, os.Stdout, os.Stderr)

	recordFlag, _ := cmd.Flags().GetBool("history")
	if recordFlag || cfg.History.Enabled {
		if err := recordRun(cmd, cfg, startedAt, result, reports); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not record history: %v\n", err)
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed", result.Failed)
	}
	return nil
}

func recordRun(cmd *cobra.Command, cfg types.Config, startedAt time.Time, result process.BatchResult, reports []types.FileReport) error {
	store, err := history.NewStore(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Record(cmd.Context(), history.Run{
		StartedAt: startedAt,
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Files:     reports,
	})
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
