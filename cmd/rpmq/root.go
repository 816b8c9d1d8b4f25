// Root command for the rpmq CLI.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/josevnz/rpmq/pkg/query"
	"github.com/josevnz/rpmq/pkg/rpmq"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
)

// Global flag values.
var (
	flagConfigDir string
	flagDB        string
	flagLimit     int
	flagName      string
	flagSort      bool
	flagJSON      bool
	flagVerbose   bool
)

// configDBPath holds the db_path value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configDBPath string

// logger emits CLI diagnostics to stderr. The query layer itself never logs.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})

var rootCmd = &cobra.Command{
	Use:   "rpmq",
	Short: "rpmq queries the sizes of installed RPM packages",
	Long: `rpmq reads the local RPM package database and reports installed
packages with their sizes, largest first.

Examples:
  rpmq                        All packages, sorted by size
  rpmq --limit 10             The ten largest packages
  rpmq --name glibc-common    One package by exact name
  rpmq --sort=false           Database order instead of size order
  rpmq table                  Rich table output`,
	Version: rpmq.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDBPath = cfg.GetString(cfgKeyDBPath)
		if !cmd.Flags().Changed("limit") && cfg.IsSet(cfgKeyLimit) {
			flagLimit = cfg.GetInt(cfgKeyLimit)
		}
		return nil
	},
	RunE: runList,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "path to the rpmdb (default: /var/lib/rpm/rpmdb.sqlite)")
	rootCmd.PersistentFlags().IntVar(&flagLimit, "limit", query.Unlimited, "cap the number of results (-1 = unlimited)")
	rootCmd.PersistentFlags().StringVar(&flagName, "name", "", "filter by exact package name")
	rootCmd.PersistentFlags().BoolVar(&flagSort, "sort", true, "sort results by size, largest first")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose diagnostics")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tableCmd)
}

// Execute runs the root command through fang for styled help and errors.
// Called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(rpmq.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(exitUserError)
	}
}
