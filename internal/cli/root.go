// Package cli implements the sheetboard command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	// Register the sheets store with the remote factory.
	_ "github.com/randalmurphal/sheetboard/internal/remote/sheets"
)

var (
	cfgFile  string
	verbose  bool
	plainOut bool
	jsonOut  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sheetboard",
	Short: "Shared task board backed by a team spreadsheet",
	Long: `sheetboard keeps a team task board in a shared spreadsheet and gives
each member a fast local view of it.

Features:
  • Kanban board with per-column ordering and drag-style moves
  • Optimistic edits with automatic rollback when a write fails
  • Predecessor gating so dependent work cannot start early
  • Timeline view that orders tasks by their dependencies
  • Cached snapshot for instant startup and offline reads

Quick start:
  sheetboard init                       Initialize sheetboard in current project
  sheetboard new "Draft launch brief"   Create a task
  sheetboard board                      Show the board
  sheetboard move <id> in_progress      Start a task`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and prints any error in the
// user-facing format. The caller maps the error to an exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		PrintError(err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .sheetboard/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&plainOut, "plain", false, "plain output without glyphs")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output as JSON")

	// Add subcommands
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newBoardCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newNewCmd())
	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newMoveCmd())
	rootCmd.AddCommand(newShiftCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newTimelineCmd())
	rootCmd.AddCommand(newCalendarCmd())
	rootCmd.AddCommand(newUsersCmd())
	rootCmd.AddCommand(newTagsCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in .sheetboard directory
		viper.AddConfigPath(".sheetboard")
		viper.AddConfigPath("$HOME/.sheetboard")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("SHEETBOARD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
