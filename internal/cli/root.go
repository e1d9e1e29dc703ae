package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// BuildInfo contains build-time information
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

var buildInfo BuildInfo

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bugbot",
	Short: "Telegram bug reporting bot",
	Long: `Bug Report Bot - a Telegram bot for structured bug intake.

The bot walks reporters through a guided conversation (description,
screenshots, environment, priority, console logs, tags), submits the
finished report to the bug tracking backend, and offers lookup commands
for existing reports and aggregate statistics.`,
	Version: buildInfo.Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(info BuildInfo) error {
	buildInfo = info
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("log-level", "l", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text, json); overrides LOG_FORMAT")
}
