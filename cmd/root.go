/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clubserver",
	Short: "Robot club backend",
	Long: `clubserver runs the robot club API: accounts, trial times, media
galleries, announcements, notes and admin broadcast messages.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			level = os.Getenv("LOG_LEVEL")
		}
		setupLogging(level)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
}

func setupLogging(level string) {
	log.SetReportTimestamp(true)
	if strings.TrimSpace(level) == "" {
		return
	}
	parsed, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		log.Warn("unknown log level, keeping info", "level", level)
		return
	}
	log.SetLevel(parsed)
}
