package cmd

import (
	"fmt"
	"os"

	"tagwire/cli"
	"tagwire/config"
	"tagwire/log"

	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "tagwire",
	Short: "Inspection tooling for the tagged wire format.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.CalledAs() == "init" {
			return nil
		}
		var err error
		cfg, err = config.ReadConfigFile(cli.GetHomeDir(cmd))
		if err != nil {
			return err
		}
		levelStr, err := cmd.Flags().GetString(cli.FlagLogLevel)
		if err != nil {
			panic(err)
		}
		if levelStr == "" {
			levelStr = cfg.LogLevel
		}
		level, err := log.NewLevel(levelStr)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String(cli.FlagHome, "~/.tagwire", "Home directory for the tool's configuration.")
	rootCmd.PersistentFlags().String(cli.FlagLogLevel, "", "Log level. Overrides the configured value.")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
