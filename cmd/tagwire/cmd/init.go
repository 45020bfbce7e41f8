package cmd

import (
	"fmt"

	"tagwire/cli"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initializes the home directory with a default config.",
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := cli.InitHomeDir(cmd)
		if err != nil {
			return err
		}
		fmt.Printf("initialized %s\n", homeDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
