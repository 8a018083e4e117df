package main

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "errorparty",
	Short: "Celebrate every time your error count goes down",
	Long: `errorparty watches a diagnostics snapshot written by your editor or linter.
Whenever the number of errors drops it shows a random image in a side panel
and plays a random sound.

Assets are read from $EP_ROOT_PATH/images and $EP_ROOT_PATH/sounds.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, triggerCmd, stateCmd, panelCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
