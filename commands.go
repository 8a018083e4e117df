package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aouyang1/errorparty/api/client"
	"github.com/aouyang1/errorparty/config"
	"github.com/spf13/cobra"
)

var triggerCmd = &cobra.Command{
	Use:   "trigger",
	Short: "Start a celebration on the running daemon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		state, err := newClient().Trigger()
		if err != nil {
			return fmt.Errorf("failed to trigger celebration: %w", err)
		}
		if state.Frame.Image == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "nothing to celebrate with: no images or panel closed")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "celebrating with %s\n", state.Frame.Image)
		return nil
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the daemon state as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		state, err := newClient().State()
		if err != nil {
			return fmt.Errorf("failed to get state: %w", err)
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	},
}

var panelCmd = &cobra.Command{
	Use:       "panel open|closed",
	Short:     "Open or close the celebration panel",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"open", "closed"},
	RunE: func(cmd *cobra.Command, args []string) error {
		open, err := newClient().SetPanel(args[0] == "open")
		if err != nil {
			return fmt.Errorf("failed to update panel: %w", err)
		}
		state := "closed"
		if open {
			state = "open"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "panel %s\n", state)
		return nil
	},
}

func newClient() *client.Client {
	return client.New(config.ClientURL(os.Getenv))
}
