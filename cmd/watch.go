/*
Copyright © 2026 Martin Kleist
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/mkleist/serline/internal/tui"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Interactive device browser and live data view",
	Long: `Open a full-screen interface for browsing serial devices and watching
their data in real time.

The device table shows each device with its serN alias, name and
description. Selecting a device opens it with the configured line
parameters, asserts DTR, and switches to a live view of the decoded
byte stream. BREAK conditions received on the line are shown inline.

Key bindings are listed with '?'. Press esc to return to the device
table and q to quit.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := lineConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := tui.Run(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
