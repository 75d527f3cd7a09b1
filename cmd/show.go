/*
Copyright © 2026 Martin Kleist
*/
package cmd

import (
	"os"

	"github.com/mkleist/serline"
	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show serial devices and open ports in report form",
	Long: `Show the host's serial devices in the classic aligned report format,
followed by the ports currently open in this process and the line each
one is attached to.`,
	Run: func(cmd *cobra.Command, args []string) {
		serline.DescribeDevices(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
