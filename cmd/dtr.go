/*
Copyright © 2026 Martin Kleist
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// dtrCmd represents the dtr command
var dtrCmd = &cobra.Command{
	Use:   "dtr <port> <state>",
	Short: "Control DTR (Data Terminal Ready) signal",
	Long: `Manually set the DTR (Data Terminal Ready) signal state.

The DTR signal indicates that the terminal is ready for communication.
Ports are opened with DTR deasserted, so asserting it here is what a
connected device sees as the terminal coming online.

Examples:
  serline dtr ser0 high
  serline dtr /dev/ttyUSB0 low

Valid states: high, low, on, off, true, false, 1, 0`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		portID := args[0]
		stateArg := args[1]

		state, err := parseSignalState(stateArg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		port, err := openConfigured(portID, "dtr")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer port.Close()

		if err := port.SetDTR(state); err != nil {
			fmt.Fprintf(os.Stderr, "Error setting DTR: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("DTR set to %s on %s\n", formatSignalState(state), port.Name())
	},
}

func init() {
	rootCmd.AddCommand(dtrCmd)
}

func parseSignalState(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "high", "on", "true", "1":
		return true, nil
	case "low", "off", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid signal state %q (use high/low, on/off, true/false, 1/0)", arg)
	}
}

func formatSignalState(state bool) string {
	if state {
		return "high"
	}
	return "low"
}
