/*
Copyright © 2026 Martin Kleist
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mkleist/serline"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available serial devices",
	Long: `List the serial devices of the host machine.

Each device is shown with its serN alias, its device name and its
description. Any of the three can be used as the <port> argument of the
other commands. Devices opened through this process are included even
when the host enumeration no longer reports them.`,
	Run: func(cmd *cobra.Command, args []string) {
		devs, err := serline.ListDevices(serline.MaxDevices)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing devices: %v\n", err)
			os.Exit(1)
		}

		if len(devs) == 0 {
			fmt.Println("No serial devices found")
			return
		}

		tableFormat, _ := cmd.Flags().GetBool("table")
		if tableFormat {
			renderTable(devs)
		} else {
			renderSimple(devs)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
}

// renderTable renders the device list in a styled static table format
func renderTable(devs []serline.DeviceDescriptor) {
	fmt.Printf("Found %d serial device(s):\n\n", len(devs))

	aliasWidth := 7
	nameWidth := 20
	descWidth := 30

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("240")).
		PaddingBottom(1)

	cellStyle := lipgloss.NewStyle().
		PaddingRight(2)

	header := fmt.Sprintf("%-*s %-*s %-*s",
		aliasWidth, "Alias",
		nameWidth, "Name",
		descWidth, "Description")
	fmt.Println(headerStyle.Render(header))

	for i, dev := range devs {
		row := fmt.Sprintf("%-*s %-*s %-*s",
			aliasWidth, fmt.Sprintf("ser%d", i),
			nameWidth, dev.Name,
			descWidth, dev.Desc)
		fmt.Println(cellStyle.Render(row))
	}
}

// renderSimple renders the device list in simple text format
func renderSimple(devs []serline.DeviceDescriptor) {
	for _, dev := range devs {
		fmt.Println(dev.Name)
	}
}
