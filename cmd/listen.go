/*
Copyright © 2026 Martin Kleist
*/
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// listenCmd represents the listen command
var listenCmd = &cobra.Command{
	Use:   "listen <port>",
	Short: "Print incoming serial data until interrupted",
	Long: `Listen for incoming data on a serial port and print it to stdout.

The port is polled; reads return immediately and the poll interval is
configurable. Received BREAK conditions are decoded out of the data
stream and shown inline as <BREAK> markers. Use 'serline watch' for the
interactive full-screen view.

Example usage:
  serline listen ser0
  serline listen /dev/ttyUSB0 --baud 115200
  serline listen ser1 --hex --interval 50ms`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		portID := args[0]

		hexMode, _ := cmd.Flags().GetBool("hex")
		interval, _ := cmd.Flags().GetDuration("interval")

		if err := listen(portID, hexMode, interval); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(listenCmd)

	listenCmd.Flags().BoolP("hex", "x", false, "Print received bytes as hex instead of raw")
	listenCmd.Flags().DurationP("interval", "i", 10*time.Millisecond, "Poll interval between reads")
}

func listen(portID string, hexMode bool, interval time.Duration) error {
	port, err := openConfigured(portID, "listen")
	if err != nil {
		return err
	}
	defer port.Close()

	if err := port.SetDTR(true); err != nil {
		return fmt.Errorf("asserting DTR: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Listening on %s (ctrl+c to stop)\n", port.Name())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	buf := make([]byte, 4096)
	// One extra slot so a break after a completely full read still has a
	// place to be marked.
	brk := make([]byte, 4097)
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(os.Stderr)
			return nil
		case <-ticker.C:
			for i := range brk {
				brk[i] = 0
			}
			n, err := port.Read(buf, brk)
			if err != nil {
				return fmt.Errorf("reading %s: %w", port.Name(), err)
			}
			if n > 0 {
				printChunk(os.Stdout, buf[:n], brk, hexMode)
			}
		}
	}
}

// printChunk writes one read's worth of decoded data. Raw mode passes bytes
// through untouched so binary streams survive piping; values above 0x7f must
// not be re-encoded as UTF-8.
func printChunk(w io.Writer, data, brk []byte, hexMode bool) {
	var out bytes.Buffer
	for i, b := range data {
		if brk[i] == 1 {
			out.WriteString("<BREAK>")
		}
		if hexMode {
			fmt.Fprintf(&out, "%02X ", b)
		} else {
			out.WriteByte(b)
		}
	}
	// A break after the last data byte is marked just past the data.
	if len(data) < len(brk) && brk[len(data)] == 1 {
		out.WriteString("<BREAK>")
	}
	w.Write(out.Bytes())
}
