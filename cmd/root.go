/*
Copyright © 2026 Martin Kleist
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mkleist/serline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "serline",
	Short: "Inspect and talk to host serial devices",
	Long: `serline lists, opens and exchanges data with the serial devices of the
host machine.

Devices can be addressed three ways wherever a <port> argument appears:
- a serN alias from the enumeration order (ser0, ser1, ...)
- the device description as shown by 'serline list'
- the device name or path verbatim (/dev/ttyUSB0, COM3)

Line conditions such as BREAK are decoded from the host's in-band
signalling and surfaced alongside the data stream.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
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
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.serline.yaml)")

	rootCmd.PersistentFlags().IntP("baud", "b", 9600, "Baud rate")
	rootCmd.PersistentFlags().Int("char-size", 8, "Character size in bits (5-8)")
	rootCmd.PersistentFlags().String("parity", "none", "Parity: none, even, odd, mark, space")
	rootCmd.PersistentFlags().String("stop-bits", "1", "Stop bits: 1, 1.5, 2")

	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "console", "Log format: console, json")
	rootCmd.PersistentFlags().String("log-file", "", "Log to a rotated file instead of stderr")

	for _, name := range []string{
		"baud", "char-size", "parity", "stop-bits",
		"log-level", "log-format", "log-file",
	} {
		cobra.CheckErr(viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".serline" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".serline")
	}

	viper.SetEnvPrefix("SERLINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// lineConfig builds the serial line configuration from flags, environment
// and config file, in viper's usual precedence order.
func lineConfig() (serline.Config, error) {
	cfg := serline.DefaultConfig()
	cfg.BaudRate = viper.GetInt("baud")
	cfg.CharSize = viper.GetInt("char-size")

	switch strings.ToLower(viper.GetString("parity")) {
	case "none", "n":
		cfg.Parity = serline.ParityNone
	case "even", "e":
		cfg.Parity = serline.ParityEven
	case "odd", "o":
		cfg.Parity = serline.ParityOdd
	case "mark", "m":
		cfg.Parity = serline.ParityMark
	case "space", "s":
		cfg.Parity = serline.ParitySpace
	default:
		return cfg, fmt.Errorf("invalid parity %q", viper.GetString("parity"))
	}

	switch viper.GetString("stop-bits") {
	case "1":
		cfg.StopBits = serline.StopBitsOne
	case "1.5":
		cfg.StopBits = serline.StopBitsOneAndHalf
	case "2":
		cfg.StopBits = serline.StopBitsTwo
	default:
		return cfg, fmt.Errorf("invalid stop bits %q", viper.GetString("stop-bits"))
	}

	return cfg, nil
}

// consoleOwner labels ports opened by CLI commands in status output.
type consoleOwner string

func (o consoleOwner) LineLabel() string { return string(o) }

// openConfigured resolves and opens port, then applies the line
// configuration from flags. The port is closed again if configuration fails.
func openConfigured(portID, label string) (*serline.Port, error) {
	cfg, err := lineConfig()
	if err != nil {
		return nil, err
	}

	port, err := serline.Open(portID, consoleOwner(label))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", portID, err)
	}

	if err := port.Configure(cfg); err != nil {
		port.Close()
		return nil, fmt.Errorf("configuring %s: %w", port.Name(), err)
	}

	return port, nil
}
