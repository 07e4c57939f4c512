package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luma/marbus/cmd/gen"
	"github.com/luma/marbus/internal/env"
)

var (
	// Path to a YAML config file
	configPath string

	// Overrides for the bus settings in the config
	protocol string
	device   string
	baud     int
)

var RootCmd = &cobra.Command{
	Use:   "marbus",
	Short: "Decode, encode and serve NMEA 0183 and SeaTalk marine bus traffic",
	Long: `Decode, encode and serve NMEA 0183 and SeaTalk marine bus traffic

Configuration is read from a YAML file (--config or MARBUS_CONFIG), then
.env.local, then MARBUS_* environment variables. Flags win over all of them.
`,
	SilenceUsage: true,
}

func init() {
	flags := RootCmd.PersistentFlags()

	flags.StringVarP(&configPath, "config", "c", "", "YAML config file")
	flags.StringVar(&protocol, "protocol", "", "Bus protocol, nmea or seatalk")
	flags.StringVarP(&device, "device", "d", "", "Serial port or capture file, - for stdin")
	flags.IntVar(&baud, "baud", 0, "Serial port speed")

	RootCmd.AddCommand(
		ServeCmd,
		DecodeCmd,
		EncodeCmd,
		VersionCmd,
		gen.RootCmd,
	)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the config, applies flag overrides and builds the logger.
func setup(ctx context.Context, cmd *cobra.Command) (*env.Config, *zap.Logger, error) {
	conf, err := env.LoadConfig(ctx, configPath)
	if err != nil {
		return nil, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("protocol") {
		conf.Protocol = protocol
	}
	if flags.Changed("device") {
		conf.Device = device
	}
	if flags.Changed("baud") {
		conf.Baud = baud
	}

	if err := conf.Validate(); err != nil {
		return nil, nil, fmt.Errorf("after flags: %w", err)
	}

	log, err := env.MakeLogger(conf)
	if err != nil {
		return nil, nil, err
	}

	return conf, log, nil
}
