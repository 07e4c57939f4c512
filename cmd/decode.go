package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"github.com/luma/marbus/internal/gateway"
	"github.com/luma/marbus/nmea"
	"github.com/luma/marbus/seatalk"
)

var DecodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode bus traffic into JSON lines",
	Long: `Decode bus traffic into JSON lines

Every decoded sentence or message is printed as {"kind":...,"value":...}.
Input that does not decode is logged and skipped.

Usage
	marbus decode --protocol seatalk --device capture.bin
	marbus decode -d /dev/ttyUSB0

`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		conf, log, err := setup(ctx, cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		bus, err := openBus(conf)
		if err != nil {
			return err
		}
		defer bus.Close()

		out := cmd.OutOrStdout()

		switch conf.Protocol {
		case gateway.ProtocolSeaTalk:
			err = seatalk.NewReader(bus, seatalk.Options{Log: log.Named("seatalk")}).Process(ctx,
				seatalk.HandlerFunc(func(m seatalk.Message) {
					emit(out, log, gateway.MessageKey(m), m)
				}),
				func(raw seatalk.Raw, err error) error {
					log.Warn("Skipped frame", zap.Stringer("frame", raw), zap.Error(err))
					return nil
				})

		default:
			err = nmea.NewReader(bus, nmea.Options{Log: log.Named("nmea")}).Process(ctx,
				nmea.HandlerFunc(func(s nmea.Sentence) {
					emit(out, log, gateway.SentenceKey(s), s)
				}),
				func(line string, err error) error {
					log.Warn("Skipped sentence", zap.String("line", line), zap.Error(err))
					return nil
				})
		}

		if isEndOfInput(err) {
			return nil
		}

		return err
	},
}

func emit(out io.Writer, log *zap.Logger, kind string, value interface{}) {
	line, err := sjson.SetBytes([]byte(`{}`), "kind", kind)
	if err == nil {
		line, err = sjson.SetBytes(line, "value", value)
	}

	if err != nil {
		log.Warn("Failed to render", zap.String("kind", kind), zap.Error(err))
		return
	}

	fmt.Fprintln(out, string(line))
}
