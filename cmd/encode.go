package cmd

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luma/marbus/nmea"
	"github.com/luma/marbus/seatalk"
)

var seatalkHex bool

var EncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Re-encode NMEA sentences or SeaTalk frames read from stdin",
	Long: `Re-encode NMEA sentences or SeaTalk frames read from stdin

NMEA lines are decoded and written back in canonical form with a fresh
checksum. With --seatalk-hex every line is the hex of one SeaTalk frame, the
output is the hex of its parity-marked wire form.

Usage
	echo '$GPXTR,0.150,L,N*4D' | marbus encode
	echo '00 02 0a 00 01' | marbus encode --seatalk-hex

`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, err := setup(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		out := cmd.OutOrStdout()
		scanner := bufio.NewScanner(cmd.InOrStdin())

		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			if seatalkHex {
				err = encodeSeaTalk(cmd, line)
			} else {
				var s nmea.Sentence
				if s, err = nmea.Parse(line); err == nil {
					err = nmea.WriteSentence(out, s)
				}
			}

			if err != nil {
				log.Warn("Skipped line", zap.String("line", line), zap.Error(err))
			}
		}

		return scanner.Err()
	},
}

func encodeSeaTalk(cmd *cobra.Command, line string) error {
	raw, err := hex.DecodeString(strings.ReplaceAll(line, " ", ""))
	if err != nil {
		return err
	}

	m, err := seatalk.Decode(raw)
	if err != nil {
		return err
	}

	wire, err := seatalk.Escape(seatalk.Encode(m))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "% x\n", wire)
	return err
}

func init() {
	EncodeCmd.Flags().BoolVar(&seatalkHex, "seatalk-hex", false, "Input lines are hex SeaTalk frames")
}
