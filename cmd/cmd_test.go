package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/luma/marbus/cmd"
	"github.com/luma/marbus/seatalk"
)

func run(stdin string, args ...string) (string, error) {
	var out bytes.Buffer

	cmd.RootCmd.SetArgs(args)
	cmd.RootCmd.SetIn(strings.NewReader(stdin))
	cmd.RootCmd.SetOut(&out)

	err := cmd.RootCmd.Execute()
	return out.String(), err
}

var _ = Describe("marbus", func() {
	Describe("encode", func() {
		It("normalizes sentences and recomputes checksums", func() {
			out, err := run("$GPXTR,0.150,L,N*4D\n\nnot a sentence\n", "encode", "--protocol", "nmea", "--seatalk-hex=false")
			Expect(err).To(Succeed())
			Expect(out).To(Equal("$GPXTR,0.15,L,N*7D\r\n"))
		})

		It("escapes SeaTalk frames for the wire", func() {
			out, err := run("00 02 0a 00 01\n", "encode", "--protocol", "nmea", "--seatalk-hex")
			Expect(err).To(Succeed())
			Expect(out).To(Equal("00 02 ff 00 0a ff 00 00 01\n"))
		})
	})

	Describe("decode", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp("", "marbus-cmd")
			Expect(err).To(Succeed())
		})

		AfterEach(func() {
			Expect(os.RemoveAll(dir)).To(Succeed())
		})

		It("prints NMEA sentences as JSON lines", func() {
			path := filepath.Join(dir, "capture.nmea")
			Expect(os.WriteFile(path, []byte("$GPXTR,0.15,L,N*7D\r\n$GPXTR,1*00\r\n"), 0600)).To(Succeed())

			out, err := run("", "decode", "--protocol", "nmea", "--device", path)
			Expect(err).To(Succeed())
			Expect(out).To(MatchJSON(`{"kind":"nmea.GP.XTR","value":{"Magnitude":0.15,"Direction":"L","Unit":"N"}}`))
		})

		It("prints SeaTalk messages as JSON lines", func() {
			var wire bytes.Buffer
			Expect(seatalk.WriteMessage(&wire, seatalk.LampIntensity{Level: 3})).To(Succeed())

			path := filepath.Join(dir, "capture.seatalk")
			Expect(os.WriteFile(path, wire.Bytes(), 0600)).To(Succeed())

			out, err := run("", "decode", "--protocol", "seatalk", "--device", path)
			Expect(err).To(Succeed())
			Expect(out).To(MatchJSON(`{"kind":"seatalk.lamp_intensity","value":{"Level":3}}`))
		})

		It("rejects unknown protocols", func() {
			_, err := run("", "decode", "--protocol", "nmea2000", "--device", "-")
			Expect(err).To(HaveOccurred())
		})
	})

	It("prints the version", func() {
		out, err := run("", "version")
		Expect(err).To(Succeed())
		Expect(out).To(ContainSubstring("version: dev"))
	})
})
