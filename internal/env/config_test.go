package env_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/luma/marbus/internal/env"
)

var _ = Describe("env", func() {
	var (
		ctx context.Context
		dir string
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		dir, err = os.MkdirTemp("", "marbus-env")
		Expect(err).To(Succeed())
	})

	AfterEach(func() {
		os.Unsetenv("MARBUS_PROTOCOL")
		os.Unsetenv("MARBUS_TCP_PORT")
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	writeConfig := func(body string) string {
		path := filepath.Join(dir, "marbus.yaml")
		Expect(os.WriteFile(path, []byte(body), 0600)).To(Succeed())
		return path
	}

	Describe("LoadConfig()", func() {
		It("uses defaults without a file", func() {
			config, err := env.LoadConfig(ctx, "")
			Expect(err).To(Succeed())
			Expect(*config).To(Equal(env.DefaultConfig()))
		})

		It("reads the YAML file over the defaults", func() {
			path := writeConfig("protocol: seatalk\ndevice: /dev/ttyUSB0\ntcp-port: 2000\n")

			config, err := env.LoadConfig(ctx, path)
			Expect(err).To(Succeed())
			Expect(config.Protocol).To(Equal("seatalk"))
			Expect(config.Device).To(Equal("/dev/ttyUSB0"))
			Expect(config.TCPPort).To(Equal(2000))
			Expect(config.Baud).To(Equal(4800))
		})

		It("lets the environment win over the file", func() {
			path := writeConfig("protocol: seatalk\ntcp-port: 2000\n")
			os.Setenv("MARBUS_TCP_PORT", "3000")

			config, err := env.LoadConfig(ctx, path)
			Expect(err).To(Succeed())
			Expect(config.Protocol).To(Equal("seatalk"))
			Expect(config.TCPPort).To(Equal(3000))
		})

		It("rejects unknown protocols", func() {
			os.Setenv("MARBUS_PROTOCOL", "nmea2000")

			_, err := env.LoadConfig(ctx, "")
			Expect(err).To(MatchError(env.ErrInvalidConfig))
		})

		It("fails on a missing file", func() {
			_, err := env.LoadConfig(ctx, filepath.Join(dir, "nope.yaml"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("MakeLogger()", func() {
		It("writes to a log file when one is configured", func() {
			config := env.DefaultConfig()
			config.LogFile = filepath.Join(dir, "marbus.log")

			log, err := env.MakeLogger(&config)
			Expect(err).To(Succeed())

			log.Info("hello")
			Expect(log.Sync()).To(Succeed())

			data, err := os.ReadFile(config.LogFile)
			Expect(err).To(Succeed())
			Expect(string(data)).To(ContainSubstring(`"msg":"hello"`))
		})

		It("rejects unknown levels", func() {
			config := env.DefaultConfig()
			config.LogLevel = "loud"

			_, err := env.MakeLogger(&config)
			Expect(err).To(MatchError(env.ErrInvalidConfig))
		})
	})
})
