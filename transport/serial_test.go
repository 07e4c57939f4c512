package transport_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/luma/marbus/transport"
)

var _ = Describe("transport / OpenSerial", func() {
	It("names the device when it cannot be opened", func() {
		_, err := transport.OpenSerial(transport.SerialOptions{Device: "/dev/marbus-does-not-exist"})
		Expect(err).To(MatchError(ContainSubstring("/dev/marbus-does-not-exist")))
	})
})
