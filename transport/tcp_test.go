package transport_test

import (
	"bufio"
	"context"
	"net"
	"sync"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/luma/marbus/field"
	"github.com/luma/marbus/nmea"
	"github.com/luma/marbus/transport"
)

// sentenceSink collects sentences handed over by the server.
type sentenceSink struct {
	mu        sync.Mutex
	sentences []nmea.Sentence
}

func (s *sentenceSink) HandleSentence(sentence nmea.Sentence) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sentences = append(s.sentences, sentence)
}

func (s *sentenceSink) Tags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	tags := make([]string, 0, len(s.sentences))
	for _, sentence := range s.sentences {
		tags = append(tags, sentence.Tag())
	}

	return tags
}

var _ = Describe("transport", func() {
	Describe("TCP", func() {
		var (
			sink *sentenceSink
			tcp  *transport.TCP
		)

		BeforeEach(func() {
			sink = &sentenceSink{}
			tcp = makeTCPServer(sink)
		})

		AfterEach(func() {
			Expect(tcp.Close()).To(Succeed())
		})

		It("listens on the bound address", func() {
			conn := dial(tcp)
			conn.Close()
		})

		It("broadcasts sentences to every client", func() {
			first := dial(tcp)
			defer first.Close()
			second := dial(tcp)
			defer second.Close()

			Eventually(tcp.Clients).Should(Equal(2))

			xtr := nmea.NewXTR("GP")
			xtr.Magnitude = field.Some(0.15)
			xtr.Direction = field.Some(field.SideLeft)
			xtr.Unit = field.Some(field.UnitNauticalMiles)
			Expect(tcp.Broadcast(xtr)).To(Succeed())

			for _, conn := range []net.Conn{first, second} {
				Expect(conn.SetReadDeadline(time.Now().Add(5 * time.Second))).To(Succeed())

				line, err := readLine(conn)
				Expect(err).To(Succeed())
				Expect(string(line)).To(Equal("$GPXTR,0.15,L,N*7D"))
			}
		})

		It("hands sentences from clients to the handler and drops bad lines", func() {
			conn := dial(tcp)
			defer conn.Close()

			_, err := conn.Write([]byte("$GPXTR,0.15,L,N*00\r\ngarbage\r\n$GPXTR,0.15,L,N*7D\r\n"))
			Expect(err).To(Succeed())

			Eventually(sink.Tags).Should(Equal([]string{"XTR"}))
		})

		It("forgets clients that disconnect", func() {
			conn := dial(tcp)
			Eventually(tcp.Clients).Should(Equal(1))

			conn.Close()
			Eventually(tcp.Clients).Should(Equal(0))
		})

		It("disconnects clients when closed", func() {
			conn := dial(tcp)
			defer conn.Close()
			Eventually(tcp.Clients).Should(Equal(1))

			Expect(tcp.Close()).To(Succeed())
			waitForClose(conn)
		})
	})
})

func dial(tcp *transport.TCP) net.Conn {
	conn, err := net.Dial("tcp", tcp.Addr().String())
	Expect(err).To(Succeed())

	return conn
}

func waitForClose(conn net.Conn) {
	// Wait for our client to be disconnected by the server
	Expect(conn.SetReadDeadline(time.Now().Add(30 * time.Second))).To(Succeed())

	one := make([]byte, 1)
	_, err := conn.Read(one)
	Expect(err).To(HaveOccurred())

	if netErr, ok := err.(net.Error); ok {
		Expect(netErr.Timeout()).To(BeFalse(), "The client was never closed by the server")
	}
}

func makeTCPServer(handler nmea.Handler) *transport.TCP {
	log, err := zap.NewDevelopment()
	Expect(err).To(Succeed())

	tcp := transport.NewTCP(transport.Options{
		Host:         "127.0.0.1",
		Log:          log,
		NumListeners: 1,
		Reuseport:    true,
		Handler:      handler,
	})

	Expect(tcp.Start(context.Background())).To(Succeed())
	return tcp
}

func readLine(conn net.Conn) ([]byte, error) {
	r := bufio.NewReader(conn)
	var line []byte

	for {
		chunk, more, err := r.ReadLine()
		if err != nil {
			return nil, err
		}

		// Avoid the copy if the first call produced a full line.
		if line == nil && !more {
			return chunk, nil
		}

		line = append(line, chunk...)

		if !more {
			break
		}
	}

	return line, nil
}
