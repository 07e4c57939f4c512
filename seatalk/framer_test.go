package seatalk_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/luma/marbus/seatalk"
)

func popcount(b byte) int {
	n := 0
	for ; b != 0; b >>= 1 {
		n += int(b & 1)
	}
	return n
}

// feed runs bytes through f and returns every frame emitted and the first error.
func feed(f *seatalk.Framer, bs ...byte) ([]seatalk.Raw, error) {
	var frames []seatalk.Raw
	for _, b := range bs {
		frame, err := f.Feed(b)
		if err != nil {
			return frames, err
		}
		if frame != nil {
			frames = append(frames, frame)
		}
	}
	return frames, nil
}

// oddAttribute returns an attribute byte with low nibble n and an odd number of
// ones, so the framer reads it as a data byte.
func oddAttribute(n byte) byte {
	if popcount(n)%2 == 0 {
		return 0x10 | n
	}
	return n
}

var _ = Describe("Framer", func() {
	var framer *seatalk.Framer

	BeforeEach(func() {
		framer = seatalk.NewFramer()
	})

	Describe("Parity()", func() {
		It("holds exactly for bytes with an even number of ones", func() {
			for i := 0; i < 256; i++ {
				b := byte(i)
				Expect(seatalk.Parity(b)).To(Equal(popcount(b)%2 == 0), "byte 0x%02x", b)
			}
		})
	})

	It("starts reading and unsynchronized", func() {
		s := framer.State()
		Expect(s.Mode()).To(Equal(seatalk.ModeRead))
		Expect(s.Remaining()).To(Equal(uint8(255)))
		Expect(s.Synced()).To(BeFalse())
		Expect(framer.Collisions()).To(BeZero())
	})

	It("drops data bytes before the first command byte", func() {
		frames, err := feed(framer, 0x01, 0x02, 0x07)
		Expect(err).To(Succeed())
		Expect(frames).To(BeEmpty())
		Expect(framer.State().Remaining()).To(Equal(uint8(255)))
	})

	It("emits a frame once the announced length is consumed", func() {
		frames, err := feed(framer, 0x21, 0x02, 0x01, 0x02)
		Expect(err).To(Succeed())
		Expect(frames).To(BeEmpty())
		Expect(framer.State().Remaining()).To(Equal(uint8(1)))

		frame, err := framer.Feed(0x01)
		Expect(err).To(Succeed())
		Expect(frame).To(Equal(seatalk.Raw{0x21, 0x02, 0x01, 0x02, 0x01}))
		Expect(framer.State().Remaining()).To(BeZero())
	})

	It("completes after attribute nibble + 2 bytes for every length", func() {
		for n := byte(0); n < 16; n++ {
			f := seatalk.NewFramer()

			_, err := f.Feed(0x21)
			Expect(err).To(Succeed())

			stream := append([]byte{oddAttribute(n)}, make([]byte, n+1)...)
			for i := 1; i < len(stream); i++ {
				stream[i] = 0x01
			}

			for i, b := range stream {
				frame, err := f.Feed(b)
				Expect(err).To(Succeed())

				if i < len(stream)-1 {
					Expect(frame).To(BeNil(), "nibble %d, byte %d", n, i)
				} else {
					Expect(frame).To(HaveLen(int(n) + 3))
				}
			}
		}
	})

	It("ignores data bytes after a frame is complete", func() {
		frames, err := feed(framer, 0x21, 0x02, 0x01, 0x02, 0x01, 0x01, 0x02)
		Expect(err).To(Succeed())
		Expect(frames).To(HaveLen(1))
	})

	It("hands out frames that do not alias framer memory", func() {
		frames, err := feed(framer, 0x21, 0x02, 0x01, 0x02, 0x01)
		Expect(err).To(Succeed())
		Expect(frames).To(HaveLen(1))

		_, err = feed(framer, 0x21, 0x02, 0x07, 0x0b, 0x0d)
		Expect(err).To(Succeed())
		Expect(frames[0]).To(Equal(seatalk.Raw{0x21, 0x02, 0x01, 0x02, 0x01}))
	})

	Describe("escaping", func() {
		It("treats 0xff 0x00 <byte> as a data byte for command-looking bytes", func() {
			for i := 0; i < 256; i++ {
				b := byte(i)
				if !seatalk.Parity(b) {
					continue
				}

				f := seatalk.NewFramer()
				frames, err := feed(f, 0x21, 0x01, 0xff, 0x00, b, 0x01)
				Expect(err).To(Succeed())
				Expect(frames).To(Equal([]seatalk.Raw{{0x21, 0x01, b, 0x01}}), "byte 0x%02x", b)
			}
		})

		It("gives the same frame as an unquoted data byte", func() {
			quoted, err := feed(seatalk.NewFramer(), 0x21, 0x01, 0xff, 0x00, 0x03, 0x01)
			Expect(err).To(Succeed())

			plain, err := feed(seatalk.NewFramer(), 0x21, 0x01, 0x07, 0x01)
			Expect(err).To(Succeed())

			Expect(quoted[0][:2]).To(Equal(plain[0][:2]))
			Expect(quoted[0]).To(HaveLen(len(plain[0])))
		})

		It("treats a quoted data-looking byte as a new command", func() {
			frames, err := feed(framer, 0x21, 0x02, 0x01, 0xff, 0x00, 0x01)
			Expect(err).To(Succeed())
			Expect(frames).To(BeEmpty())

			s := framer.State()
			Expect(s.Mode()).To(Equal(seatalk.ModeRead))
			Expect(s.Remaining()).To(Equal(uint8(254)))
			Expect(framer.Collisions()).To(Equal(uint64(1)))

			frames, err = feed(framer, 0x07, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01)
			Expect(err).To(Succeed())
			Expect(frames).To(HaveLen(1))
			Expect(frames[0]).To(HaveLen(10))
			Expect(frames[0].ID()).To(Equal(seatalk.ID(0x01)))
		})

		It("turns 0xff 0xff into a literal 0xff data byte", func() {
			frames, err := feed(framer, 0x21, 0x01, 0xff, 0xff, 0x01)
			Expect(err).To(Succeed())
			Expect(frames).To(Equal([]seatalk.Raw{{0x21, 0x01, 0xff, 0x01}}))
		})

		It("raises a bus read error for any other escaped byte", func() {
			for i := 1; i < 255; i++ {
				f := seatalk.NewFramer()
				_, err := feed(f, 0x21, 0x02, 0xff, byte(i))
				Expect(err).To(MatchError(seatalk.ErrBusRead), "byte 0x%02x", i)
			}
		})

		It("resynchronizes on the next command byte after an error", func() {
			_, err := feed(framer, 0x21, 0x02, 0xff, 0x42)
			Expect(err).To(MatchError(seatalk.ErrBusRead))

			s := framer.State()
			Expect(s.Mode()).To(Equal(seatalk.ModeRead))
			Expect(s.Synced()).To(BeFalse())

			frames, err := feed(framer, 0x01, 0x02, 0x21, 0x02, 0x01, 0x02, 0x01)
			Expect(err).To(Succeed())
			Expect(frames).To(Equal([]seatalk.Raw{{0x21, 0x02, 0x01, 0x02, 0x01}}))
			Expect(framer.Collisions()).To(BeZero())
		})
	})

	Describe("collisions", func() {
		It("counts a command byte arriving mid frame", func() {
			_, err := feed(framer, 0x21, 0x02, 0x01, 0x21)
			Expect(err).To(Succeed())
			Expect(framer.Collisions()).To(Equal(uint64(1)))
			Expect(framer.State().Remaining()).To(Equal(uint8(254)))
		})

		It("does not count when waiting for an attribute byte", func() {
			_, err := feed(framer, 0x21, 0x21)
			Expect(err).To(Succeed())
			Expect(framer.Collisions()).To(BeZero())
		})

		It("does not count after a complete frame or before sync", func() {
			_, err := feed(framer, 0x21, 0x02, 0x01, 0x02, 0x01, 0x21)
			Expect(err).To(Succeed())
			Expect(framer.Collisions()).To(BeZero())

			f := seatalk.NewFramer()
			_, err = feed(f, 0x21)
			Expect(err).To(Succeed())
			Expect(f.Collisions()).To(BeZero())
		})

		It("keeps the new frame after a collision", func() {
			frames, err := feed(framer, 0x21, 0x02, 0x01, 0x22, 0x01, 0x01, 0x02)
			Expect(err).To(Succeed())
			Expect(frames).To(Equal([]seatalk.Raw{{0x22, 0x01, 0x01, 0x02}}))
			Expect(framer.Collisions()).To(Equal(uint64(1)))
		})
	})

	Describe("State.Next()", func() {
		It("does not modify the receiver", func() {
			s := seatalk.NewState()
			next, frame, err := s.Next(0x21)
			Expect(err).To(Succeed())
			Expect(frame).To(BeNil())

			Expect(s.Remaining()).To(Equal(uint8(255)))
			Expect(next.Remaining()).To(Equal(uint8(254)))
		})

		It("moves READ -> ESCAPE -> PARITY -> READ", func() {
			s := seatalk.NewState()
			s, _, _ = s.Next(0xff)
			Expect(s.Mode()).To(Equal(seatalk.ModeEscape))
			s, _, _ = s.Next(0x00)
			Expect(s.Mode()).To(Equal(seatalk.ModeParity))
			s, _, _ = s.Next(0x21)
			Expect(s.Mode()).To(Equal(seatalk.ModeRead))
		})
	})
})
