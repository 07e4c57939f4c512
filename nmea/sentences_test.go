package nmea_test

import (
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/luma/marbus/field"
	"github.com/luma/marbus/geo"
	"github.com/luma/marbus/nmea"
)

func catalogue() []nmea.Sentence {
	xtr := nmea.NewXTR("GP")
	xtr.Magnitude = field.Some(0.15)
	xtr.Direction = field.Some(field.SideLeft)
	xtr.Unit = field.Some(field.UnitNauticalMiles)

	bwc := nmea.NewBWC("GP")
	bwc.Time = field.Some(field.Time{Hour: 22, Minute: 5, Second: 16, Millisecond: 500})
	bwc.Latitude = field.Some(geo.Latitude(51.5))
	bwc.Longitude = field.Some(geo.Longitude(-0.25))
	bwc.SetBearingTrue(213.8)
	bwc.SetBearingMagnetic(218.0)
	bwc.SetDistance(4.6)
	bwc.Waypoint = field.Some("EGLM")
	bwc.Mode = field.Some(field.ModeAutonomous)

	vtg := nmea.NewVTG("II")
	vtg.SetTrackTrue(54.7)
	vtg.SetSpeedKnots(5.5)
	vtg.SetSpeedKmh(10.2)

	zda := nmea.NewZDA("GP")
	zda.Time = field.Some(field.Time{Hour: 20, Minute: 15, Second: 30})
	zda.Day = field.Some(4)
	zda.Month = field.Some(7)
	zda.Year = field.Some(2002)
	zda.ZoneHours = field.Some(-5)
	zda.ZoneMinutes = field.Some(0)

	zdl := nmea.NewZDL("GP")
	zdl.TimeToPoint = field.Some(26*time.Hour + 15*time.Minute + 30*time.Second)
	zdl.DistanceToPoint = field.Some(12.5)
	zdl.PointType = field.Some(field.PointWheelover)

	glc := nmea.NewGLC("LC")
	glc.GRI = field.Some(9960)
	glc.Master = field.Some(nmea.TimeDifference{Diff: 1234.5, Status: field.StatusOK})
	glc.Secondaries[0] = field.Some(nmea.TimeDifference{Diff: 13456.1, Status: field.StatusOK})
	glc.Secondaries[3] = field.Some(nmea.TimeDifference{Diff: 41234.9, Status: field.StatusWarning})

	gtd := nmea.NewGTD("LC")
	gtd.TimeDiffs[0] = field.Some(15000.5)
	gtd.TimeDiffs[4] = field.Some(0.1)

	r00 := nmea.NewR00("GP")
	r00.Waypoints[0] = field.Some("HOME")
	r00.Waypoints[1] = field.Some("BUOY7")
	r00.Waypoints[2] = field.Some("DEST")

	return []nmea.Sentence{xtr, bwc, vtg, zda, zdl, glc, gtd, r00}
}

// vdm stands in for an AIS kind, it keeps its fields as text.
type vdm struct {
	talker string
	fields []string
}

func parseVDM(talker string, fields []string) (nmea.Sentence, error) {
	return &vdm{talker: talker, fields: fields}, nil
}

func (s *vdm) Talker() string     { return s.talker }
func (s *vdm) Tag() string        { return "VDM" }
func (s *vdm) Fields() []string   { return s.fields }
func (s *vdm) Encapsulated() bool { return true }

var _ = Describe("Sentences", func() {
	It("decodes the cross track error scenario", func() {
		s, err := nmea.Parse("$GPXTR,0.15,L,N*7D")
		Expect(err).To(Succeed())

		xtr, ok := s.(*nmea.XTR)
		Expect(ok).To(BeTrue())
		Expect(xtr.Talker()).To(Equal("GP"))
		Expect(xtr.Magnitude).To(Equal(field.Some(0.15)))
		Expect(xtr.Direction).To(Equal(field.Some(field.SideLeft)))
		Expect(xtr.Unit).To(Equal(field.Some(field.UnitNauticalMiles)))

		Expect(nmea.Format(xtr)).To(Equal("$GPXTR,0.15,L,N*7D"))
	})

	It("round trips every sentence", func() {
		for _, s := range catalogue() {
			line := nmea.Format(s)

			back, err := nmea.Parse(line)
			Expect(err).To(Succeed(), line)
			Expect(back).To(Equal(s), line)
			Expect(nmea.Format(back)).To(Equal(line))
		}
	})

	It("keeps the talker", func() {
		s, err := nmea.Parse(nmea.Compose('$', "EC", "XTR", []string{"", "", ""}))
		Expect(err).To(Succeed())
		Expect(s.Talker()).To(Equal("EC"))
		Expect(s.Tag()).To(Equal("XTR"))
	})

	It("writes empty fields for absent values", func() {
		Expect(nmea.NewGTD("").Fields()).To(Equal([]string{"", "", "", "", ""}))
		Expect(nmea.Format(nmea.NewXTR(""))).To(HavePrefix("$GPXTR,,,*"))
	})

	It("keeps the legacy VTG form without mode indicator", func() {
		s, err := nmea.Parse("$GPVTG,054.7,T,034.4,M,005.5,N,010.2,K*48")
		Expect(err).To(Succeed())
		Expect(s.Fields()).To(HaveLen(8))
		Expect(s.(*nmea.VTG).Mode.IsSet()).To(BeFalse())

		s, err = nmea.Parse("$GPVTG,054.7,T,034.4,M,005.5,N,010.2,K,A*25")
		Expect(err).To(Succeed())
		Expect(s.Fields()).To(HaveLen(9))
		Expect(s.(*nmea.VTG).Mode).To(Equal(field.Some(field.ModeAutonomous)))
		Expect(s.(*nmea.VTG).TrackMagnetic).To(Equal(field.Some(34.4)))
	})

	It("keeps reference and unit letters sent without a value", func() {
		line := "$GPVTG,,T,,M,0.00,N,0.00,K,N*2C"
		s, err := nmea.Parse(line)
		Expect(err).To(Succeed())

		vtg := s.(*nmea.VTG)
		Expect(vtg.TrackTrue.IsSet()).To(BeFalse())
		Expect(vtg.TrackTrueRef).To(Equal(field.Some(field.ReferenceTrue)))
		Expect(vtg.TrackMagneticRef).To(Equal(field.Some(field.ReferenceMagnetic)))
		Expect(vtg.Fields()).To(Equal([]string{"", "T", "", "M", "0.0", "N", "0.0", "K", "N"}))

		s, err = nmea.Parse(nmea.Compose('$', "GP", "BWC",
			[]string{"", "", "", "", "", "", "T", "", "M", "", "N", "", ""}))
		Expect(err).To(Succeed())
		Expect(s.Fields()[6:11]).To(Equal([]string{"T", "", "M", "", "N"}))
	})

	It("leaves letters out when the talker did", func() {
		s, err := nmea.Parse(nmea.Compose('$', "GP", "VTG",
			[]string{"054.7", "", "", "", "", "", "", ""}))
		Expect(err).To(Succeed())
		Expect(s.(*nmea.VTG).TrackTrueRef.IsSet()).To(BeFalse())
		Expect(s.Fields()[:2]).To(Equal([]string{"54.7", ""}))
	})

	It("writes the current VTG form for new sentences", func() {
		Expect(nmea.NewVTG("").Fields()).To(HaveLen(9))
	})

	It("decodes ZDA", func() {
		s, err := nmea.Parse("$GPZDA,201530.00,04,07,2002,00,00*60")
		Expect(err).To(Succeed())

		zda := s.(*nmea.ZDA)
		Expect(zda.Time).To(Equal(field.Some(field.Time{Hour: 20, Minute: 15, Second: 30})))
		Expect(zda.Year).To(Equal(field.Some(2002)))
	})

	It("signs coordinates by hemisphere", func() {
		s, err := nmea.Parse(nmea.Compose('$', "GP", "BWC",
			[]string{"", "3330.0000", "S", "15115.0000", "W", "", "", "", "", "", "", "", ""}))
		Expect(err).To(Succeed())

		bwc := s.(*nmea.BWC)
		Expect(bwc.Latitude).To(Equal(field.Some(geo.Latitude(-33.5))))
		Expect(bwc.Longitude).To(Equal(field.Some(geo.Longitude(-151.25))))
	})

	Describe("errors", func() {
		It("rejects unknown tags", func() {
			_, err := nmea.Parse(nmea.Compose('$', "GP", "XYZ", []string{"1"}))
			Expect(err).To(MatchError(nmea.ErrUnknownSentence))

			_, err = nmea.Parse("$GPXTR,0.15,L,N*7D")
			Expect(err).To(Succeed())
		})

		It("rejects the wrong number of fields", func() {
			_, err := nmea.Parse(nmea.Compose('$', "GP", "XTR", []string{"0.15", "L"}))
			Expect(err).To(MatchError(nmea.ErrFieldCount))

			_, err = nmea.Parse(nmea.Compose('$', "GP", "R00", make([]string, 13)))
			Expect(err).To(MatchError(nmea.ErrFieldCount))
		})

		It("rejects malformed fields and names the cause", func() {
			_, err := nmea.Parse(nmea.Compose('$', "GP", "XTR", []string{"abc", "L", "N"}))
			Expect(err).To(MatchError(nmea.ErrMalformedField))
			Expect(err).To(MatchError(field.ErrMalformed))

			_, err = nmea.Parse(nmea.Compose('$', "GP", "XTR", []string{"0.15", "X", "N"}))
			Expect(err).To(MatchError(nmea.ErrMalformedField))
		})

		It("rejects out of range values", func() {
			_, err := nmea.Parse(nmea.Compose('$', "GP", "ZDA", []string{"", "32", "", "", "", ""}))
			Expect(err).To(MatchError(nmea.ErrMalformedField))
			Expect(err).To(MatchError(field.ErrOutOfRange))
		})

		It("rejects fixed unit letters that do not match", func() {
			_, err := nmea.Parse(nmea.Compose('$', "GP", "VTG",
				[]string{"054.7", "M", "", "", "", "", "", ""}))
			Expect(err).To(MatchError(nmea.ErrMalformedField))
		})

		It("rejects half a time difference", func() {
			fields := make([]string, 13)
			fields[1] = "1234.5"
			_, err := nmea.Parse(nmea.Compose('$', "LC", "GLC", fields))
			Expect(err).To(MatchError(nmea.ErrMalformedField))
		})
	})

	Describe("Registry", func() {
		It("lists the built in tags", func() {
			Expect(nmea.DefaultRegistry.Tags()).To(Equal([]string{
				"BWC", "GLC", "GTD", "R00", "VTG", "XTR", "ZDA", "ZDL",
			}))
		})

		It("refuses duplicate tags", func() {
			r := nmea.NewRegistry()
			err := r.RegisterAll(
				nmea.Kind{Tag: nmea.TagXTR, Parse: nmea.ParseXTR},
				nmea.Kind{Tag: nmea.TagXTR, Parse: nmea.ParseXTR},
			)
			Expect(err).To(MatchError(nmea.ErrDuplicateSentence))
		})

		It("writes encapsulated kinds with their sentinel", func() {
			r := nmea.NewRegistry()
			Expect(r.Register("VDM", parseVDM)).To(Succeed())

			line := nmea.Compose('!', "AI", "VDM", []string{"1", "1", "", "A", "13aGmP0P00PD;88MD5MTDww@2D7k", "0"})
			s, err := r.Parse(line)
			Expect(err).To(Succeed())
			Expect(r.Format(s)).To(Equal(line))
		})

		It("decodes only what was registered", func() {
			r := nmea.NewRegistry()
			Expect(r.Register(nmea.TagZDL, nmea.ParseZDL)).To(Succeed())

			_, err := r.Parse("$GPXTR,0.15,L,N*7D")
			Expect(err).To(MatchError(nmea.ErrUnknownSentence))

			s, err := r.Decode("GP", "ZDL", []string{"", "", ""})
			Expect(err).To(Succeed())
			Expect(r.Format(s)).To(Equal(nmea.Compose('$', "GP", "ZDL", []string{"", "", ""})))
		})
	})
})
