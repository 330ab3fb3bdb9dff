package scene_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/efield/internal/geom"
	"github.com/san-kum/efield/internal/scene"
)

var _ = Describe("Scene", func() {
	var s *scene.Scene

	BeforeEach(func() {
		s = scene.New()
	})

	Describe("charges", func() {
		It("adds charges in order", func() {
			Expect(s.AddCharge(geom.V(0, 0), 1)).To(Succeed())
			Expect(s.AddCharge(geom.V(3, 4), -2)).To(Succeed())

			snap := s.Snapshot()
			Expect(snap.Charges).To(HaveLen(2))
			Expect(snap.Charges[1]).To(Equal(scene.Charge{Pos: geom.V(3, 4), Q: -2}))
		})

		DescribeTable("rejects invalid charges",
			func(pos geom.Vec, q float64) {
				err := s.AddCharge(pos, q)
				Expect(err).To(MatchError(scene.ErrInvalidCharge))
				Expect(s.NumCharges()).To(BeZero())

				var editErr *scene.EditError
				Expect(errors.As(err, &editErr)).To(BeTrue())
				Expect(editErr.Op).To(Equal("add charge"))
			},
			Entry("zero magnitude", geom.V(0, 0), 0.0),
			Entry("NaN magnitude", geom.V(0, 0), math.NaN()),
			Entry("infinite magnitude", geom.V(0, 0), math.Inf(1)),
			Entry("NaN position", geom.V(math.NaN(), 0), 1.0),
		)

		It("removes every charge within the radius, inclusive", func() {
			Expect(s.AddCharge(geom.V(0, 0), 1)).To(Succeed())
			Expect(s.AddCharge(geom.V(20, 0), 1)).To(Succeed())
			Expect(s.AddCharge(geom.V(21, 0), -1)).To(Succeed())
			Expect(s.AddCharge(geom.V(100, 0), 1)).To(Succeed())

			Expect(s.RemoveChargesNear(geom.V(0, 0), 20)).To(Equal(2))
			snap := s.Snapshot()
			Expect(snap.Charges).To(HaveLen(2))
			Expect(snap.Charges[0].Pos).To(Equal(geom.V(21, 0)))
			Expect(snap.Charges[1].Pos).To(Equal(geom.V(100, 0)))
		})

		It("returns zero when nothing is near", func() {
			Expect(s.AddCharge(geom.V(50, 50), 1)).To(Succeed())
			Expect(s.RemoveChargesNear(geom.V(0, 0), 10)).To(BeZero())
			Expect(s.NumCharges()).To(Equal(1))
		})
	})

	Describe("dielectrics", func() {
		It("normalizes drag corners", func() {
			Expect(s.AddDielectric(geom.V(4, 5), geom.V(1, 2), 3)).To(Succeed())
			d := s.Snapshot().Dielectrics[0]
			Expect(d.Rect).To(Equal(geom.Rect{X: 1, Y: 2, Width: 3, Height: 3}))
			Expect(d.EpsilonR).To(Equal(3.0))
		})

		DescribeTable("rejects bad permittivity",
			func(eps float64) {
				Expect(s.AddDielectric(geom.V(0, 0), geom.V(1, 1), eps)).
					To(MatchError(scene.ErrInvalidPermittivity))
				Expect(s.NumDielectrics()).To(BeZero())
			},
			Entry("zero", 0.0),
			Entry("negative", -2.0),
			Entry("NaN", math.NaN()),
			Entry("infinite", math.Inf(1)),
		)

		It("rejects non-finite corners", func() {
			Expect(s.AddDielectric(geom.V(math.Inf(1), 0), geom.V(1, 1), 2)).
				To(MatchError(scene.ErrInvalidRegion))
		})

		It("accepts zero-area rectangles", func() {
			Expect(s.AddDielectric(geom.V(1, 1), geom.V(1, 1), 2)).To(Succeed())
		})

		It("removes the first inserted region containing the point", func() {
			Expect(s.AddDielectric(geom.V(0, 0), geom.V(10, 10), 2)).To(Succeed())
			Expect(s.AddDielectric(geom.V(5, 5), geom.V(15, 15), 7)).To(Succeed())

			Expect(s.RemoveDielectricAt(geom.V(6, 6))).To(BeTrue())
			snap := s.Snapshot()
			Expect(snap.Dielectrics).To(HaveLen(1))
			Expect(snap.Dielectrics[0].EpsilonR).To(Equal(7.0))

			Expect(s.RemoveDielectricAt(geom.V(-1, -1))).To(BeFalse())
		})
	})

	Describe("shields", func() {
		It("adds and removes shields by point", func() {
			Expect(s.AddShield(geom.V(0, 0), geom.V(2, 2))).To(Succeed())
			Expect(s.AddShield(geom.V(10, 10), geom.V(12, 12))).To(Succeed())

			Expect(s.RemoveShieldAt(geom.V(11, 11))).To(BeTrue())
			Expect(s.RemoveShieldAt(geom.V(11, 11))).To(BeFalse())
			Expect(s.NumShields()).To(Equal(1))
		})
	})

	Describe("snapshots", func() {
		It("are unaffected by later edits", func() {
			Expect(s.AddCharge(geom.V(0, 0), 1)).To(Succeed())
			snap := s.Snapshot()

			Expect(s.AddCharge(geom.V(1, 1), -1)).To(Succeed())
			s.RemoveChargesNear(geom.V(0, 0), 0.5)

			Expect(snap.Charges).To(HaveLen(1))
			Expect(snap.Charges[0].Q).To(Equal(1.0))
		})

		It("resolve overlapping regions by insertion order", func() {
			snap := scene.Snapshot{
				Dielectrics: []scene.Dielectric{
					{Rect: geom.Rect{Width: 10, Height: 10}, EpsilonR: 2},
					{Rect: geom.Rect{Width: 10, Height: 10}, EpsilonR: 9},
				},
			}
			i, ok := snap.DielectricAt(geom.V(5, 5))
			Expect(ok).To(BeTrue())
			Expect(i).To(Equal(0))
		})

		It("report empty only with no charges or regions", func() {
			Expect(scene.Snapshot{}.Empty()).To(BeTrue())
			Expect(scene.Snapshot{Shields: []scene.Shield{{}}}.Empty()).To(BeFalse())
			Expect(scene.Snapshot{Charges: []scene.Charge{{Q: 1}}}.Empty()).To(BeFalse())
		})
	})

	Describe("logging", func() {
		var buf *bytes.Buffer

		BeforeEach(func() {
			buf = &bytes.Buffer{}
			scene.SetLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
			DeferCleanup(func() { scene.SetLogger(nil) })
		})

		It("logs edits at debug level", func() {
			Expect(s.AddCharge(geom.V(1, 2), 1)).To(Succeed())
			Expect(buf.String()).To(ContainSubstring("charge added"))
		})

		It("logs rejected edits", func() {
			Expect(s.AddCharge(geom.V(1, 2), 0)).NotTo(Succeed())
			Expect(buf.String()).To(ContainSubstring("scene edit rejected"))
		})

		It("is silent by default", func() {
			scene.SetLogger(nil)
			Expect(scene.Logger().Enabled(context.Background(), slog.LevelError)).To(BeFalse())
		})
	})
})
