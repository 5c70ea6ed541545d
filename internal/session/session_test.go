package session_test

import (
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/clock"
	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/session"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func frame(n int) time.Time {
	return epoch.Add(time.Duration(n) * 10 * time.Millisecond)
}

func scenario() session.Config {
	cfg := session.DefaultConfig()
	cfg.Bodies = []physics.Body{
		{ID: "body1", Mass: 100, Position: geom.Vec2{X: -20, Y: 20}, Velocity: geom.Vec2{X: 7, Y: 5}},
		{ID: "body2", Mass: 1000, Position: geom.Vec2{X: 20, Y: -20}, Velocity: geom.Vec2{X: -10, Y: -4}},
	}
	return cfg
}

// far apart and light, so a single large step stays well behaved
func distant() session.Config {
	cfg := session.DefaultConfig()
	cfg.Bodies = []physics.Body{
		{ID: "a", Mass: 1, Position: geom.Vec2{X: -1000}},
		{ID: "b", Mass: 1, Position: geom.Vec2{X: 1000}},
	}
	return cfg
}

func run(s *session.Session, from, frames int) session.Snapshot {
	var snap session.Snapshot
	for i := from; i < from+frames; i++ {
		var err error
		snap, err = s.Tick(frame(i))
		Expect(err).NotTo(HaveOccurred())
	}
	return snap
}

var _ = Describe("Session", func() {
	var s *session.Session

	BeforeEach(func() {
		var err error
		s, err = session.New(scenario())
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("seeds one trail point per body", func() {
			snap, err := s.Snapshot()
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.Trails).To(HaveLen(2))
			Expect(snap.Trails["body1"]).To(Equal([]geom.Vec2{{X: -20, Y: 20}}))
			Expect(snap.Trails["body2"]).To(Equal([]geom.Vec2{{X: 20, Y: -20}}))
			Expect(snap.SimTime).To(BeZero())
			Expect(snap.Running).To(BeTrue())
		})

		It("rejects an unknown integrator", func() {
			cfg := scenario()
			cfg.Integrator = "leapfrog4"
			_, err := session.New(cfg)
			Expect(err).To(MatchError(physics.ErrInvalidConfig))
		})

		It("rejects a bad roster", func() {
			cfg := scenario()
			cfg.Bodies = cfg.Bodies[:1]
			_, err := session.New(cfg)
			Expect(err).To(MatchError(physics.ErrTooFewBodies))
		})

		It("rejects a non-positive trail length", func() {
			cfg := scenario()
			cfg.TrailLength = 0
			_, err := session.New(cfg)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Tick", func() {
		It("takes no step on the first call", func() {
			snap, err := s.Tick(frame(0))
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.SimTime).To(BeZero())
			Expect(snap.Bodies).To(Equal(s.InitialConditions()))
			Expect(snap.Trails["body1"]).To(HaveLen(1))
		})

		It("appends the post-step position to every trail", func() {
			snap := run(s, 0, 5)
			Expect(snap.SimTime).To(BeNumerically("~", 0.04, 1e-12))
			for _, b := range snap.Bodies {
				pts := snap.Trails[b.ID]
				Expect(pts).To(HaveLen(5))
				Expect(pts[len(pts)-1]).To(Equal(b.Position))
			}
		})

		It("reports diagnostics for the state after the step", func() {
			snap := run(s, 0, 30)
			b1, b2 := snap.Bodies[0], snap.Bodies[1]
			r := b2.Position.Sub(b1.Position)
			v := b2.Velocity.Sub(b1.Velocity)
			mu := s.G() * (b1.Mass + b2.Mass)

			Expect(snap.Diagnostics.Separation).To(BeNumerically("~", r.Norm(), 1e-9))
			Expect(snap.Diagnostics.SpecificAngularMomentum).To(BeNumerically("~", r.Cross(v), 1e-9))
			Expect(snap.Diagnostics.SpecificEnergy).To(BeNumerically("~", 0.5*v.NormSquared()-mu/r.Norm(), 1e-9))
		})

		It("keeps the scenario bounded and energy close to its start", func() {
			start, err := s.Snapshot()
			Expect(err).NotTo(HaveOccurred())
			e0 := start.Diagnostics.SpecificEnergy

			maxDrift := 0.0
			for i := 0; i <= 1000; i++ {
				snap, err := s.Tick(frame(i))
				Expect(err).NotTo(HaveOccurred())
				drift := math.Abs((snap.Diagnostics.SpecificEnergy - e0) / e0)
				maxDrift = math.Max(maxDrift, drift)
				for _, b := range snap.Bodies {
					Expect(math.Abs(b.Position.X)).To(BeNumerically("<", 500))
					Expect(math.Abs(b.Position.Y)).To(BeNumerically("<", 500))
				}
			}
			Expect(maxDrift).To(BeNumerically("<", 0.01))
		})

		It("samples body speeds once per step", func() {
			snap := run(s, 0, 4)
			samples := snap.Speeds["body1"]
			Expect(samples).To(HaveLen(4))
			Expect(samples[0].T).To(BeZero())
			Expect(samples[0].Value).To(BeNumerically("~", math.Hypot(7, 5), 1e-12))
			Expect(samples[3].Value).To(BeNumerically("~", snap.Bodies[0].Velocity.Norm(), 1e-12))
		})
	})

	Describe("clock control", func() {
		BeforeEach(func() {
			var err error
			s, err = session.New(distant())
			Expect(err).NotTo(HaveOccurred())
		})

		It("scales wall time by the speed multiplier", func() {
			Expect(s.SetSpeed(2)).To(Succeed())
			_, err := s.Tick(epoch)
			Expect(err).NotTo(HaveOccurred())
			snap, err := s.Tick(epoch.Add(time.Second))
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.SimTime).To(BeNumerically("~", 2.0, 1e-12))
		})

		It("freezes while paused", func() {
			_, _ = s.Tick(epoch)
			s.Pause()
			snap, err := s.Tick(epoch.Add(10 * time.Second))
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.SimTime).To(BeZero())
			Expect(snap.Running).To(BeFalse())
			Expect(snap.Trails["a"]).To(HaveLen(1))
		})

		It("does not attribute paused wall time after resume", func() {
			_, _ = s.Tick(epoch)
			s.Pause()
			_, _ = s.Tick(epoch.Add(5 * time.Second))
			s.Resume()
			_, _ = s.Tick(epoch.Add(30 * time.Second))
			snap, err := s.Tick(epoch.Add(31 * time.Second))
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.SimTime).To(BeNumerically("~", 1.0, 1e-12))
		})

		It("rejects a non-positive speed", func() {
			Expect(s.SetSpeed(0)).NotTo(Succeed())
			Expect(s.SetSpeed(-1)).NotTo(Succeed())
			snap, _ := s.Snapshot()
			Expect(snap.Speed).To(Equal(1.0))
		})

		It("rejects a speed outside the clock bounds and keeps time finite", func() {
			Expect(s.SetSpeed(math.MaxFloat64)).To(MatchError(clock.ErrInvalidSpeed))
			Expect(s.SetSpeed(clock.MaxSpeed * 2)).To(MatchError(clock.ErrInvalidSpeed))

			_, err := s.Tick(epoch)
			Expect(err).NotTo(HaveOccurred())
			snap, err := s.Tick(epoch.Add(2 * time.Second))
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.Speed).To(Equal(1.0))
			Expect(math.IsNaN(snap.SimTime)).To(BeFalse())
			Expect(snap.SimTime).To(BeNumerically("~", 2.0, 1e-12))
		})

		It("doubles and halves the speed", func() {
			Expect(s.Faster()).To(Equal(2.0))
			Expect(s.Slower()).To(Equal(1.0))
			Expect(s.Slower()).To(Equal(0.5))
		})
	})

	Describe("trail capacity", func() {
		It("bounds every trail", func() {
			Expect(s.SetTrailCapacity(3)).To(Succeed())
			snap := run(s, 0, 20)
			for _, pts := range snap.Trails {
				Expect(pts).To(HaveLen(3))
			}
		})

		It("rejects zero", func() {
			Expect(s.SetTrailCapacity(0)).NotTo(Succeed())
		})
	})

	Describe("Reset", func() {
		It("restores the initial state but keeps controls", func() {
			Expect(s.SetSpeed(4)).To(Succeed())
			run(s, 0, 50)
			s.Pause()

			Expect(s.Reset()).To(Succeed())
			snap, err := s.Snapshot()
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.SimTime).To(BeZero())
			Expect(snap.Bodies).To(Equal(s.InitialConditions()))
			Expect(snap.Trails["body1"]).To(Equal([]geom.Vec2{{X: -20, Y: 20}}))
			Expect(snap.Speeds["body1"]).To(HaveLen(1))
			Expect(snap.Speed).To(Equal(4.0))
			Expect(snap.Running).To(BeFalse())
		})

		It("is idempotent", func() {
			run(s, 0, 25)
			Expect(s.Reset()).To(Succeed())
			once, err := s.Snapshot()
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Reset()).To(Succeed())
			twice, err := s.Snapshot()
			Expect(err).NotTo(HaveOccurred())
			Expect(twice).To(Equal(once))
		})

		It("replays the same trajectory", func() {
			first := run(s, 0, 40)
			Expect(s.Reset()).To(Succeed())
			// frame 40 follows frame 39, so the step sizes match the first run
			second := run(s, 40, 39)
			Expect(second.Bodies).To(Equal(first.Bodies))
		})
	})

	Describe("SetInitialCondition", func() {
		It("only changes state after a reset", func() {
			pos := geom.Vec2{X: -30, Y: 10}
			vel := geom.Vec2{X: 1, Y: 2}
			mass := 250.0
			Expect(s.SetInitialCondition("body1", session.InitialCondition{
				Position: &pos, Velocity: &vel, Mass: &mass,
			})).To(Succeed())

			snap, _ := s.Snapshot()
			Expect(snap.Bodies[0].Position).To(Equal(geom.Vec2{X: -20, Y: 20}))

			Expect(s.Reset()).To(Succeed())
			snap, _ = s.Snapshot()
			Expect(snap.Bodies[0].Position).To(Equal(pos))
			Expect(snap.Bodies[0].Velocity).To(Equal(vel))
			Expect(snap.Bodies[0].Mass).To(Equal(mass))
			Expect(snap.Trails["body1"]).To(Equal([]geom.Vec2{pos}))
		})

		It("leaves unset fields alone", func() {
			vel := geom.Vec2{X: 3, Y: 3}
			Expect(s.SetInitialCondition("body2", session.InitialCondition{Velocity: &vel})).To(Succeed())
			ic := s.InitialConditions()[1]
			Expect(ic.Position).To(Equal(geom.Vec2{X: 20, Y: -20}))
			Expect(ic.Mass).To(Equal(1000.0))
			Expect(ic.Velocity).To(Equal(vel))
		})

		It("clamps positions to the configured bound", func() {
			pos := geom.Vec2{X: 250, Y: -101}
			Expect(s.SetInitialCondition("body1", session.InitialCondition{Position: &pos})).To(Succeed())
			Expect(s.InitialConditions()[0].Position).To(Equal(geom.Vec2{X: 100, Y: -100}))
		})

		It("rejects an unknown body", func() {
			err := s.SetInitialCondition("body9", session.InitialCondition{})
			Expect(err).To(MatchError(physics.ErrUnknownBody))
		})

		It("rejects a non-positive mass", func() {
			mass := 0.0
			err := s.SetInitialCondition("body1", session.InitialCondition{Mass: &mass})
			Expect(err).To(MatchError(physics.ErrInvalidMass))
			Expect(s.InitialConditions()[0].Mass).To(Equal(100.0))
		})

		It("rejects a position on top of another body", func() {
			pos := geom.Vec2{X: 20, Y: -20}
			err := s.SetInitialCondition("body1", session.InitialCondition{Position: &pos})
			Expect(err).To(MatchError(physics.ErrCollision))
		})
	})

	Describe("collision", func() {
		var cfg session.Config

		BeforeEach(func() {
			cfg = session.DefaultConfig()
			cfg.MinSeparation = 1
			cfg.Bodies = []physics.Body{
				{ID: "a", Mass: 10, Position: geom.Vec2{X: -5}, Velocity: geom.Vec2{X: 20}},
				{ID: "b", Mass: 10, Position: geom.Vec2{X: 5}, Velocity: geom.Vec2{X: -20}},
			}
			var err error
			s, err = session.New(cfg)
			Expect(err).NotTo(HaveOccurred())
		})

		It("halts until reset", func() {
			var err error
			i := 0
			for ; i < 200 && err == nil; i++ {
				_, err = s.Tick(frame(i))
			}
			Expect(err).To(MatchError(physics.ErrCollision))
			Expect(err).To(MatchError(session.ErrHalted))

			var stepErr *session.StepError
			Expect(errors.As(err, &stepErr)).To(BeTrue())
			Expect(stepErr.Tick).To(Equal(i))
			Expect(s.Halted()).To(BeTrue())

			frozen := s.SimTime()
			snap, again := s.Tick(frame(i + 50))
			Expect(again).To(Equal(err))
			Expect(snap.Halted).To(BeTrue())
			Expect(s.SimTime()).To(Equal(frozen))

			Expect(s.Reset()).To(Succeed())
			Expect(s.Halted()).To(BeFalse())
			_, err = s.Tick(frame(i + 51))
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
