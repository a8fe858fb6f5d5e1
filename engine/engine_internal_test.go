package engine

import (
	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/nanopond/geometry"
	"github.com/sarchlab/nanopond/pond"
	"github.com/sarchlab/nanopond/prng"
	"github.com/sarchlab/nanopond/vm"
)

// newTestEngine builds an Engine without going through Builder.Build, so
// tests never need a real akita sim.Engine to drive TickingComponent
// construction — Tick and seed never touch the embedded TickingComponent.
func newTestEngine(cfg Config, obs Observer) *Engine {
	e := &Engine{
		cfg:      cfg,
		pnd:      pond.New(cfg.Width, cfg.Height, cfg.Depth, cfg.Topology),
		rng:      prng.New(1),
		stats:    &vm.Stats{},
		observer: obs,
	}
	e.machine = vm.New(e.pnd, e.rng, cfg.VM, e.stats)
	return e
}

var _ = Describe("Config", func() {
	It("documents the spec §6 defaults", func() {
		cfg := DefaultConfig()
		Expect(cfg.Width).To(Equal(640))
		Expect(cfg.Height).To(Equal(480))
		Expect(cfg.Depth).To(Equal(512))
		Expect(cfg.Topology).To(Equal(geometry.Topology6))
		Expect(cfg.ReportFrequency).To(Equal(uint64(1000000)))
		Expect(cfg.RefreshFrequency).To(Equal(uint64(20000)))
		Expect(cfg.DumpFrequency).To(Equal(uint64(10000000)))
		Expect(cfg.InflowFrequency).To(Equal(uint64(100)))
		Expect(cfg.InflowRateBase).To(Equal(uint32(2000)))
		Expect(cfg.InflowRateVariation).To(Equal(uint32(4000)))
		Expect(cfg.VM.ReproductionCost).To(Equal(uint32(20)))
	})

	It("rejects a non-power-of-two depth", func() {
		cfg := DefaultConfig()
		cfg.Depth = 17
		Expect(cfg.validate()).To(HaveOccurred())
	})

	It("rejects a depth below 16", func() {
		cfg := DefaultConfig()
		cfg.Depth = 8
		Expect(cfg.validate()).To(HaveOccurred())
	})

	It("rejects a zero frequency", func() {
		cfg := DefaultConfig()
		cfg.InflowFrequency = 0
		Expect(cfg.validate()).To(HaveOccurred())
	})

	It("accepts the documented defaults", func() {
		Expect(DefaultConfig().validate()).NotTo(HaveOccurred())
	})
})

var _ = Describe("Builder", func() {
	It("fails fast on an invalid configuration, never touching akita", func() {
		_, err := NewBuilder().WithDepth(17).Build("bad")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Engine.Tick", func() {
	var (
		mockCtrl *gomock.Controller
		mock     *MockObserver
		cfg      Config
		e        *Engine
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mock = NewMockObserver(mockCtrl)

		cfg = DefaultConfig()
		cfg.Width, cfg.Height, cfg.Depth = 4, 4, 16
		cfg.ReportFrequency = 2
		cfg.RefreshFrequency = 2
		cfg.DumpFrequency = 4
		cfg.InflowFrequency = 1
		e = newTestEngine(cfg, mock)
	})

	It("invokes report, refresh and dump on tick 0 and resets stats after report", func() {
		e.stats.CellExecutions = 5

		mock.EXPECT().OnReport(gomock.Any()).Times(1)
		mock.EXPECT().OnRefresh(gomock.Any()).Return(false).Times(1)
		mock.EXPECT().OnDump(gomock.Any()).Times(1)

		progressed := e.Tick(0)

		Expect(progressed).To(BeTrue())
		// The engine resets stats right after OnReport (5 -> 0); the cell
		// execution later in the same tick then counts once.
		Expect(e.stats.CellExecutions).To(Equal(uint64(1)), "stats reset after OnReport, then one execution")
		Expect(e.tick).To(Equal(uint64(1)))
	})

	It("skips report/refresh/dump on ticks that don't land on their frequency", func() {
		mock.EXPECT().OnReport(gomock.Any()).Times(1)
		mock.EXPECT().OnRefresh(gomock.Any()).Return(false).Times(1)
		mock.EXPECT().OnDump(gomock.Any()).Times(1)

		e.Tick(0) // tick 0: report+refresh+dump all fire

		mock.EXPECT().OnReport(gomock.Any()).Times(0)
		mock.EXPECT().OnRefresh(gomock.Any()).Times(0)
		mock.EXPECT().OnDump(gomock.Any()).Times(0)

		e.Tick(0) // tick 1: none of the frequencies divide 1
	})

	It("stops advancing once StopAt is reached", func() {
		mock.EXPECT().OnReport(gomock.Any()).AnyTimes()
		mock.EXPECT().OnRefresh(gomock.Any()).Return(false).AnyTimes()
		mock.EXPECT().OnDump(gomock.Any()).AnyTimes()

		e.cfg.StopAt = 1
		Expect(e.Tick(0)).To(BeTrue()) // executes tick 0, advances to 1
		Expect(e.Tick(0)).To(BeFalse())
		Expect(e.Tick(0)).To(BeFalse())
	})

	It("stops when OnRefresh asks to stop", func() {
		mock.EXPECT().OnReport(gomock.Any()).AnyTimes()
		mock.EXPECT().OnRefresh(gomock.Any()).Return(true).Times(1)

		Expect(e.Tick(0)).To(BeFalse())
		Expect(e.Tick(0)).To(BeFalse(), "stays stopped")
	})
})

var _ = Describe("Engine.seed", func() {
	It("grants fresh id/lineage/genome and adds energy within the documented range", func() {
		cfg := DefaultConfig()
		cfg.Width, cfg.Height, cfg.Depth = 2, 2, 16
		e := newTestEngine(cfg, NopObserver{})

		e.seed()

		var seeded *pond.Cell
		e.pnd.Each(func(_, _ int, c *pond.Cell) {
			if c.ID != 0 {
				seeded = c
			}
		})
		Expect(seeded).NotTo(BeNil())
		Expect(seeded.ParentID).To(BeZero())
		Expect(seeded.Lineage).To(Equal(seeded.ID))
		Expect(seeded.Energy).To(BeNumerically(">=", cfg.InflowRateBase))
		Expect(seeded.Energy).To(BeNumerically("<", cfg.InflowRateBase+cfg.InflowRateVariation))
	})

	It("still refreshes id/genome but skips the energy addition past the cell cap", func() {
		cfg := DefaultConfig()
		cfg.Width, cfg.Height, cfg.Depth = 1, 1, 16
		cfg.CellEnergyCap = 100
		e := newTestEngine(cfg, NopObserver{})
		e.pnd.At(0, 0).Energy = 100

		e.seed()

		c := e.pnd.At(0, 0)
		Expect(c.Energy).To(Equal(uint32(100)))
		Expect(c.ID).NotTo(BeZero())
	})
})
