package monitoring

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/datagen/gen"
	"github.com/sarchlab/datagen/gen/sample"
)

func getJSON(h http.Handler, url string, v any) int {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	if v != nil && rec.Code == http.StatusOK {
		Expect(json.Unmarshal(rec.Body.Bytes(), v)).To(Succeed())
	}

	return rec.Code
}

var _ = Describe("Monitor", func() {
	var (
		m       *Monitor
		numbers *sample.Iterating[int]
	)

	BeforeEach(func() {
		var err error

		m = NewMonitor()
		numbers, err = sample.NewIterating("Numbers", 1, 2, 3)
		Expect(err).ToNot(HaveOccurred())
	})

	It("should register a generator once", func() {
		m.RegisterGenerator(numbers)
		m.RegisterGenerator(numbers)

		Expect(m.generators).To(HaveLen(1))
		Expect(numbers.NumHooks()).To(Equal(1))
	})

	It("should list generators by name", func() {
		other, err := sample.NewConstant("Answer", 42)
		Expect(err).ToNot(HaveOccurred())

		m.RegisterGenerator(numbers)
		m.RegisterGenerator(other)

		var names []string
		Expect(getJSON(m.router(), "/api/list_generators", &names)).
			To(Equal(http.StatusOK))
		Expect(names).To(Equal([]string{"Answer", "Numbers"}))
	})

	It("should count products and depletions", func() {
		m.RegisterGenerator(numbers)
		Expect(numbers.Init(gen.NewContext())).To(Succeed())

		for {
			if _, ok := numbers.Generate(); !ok {
				break
			}
		}

		var counts []generatorRsp
		Expect(getJSON(m.router(), "/api/counts", &counts)).
			To(Equal(http.StatusOK))
		Expect(counts).To(HaveLen(1))
		Expect(counts[0].Name).To(Equal("Numbers"))
		Expect(counts[0].State).To(Equal("unavailable"))
		Expect(counts[0].Products).To(Equal(uint64(3)))
		Expect(counts[0].Depleted).To(Equal(uint64(1)))
	})

	It("should answer 404 for unknown generators", func() {
		m.RegisterGenerator(numbers)

		Expect(getJSON(m.router(), "/api/generator/Missing", nil)).
			To(Equal(http.StatusNotFound))
	})

	It("should reject malformed field requests", func() {
		Expect(getJSON(m.router(), "/api/field/notjson", nil)).
			To(Equal(http.StatusBadRequest))
	})

	It("should track progress through a hook", func() {
		bar := m.TrackProgress(numbers, 3)
		Expect(bar.ID).ToNot(BeEmpty())

		Expect(numbers.Init(gen.NewContext())).To(Succeed())
		numbers.Generate()
		numbers.Generate()

		var bars []progressBarRsp
		Expect(getJSON(m.router(), "/api/progress", &bars)).
			To(Equal(http.StatusOK))
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].Name).To(Equal("Numbers"))
		Expect(bars[0].Finished).To(Equal(uint64(2)))
		Expect(bars[0].Total).To(Equal(uint64(3)))

		numbers.Reset()
		Expect(bar.snapshot().Finished).To(BeZero())
	})

	It("should complete progress bars", func() {
		a := m.CreateProgressBar("A", 10)
		b := m.CreateProgressBar("B", 10)
		Expect(a.ID).ToNot(Equal(b.ID))

		m.CompleteProgressBar(a)

		Expect(m.progressBars).To(ConsistOf(b))
	})

	It("should move in-progress items to finished", func() {
		bar := m.CreateProgressBar("A", 10)

		bar.IncrementInProgress(4)
		bar.MoveInProgressToFinished(3)
		bar.IncrementFinished(1)

		s := bar.snapshot()
		Expect(s.InProgress).To(Equal(uint64(1)))
		Expect(s.Finished).To(Equal(uint64(4)))
	})

	It("should report resources", func() {
		var rsp resourceRsp
		Expect(getJSON(m.router(), "/api/resource", &rsp)).
			To(Equal(http.StatusOK))
		Expect(rsp.MemorySize).To(BeNumerically(">", 0))
	})

	It("should refuse low port numbers", func() {
		m.WithPortNumber(80)
		Expect(m.portNumber).To(BeZero())

		m.WithPortNumber(18080)
		Expect(m.portNumber).To(Equal(18080))
	})

	It("should start and stop the server", func() {
		addr, err := m.StartServer()
		Expect(err).ToNot(HaveOccurred())
		Expect(addr).To(HavePrefix("http://localhost:"))

		_, err = m.StartServer()
		Expect(err).To(HaveOccurred())

		rsp, err := http.Get(addr + "/api/list_generators")
		Expect(err).ToNot(HaveOccurred())
		rsp.Body.Close()
		Expect(rsp.StatusCode).To(Equal(http.StatusOK))

		Expect(m.StopServer(context.Background())).To(Succeed())
	})
})
