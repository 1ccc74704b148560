package wrapper_test

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/datagen/gen"
	"github.com/sarchlab/datagen/gen/sample"
	"github.com/sarchlab/datagen/gen/sequence"
	"github.com/sarchlab/datagen/gen/wrapper"
)

var (
	_ gen.Generator[int]         = (*wrapper.Proxy[int])(nil)
	_ gen.Generator[string]      = (*wrapper.Convert[int, string])(nil)
	_ gen.Generator[int]         = (*wrapper.Chain[int])(nil)
	_ gen.Generator[int]         = (*wrapper.Alternative[int])(nil)
	_ gen.Generator[int]         = (*wrapper.Cyclic[int])(nil)
	_ gen.Generator[int]         = (*wrapper.Expand[int])(nil)
	_ gen.Generator[int]         = (*wrapper.Repeat[int])(nil)
	_ gen.Generator[int]         = (*wrapper.Skip[int])(nil)
	_ gen.Generator[int]         = (*wrapper.Unique[int])(nil)
	_ gen.Generator[int]         = (*wrapper.LastProductDetector[int])(nil)
	_ gen.Generator[int]         = (*wrapper.Synchronized[int])(nil)
	_ gen.Generator[[]int]       = (*wrapper.Array[int])(nil)
	_ gen.Generator[[]int]       = (*wrapper.Collection[int])(nil)
	_ gen.Generator[interface{}] = (*MockGenerator[interface{}])(nil)
)

func newContext() *gen.Context {
	return gen.MakeContextBuilder().WithSeed(1).Build()
}

func list[T any](name string, values ...T) gen.Generator[T] {
	g, err := sample.NewIterating(name, values...)
	Expect(err).NotTo(HaveOccurred())

	return g
}

func steps(name string, min, max int) gen.Generator[int] {
	g, err := sequence.CreateNumberGenerator(name, sequence.Step{},
		min, max, 1, true)
	Expect(err).NotTo(HaveOccurred())

	return g
}

func initialized[T any](g gen.Generator[T], err error) gen.Generator[T] {
	Expect(err).NotTo(HaveOccurred())
	Expect(g.Init(newContext())).To(Succeed())

	return g
}

var _ = Describe("Proxy", func() {
	var mockCtrl *gomock.Controller

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should forward to the source", func() {
		src := list("Src", 1, 2)
		p := initialized[int](wrapper.NewProxy("Proxy", src))

		Expect(gen.Drain(p)).To(Equal([]int{1, 2}))
		Expect(p.State()).To(Equal(gen.StateUnavailable))

		p.Reset()
		Expect(gen.Drain(p)).To(Equal([]int{1, 2}))

		p.Close()
		Expect(src.State()).To(Equal(gen.StateClosed))
	})

	It("should use the source set before init", func() {
		p, _ := wrapper.NewProxy[int]("Proxy", nil)
		p.SetSource(list("Fallback", 7))

		Expect(p.Init(newContext())).To(Succeed())
		Expect(gen.Drain[int](p)).To(Equal([]int{7}))
	})

	It("should refuse a new source after init", func() {
		p := initialized[int](wrapper.NewProxy("Proxy", list("Src", 1)))

		Expect(func() {
			p.(*wrapper.Proxy[int]).SetSource(list("Other", 2))
		}).To(Panic())
	})

	It("should report no capabilities without a source", func() {
		p, _ := wrapper.NewProxy[int]("Proxy", nil)

		Expect(p.IsThreadSafe()).To(BeFalse())
		Expect(p.IsParallelizable()).To(BeFalse())
	})

	It("should require a source at init", func() {
		p, _ := wrapper.NewProxy[int]("Proxy", nil)

		err := p.Init(newContext())
		Expect(gen.IsConfigError(err)).To(BeTrue())
		Expect(gen.PropertyOf(err)).To(Equal("source"))
	})

	It("should wrap source init errors", func() {
		src := NewMockGenerator[int](mockCtrl)
		src.EXPECT().State().Return(gen.StateCreated)
		src.EXPECT().Name().Return("Src").AnyTimes()
		src.EXPECT().Init(gomock.Any()).Return(errors.New("no data"))

		p, _ := wrapper.NewProxy[int]("Proxy", src)
		err := p.Init(newContext())

		Expect(err).To(MatchError(ContainSubstring("no data")))
		Expect(err.Error()).To(ContainSubstring("Proxy"))
		Expect(p.State()).To(Equal(gen.StateClosed))
	})

	It("should not init an initialized source", func() {
		src := NewMockGenerator[int](mockCtrl)
		src.EXPECT().State().Return(gen.StateRunning)
		src.EXPECT().Generate().Return(gen.MakeProduct(3), true)

		p := initialized[int](wrapper.NewProxy[int]("Proxy", src))
		Expect(gen.Take[int](p, 1)).To(Equal([]int{3}))
	})

	It("should report the capabilities of the source", func() {
		src := NewMockGenerator[int](mockCtrl)
		src.EXPECT().IsThreadSafe().Return(true)
		src.EXPECT().IsParallelizable().Return(false)

		p, _ := wrapper.NewProxy[int]("Proxy", src)
		Expect(p.IsThreadSafe()).To(BeTrue())
		Expect(p.IsParallelizable()).To(BeFalse())
	})

	It("should close the source once", func() {
		src := NewMockGenerator[int](mockCtrl)
		src.EXPECT().State().Return(gen.StateRunning)
		src.EXPECT().Close().Times(1)

		p := initialized[int](wrapper.NewProxy[int]("Proxy", src))
		p.Close()
		p.Close()
	})
})

var _ = Describe("Convert", func() {
	It("should map the values and keep the tags", func() {
		detector, _ := wrapper.NewLastProductDetector("Detector", list("Src", "a", "b"))
		c := initialized[string](wrapper.NewConvert("Upper", detector, strings.ToUpper))

		first, _ := c.Generate()
		last, _ := c.Generate()

		Expect(first.Value).To(Equal("A"))
		Expect(first.HasTag(gen.TagLast)).To(BeFalse())
		Expect(last.Value).To(Equal("B"))
		Expect(last.HasTag(gen.TagLast)).To(BeTrue())
	})

	It("should require a function", func() {
		_, err := wrapper.NewConvert[int, string]("Conv", list("Src", 1), nil)
		Expect(gen.PropertyOf(err)).To(Equal("converter"))
	})
})

var _ = Describe("Chain", func() {
	It("should exhaust the sources in order", func() {
		c := initialized[string](wrapper.NewChain("Chain", false,
			list("A", "a", "b"), list("B", "b", "c")))

		Expect(gen.Drain(c)).To(Equal([]string{"a", "b", "b", "c"}))
		Expect(c.IsParallelizable()).To(BeTrue())
	})

	It("should drop duplicates across sources when unique", func() {
		c := initialized[string](wrapper.NewChain("Chain", true,
			list("A", "a", "b"), list("B", "b", "c")))

		Expect(gen.Drain(c)).To(Equal([]string{"a", "b", "c"}))
		Expect(c.IsParallelizable()).To(BeFalse())

		c.Reset()
		Expect(gen.Drain(c)).To(Equal([]string{"a", "b", "c"}))
	})

	It("should deplete without sources", func() {
		c := initialized[int](wrapper.NewChain[int]("Chain", false))

		_, ok := c.Generate()
		Expect(ok).To(BeFalse())
	})

	It("should reject nil sources", func() {
		_, err := wrapper.NewChain[int]("Chain", false, nil)
		Expect(gen.PropertyOf(err)).To(Equal("source"))
	})
})

var _ = Describe("Alternative", func() {
	It("should draw from all sources until all are depleted", func() {
		a := initialized[int](wrapper.NewAlternative("Either", false,
			steps("Low", 1, 3), steps("High", 10, 12)))

		values := gen.Drain(a)
		Expect(values).To(ConsistOf(1, 2, 3, 10, 11, 12))
		Expect(a.State()).To(Equal(gen.StateUnavailable))

		var low []int
		for _, v := range values {
			if v < 10 {
				low = append(low, v)
			}
		}
		Expect(low).To(Equal([]int{1, 2, 3}))
	})

	It("should replay the same choices after reset", func() {
		a := initialized[int](wrapper.NewAlternative("Either", false,
			steps("Low", 1, 20), steps("High", 100, 120)))

		first := gen.Drain(a)
		a.Reset()
		Expect(gen.Drain(a)).To(Equal(first))
	})

	It("should drop duplicates when unique", func() {
		a := initialized[int](wrapper.NewAlternative("Either", true,
			steps("Low", 1, 5), steps("Mid", 3, 8)))

		Expect(gen.Drain(a)).To(ConsistOf(1, 2, 3, 4, 5, 6, 7, 8))
	})
})

var _ = Describe("Cyclic", func() {
	It("should start over when the source depletes", func() {
		c := initialized[int](wrapper.NewCyclic("Cycle", list("Src", 1, 2)))
		Expect(gen.Take(c, 5)).To(Equal([]int{1, 2, 1, 2, 1}))
	})

	It("should deplete over an empty source", func() {
		c := initialized[int](wrapper.NewCyclic("Cycle", list[int]("Src")))

		_, ok := c.Generate()
		Expect(ok).To(BeFalse())
		Expect(c.State()).To(Equal(gen.StateUnavailable))
	})
})

var _ = Describe("Expand", func() {
	It("should emit every source product once without duplication", func() {
		e := initialized[int](wrapper.MakeExpandBuilder[int]().
			WithSource(steps("Src", 1, 50)).
			WithCacheSize(10).
			WithBucketSize(3).
			WithUnique(true).
			Build("Expand"))

		values := gen.Drain(e)
		Expect(slices.Sorted(slices.Values(values))).
			To(Equal(gen.Drain(initialized(steps("Ref", 1, 50), nil))))
		Expect(slices.IsSorted(values)).To(BeFalse())
		Expect(e.IsParallelizable()).To(BeFalse())
	})

	It("should repeat products with a duplication quota", func() {
		e := initialized[int](wrapper.MakeExpandBuilder[int]().
			WithSource(steps("Src", 1, 5)).
			WithDuplicationQuota(0.5).
			Build("Expand"))

		values := gen.Drain(e)
		Expect(len(values)).To(BeNumerically(">=", 5))
		Expect(values).To(ContainElements(1, 2, 3, 4, 5))
		Expect(values).To(HaveEach(And(
			BeNumerically(">=", 1), BeNumerically("<=", 5))))
	})

	It("should replay after reset", func() {
		e := initialized[int](wrapper.MakeExpandBuilder[int]().
			WithSource(steps("Src", 1, 30)).
			Build("Expand"))

		first := gen.Drain(e)
		e.Reset()
		Expect(gen.Drain(e)).To(Equal(first))
	})

	DescribeTable("should validate the configuration",
		func(b wrapper.ExpandBuilder[int], property string) {
			_, err := b.Build("Expand")
			Expect(gen.IsConfigError(err)).To(BeTrue())
			Expect(gen.PropertyOf(err)).To(Equal(property))
		},
		Entry("nil source", wrapper.MakeExpandBuilder[int](), "source"),
		Entry("cache size",
			wrapper.MakeExpandBuilder[int]().WithSource(list("S", 1)).WithCacheSize(0),
			"cacheSize"),
		Entry("bucket size",
			wrapper.MakeExpandBuilder[int]().WithSource(list("S", 1)).WithBucketSize(0),
			"bucketSize"),
		Entry("quota",
			wrapper.MakeExpandBuilder[int]().WithSource(list("S", 1)).
				WithDuplicationQuota(1),
			"duplicationQuota"),
		Entry("unique with duplication",
			wrapper.MakeExpandBuilder[int]().WithSource(list("S", 1)).
				WithDuplicationQuota(0.1).WithUnique(true),
			"unique"),
	)
})

var _ = Describe("Repeat", func() {
	It("should repeat products and tag the last repetition", func() {
		r := initialized[string](wrapper.NewRepeat("Twice", list("Src", "a", "b"), 2, 2))

		var values []string
		var last []bool
		for {
			p, ok := r.Generate()
			if !ok {
				break
			}

			values = append(values, p.Value)
			last = append(last, p.HasTag(gen.TagLast))
		}

		Expect(values).To(Equal([]string{"a", "a", "b", "b"}))
		Expect(last).To(Equal([]bool{false, true, false, true}))
	})

	It("should keep counts within the bounds", func() {
		r := initialized[int](wrapper.NewRepeat("Some", steps("Src", 1, 100), 0, 3))

		values := gen.Drain(r)
		Expect(len(values)).To(BeNumerically("<=", 300))
		Expect(slices.IsSorted(values)).To(BeTrue())
	})

	It("should validate the counts", func() {
		_, err := wrapper.NewRepeat("Rep", list("Src", 1), 3, 2)
		Expect(gen.PropertyOf(err)).To(Equal("maxCount"))

		_, err = wrapper.NewRepeat("Rep", list("Src", 1), -1, 2)
		Expect(gen.PropertyOf(err)).To(Equal("minCount"))

		_, err = wrapper.NewRepeat("Rep", list("Src", 1), 0, 0)
		Expect(gen.PropertyOf(err)).To(Equal("maxCount"))
	})
})

var _ = Describe("Skip", func() {
	It("should skip the drawn number of products", func() {
		s := initialized[int](wrapper.MakeSkipBuilder[int]().
			WithSource(steps("Src", 1, 10)).
			WithIncrement(1, 1).
			Build("Odd"))

		Expect(gen.Drain(s)).To(Equal([]int{1, 3, 5, 7, 9}))
	})

	It("should stop at the limit", func() {
		s := initialized[int](wrapper.MakeSkipBuilder[int]().
			WithSource(steps("Src", 1, 10)).
			WithIncrement(1, 1).
			WithLimit(2).
			Build("Odd"))

		Expect(gen.Drain(s)).To(Equal([]int{1, 3}))

		s.Reset()
		Expect(gen.Drain(s)).To(Equal([]int{1, 3}))
	})

	It("should validate the increments", func() {
		_, err := wrapper.MakeSkipBuilder[int]().Build("Skip")
		Expect(gen.PropertyOf(err)).To(Equal("source"))

		_, err = wrapper.MakeSkipBuilder[int]().WithSource(list("S", 1)).
			WithIncrement(2, 1).Build("Skip")
		Expect(gen.PropertyOf(err)).To(Equal("maxIncrement"))

		_, err = wrapper.MakeSkipBuilder[int]().WithSource(list("S", 1)).
			WithIncrement(-1, 1).Build("Skip")
		Expect(gen.PropertyOf(err)).To(Equal("minIncrement"))
	})
})

var _ = Describe("Unique", func() {
	It("should drop repeated products", func() {
		u := initialized[int](wrapper.NewUnique("Distinct", list("Src", 1, 2, 1, 3, 2)))

		Expect(gen.Drain(u)).To(Equal([]int{1, 2, 3}))

		u.Reset()
		Expect(gen.Drain(u)).To(Equal([]int{1, 2, 3}))
		Expect(u.IsParallelizable()).To(BeFalse())
	})

	It("should let nil values through", func() {
		u := initialized[*int](wrapper.NewUnique("Distinct", list[*int]("Src", nil, nil)))
		Expect(gen.Drain(u)).To(HaveLen(2))
	})

	It("should deplete over an endless stream of duplicates", func() {
		c, _ := sample.NewConstant("Same", 1)
		u := initialized[int](wrapper.NewUnique[int]("Distinct", c))

		Expect(gen.Drain(u)).To(Equal([]int{1}))
	})
})

var _ = Describe("LastProductDetector", func() {
	It("should tag only the final product", func() {
		d := initialized[string](wrapper.NewLastProductDetector("Detector",
			list("Src", "a", "b", "c")))

		var tagged []string
		for {
			p, ok := d.Generate()
			if !ok {
				break
			}

			if p.HasTag(gen.TagLast) {
				tagged = append(tagged, p.Value)
			}
		}

		Expect(tagged).To(Equal([]string{"c"}))
	})

	It("should deplete over an empty source", func() {
		d := initialized[int](wrapper.NewLastProductDetector("Detector", list[int]("Src")))

		_, ok := d.Generate()
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Synchronized", func() {
	It("should serve concurrent callers", func() {
		s := initialized[int](wrapper.NewSynchronized("Safe", steps("Src", 1, 1000)))
		Expect(s.IsThreadSafe()).To(BeTrue())

		var (
			lock   sync.Mutex
			values []int
		)

		err := gen.DrainParallel(context.Background(), s, 8, 0,
			func(p gen.Product[int]) error {
				lock.Lock()
				defer lock.Unlock()

				values = append(values, p.Value)

				return nil
			})

		Expect(err).NotTo(HaveOccurred())
		Expect(values).To(HaveLen(1000))
		Expect(slices.Compact(slices.Sorted(slices.Values(values)))).
			To(HaveLen(1000))
	})
})

var _ = Describe("Stateful wrappers", func() {
	safe := func() gen.Generator[int] {
		s, err := wrapper.NewSynchronized("Safe", steps("Src", 1, 100))
		Expect(err).NotTo(HaveOccurred())

		return s
	}

	DescribeTable("should not be thread-safe over a synchronized source",
		func(build func(gen.Generator[int]) (gen.Generator[int], error)) {
			g := initialized[int](build(safe()))
			Expect(g.IsThreadSafe()).To(BeFalse())

			err := gen.DrainParallel(context.Background(), g, 4, 10,
				func(gen.Product[int]) error { return nil })
			Expect(gen.IsStateError(err)).To(BeTrue())
		},
		Entry("repeat", func(src gen.Generator[int]) (gen.Generator[int], error) {
			return wrapper.NewRepeat("Rep", src, 1, 3)
		}),
		Entry("skip", func(src gen.Generator[int]) (gen.Generator[int], error) {
			return wrapper.MakeSkipBuilder[int]().
				WithSource(src).
				WithIncrement(1, 3).
				Build("Skip")
		}),
		Entry("cyclic", func(src gen.Generator[int]) (gen.Generator[int], error) {
			return wrapper.NewCyclic("Cycle", src)
		}),
	)
})

var _ = Describe("Array", func() {
	bits := func(name string) gen.Generator[int] {
		return list(name, 0, 1)
	}

	It("should enumerate the cartesian product when unique", func() {
		a := initialized[[]int](wrapper.NewArray("Bits", true,
			bits("A"), bits("B"), bits("C")))

		Expect(gen.Drain(a)).To(Equal([][]int{
			{0, 0, 0}, {0, 0, 1}, {0, 1, 0}, {0, 1, 1},
			{1, 0, 0}, {1, 0, 1}, {1, 1, 0}, {1, 1, 1},
		}))
		Expect(a.State()).To(Equal(gen.StateUnavailable))
		Expect(a.IsParallelizable()).To(BeFalse())

		a.Reset()
		Expect(gen.Drain(a)).To(HaveLen(8))
	})

	It("should emit duplicate tuples only once", func() {
		a := initialized[[]int](wrapper.NewArray("Pairs", true,
			list("A", 1, 1), list("B", 2)))

		Expect(gen.Drain(a)).To(Equal([][]int{{1, 2}}))
	})

	It("should deplete at once if a source is empty", func() {
		a := initialized[[]int](wrapper.NewArray("Pairs", true,
			list("A", 1, 2), list[int]("B")))

		_, ok := a.Generate()
		Expect(ok).To(BeFalse())
	})

	It("should pull one product per source when not unique", func() {
		a := initialized[[]int](wrapper.NewArray("Zip", false,
			list("A", 1, 2, 3), list("B", 4, 5)))

		Expect(gen.Drain(a)).To(Equal([][]int{{1, 4}, {2, 5}}))
	})

	It("should need a source", func() {
		_, err := wrapper.NewArray[int]("Empty", false)
		Expect(gen.PropertyOf(err)).To(Equal("source"))
	})
})

var _ = Describe("Collection", func() {
	It("should fill collections of the drawn size", func() {
		c := initialized[[]string](wrapper.MakeCollectionBuilder[string]().
			WithSource(list("Letters", "a", "b", "c", "d", "e")).
			WithSizeRange(2, 2).
			Build("Pairs"))

		Expect(gen.Drain(c)).To(Equal([][]string{{"a", "b"}, {"c", "d"}}))
		Expect(c.State()).To(Equal(gen.StateUnavailable))
	})

	It("should keep sizes within the bounds", func() {
		cyclic, _ := wrapper.NewCyclic("Forever", list("Src", 1, 2, 3))
		c := initialized[[]int](wrapper.MakeCollectionBuilder[int]().
			WithSource(cyclic).
			WithSizeRange(1, 4).
			Build("Bags"))

		for _, bag := range gen.Take(c, 100) {
			Expect(len(bag)).To(BeNumerically(">=", 1))
			Expect(len(bag)).To(BeNumerically("<=", 4))
		}
	})

	It("should hold distinct elements when unique", func() {
		cyclic, _ := wrapper.NewCyclic("Forever", list("Src", "x", "x", "y"))
		c := initialized[[]string](wrapper.MakeCollectionBuilder[string]().
			WithSource(cyclic).
			WithSizeRange(2, 2).
			WithUnique(true).
			Build("Sets"))

		for _, set := range gen.Take(c, 20) {
			Expect(set).To(ConsistOf("x", "y"))
		}
	})

	It("should follow the size sequence", func() {
		cyclic, _ := wrapper.NewCyclic("Forever", list("Src", 0))
		c := initialized[[]int](wrapper.MakeCollectionBuilder[int]().
			WithSource(cyclic).
			WithSizeRange(1, 3).
			WithSizeSequence(sequence.Step{}).
			Build("Growing"))

		var sizes []int
		for _, bag := range gen.Drain(c) {
			sizes = append(sizes, len(bag))
		}

		Expect(sizes).To(Equal([]int{1, 2, 3}))
	})

	It("should validate the sizes", func() {
		_, err := wrapper.MakeCollectionBuilder[int]().
			WithSource(list("S", 1)).
			WithSizeRange(3, 1).
			Build("Bags")
		Expect(gen.IsConfigError(err)).To(BeTrue())

		_, err = wrapper.MakeCollectionBuilder[int]().
			WithSource(list("S", 1)).
			WithSizeRange(-1, 1).
			Build("Bags")
		Expect(gen.PropertyOf(err)).To(Equal("minSize"))
	})
})
