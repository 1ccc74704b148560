package sample

import (
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/datagen/gen"
)

var _ gen.Generator[int] = (*Constant[int])(nil)
var _ gen.Generator[int] = (*Iterating[int])(nil)
var _ gen.Generator[int] = (*Sample[int])(nil)
var _ gen.Generator[int] = (*WeightedSample[int])(nil)
var _ gen.Generator[string] = (*UUID)(nil)

func newContext() *gen.Context {
	return gen.MakeContextBuilder().WithSeed(7).Build()
}

var _ = Describe("Constant", func() {
	It("should generate the same value forever", func() {
		g, err := NewConstant("Const", "x")
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Init(newContext())).To(Succeed())

		Expect(gen.Take[string](g, 3)).To(Equal([]string{"x", "x", "x"}))
		Expect(g.IsThreadSafe()).To(BeTrue())
	})

	It("should treat nil as a product", func() {
		g, err := NewConstant[*int]("Nil", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Init(newContext())).To(Succeed())

		p, ok := g.Generate()
		Expect(ok).To(BeTrue())
		Expect(p.Value).To(BeNil())
	})

	It("should reject invalid names", func() {
		_, err := NewConstant("const", 1)
		Expect(gen.IsConfigError(err)).To(BeTrue())
		Expect(gen.PropertyOf(err)).To(Equal("name"))
	})
})

var _ = Describe("Iterating", func() {
	It("should yield the values in order and deplete", func() {
		g, _ := NewIterating("List", 3, 1, 2)
		Expect(g.Init(newContext())).To(Succeed())

		Expect(gen.Drain[int](g)).To(Equal([]int{3, 1, 2}))
		Expect(g.State()).To(Equal(gen.StateUnavailable))

		g.Reset()
		Expect(gen.Drain[int](g)).To(Equal([]int{3, 1, 2}))
	})
})

var _ = Describe("Sample", func() {
	It("should draw only candidate values", func() {
		g, err := MakeBuilder[string]().
			WithValues("a", "b", "c").
			Build("Letters")
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Init(newContext())).To(Succeed())

		for _, v := range gen.Take[string](g, 100) {
			Expect(v).To(BeElementOf("a", "b", "c"))
		}
		Expect(g.IsParallelizable()).To(BeTrue())
	})

	It("should yield a permutation when unique", func() {
		g, _ := MakeBuilder[int]().
			WithValues(1, 2, 3, 4, 5).
			WithUnique(true).
			Build("Unique")
		Expect(g.Init(newContext())).To(Succeed())

		first := gen.Drain[int](g)
		Expect(first).To(ConsistOf(1, 2, 3, 4, 5))
		Expect(g.IsParallelizable()).To(BeFalse())

		g.Reset()
		Expect(gen.Drain[int](g)).To(Equal(first))
	})

	It("should deplete without values", func() {
		g, _ := MakeBuilder[int]().Build("Empty")
		Expect(g.Init(newContext())).To(Succeed())

		_, ok := g.Generate()
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("WeightedSample", func() {
	It("should follow the weights", func() {
		g, err := NewWeightedSample("Weights",
			Weighted[string]{Value: "never", Weight: 0},
			Weighted[string]{Value: "often", Weight: 3},
			Weighted[string]{Value: "rarely", Weight: 1},
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Init(newContext())).To(Succeed())

		counts := map[string]int{}
		for _, v := range gen.Take[string](g, 4000) {
			counts[v]++
		}

		Expect(counts["never"]).To(Equal(0))
		Expect(counts["often"]).To(BeNumerically("~", 3000, 150))
		Expect(counts["rarely"]).To(BeNumerically("~", 1000, 150))
	})

	It("should reject negative weights", func() {
		_, err := NewWeightedSample("Weights",
			Weighted[int]{Value: 1, Weight: -1})
		Expect(gen.IsConfigError(err)).To(BeTrue())
		Expect(gen.PropertyOf(err)).To(Equal("weight"))
	})

	It("should reject an all-zero table", func() {
		_, err := NewWeightedSample("Weights",
			Weighted[int]{Value: 1, Weight: 0})
		Expect(gen.IsConfigError(err)).To(BeTrue())
	})

	It("should deplete on an empty table", func() {
		g, err := NewWeightedSample[int]("Weights")
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Init(newContext())).To(Succeed())

		_, ok := g.Generate()
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("UUID", func() {
	It("should generate distinct parseable uuids", func() {
		g, _ := NewUUID("Ids")
		Expect(g.Init(newContext())).To(Succeed())

		seen := map[string]bool{}
		for _, v := range gen.Take[string](g, 50) {
			_, err := uuid.Parse(v)
			Expect(err).NotTo(HaveOccurred())
			Expect(seen[v]).To(BeFalse())
			seen[v] = true
		}

		Expect(g.IsThreadSafe()).To(BeTrue())
		Expect(g.IsParallelizable()).To(BeTrue())
	})
})
