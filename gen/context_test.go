package gen_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/datagen/gen"
)

var _ = Describe("Context", func() {
	It("should derive reproducible streams", func() {
		a := gen.MakeContextBuilder().WithSeed(42).Build()
		b := gen.MakeContextBuilder().WithSeed(42).Build()

		ra1, ra2 := a.NewRandom(), a.NewRandom()
		rb1, rb2 := b.NewRandom(), b.NewRandom()

		Expect(ra1.Uint64()).To(Equal(rb1.Uint64()))
		Expect(ra2.Uint64()).To(Equal(rb2.Uint64()))
		Expect(a.Seed()).To(Equal(uint64(42)))
	})

	It("should rewind a stream", func() {
		r := gen.MakeContextBuilder().WithSeed(3).Build().NewRandom()

		first := []int64{r.Int64N(1000), r.Int64N(1000), r.Int64N(1000)}
		r.Rewind()
		again := []int64{r.Int64N(1000), r.Int64N(1000), r.Int64N(1000)}

		Expect(again).To(Equal(first))
	})

	It("should draw bounded numbers", func() {
		r := gen.NewSeededRandom(9)

		for i := 0; i < 100; i++ {
			Expect(r.Int64Between(-2, 2)).To(BeNumerically(">=", -2))
			Expect(r.Int64Between(-2, 2)).To(BeNumerically("<=", 2))
		}
		Expect(r.Int64Between(5, 5)).To(Equal(int64(5)))
	})

	It("should default to a no-op logger", func() {
		Expect(gen.NewContext().Logger()).NotTo(BeNil())
	})
})
