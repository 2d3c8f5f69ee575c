package sim

import (
	"context"
	"math"
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("simulate and recover", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("with a single large-sample iteration", func() {
		It("produces one finite record", func() {
			result, err := NewRunner(testConfig(1, 4000), rand.NewPCG(2025, 1)).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Records).To(HaveLen(1))

			rec := result.Records[0]
			Expect(rec.SampleSize).To(Equal(4000))
			Expect(rec.Excluded).To(BeFalse())
			Expect(rec.Bias.IsValid()).To(BeTrue())
			Expect(rec.SquaredError.IsValid()).To(BeTrue())
		})
	})

	Context("across the reference sample sizes", func() {
		var rows []SummaryRow

		BeforeEach(func() {
			cfg := testConfig(1000, 10, 40, 4000)
			cfg.Workers = 3
			result, err := NewRunner(cfg, rand.NewPCG(17, 29)).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Records).To(HaveLen(3000))

			rows, err = result.Summary()
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns one row per sample size in order", func() {
			Expect(rows).To(HaveLen(3))
			for i, n := range []int{10, 40, 4000} {
				Expect(rows[i].SampleSize).To(Equal(n))
				Expect(rows[i].Count + rows[i].Excluded).To(Equal(1000))
				Expect(rows[i].Count).To(BeNumerically(">", 0))
			}
		})

		It("shrinks squared error as the sample grows", func() {
			for i := 1; i < len(rows); i++ {
				prev, cur := rows[i-1].SquaredError, rows[i].SquaredError
				Expect(cur.V).To(BeNumerically("<", prev.V))
				Expect(cur.A).To(BeNumerically("<", prev.A))
				Expect(cur.T).To(BeNumerically("<", prev.T))
			}
		})

		It("is nearly unbiased at the largest sample", func() {
			last := rows[len(rows)-1]
			Expect(math.Abs(last.Bias.V)).To(BeNumerically("<", 0.05))
			Expect(math.Abs(last.Bias.A)).To(BeNumerically("<", 0.05))
			Expect(math.Abs(last.Bias.T)).To(BeNumerically("<", 0.05))
		})
	})

	Context("with a bad configuration", func() {
		It("refuses zero iterations before simulating", func() {
			metric := &testMetric{}
			r := NewRunner(testConfig(0, 10, 40), rand.NewPCG(1, 1))
			r.AddMetric(metric)

			_, err := r.Run(ctx)
			Expect(err).To(MatchError(ErrInvalidConfiguration))
			Expect(metric.count).To(BeZero())
		})
	})
})
