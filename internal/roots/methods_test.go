package roots_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jonduan/solow/internal/roots"
)

// cubic has a single real root at about 2.0945514815423265.
func cubic(x float64) float64 { return x*x*x - 2*x - 5 }

const cubicRoot = 2.0945514815423265

var _ = Describe("New", func() {
	It("resolves every registered name", func() {
		for _, name := range roots.Methods() {
			m, err := roots.New(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Name()).To(Equal(name))
		}
	})

	It("fails on unknown names", func() {
		_, err := roots.New("newton")
		Expect(err).To(MatchError(roots.ErrUnknownMethod))
	})
})

var _ = Describe("Solve", func() {
	for _, name := range []string{"bisect", "brent", "ridder"} {
		name := name

		Context(name, func() {
			var m roots.Method

			BeforeEach(func() {
				var err error
				m, err = roots.New(name)
				Expect(err).NotTo(HaveOccurred())
			})

			It("finds the cubic root", func() {
				res, err := m.Solve(cubic, 2, 3, roots.Options{})
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Converged).To(BeTrue())
				Expect(res.Root).To(BeNumerically("~", cubicRoot, 1e-7))
				Expect(res.Iterations).To(BeNumerically(">", 0))
				Expect(res.Bracket[0]).To(BeNumerically("<=", res.Bracket[1]))
			})

			It("finds a root across a wide bracket", func() {
				f := func(x float64) float64 { return math.Log(x) }
				res, err := m.Solve(f, 1e-6, 1e6, roots.Options{})
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Converged).To(BeTrue())
				Expect(res.Root).To(BeNumerically("~", 1.0, 1e-6))
			})

			It("returns an exact endpoint root without iterating", func() {
				f := func(x float64) float64 { return x }
				res, err := m.Solve(f, 0, 1, roots.Options{})
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Converged).To(BeTrue())
				Expect(res.Root).To(Equal(0.0))
				Expect(res.Iterations).To(BeZero())
			})

			It("rejects an inverted bracket", func() {
				_, err := m.Solve(cubic, 3, 2, roots.Options{})
				Expect(err).To(MatchError(roots.ErrInvalidBracket))
			})

			It("rejects a degenerate bracket", func() {
				_, err := m.Solve(cubic, 2, 2, roots.Options{})
				Expect(err).To(MatchError(roots.ErrInvalidBracket))
			})

			It("rejects a bracket without a sign change", func() {
				_, err := m.Solve(cubic, 3, 4, roots.Options{})
				Expect(err).To(MatchError(roots.ErrInvalidBracket))
			})

			It("rejects non-finite endpoint values", func() {
				f := func(x float64) float64 { return 1 / x }
				_, err := m.Solve(f, 0, 1, roots.Options{})
				Expect(err).To(MatchError(roots.ErrInvalidBracket))
			})

			It("reports exhaustion without converging", func() {
				res, err := m.Solve(cubic, 2, 3, roots.Options{MaxIterations: 2, Tolerance: 1e-15})
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Converged).To(BeFalse())
				Expect(res.Iterations).To(Equal(2))
				Expect(res.Root).To(BeNumerically("~", cubicRoot, 0.5))
			})
		})
	}
})
