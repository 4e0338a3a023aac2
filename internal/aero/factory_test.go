package aero_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/KevinDehulsters/tudat/internal/aero"
)

// rampTable builds an n-dimensional scalar table whose breakpoints are
// 0..size-1 per dimension and whose values are the flat index.
func rampTable(dims []int) *aero.ScalarTable {
	breakpoints := make([][]float64, len(dims))
	size := 1
	for d, n := range dims {
		bp := make([]float64, n)
		for i := range bp {
			bp[i] = float64(i)
		}
		breakpoints[d] = bp
		size *= n
	}
	values := make([]float64, size)
	for i := range values {
		values[i] = float64(i)
	}
	table, err := aero.NewScalarTable(breakpoints, values)
	Expect(err).NotTo(HaveOccurred())
	return table
}

func tabulatedSettings(vars ...aero.IndependentVariable) *aero.Settings {
	dims := make([]int, len(vars))
	for i := range dims {
		dims[i] = 2
	}
	return &aero.Settings{
		Kind: aero.TabulatedCoefficients,
		Tabulated: &aero.TabulatedSettings{
			Variables: vars,
			Force:     [3]*aero.ScalarTable{rampTable(dims), nil, rampTable(dims)},
			Moment:    [3]*aero.ScalarTable{nil, rampTable(dims), nil},
		},
	}
}

var _ = Describe("NewModel", func() {
	Describe("constant settings", func() {
		It("builds a zero-dimensional model", func() {
			model, err := aero.NewModel(&aero.Settings{
				Kind: aero.ConstantCoefficients,
				Constant: &aero.ConstantSettings{
					Force:  r3.Vec{X: 1.2, Z: -0.4},
					Moment: r3.Vec{Y: 0.05},
				},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(model.Dimension()).To(Equal(0))

			force, err := model.ForceCoefficients(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(force).To(Equal(r3.Vec{X: 1.2, Z: -0.4}))

			_, err = model.ForceCoefficients([]float64{1.0})
			Expect(err).To(MatchError(aero.ErrDimensionalityMismatch))
		})

		It("rejects a tabulated payload under a constant tag", func() {
			_, err := aero.NewModel(&aero.Settings{
				Kind:      aero.ConstantCoefficients,
				Tabulated: &aero.TabulatedSettings{},
			})
			Expect(err).To(MatchError(aero.ErrSettingsTypeMismatch))
			Expect(err.Error()).To(ContainSubstring("constant"))
			Expect(err.Error()).To(ContainSubstring("tabulated"))
		})
	})

	Describe("tabulated settings", func() {
		It("builds models for 1 through 6 dimensions", func() {
			vars := []aero.IndependentVariable{
				aero.MachNumber, aero.AngleOfAttack, aero.AngleOfSideslip,
				aero.Altitude, aero.ControlSurfaceDeflection, aero.MachNumber,
			}
			for n := 1; n <= 6; n++ {
				model, err := aero.NewModel(tabulatedSettings(vars[:n]...))
				Expect(err).NotTo(HaveOccurred(), "dimension %d", n)
				Expect(model.Dimension()).To(Equal(n))
			}
		})

		It("rejects 7 declared independent variables", func() {
			s := &aero.Settings{
				Kind: aero.TabulatedCoefficients,
				Tabulated: &aero.TabulatedSettings{
					Variables: make([]aero.IndependentVariable, 7),
				},
			}
			_, err := aero.NewModel(s)
			Expect(err).To(MatchError(aero.ErrUnsupportedDimensionality))
		})

		It("rejects a missing payload", func() {
			_, err := aero.NewModel(&aero.Settings{Kind: aero.TabulatedCoefficients})
			Expect(err).To(MatchError(aero.ErrSettingsTypeMismatch))
		})

		It("rejects a variable list shorter than the table dimensionality", func() {
			s := tabulatedSettings(aero.MachNumber, aero.AngleOfAttack)
			s.Tabulated.Variables = s.Tabulated.Variables[:1]
			_, err := aero.NewModel(s)
			Expect(err).To(MatchError(aero.ErrInconsistentIndependentVariables))
		})
	})

	Describe("control surface increments", func() {
		It("builds named increment models recursively", func() {
			s := tabulatedSettings(aero.AngleOfAttack)
			s.ControlSurfaces = map[string]*aero.Settings{
				"elevon": {
					Kind:     aero.ConstantCoefficients,
					Constant: &aero.ConstantSettings{Moment: r3.Vec{Y: -0.02}},
				},
			}
			model, err := aero.NewModel(s)
			Expect(err).NotTo(HaveOccurred())
			Expect(model.Increments()).To(HaveKey("elevon"))

			moment, err := model.Increments()["elevon"].MomentCoefficients(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(moment.Y).To(Equal(-0.02))
		})

		It("propagates nested construction failures with the surface name", func() {
			s := tabulatedSettings(aero.AngleOfAttack)
			s.ControlSurfaces = map[string]*aero.Settings{
				"body flap": {Kind: aero.ConstantCoefficients},
			}
			_, err := aero.NewModel(s)
			Expect(err).To(MatchError(aero.ErrSettingsTypeMismatch))
			Expect(err.Error()).To(ContainSubstring("body flap"))
		})
	})

	It("rejects an unknown settings kind", func() {
		_, err := aero.NewModel(&aero.Settings{Kind: "spline"})
		Expect(err).To(MatchError(aero.ErrSettingsTypeMismatch))
	})
})
