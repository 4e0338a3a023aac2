package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/KevinDehulsters/tudat/internal/sim"
)

// TrajectoryReport renders post-run charts of altitude and speed over time
// plus the metric summary.
func TrajectoryReport(result *sim.Result, shape sim.Shape) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Trajectory"))
	b.WriteString("\n")

	if len(result.States) > 1 {
		altitudes := make([]float64, len(result.States))
		speeds := make([]float64, len(result.States))
		for i, x := range result.States {
			altitudes[i] = shape.Altitude(x.Position()) / 1000
			speeds[i] = speed(x)
		}

		b.WriteString(graphStyle.Render(asciigraph.Plot(altitudes,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("Altitude [km]"),
		)))
		b.WriteString("\n")
		b.WriteString(graphStyle.Render(asciigraph.Plot(speeds,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("Speed [m/s]"),
		)))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Render("Steps"),
		valueStyle.Render(fmt.Sprintf("%d", result.StepsTaken))))
	if n := len(result.Times); n > 0 {
		b.WriteString(fmt.Sprintf("%s %s\n",
			labelStyle.Render("Final time"),
			valueStyle.Render(fmt.Sprintf("%.1f s", result.Times[n-1]))))
	}
	for name, value := range result.Metrics {
		b.WriteString(fmt.Sprintf("%s %s\n",
			labelStyle.Render(name),
			valueStyle.Render(fmt.Sprintf("%.4g", value))))
	}

	return b.String()
}

// TrimSweepChart renders the trim angle of attack across a sweep.
func TrimSweepChart(alphasDeg []float64) string {
	return graphStyle.Render(asciigraph.Plot(alphasDeg,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Caption("Trim angle of attack [deg]"),
	))
}

func speed(x sim.State) float64 {
	v := x.Velocity()
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}
