package sim

import (
	"context"
	"fmt"
)

// Loop steps a dynamics model over a fixed grid, notifying metrics and
// observers per accepted step. Any error from a derivative evaluation
// aborts the run; the models below fail loudly rather than degrade, and a
// partial trajectory past a failed model query would be meaningless.
type Loop struct {
	dyn        Dynamics
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func NewLoop(dyn Dynamics, integrator Integrator) *Loop {
	return &Loop{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (l *Loop) AddMetric(m Metric)     { l.metrics = append(l.metrics, m) }
func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

// Run propagates x0 from t=0 over the configured duration. Query times are
// strictly increasing across steps; within one step the integrator may
// evaluate stages at repeated times, which the flight-condition caching is
// built for.
func (l *Loop) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(x0) != l.dyn.StateDim() {
		return nil, fmt.Errorf("sim: initial state has length %d, dynamics expect %d",
			len(x0), l.dyn.StateDim())
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		States:  make([]State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range l.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range l.metrics {
			m.Observe(x, t)
		}
		for _, obs := range l.observers {
			obs.OnStep(x, t)
		}

		newX, err := l.integrator.Step(l.dyn, x, t, cfg.Dt)
		if err != nil {
			return result, fmt.Errorf("sim: step %d at t=%g: %w", i, t, err)
		}
		if cfg.ValidateState && !newX.IsValid() {
			return result, fmt.Errorf("sim: step %d at t=%g produced a non-finite state", i, t)
		}

		x = newX
		t = float64(i+1) * cfg.Dt
		result.StepsTaken++

		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
	}

	for _, m := range l.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
