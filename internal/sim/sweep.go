package sim

import (
	"context"
	"sync"
)

// Sweep propagates several initial states in parallel. The factory must
// return a freshly wired loop per call: the flight-condition and
// orientation chain is stateful, so a loop cannot be shared across
// goroutines.
type Sweep struct {
	factory func() (*Loop, error)
}

func NewSweep(factory func() (*Loop, error)) *Sweep {
	return &Sweep{factory: factory}
}

// Run returns one result per initial state, in order. The first error
// encountered is returned after all runs finish.
func (s *Sweep) Run(ctx context.Context, x0s []State, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(x0s))
	errs := make([]error, len(x0s))

	var wg sync.WaitGroup
	for i, x0 := range x0s {
		wg.Add(1)
		go func(idx int, x0 State) {
			defer wg.Done()

			loop, err := s.factory()
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = loop.Run(ctx, x0, cfg)
		}(i, x0)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
