package sim

import (
	"context"
	"sync"

	"github.com/san-kum/rocketsim/internal/gnc"
	"github.com/san-kum/rocketsim/internal/vehicle"
)

// Batch flies several missions concurrently under the same run
// configuration, one goroutine per mission. Each flight gets its own
// controller so PID state is never shared.
type Batch struct {
	missions   []vehicle.Mission
	controller func() gnc.Controller
}

// NewBatch prepares a concurrent comparison run. newController may be nil,
// in which case every flight uses the default ascent guidance.
func NewBatch(missions []vehicle.Mission, newController func() gnc.Controller) *Batch {
	return &Batch{missions: missions, controller: newController}
}

func (b *Batch) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(b.missions))
	errs := make([]error, len(b.missions))

	var wg sync.WaitGroup
	for i := range b.missions {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				errs[idx] = ctx.Err()
				return
			default:
			}

			var ctrl gnc.Controller
			if b.controller != nil {
				ctrl = b.controller()
			}
			results[idx], errs[idx] = New(b.missions[idx], ctrl).Run(cfg)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
