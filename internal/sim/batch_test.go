package sim

import (
	"context"
	"testing"

	"github.com/san-kum/rocketsim/internal/vehicle"
)

func TestBatchFliesAllMissions(t *testing.T) {
	batch := NewBatch([]vehicle.Mission{singleStage(), twoStage()}, nil)

	cfg := DefaultConfig()
	cfg.Dt = 0.01

	results, err := batch.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("batch run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for i, res := range results {
		if res.Apogee() < 100 {
			t.Errorf("mission %d: apogee %.1f m, expected a real flight", i, res.Apogee())
		}
	}
	if results[1].Apogee() <= results[0].Apogee() {
		t.Errorf("two-stage apogee %.0f should beat single-stage %.0f",
			results[1].Apogee(), results[0].Apogee())
	}
}

func TestBatchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := NewBatch([]vehicle.Mission{singleStage()}, nil)
	if _, err := batch.Run(ctx, DefaultConfig()); err == nil {
		t.Error("expected error from cancelled context")
	}
}
