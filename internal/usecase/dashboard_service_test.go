package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/SiddigHope/sanfpl/internal/domain/evaluation"
	"github.com/SiddigHope/sanfpl/internal/infrastructure/repository/memory"
	"github.com/SiddigHope/sanfpl/internal/platform/cache"
)

func newTestDashboardService(t *testing.T) *DashboardService {
	t.Helper()

	heuristics := evaluation.DefaultHeuristics()
	data := NewDataService(memory.NewSeededSource(), memory.NewSnapshotRepository(), cache.NewStore(time.Minute), nil)
	players := NewPlayerService(data, heuristics, 4, nil)
	prices := NewPriceService(data, heuristics, nil)
	return NewDashboardService(data, players, prices, nil)
}

func TestDashboardServiceGet(t *testing.T) {
	service := newTestDashboardService(t)

	dashboard, err := service.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dashboard.Gameweek != 7 {
		t.Fatalf("unexpected gameweek: got=%d want=%d", dashboard.Gameweek, 7)
	}
	if dashboard.GameweekName != "Gameweek 7" {
		t.Fatalf("unexpected gameweek name: %q", dashboard.GameweekName)
	}
	if dashboard.Deadline.IsZero() {
		t.Fatalf("expected a deadline")
	}

	if len(dashboard.TopCaptains) != 5 {
		t.Fatalf("unexpected captain count: got=%d want=%d", len(dashboard.TopCaptains), 5)
	}
	for i := 1; i < len(dashboard.TopCaptains); i++ {
		if dashboard.TopCaptains[i].CaptainScore > dashboard.TopCaptains[i-1].CaptainScore {
			t.Fatalf("captains not sorted at %d", i)
		}
	}

	if len(dashboard.TopValue) != 5 {
		t.Fatalf("unexpected value pick count: got=%d want=%d", len(dashboard.TopValue), 5)
	}
	for _, pick := range dashboard.TopValue {
		if pick.Value <= 0 {
			t.Fatalf("expected a positive value score for %q", pick.Player.WebName)
		}
	}

	if len(dashboard.PriceRisers) == 0 {
		t.Fatalf("expected price risers in the demo data")
	}
	for _, riser := range dashboard.PriceRisers {
		if riser.Status != evaluation.TrendRiseSoon && riser.Status != evaluation.TrendRising {
			t.Fatalf("unexpected riser status: %q", riser.Status)
		}
	}
}
