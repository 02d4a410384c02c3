package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SiddigHope/sanfpl/internal/domain/evaluation"
	"github.com/SiddigHope/sanfpl/internal/domain/fpl"
	"github.com/SiddigHope/sanfpl/internal/infrastructure/repository/memory"
	"github.com/SiddigHope/sanfpl/internal/platform/cache"
)

func newTestSquadService(t *testing.T) *SquadService {
	t.Helper()

	data := NewDataService(memory.NewSeededSource(), memory.NewSnapshotRepository(), cache.NewStore(time.Minute), nil)
	return NewSquadService(data, evaluation.DefaultHeuristics(), nil)
}

func TestSquadServiceAnalyze(t *testing.T) {
	ctx := context.Background()
	service := newTestSquadService(t)

	t.Run("optimizes the demo squad", func(t *testing.T) {
		analysis, err := service.Analyze(ctx, memory.DemoEntryID, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if analysis.Gameweek != 7 {
			t.Fatalf("unexpected gameweek: got=%d want=%d", analysis.Gameweek, 7)
		}
		if analysis.Formation != "3-4-3" {
			t.Fatalf("unexpected formation: got=%q want=%q", analysis.Formation, "3-4-3")
		}
		if len(analysis.Starting) != 11 || len(analysis.Bench) != 4 {
			t.Fatalf("unexpected split: starting=%d bench=%d", len(analysis.Starting), len(analysis.Bench))
		}

		goalkeepers := 0
		for _, player := range analysis.Starting {
			if player.Position == fpl.PositionGoalkeeper {
				goalkeepers++
			}
		}
		if goalkeepers != 1 {
			t.Fatalf("unexpected starting goalkeepers: got=%d want=%d", goalkeepers, 1)
		}

		if analysis.Captain.ID == analysis.ViceCaptain.ID {
			t.Fatalf("captain and vice must differ: both %d", analysis.Captain.ID)
		}
		if analysis.Rating <= 0 {
			t.Fatalf("expected a positive rating, got %d", analysis.Rating)
		}
		if analysis.Bank != 23 {
			t.Fatalf("unexpected bank: got=%d want=%d", analysis.Bank, 23)
		}
		if analysis.TeamValue != 1012 {
			t.Fatalf("unexpected team value: got=%d want=%d", analysis.TeamValue, 1012)
		}
	})

	t.Run("honors an explicit formation", func(t *testing.T) {
		analysis, err := service.Analyze(ctx, memory.DemoEntryID, "4-4-2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if analysis.Formation != "4-4-2" {
			t.Fatalf("unexpected formation: got=%q want=%q", analysis.Formation, "4-4-2")
		}

		defenders := 0
		for _, player := range analysis.Starting {
			if player.Position == fpl.PositionDefender {
				defenders++
			}
		}
		if defenders != 4 {
			t.Fatalf("unexpected starting defenders: got=%d want=%d", defenders, 4)
		}
	})

	t.Run("rejects a malformed formation", func(t *testing.T) {
		_, err := service.Analyze(ctx, memory.DemoEntryID, "9-9-9")
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown entry maps to not found", func(t *testing.T) {
		_, err := service.Analyze(ctx, 9999, "")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects non-positive entry id", func(t *testing.T) {
		_, err := service.Analyze(ctx, 0, "")
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestSquadServicePlan(t *testing.T) {
	service := newTestSquadService(t)
	ctx := context.Background()

	demoSquad := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}

	t.Run("plans an arbitrary pick list", func(t *testing.T) {
		plan, err := service.Plan(ctx, demoSquad, "4-4-2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if plan.Formation != "4-4-2" {
			t.Fatalf("unexpected formation: got=%q want=%q", plan.Formation, "4-4-2")
		}
		if len(plan.Starting) != 11 || len(plan.Bench) != 4 {
			t.Fatalf("unexpected squad split: starting=%d bench=%d", len(plan.Starting), len(plan.Bench))
		}
		if plan.Rating <= 0 {
			t.Fatalf("expected positive rating, got %d", plan.Rating)
		}
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		picks := append([]int(nil), demoSquad...)
		picks[14] = picks[0]
		_, err := service.Plan(ctx, picks, "")
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown id maps to not found", func(t *testing.T) {
		picks := append([]int(nil), demoSquad...)
		picks[14] = 9999
		_, err := service.Plan(ctx, picks, "")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects an empty pick list", func(t *testing.T) {
		_, err := service.Plan(ctx, nil, "")
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
