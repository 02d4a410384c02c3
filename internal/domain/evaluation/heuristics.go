package evaluation

import "github.com/SiddigHope/sanfpl/internal/domain/fpl"

// Heuristics collects every tunable constant of the scoring formulas.
// The defaults define the observable behavior of the product; tests
// override individual values to probe edge cases.
type Heuristics struct {
	// DefaultDifficulty is the neutral rating used when no fixture is
	// found for a team and gameweek.
	DefaultDifficulty int
	// FixtureWindow caps how many upcoming fixtures feed the windowed
	// difficulty mean used by transfer planning.
	FixtureWindow int

	Points    PointsWeights
	Captain   CaptainWeights
	Rating    RatingRules
	Price     PriceRules
	Transfers TransferRules
}

// PointsWeights shapes the next-gameweek points estimate.
type PointsWeights struct {
	// FormWeight is the multiplier on form when blending with points
	// per game; the blend divides by FormWeight+1.
	FormWeight float64
	// DifficultyCeiling and DifficultyRange map a 1..5 difficulty to a
	// multiplier of (DifficultyCeiling-d)/DifficultyRange.
	DifficultyCeiling float64
	DifficultyRange   float64
	// MinutesPerMatch estimates games played from season minutes.
	MinutesPerMatch int
}

type CaptainWeights struct {
	Form         float64
	Predicted    float64
	Difficulty   float64
	Availability float64
}

type RatingRules struct {
	// PointsCeiling is the per-player score treated as 100%.
	PointsCeiling float64
}

type PriceRules struct {
	RiseBaseVolume int
	DropBaseVolume int
	RiseFloor      int
	DropFloor      int
	// OwnershipPivot scales thresholds with ownership: a player owned by
	// OwnershipPivot*100 percent gets the base volume unchanged.
	OwnershipPivot       float64
	OwnershipFloorFactor float64
	// NoiseFloor and NoiseOwnershipScale form the small-signal filter:
	// |net transfers| below max(NoiseFloor, ownership*NoiseOwnershipScale)
	// reads as stable.
	NoiseFloor          int
	NoiseOwnershipScale float64
	// FallbackOwnership replaces a zero or unparseable ownership share.
	FallbackOwnership float64
}

type TransferRules struct {
	MaxResults int
	// CandidateFormEdge is how far above the position's poor-form line a
	// replacement's form must sit.
	CandidateFormEdge float64
	// EasyFixtureCeiling is the windowed difficulty a replacement must
	// stay under.
	EasyFixtureCeiling float64
	Thresholds         map[fpl.Position]PositionThreshold
}

// PositionThreshold marks when a player at a position counts as
// underperforming.
type PositionThreshold struct {
	PoorForm       float64
	HardDifficulty float64
	InjuryChance   float64
}

func DefaultHeuristics() Heuristics {
	return Heuristics{
		DefaultDifficulty: 3,
		FixtureWindow:     5,
		Points: PointsWeights{
			FormWeight:        2,
			DifficultyCeiling: 6,
			DifficultyRange:   5,
			MinutesPerMatch:   90,
		},
		Captain: CaptainWeights{
			Form:         0.4,
			Predicted:    0.3,
			Difficulty:   0.2,
			Availability: 0.1,
		},
		Rating: RatingRules{
			PointsCeiling: 10,
		},
		Price: PriceRules{
			RiseBaseVolume:       80000,
			DropBaseVolume:       20000,
			RiseFloor:            15000,
			DropFloor:            10000,
			OwnershipPivot:       0.05,
			OwnershipFloorFactor: 0.4,
			NoiseFloor:           10,
			NoiseOwnershipScale:  1000,
			FallbackOwnership:    0.001,
		},
		Transfers: TransferRules{
			MaxResults:         5,
			CandidateFormEdge:  1.5,
			EasyFixtureCeiling: 3,
			Thresholds: map[fpl.Position]PositionThreshold{
				fpl.PositionGoalkeeper: {PoorForm: 3.0, HardDifficulty: 4, InjuryChance: 75},
				fpl.PositionDefender:   {PoorForm: 3.5, HardDifficulty: 4, InjuryChance: 75},
				fpl.PositionMidfielder: {PoorForm: 4.0, HardDifficulty: 3.5, InjuryChance: 75},
				fpl.PositionForward:    {PoorForm: 4.5, HardDifficulty: 3.5, InjuryChance: 75},
			},
		},
	}
}
